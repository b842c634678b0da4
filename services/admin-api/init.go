package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/circlekay00/theft-app/pkg/apihelpers"
	"github.com/circlekay00/theft-app/pkg/db"
	incidentDB "github.com/circlekay00/theft-app/pkg/db/incident"
	userDB "github.com/circlekay00/theft-app/pkg/db/user"
	"github.com/circlekay00/theft-app/pkg/incident"
	"github.com/circlekay00/theft-app/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_GIN_DEBUG_MODE        = "GIN_DEBUG_MODE"
	ENV_ADMIN_API_LISTEN_PORT = "ADMIN_API_LISTEN_PORT"
	ENV_CORS_ALLOW_ORIGINS    = "CORS_ALLOW_ORIGINS"

	ENV_USER_JWT_SIGN_KEY = "USER_JWT_SIGN_KEY"

	ENV_INCIDENT_DB_USERNAME = "INCIDENT_DB_USERNAME"
	ENV_INCIDENT_DB_PASSWORD = "INCIDENT_DB_PASSWORD"
	ENV_USER_DB_USERNAME     = "USER_DB_USERNAME"
	ENV_USER_DB_PASSWORD     = "USER_DB_PASSWORD"
)

var (
	incidentDBService *incidentDB.IncidentDBService
	userDBService     *userDB.UserDBService
	incidentService   *incident.Service
)

type Config struct {
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	UserJWTSignKey string `json:"user_jwt_sign_key" yaml:"user_jwt_sign_key"`

	IncidentDBConfig db.DBConfigYaml `json:"incident_db_config" yaml:"incident_db_config"`
	UserDBConfig     db.DBConfigYaml `json:"user_db_config" yaml:"user_db_config"`
}

var conf Config

func init() {
	conf = initConfig()
	utils.InitLogger(conf.Logging)

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	initDBs()

	// admin endpoints never send notifications
	incidentService = incident.NewService(incidentDBService, nil)
}

func initConfig() Config {
	conf := Config{}

	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		fmt.Println("Error reading config file: " + err.Error())
		conf = Config{}
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		fmt.Println("Error reading config file: " + err.Error())
		conf = Config{}
	}

	// Env overrides
	if os.Getenv(ENV_GIN_DEBUG_MODE) != "" {
		conf.GinConfig.DebugMode = os.Getenv(ENV_GIN_DEBUG_MODE) == "true"
	}
	if port := os.Getenv(ENV_ADMIN_API_LISTEN_PORT); port != "" {
		conf.GinConfig.Port = port
	}
	if origins := os.Getenv(ENV_CORS_ALLOW_ORIGINS); origins != "" {
		conf.GinConfig.AllowOrigins = strings.Split(origins, ",")
	}
	if signKey := os.Getenv(ENV_USER_JWT_SIGN_KEY); signKey != "" {
		conf.UserJWTSignKey = signKey
	}

	if conf.UserJWTSignKey == "" {
		slog.Error("User JWT sign key not set - configure USER_JWT_SIGN_KEY env variable.")
		panic("User JWT sign key not set")
	}

	return conf
}

func initDBs() {
	var err error
	incidentDBService, err = incidentDB.NewIncidentDBService(db.DBConfigFromYamlObj(
		conf.IncidentDBConfig,
		ENV_INCIDENT_DB_USERNAME,
		ENV_INCIDENT_DB_PASSWORD,
	))
	if err != nil {
		slog.Error("Error connecting to Incident DB", slog.String("error", err.Error()))
		panic(err)
	}

	userDBService, err = userDB.NewUserDBService(db.DBConfigFromYamlObj(
		conf.UserDBConfig,
		ENV_USER_DB_USERNAME,
		ENV_USER_DB_PASSWORD,
	))
	if err != nil {
		slog.Error("Error connecting to User DB", slog.String("error", err.Error()))
		panic(err)
	}
}
