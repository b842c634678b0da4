package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/circlekay00/theft-app/pkg/db"
	incidentDB "github.com/circlekay00/theft-app/pkg/db/incident"
	"github.com/circlekay00/theft-app/pkg/utils"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_INCIDENT_DB_USERNAME = "INCIDENT_DB_USERNAME"
	ENV_INCIDENT_DB_PASSWORD = "INCIDENT_DB_PASSWORD"
)

// ReportExportTask describes one export file: either a single store or, with
// an empty store number, all reports.
type ReportExportTask struct {
	Name         string `json:"name" yaml:"name"`
	StoreNumber  string `json:"store_number" yaml:"store_number"`
	Status       string `json:"status" yaml:"status"`
	ExportFormat string `json:"export_format" yaml:"export_format"`
}

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		IncidentDB db.DBConfigYaml `json:"incident_db" yaml:"incident_db"`
	} `json:"db_configs" yaml:"db_configs"`

	ExportPath string `json:"export_path" yaml:"export_path"`

	ReportExports struct {
		// Retention is a duration string ("720h"); empty keeps every file.
		Retention   string             `json:"retention" yaml:"retention"`
		ExportTasks []ReportExportTask `json:"export_tasks" yaml:"export_tasks"`
	} `json:"report_exports" yaml:"report_exports"`
}

var conf config

var (
	incidentDBService *incidentDB.IncidentDBService
	exportRetention   time.Duration
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	if conf.ReportExports.Retention != "" {
		exportRetention, err = utils.ParseDurationString(conf.ReportExports.Retention)
		if err != nil {
			slog.Error("Error reading config", slog.String("error", err.Error()))
			panic(err)
		}
	}

	// init db, credentials can be overridden from the environment
	initDBs()

	if conf.ExportPath == "" {
		err := fmt.Errorf("export path must be set to define where to store the export files")
		slog.Error("Error reading config", slog.String("error", err.Error()))
		panic(err)
	}

	if _, err := os.Stat(conf.ExportPath); os.IsNotExist(err) {
		// create folder
		err = os.MkdirAll(conf.ExportPath, os.ModePerm)
		if err != nil {
			slog.Error("Error creating export path", slog.String("error", err.Error()))
			panic(err)
		}
		slog.Info("Created export path", slog.String("path", conf.ExportPath))
	}
}

func initDBs() {
	var err error
	incidentDBService, err = incidentDB.NewIncidentDBService(db.DBConfigFromYamlObj(
		conf.DBConfigs.IncidentDB,
		ENV_INCIDENT_DB_USERNAME,
		ENV_INCIDENT_DB_PASSWORD,
	))
	if err != nil {
		slog.Error("Error connecting to Incident DB", slog.String("error", err.Error()))
		panic(err)
	}
}
