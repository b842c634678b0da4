package apihandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	userDB "github.com/circlekay00/theft-app/pkg/db/user"
	"github.com/circlekay00/theft-app/pkg/incident"
)

func HealthCheckHandle(c *gin.Context) {
	serviceInfos := make(map[string]interface{})
	infos, err := os.ReadFile("serviceInfos.json")
	if err != nil {
		slog.Debug("Error reading serviceInfos.json", slog.String("error", err.Error()))
	} else {
		err = json.Unmarshal(infos, &serviceInfos)
		if err != nil {
			slog.Debug("Error unmarshalling serviceInfos.json", slog.String("error", err.Error()))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"serviceInfos": serviceInfos,
	})
}

type HttpEndpoints struct {
	incidentService *incident.Service
	userDBConn      *userDB.UserDBService
	tokenSignKey    string
}

func NewHTTPHandler(
	tokenSignKey string,
	incidentService *incident.Service,
	userDBConn *userDB.UserDBService,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:    tokenSignKey,
		incidentService: incidentService,
		userDBConn:      userDBConn,
	}
}
