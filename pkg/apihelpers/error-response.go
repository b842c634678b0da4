package apihelpers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/circlekay00/theft-app/pkg/incident"
)

// ErrorResponse maps the typed errors of the report core onto HTTP statuses:
// validation 400, authorization 401, unknown resource 404, everything else a
// generic 500 with the detail kept in the log only.
func ErrorResponse(c *gin.Context, op string, err error) {
	var vErr *incident.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "invalid": vErr.Fields})
		return
	}

	var aErr *incident.AuthorizationError
	if errors.As(err, &aErr) {
		slog.Warn("unauthorised access attempted", slog.String("op", op), slog.String("error", aErr.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": aErr.Error()})
		return
	}

	var nfErr *incident.NotFoundError
	if errors.As(err, &nfErr) {
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
		return
	}

	slog.Error("unexpected error", slog.String("op", op), slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
}
