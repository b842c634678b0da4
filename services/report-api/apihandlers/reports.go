package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/circlekay00/theft-app/pkg/apihelpers"
	mw "github.com/circlekay00/theft-app/pkg/apihelpers/middlewares"
	"github.com/circlekay00/theft-app/pkg/incident"
	jwthandling "github.com/circlekay00/theft-app/pkg/jwt-handling"
)

func (h *HttpEndpoints) AddReportsAPI(rg *gin.RouterGroup) {
	reportsGroup := rg.Group("/reports")
	reportsGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	{
		reportsGroup.GET("/form-schema", h.getFormSchema)
		reportsGroup.POST("", mw.RequirePayload(), h.submitReport)
		reportsGroup.GET("", h.getMyReports)
		reportsGroup.GET("/:reportID", h.getReport)
	}
}

// getFormSchema returns everything the submit form needs in one response:
// categories with their subcategories, the offender tags and the custom field
// definitions.
func (h *HttpEndpoints) getFormSchema(c *gin.Context) {
	schema, err := h.incidentService.GetFormSchema()
	if err != nil {
		apihelpers.ErrorResponse(c, "getFormSchema", err)
		return
	}
	c.JSON(http.StatusOK, schema)
}

func (h *HttpEndpoints) submitReport(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	var req incident.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("submitReport: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	report, err := h.incidentService.Submit(token.ToActorContext(), req)
	if err != nil {
		apihelpers.ErrorResponse(c, "submitReport", err)
		return
	}

	slog.Info("submitReport: report submitted", slog.String("userID", token.Subject), slog.String("reportID", report.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// getMyReports lists the reports the caller is allowed to see, which for
// regular employees means their own submissions.
func (h *HttpEndpoints) getMyReports(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	query, err := apihelpers.ParseReportQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	reports, total, err := h.incidentService.ListReports(token.ToActorContext(), query.Filter, query.Page, query.PageSize)
	if err != nil {
		apihelpers.ErrorResponse(c, "getMyReports", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   total,
	})
}

func (h *HttpEndpoints) getReport(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	reportID := c.Param("reportID")

	report, err := h.incidentService.GetReport(token.ToActorContext(), reportID)
	if err != nil {
		apihelpers.ErrorResponse(c, "getReport", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
