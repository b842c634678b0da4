package apihandlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/circlekay00/theft-app/pkg/apihelpers"
	mw "github.com/circlekay00/theft-app/pkg/apihelpers/middlewares"
	reportExporter "github.com/circlekay00/theft-app/pkg/exporter/reports"
	"github.com/circlekay00/theft-app/pkg/incident"
	jwthandling "github.com/circlekay00/theft-app/pkg/jwt-handling"
	"github.com/circlekay00/theft-app/pkg/utils"
)

func (h *HttpEndpoints) AddReportManagementAPI(rg *gin.RouterGroup) {
	reportsGroup := rg.Group("/reports")
	reportsGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	reportsGroup.Use(mw.RequireAdminUser())
	{
		reportsGroup.GET("", h.getReports)
		reportsGroup.GET("/stats", h.getReportStats)
		reportsGroup.GET("/export", h.exportReports)
		reportsGroup.GET("/:reportID", h.getReport)
		reportsGroup.PUT("/:reportID", mw.RequirePayload(), h.updateReport)
		reportsGroup.POST("/:reportID/toggle-status", h.toggleReportStatus)
		reportsGroup.DELETE("/:reportID", h.deleteReport)
	}
}

func (h *HttpEndpoints) getReports(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	query, err := apihelpers.ParseReportQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	reports, total, err := h.incidentService.ListReports(token.ToActorContext(), query.Filter, query.Page, query.PageSize)
	if err != nil {
		apihelpers.ErrorResponse(c, "getReports", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   total,
	})
}

func (h *HttpEndpoints) getReportStats(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	stats, err := h.incidentService.GetStats(token.ToActorContext())
	if err != nil {
		apihelpers.ErrorResponse(c, "getReportStats", err)
		return
	}

	c.JSON(http.StatusOK, stats)
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

func (h *HttpEndpoints) updateReport(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	reportID := c.Param("reportID")

	var patch incident.ReportPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		slog.Error("updateReport: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	report, err := h.incidentService.UpdateAdminFields(token.ToActorContext(), reportID, patch)
	if err != nil {
		apihelpers.ErrorResponse(c, "updateReport", err)
		return
	}

	slog.Info("updateReport: report updated", slog.String("userID", token.Subject), slog.String("reportID", reportID))
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (h *HttpEndpoints) toggleReportStatus(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	reportID := c.Param("reportID")

	report, err := h.incidentService.ToggleStatus(token.ToActorContext(), reportID)
	if err != nil {
		apihelpers.ErrorResponse(c, "toggleReportStatus", err)
		return
	}

	slog.Info("toggleReportStatus: status toggled", slog.String("userID", token.Subject), slog.String("reportID", reportID), slog.String("status", report.Status))
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (h *HttpEndpoints) deleteReport(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	reportID := c.Param("reportID")

	if err := h.incidentService.DeleteReport(token.ToActorContext(), reportID); err != nil {
		apihelpers.ErrorResponse(c, "deleteReport", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report deleted"})
}

// exportReports streams the reports visible to the caller, after applying the
// same filters as the listing, as a CSV or JSON download.
func (h *HttpEndpoints) exportReports(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	format := c.DefaultQuery("format", reportExporter.EXPORT_FORMAT_CSV)
	if !utils.ContainsString([]string{reportExporter.EXPORT_FORMAT_CSV, reportExporter.EXPORT_FORMAT_JSON}, format) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format"})
		return
	}

	query, err := apihelpers.ParseReportQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	// pageSize 0 disables pagination, exports cover the full filtered set
	reports, _, err := h.incidentService.ListReports(token.ToActorContext(), query.Filter, 0, 0)
	if err != nil {
		apihelpers.ErrorResponse(c, "exportReports", err)
		return
	}

	categories, err := h.incidentService.ListCategories()
	if err != nil {
		apihelpers.ErrorResponse(c, "exportReports", err)
		return
	}
	categoryNames := map[string]string{}
	for _, cat := range categories {
		categoryNames[cat.ID.Hex()] = cat.Name
	}

	filename := fmt.Sprintf("reports_%s.%s", time.Now().Format("2006-01-02"), format)
	contentType := "text/csv"
	if format == reportExporter.EXPORT_FORMAT_JSON {
		contentType = "application/json"
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", contentType)

	exporter, err := reportExporter.NewReportExporter(
		c.Writer,
		format,
		categoryNames,
		reportExporter.FieldColumnsFromReports(reports),
	)
	if err != nil {
		slog.Error("exportReports: error initialising exporter", slog.String("error", err.Error()))
		return
	}
	for _, report := range reports {
		if err := exporter.WriteReport(report); err != nil {
			slog.Error("exportReports: error writing report", slog.String("error", err.Error()))
			return
		}
	}
	if err := exporter.Finish(); err != nil {
		slog.Error("exportReports: error finishing export", slog.String("error", err.Error()))
		return
	}

	slog.Info("exportReports: export written", slog.String("userID", token.Subject), slog.Int("count", exporter.WrittenCount()))
}
