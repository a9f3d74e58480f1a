package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
)

// reportingHandler handles HTTP requests for risk reports and the audit trail.
type reportingHandler struct {
	riskService  portssvc.RiskSvcFacade
	auditService portssvc.AuditSvcFacade
}

// registerReportingRoutes registers the reporting and audit routes.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.RiskSvcFacade, as portssvc.AuditSvcFacade) {
	h := &reportingHandler{riskService: rs, auditService: as}

	reports := rg.Group("/reports")
	{
		reports.GET("/par", h.portfolioAtRisk)
	}
	rg.GET("/audit-logs", h.listAuditEntries)
}

// parQueryParams binds the optional as-of date for a PAR snapshot.
type parQueryParams struct {
	AsOf string `form:"asOf"`
}

// portfolioAtRisk godoc
// @Summary Portfolio-at-risk report
// @Description Computes a point-in-time PAR snapshot with 1-30, 31-60, 61-90 and 90+ day aging buckets
// @Tags reports
// @Produce json
// @Param asOf query string false "Snapshot date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.PARReportResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/par [get]
func (h *reportingHandler) portfolioAtRisk(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	var params parQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	var asOf time.Time
	if params.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", params.AsOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	report, err := h.riskService.PortfolioAtRisk(c.Request.Context(), requesterID, asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPARReportResponse(report))
}

// listAuditEntries godoc
// @Summary List audit trail entries
// @Description Pages the append-only audit trail, newest first (admin only)
// @Tags audit
// @Produce json
// @Param limit query int false "Limit number of results" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AuditEntryResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *reportingHandler) listAuditEntries(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.auditService.ListAuditEntries(c.Request.Context(), requesterID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditEntryResponses(entries))
}
