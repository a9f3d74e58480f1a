package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/middleware"
)

// loanHandler handles HTTP requests for loan origination, the approval
// workflow, and disbursement.
type loanHandler struct {
	loanService     portssvc.LoanSvcFacade
	approvalService portssvc.ApprovalSvcFacade
	scheduleService portssvc.ScheduleSvcFacade
}

// newLoanHandler creates a new loanHandler.
func newLoanHandler(ls portssvc.LoanSvcFacade, as portssvc.ApprovalSvcFacade, ss portssvc.ScheduleSvcFacade) *loanHandler {
	return &loanHandler{
		loanService:     ls,
		approvalService: as,
		scheduleService: ss,
	}
}

// RegisterLoanRoutes registers all loan-related routes.
func RegisterLoanRoutes(rg *gin.RouterGroup, ls portssvc.LoanSvcFacade, as portssvc.ApprovalSvcFacade, ss portssvc.ScheduleSvcFacade) {
	h := newLoanHandler(ls, as, ss)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:loanID", h.getLoan)
		loans.GET("/:loanID/approvals", h.getApprovalTrail)
		loans.POST("/:loanID/decision", h.decideLoan)
		loans.POST("/:loanID/disburse", h.disburseLoan)
		loans.GET("/:loanID/schedule", h.getSchedule)
	}
}

// createLoan godoc
// @Summary Originate a loan
// @Description Creates a draft loan application for a member
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.CreateLoanRequest true "Loan application"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Member or center not found"
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := actorID(c)
	if !ok {
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), creatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Loan originated", slog.String("loan_id", loan.LoanID), slog.String("member_id", loan.MemberID))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{loanID} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	loan, err := h.loanService.GetLoan(c.Request.Context(), requesterID, c.Param("loanID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List loans
// @Description Retrieves loans filtered by center and/or status, newest first
// @Tags loans
// @Produce json
// @Param centerID query string false "Filter by center"
// @Param status query string false "Filter by status"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.LoanResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), requesterID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans))
}

// getApprovalTrail godoc
// @Summary Get the approval trail of a loan
// @Description Retrieves the append-only approval record list, oldest first
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {array} dto.ApprovalRecordResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{loanID}/approvals [get]
func (h *loanHandler) getApprovalTrail(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	records, err := h.loanService.GetApprovalTrail(c.Request.Context(), requesterID, c.Param("loanID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApprovalRecordResponses(records))
}

// decideLoan godoc
// @Summary Apply an approval decision
// @Description Applies one workflow action (approve, reject, request_revision) to a loan.
// @Description A decision outside the actor's authority changes nothing and returns 403.
// @Tags loans
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param decision body dto.ApprovalDecisionRequest true "Decision"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Outside approval authority"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Loan already in a terminal state"
// @Security BearerAuth
// @Router /loans/{loanID}/decision [post]
func (h *loanHandler) decideLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	deciderID, ok := actorID(c)
	if !ok {
		return
	}

	loanID := c.Param("loanID")
	loan, err := h.approvalService.DecideLoan(c.Request.Context(), deciderID, loanID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Loan decision applied",
		slog.String("loan_id", loanID),
		slog.String("action", string(req.Action)),
		slog.String("new_status", string(loan.Status)))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// disburseLoan godoc
// @Summary Disburse an approved loan
// @Description Releases an approved loan and materializes its weekly repayment schedule
// @Tags loans
// @Accept json
// @Produce json
// @Param loanID path string true "Loan ID"
// @Param disburse body dto.DisburseLoanRequest true "Disbursement details"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Loan not in approved status"
// @Security BearerAuth
// @Router /loans/{loanID}/disburse [post]
func (h *loanHandler) disburseLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DisburseLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	disburserID, ok := actorID(c)
	if !ok {
		return
	}

	loanID := c.Param("loanID")
	loan, entries, err := h.scheduleService.DisburseLoan(c.Request.Context(), disburserID, loanID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Loan disbursed", slog.String("loan_id", loanID), slog.Int("installments", len(entries)))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// getSchedule godoc
// @Summary Get the repayment schedule of a loan
// @Description Retrieves the installment list ordered by week; unsettled past-due entries read as overdue
// @Tags loans
// @Produce json
// @Param loanID path string true "Loan ID"
// @Success 200 {array} dto.ScheduleEntryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /loans/{loanID}/schedule [get]
func (h *loanHandler) getSchedule(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	entries, err := h.scheduleService.GetSchedule(c.Request.Context(), requesterID, c.Param("loanID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToScheduleResponse(entries, time.Now().UTC()))
}
