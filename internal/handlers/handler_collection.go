package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/middleware"
)

// collectionHandler handles HTTP requests for weekly collection sheets.
type collectionHandler struct {
	collectionService portssvc.CollectionSvcFacade
}

// newCollectionHandler creates a new collectionHandler.
func newCollectionHandler(cs portssvc.CollectionSvcFacade) *collectionHandler {
	return &collectionHandler{
		collectionService: cs,
	}
}

// registerCollectionRoutes registers all collection sheet routes.
func registerCollectionRoutes(rg *gin.RouterGroup, cs portssvc.CollectionSvcFacade) {
	h := newCollectionHandler(cs)

	collections := rg.Group("/collections")
	{
		collections.POST("", h.processCollection)
		collections.GET("/:sheetID", h.getSheet)
		collections.POST("/:sheetID/verify", h.verifySheet)
	}
}

// processCollection godoc
// @Summary Process a collection batch
// @Description Applies one center sitting's payments as a single atomic batch.
// @Description Any failing member entry aborts the whole batch.
// @Tags collections
// @Accept json
// @Produce json
// @Param collection body dto.ProcessCollectionRequest true "Collection sheet"
// @Success 201 {object} dto.CollectionResultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Center, member, or loan not found"
// @Failure 409 {object} ErrorResponse "Sheet already exists for this center and date"
// @Security BearerAuth
// @Router /collections [post]
func (h *collectionHandler) processCollection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProcessCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	collectorID, ok := actorID(c)
	if !ok {
		return
	}

	result, err := h.collectionService.ProcessCollection(c.Request.Context(), collectorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Collection batch processed",
		slog.String("sheet_id", result.CollectionSheetID),
		slog.String("center_id", req.CenterID),
		slog.Int("present_members", result.PresentMembers))
	c.JSON(http.StatusCreated, result)
}

// getSheet godoc
// @Summary Get a collection sheet
// @Description Retrieves a collection sheet with its member entries
// @Tags collections
// @Produce json
// @Param sheetID path string true "Sheet ID"
// @Success 200 {object} dto.CollectionSheetResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /collections/{sheetID} [get]
func (h *collectionHandler) getSheet(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	sheet, err := h.collectionService.GetSheet(c.Request.Context(), requesterID, c.Param("sheetID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCollectionSheetResponse(sheet))
}

// verifySheet godoc
// @Summary Verify a collection sheet
// @Description Flips a draft sheet to verified; verified sheets are immutable
// @Tags collections
// @Produce json
// @Param sheetID path string true "Sheet ID"
// @Success 200 {object} dto.CollectionSheetResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Sheet already verified"
// @Security BearerAuth
// @Router /collections/{sheetID}/verify [post]
func (h *collectionHandler) verifySheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	verifierID, ok := actorID(c)
	if !ok {
		return
	}

	sheetID := c.Param("sheetID")
	sheet, err := h.collectionService.VerifySheet(c.Request.Context(), verifierID, sheetID)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Collection sheet verified", slog.String("sheet_id", sheetID))
	c.JSON(http.StatusOK, dto.ToCollectionSheetResponse(sheet))
}
