package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/middleware"
)

// centerHandler handles HTTP requests for community centers.
type centerHandler struct {
	centerService     portssvc.CenterSvcFacade
	memberService     portssvc.MemberSvcFacade
	collectionService portssvc.CollectionSvcFacade
}

// registerCenterRoutes registers all center routes, including the nested
// member roster and collection history reads.
func registerCenterRoutes(rg *gin.RouterGroup, cs portssvc.CenterSvcFacade, ms portssvc.MemberSvcFacade, cols portssvc.CollectionSvcFacade) {
	h := &centerHandler{centerService: cs, memberService: ms, collectionService: cols}

	centers := rg.Group("/centers")
	{
		centers.POST("", h.createCenter)
		centers.GET("", h.listCenters)
		centers.GET("/:centerID", h.getCenter)
		centers.GET("/:centerID/members", h.listCenterMembers)
		centers.GET("/:centerID/collections", h.listCenterCollections)
	}
}

// createCenter godoc
// @Summary Open a center
// @Description Creates a community center assigned to a field officer
// @Tags centers
// @Accept json
// @Produce json
// @Param center body dto.CreateCenterRequest true "Center details"
// @Success 201 {object} dto.CenterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /centers [post]
func (h *centerHandler) createCenter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := actorID(c)
	if !ok {
		return
	}

	center, err := h.centerService.CreateCenter(c.Request.Context(), creatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Center created", slog.String("center_id", center.CenterID))
	c.JSON(http.StatusCreated, dto.ToCenterResponse(center))
}

// getCenter godoc
// @Summary Get a center
// @Tags centers
// @Produce json
// @Param centerID path string true "Center ID"
// @Success 200 {object} dto.CenterResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /centers/{centerID} [get]
func (h *centerHandler) getCenter(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	center, err := h.centerService.GetCenter(c.Request.Context(), requesterID, c.Param("centerID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCenterResponse(center))
}

// listCenters godoc
// @Summary List centers
// @Tags centers
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.CenterResponse
// @Security BearerAuth
// @Router /centers [get]
func (h *centerHandler) listCenters(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	centers, err := h.centerService.ListCenters(c.Request.Context(), requesterID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCenterResponse(centers))
}

// listCenterMembers godoc
// @Summary List the members of a center
// @Tags centers
// @Produce json
// @Param centerID path string true "Center ID"
// @Success 200 {array} dto.MemberResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /centers/{centerID}/members [get]
func (h *centerHandler) listCenterMembers(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	members, err := h.memberService.ListMembersByCenter(c.Request.Context(), requesterID, c.Param("centerID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListMemberResponse(members))
}

// listCenterCollections godoc
// @Summary List the collection sheets of a center
// @Description Retrieves a center's collection sheets, newest first, without entries
// @Tags centers
// @Produce json
// @Param centerID path string true "Center ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.CollectionSheetResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /centers/{centerID}/collections [get]
func (h *centerHandler) listCenterCollections(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	sheets, err := h.collectionService.ListSheets(c.Request.Context(), requesterID, c.Param("centerID"), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListCollectionSheetResponse(sheets))
}

// memberHandler handles HTTP requests for borrower members.
type memberHandler struct {
	memberService portssvc.MemberSvcFacade
}

// registerMemberRoutes registers all member routes.
func registerMemberRoutes(rg *gin.RouterGroup, ms portssvc.MemberSvcFacade) {
	h := &memberHandler{memberService: ms}

	members := rg.Group("/members")
	{
		members.POST("", h.createMember)
		members.GET("/:memberID", h.getMember)
	}
}

// createMember godoc
// @Summary Enroll a member
// @Description Enrolls a borrower into an active center
// @Tags members
// @Accept json
// @Produce json
// @Param member body dto.CreateMemberRequest true "Member details"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Center not found"
// @Security BearerAuth
// @Router /members [post]
func (h *memberHandler) createMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := actorID(c)
	if !ok {
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), creatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Member enrolled", slog.String("member_id", member.MemberID), slog.String("center_id", member.CenterID))
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// getMember godoc
// @Summary Get a member
// @Tags members
// @Produce json
// @Param memberID path string true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /members/{memberID} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(c.Request.Context(), requesterID, c.Param("memberID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}
