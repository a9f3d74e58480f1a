package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/middleware"
)

// userHandler handles HTTP requests related to staff accounts.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// listParams binds the shared limit/offset query pair.
type listParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// registerUserRoutes registers all staff account routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)           // Admin only
		users.GET("", h.listUsers)             // Admin only
		users.GET("/:userID", h.getUser)       // Own or admin
		users.DELETE("/:userID", h.deleteUser) // Admin only
	}
}

// createUser godoc
// @Summary Create a staff account
// @Description Creates a new staff user (admin action)
// @Tags users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Staff account details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := actorID(c)
	if !ok {
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), creatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Staff account created", slog.String("new_user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// getUser godoc
// @Summary Get a staff account
// @Description Retrieves one staff user; staff can always read their own account
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), requesterID, c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List staff accounts
// @Description Retrieves a page of staff users (admin only)
// @Tags users
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	var params listParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), requesterID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users))
}

// deleteUser godoc
// @Summary Deactivate a staff account
// @Description Soft-deletes a staff user (admin only). Admins cannot deactivate themselves.
// @Tags users
// @Produce json
// @Param userID path string true "User ID to deactivate"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Self-deactivation"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requesterID, ok := actorID(c)
	if !ok {
		return
	}

	targetID := c.Param("userID")
	if err := h.userService.DeactivateUser(c.Request.Context(), requesterID, targetID); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Staff account deactivated", slog.String("target_user_id", targetID))
	c.Status(http.StatusNoContent)
}
