package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workboard-api/internal/dto"
	apierrors "github.com/yukikurage/workboard-api/internal/errors"
	"github.com/yukikurage/workboard-api/internal/logging"
	"github.com/yukikurage/workboard-api/internal/middleware"
	"github.com/yukikurage/workboard-api/internal/services"
)

// SessionHandler serves the user directory and the choice of acting user.
// There are no credentials; the acting user only attributes logged work.
type SessionHandler struct {
	users *services.TaskService
}

func NewSessionHandler(users *services.TaskService) *SessionHandler {
	return &SessionHandler{
		users: users,
	}
}

// SetUserRequest is the body of PUT /api/session/user
type SetUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// ListUsers returns everyone tasks can be assigned to
func (h *SessionHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers()
	if err != nil {
		respondError(c, err, "fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// GetCurrentUser returns the acting user
func (h *SessionHandler) GetCurrentUser(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		apierrors.InternalError(c, "User not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(user))
}

// SetCurrentUser switches the acting user for this session
func (h *SessionHandler) SetCurrentUser(c *gin.Context) {
	var req SetUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.users.GetUser(req.UserID)
	if err != nil {
		respondError(c, err, "fetch user")
		return
	}

	if err := middleware.SetSessionUser(c, user.ID); err != nil {
		logging.Logger.WithError(err).Error("failed to save session")
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
