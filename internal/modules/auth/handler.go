package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hyolog/core/internal/middleware"
	"github.com/hyolog/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublic mounts the login route.
func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

// RegisterAuthed mounts routes that require a valid token.
func (h *Handler) RegisterAuthed(r *gin.RouterGroup) {
	r.GET("/auth/me", h.Me)
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	token, user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			response.Unauthorized(c)
			return
		}
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
		},
	})
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	response.OK(c, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
	})
}
