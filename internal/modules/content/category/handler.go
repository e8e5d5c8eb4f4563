package category

import (
	"github.com/gin-gonic/gin"
	"github.com/hyolog/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the public category routes.
func (h *Handler) Register(r *gin.RouterGroup) {
	cats := r.Group("/categories")
	{
		cats.GET("", h.List)
		cats.GET("/:slug", h.GetBySlug)
	}
}

func (h *Handler) List(c *gin.Context) {
	cats, err := h.service.ListWithPostCounts()
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, cats)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	cat, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, cat)
}
