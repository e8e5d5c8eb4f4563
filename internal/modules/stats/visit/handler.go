package visit

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

// Register mounts the visit ingestion route.
func (h *Handler) Register(r *gin.RouterGroup) {
	r.POST("/visits", h.Record)
}

type recordRequest struct {
	Pathname string `json:"pathname" binding:"required"`
	Referrer string `json:"referrer"`
}

func (h *Handler) Record(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	err := h.service.Record(RecordInput{
		IdentityKey: ClientIdentity(c),
		Pathname:    req.Pathname,
		Referrer:    req.Referrer,
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
