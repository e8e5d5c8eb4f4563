package aggregate

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hyolog/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the analytics routes.
func (h *Handler) Register(r *gin.RouterGroup) {
	analytics := r.Group("/analytics")
	{
		analytics.GET("/stats", h.Stats)
		analytics.GET("/popular-pages", h.PopularPages)
		analytics.GET("/trends", h.Trends)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	period := c.DefaultQuery("period", PeriodDaily)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "7"))

	rollup, err := h.service.Rollup(period, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	overall, err := h.service.Overall()
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{
		"overall": overall,
		"period":  period,
		"rollup":  rollup,
	})
}

func (h *Handler) PopularPages(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	pages, err := h.service.PopularPages(days, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, pages)
}

func (h *Handler) Trends(c *gin.Context) {
	currentDays, _ := strconv.Atoi(c.DefaultQuery("current_days", "7"))
	previousDays, _ := strconv.Atoi(c.DefaultQuery("previous_days", "7"))

	trend, err := h.service.TrendOverWindows(currentDays, previousDays)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, trend)
}
