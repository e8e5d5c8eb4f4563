package post

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hyolog/core/internal/middleware"
	"github.com/hyolog/core/internal/pkg/pagination"
	"github.com/hyolog/core/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublic mounts the anonymous post routes.
func (h *Handler) RegisterPublic(r *gin.RouterGroup) {
	posts := r.Group("/posts")
	{
		posts.GET("", h.List)
		posts.GET("/recent", h.Recent)
		posts.GET("/:slug", h.GetBySlug)
		posts.POST("/:slug/views", h.IncrementViews)
		posts.POST("/:slug/like", h.Like)
	}
}

// RegisterAdmin mounts the authenticated post routes.
func (h *Handler) RegisterAdmin(r *gin.RouterGroup) {
	admin := r.Group("/admin/posts")
	{
		admin.GET("", h.AdminList)
		admin.GET("/:id", h.GetByID)
	}
	posts := r.Group("/posts")
	{
		posts.POST("", h.Create)
		posts.PUT("/:id", h.Update)
		posts.PATCH("/:id", h.Update)
		posts.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	posts, p, err := h.service.List(pagination.FromContext(c), ListFilter{
		Search:       query.Search,
		CategorySlug: query.Category,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paged(c, toResponses(posts), p)
}

func (h *Handler) AdminList(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	posts, p, err := h.service.List(pagination.FromContext(c), ListFilter{
		Search:       query.Search,
		CategorySlug: query.Category,
		Status:       query.Status,
		AuthorID:     user.ID,
		AdminScope:   true,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paged(c, toResponses(posts), p)
}

func (h *Handler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	posts, err := h.service.Recent(limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toResponses(posts))
}

func (h *Handler) GetBySlug(c *gin.Context) {
	post, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, toResponse(post))
}

func (h *Handler) GetByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	post, err := h.service.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if post.AuthorID != user.ID {
		response.NotFoundMsg(c, "post not found")
		return
	}
	response.OK(c, toResponse(post))
}

func (h *Handler) IncrementViews(c *gin.Context) {
	count, err := h.service.IncrementViewCount(c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"view_count": count})
}

func (h *Handler) Like(c *gin.Context) {
	count, err := h.service.IncrementLikeCount(c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, gin.H{"like_count": count})
}

func (h *Handler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, warning, err := h.service.Create(user, &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, createResult(post, warning))
}

func (h *Handler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, warning, err := h.service.Update(user.ID, c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, createResult(post, warning))
}

func (h *Handler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	if err := h.service.Delete(user.ID, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
