package post

import (
	"time"

	"github.com/hyolog/core/internal/models"
	"github.com/hyolog/core/internal/modules/content/category"
)

// CreatePostDTO is the request body for creating a post. Slug is always
// derived from the title server-side.
type CreatePostDTO struct {
	Title            string   `json:"title"   binding:"required"`
	Content          string   `json:"content" binding:"required"`
	Excerpt          string   `json:"excerpt"`
	Status           string   `json:"status"`
	Tags             []string `json:"tags"`
	CategoryIDs      []string `json:"category_ids"`
	FeaturedImageURL string   `json:"featured_image_url"`
	MetaDescription  string   `json:"meta_description"`
}

// UpdatePostDTO is the request body for updating a post. Nil fields are
// left unchanged; a non-nil CategoryIDs replaces the full relation set.
type UpdatePostDTO struct {
	Title            *string  `json:"title"`
	Content          *string  `json:"content"`
	Excerpt          *string  `json:"excerpt"`
	Status           *string  `json:"status"`
	Tags             []string `json:"tags"`
	CategoryIDs      []string `json:"category_ids"`
	FeaturedImageURL *string  `json:"featured_image_url"`
	MetaDescription  *string  `json:"meta_description"`
}

// ListQuery holds query params for listing posts.
type ListQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Status   string `form:"status"`
}

// Warning reports a partial failure: the primary entity was persisted but a
// non-critical side effect (category linkage) was incomplete. It rides along
// with a successful response instead of failing it.
type Warning struct {
	Message           string   `json:"message"`
	FailedCategoryIDs []string `json:"failed_category_ids"`
}

// postResponse is the API response shape for a post.
type postResponse struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Content          string                 `json:"content"`
	Excerpt          string                 `json:"excerpt"`
	Slug             string                 `json:"slug"`
	Status           string                 `json:"status"`
	AuthorID         string                 `json:"author_id"`
	AuthorName       string                 `json:"author_name"`
	FeaturedImageURL string                 `json:"featured_image_url"`
	Tags             []string               `json:"tags"`
	ViewCount        int                    `json:"view_count"`
	LikeCount        int                    `json:"like_count"`
	ReadingTime      int                    `json:"reading_time"`
	MetaDescription  string                 `json:"meta_description"`
	Categories       []models.CategoryModel `json:"categories"`
	CategoryIDs      []string               `json:"category_ids,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
	PublishedAt      *time.Time             `json:"published_at"`
	Warning          *Warning               `json:"warning,omitempty"`
}

func toResponse(p *models.PostModel) postResponse {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	cats := p.Categories
	if cats == nil {
		cats = []models.CategoryModel{}
	}
	return postResponse{
		ID:               p.ID,
		CategoryIDs:      category.CategoryIDs(cats),
		Title:            p.Title,
		Content:          p.Content,
		Excerpt:          p.Excerpt,
		Slug:             p.Slug,
		Status:           p.Status,
		AuthorID:         p.AuthorID,
		AuthorName:       p.AuthorName,
		FeaturedImageURL: p.FeaturedImageURL,
		Tags:             tags,
		ViewCount:        p.ViewCount,
		LikeCount:        p.LikeCount,
		ReadingTime:      p.ReadingTime,
		MetaDescription:  p.MetaDescription,
		Categories:       cats,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		PublishedAt:      p.PublishedAt,
	}
}

func toResponses(posts []models.PostModel) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toResponse(&posts[i]))
	}
	return out
}

func createResult(p *models.PostModel, w *Warning) postResponse {
	r := toResponse(p)
	r.Warning = w
	return r
}
