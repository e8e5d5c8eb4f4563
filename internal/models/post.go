package models

import "time"

// Post status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ValidStatus reports whether s is a known post status.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// PostModel is a blog post. Slug is unique and immutable once assigned.
// PublishedAt is non-nil iff the post has ever been published and is
// refreshed each time the status transitions into published.
type PostModel struct {
	Base
	Title            string      `json:"title"              gorm:"not null"`
	Content          string      `json:"content"            gorm:"type:longtext"`
	Excerpt          string      `json:"excerpt"`
	Slug             string      `json:"slug"               gorm:"uniqueIndex;not null"`
	Status           string      `json:"status"             gorm:"default:draft;index"`
	AuthorID         string      `json:"author_id"          gorm:"index"`
	AuthorName       string      `json:"author_name"`
	FeaturedImageURL string      `json:"featured_image_url"`
	Tags             StringArray `json:"tags"               gorm:"type:json"`
	ViewCount        int         `json:"view_count"         gorm:"default:0"`
	LikeCount        int         `json:"like_count"         gorm:"default:0"`
	ReadingTime      int         `json:"reading_time"       gorm:"default:0"`
	MetaDescription  string      `json:"meta_description"`
	PublishedAt      *time.Time  `json:"published_at"`

	// Raw join rows; resolved into Categories by the category resolver.
	Relations  []PostCategoryModel `json:"-"          gorm:"foreignKey:PostID"`
	Categories []CategoryModel     `json:"categories" gorm:"-"`
}

func (PostModel) TableName() string { return "posts" }

// IsPublished reports whether the post is publicly visible.
func (p PostModel) IsPublished() bool { return p.Status == StatusPublished }
