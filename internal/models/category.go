package models

// DefaultCategoryColor is substituted when a category has no color set.
const DefaultCategoryColor = "#6B7280"

// CategoryModel represents a post category.
type CategoryModel struct {
	Base
	Name  string `json:"name"  gorm:"uniqueIndex;not null"`
	Slug  string `json:"slug"  gorm:"uniqueIndex;not null"`
	Color string `json:"color"`
}

func (CategoryModel) TableName() string { return "categories" }

// PostCategoryModel is the posts/categories join row. A (post, category)
// pair appears at most once. Category may arrive nil or partial when the
// target was deleted after the relation was created.
type PostCategoryModel struct {
	PostID     string `json:"post_id"     gorm:"primaryKey;type:char(36)"`
	CategoryID string `json:"category_id" gorm:"primaryKey;type:char(36)"`

	Category *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (PostCategoryModel) TableName() string { return "post_categories" }
