package category

import (
	"errors"

	"github.com/hyolog/core/internal/models"
	"github.com/hyolog/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns all categories ordered by name.
func (s *Service) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	return cats, s.db.Order("name ASC").Find(&cats).Error
}

// GetBySlug fetches a single category.
func (s *Service) GetBySlug(slug string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.Where("slug = ?", slug).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// CategoryWithCount pairs a category with its published post count.
type CategoryWithCount struct {
	models.CategoryModel
	PostCount int64 `json:"post_count"`
}

// ListWithPostCounts returns all categories with the number of posts
// attached to each.
func (s *Service) ListWithPostCounts() ([]CategoryWithCount, error) {
	cats, err := s.List()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		CategoryID string
		Count      int64
	}
	if err := s.db.Model(&models.PostCategoryModel{}).
		Select("category_id, COUNT(*) as count").
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}

	out := make([]CategoryWithCount, 0, len(cats))
	for _, cat := range cats {
		out = append(out, CategoryWithCount{CategoryModel: cat, PostCount: counts[cat.ID]})
	}
	return out, nil
}
