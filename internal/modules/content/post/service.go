package post

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyolog/core/internal/models"
	"github.com/hyolog/core/internal/modules/content/category"
	"github.com/hyolog/core/internal/pkg/apperr"
	"github.com/hyolog/core/internal/pkg/pagination"
	"github.com/hyolog/core/internal/pkg/response"
	"github.com/hyolog/core/internal/pkg/textutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const excerptMaxLength = 150

// Service handles post business logic.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListFilter narrows a post listing. An empty Status means published-only
// (the public scope); "all" lifts the status restriction. AdminScope widens
// search to content/excerpt, restricts to the caller's posts and orders by
// last update instead of publication time.
type ListFilter struct {
	Search       string
	CategorySlug string
	Status       string
	AuthorID     string
	AdminScope   bool
}

// List returns a paginated, filtered list of posts. Category and search
// filters are pushed into the query itself, so the total count and the page
// window always see the same filtered set.
func (s *Service) List(q pagination.Query, f ListFilter) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).Preload("Relations.Category")

	switch {
	case f.Status == "" || f.Status == models.StatusPublished:
		tx = tx.Where("status = ?", models.StatusPublished)
	case f.Status == "all":
		// no status restriction
	default:
		tx = tx.Where("status = ?", f.Status)
	}

	if f.AuthorID != "" {
		tx = tx.Where("author_id = ?", f.AuthorID)
	}

	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		if f.AdminScope {
			tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?", like, like, like)
		} else {
			tx = tx.Where("LOWER(title) LIKE ?", like)
		}
	}

	if f.CategorySlug != "" {
		sub := s.db.Model(&models.PostCategoryModel{}).
			Select("post_categories.post_id").
			Joins("JOIN categories ON categories.id = post_categories.category_id").
			Where("categories.slug = ?", f.CategorySlug)
		tx = tx.Where("id IN (?)", sub)
	}

	if f.AdminScope {
		tx = tx.Order("updated_at DESC")
	} else {
		tx = tx.Order("published_at DESC")
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	for i := range posts {
		s.decorate(&posts[i])
	}
	return posts, pag, nil
}

// Recent returns the latest published posts.
func (s *Service) Recent(limit int) ([]models.PostModel, error) {
	if limit <= 0 {
		limit = 5
	}
	var posts []models.PostModel
	if err := s.db.Preload("Relations.Category").
		Where("status = ?", models.StatusPublished).
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	for i := range posts {
		s.decorate(&posts[i])
	}
	return posts, nil
}

// GetBySlug fetches a single published post and counts the read. The view
// increment is atomic in the store and must never fail the read itself.
func (s *Service) GetBySlug(slug string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.Preload("Relations.Category").
		Where("slug = ? AND status = ?", slug, models.StatusPublished).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&models.PostModel{}).Where("id = ?", post.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		s.logger.Warn("view count increment failed",
			zap.String("post_id", post.ID), zap.Error(err))
	} else {
		post.ViewCount++
	}

	s.decorate(&post)
	return &post, nil
}

// GetByID fetches a single post for editing: no status restriction and no
// view-count side effect.
func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.Preload("Relations.Category").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	s.decorate(&post)
	return &post, nil
}

// TitleBySlug resolves a published post title, used to label analytics
// entries for /posts/{slug} paths.
func (s *Service) TitleBySlug(slug string) (string, error) {
	var post models.PostModel
	if err := s.db.Select("title").
		Where("slug = ? AND status = ?", slug, models.StatusPublished).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.ErrNotFound
		}
		return "", err
	}
	return post.Title, nil
}

// Create inserts a new post owned by author. Category link failures do not
// roll back the post; they are reported through the returned Warning so the
// caller can reconcile later. A partially-tagged post is recoverable, a
// lost post is not.
func (s *Service) Create(author *models.UserModel, dto *CreatePostDTO) (*models.PostModel, *Warning, error) {
	title := strings.TrimSpace(dto.Title)
	content := strings.TrimSpace(dto.Content)
	if title == "" || content == "" {
		return nil, nil, fmt.Errorf("%w: title and content are required", apperr.ErrValidation)
	}

	status := dto.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		return nil, nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, status)
	}

	slug, err := s.uniqueSlug(textutil.GenerateSlug(title))
	if err != nil {
		return nil, nil, err
	}

	post := models.PostModel{
		Title:            title,
		Content:          dto.Content,
		Excerpt:          strings.TrimSpace(dto.Excerpt),
		Slug:             slug,
		Status:           status,
		AuthorID:         author.ID,
		AuthorName:       author.DisplayName,
		FeaturedImageURL: dto.FeaturedImageURL,
		Tags:             models.StringArray(dto.Tags),
		ReadingTime:      textutil.CalculateReadingTime(dto.Content),
		MetaDescription:  dto.MetaDescription,
	}
	if status == models.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, nil, err
	}

	warning := s.linkCategories(post.ID, dto.CategoryIDs)

	created, err := s.GetByID(post.ID)
	if err != nil {
		return &post, warning, nil
	}
	return created, warning, nil
}

// Update mutates a post scoped to its owner. A foreign post is a NotFound,
// never a distinguishable Forbidden. Transitioning into published always
// refreshes published_at (re-publishing is a new publish event); moving to
// draft clears it.
func (s *Service) Update(authorID, postID string, dto *UpdatePostDTO) (*models.PostModel, *Warning, error) {
	var post models.PostModel
	if err := s.db.Where("id = ? AND author_id = ?", postID, authorID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.ErrNotFound
		}
		return nil, nil, err
	}

	updates := map[string]interface{}{}

	if dto.Title != nil {
		title := strings.TrimSpace(*dto.Title)
		if title == "" {
			return nil, nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
		}
		updates["title"] = title
	}
	if dto.Content != nil {
		if strings.TrimSpace(*dto.Content) == "" {
			return nil, nil, fmt.Errorf("%w: content is required", apperr.ErrValidation)
		}
		updates["content"] = *dto.Content
		updates["reading_time"] = textutil.CalculateReadingTime(*dto.Content)
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = strings.TrimSpace(*dto.Excerpt)
	}
	if dto.FeaturedImageURL != nil {
		updates["featured_image_url"] = *dto.FeaturedImageURL
	}
	if dto.MetaDescription != nil {
		updates["meta_description"] = *dto.MetaDescription
	}
	if dto.Tags != nil {
		updates["tags"] = models.StringArray(dto.Tags)
	}
	if dto.Status != nil {
		status := *dto.Status
		if !models.ValidStatus(status) {
			return nil, nil, fmt.Errorf("%w: unknown status %q", apperr.ErrValidation, status)
		}
		updates["status"] = status
		switch status {
		case models.StatusPublished:
			updates["published_at"] = time.Now()
		case models.StatusDraft:
			updates["published_at"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&post).Updates(updates).Error; err != nil {
			return nil, nil, err
		}
	}

	var warning *Warning
	if dto.CategoryIDs != nil {
		if err := s.db.Where("post_id = ?", post.ID).
			Delete(&models.PostCategoryModel{}).Error; err != nil {
			warning = &Warning{
				Message:           "existing category links could not be replaced",
				FailedCategoryIDs: dto.CategoryIDs,
			}
			s.logger.Warn("category relation replacement failed",
				zap.String("post_id", post.ID), zap.Error(err))
		} else {
			warning = s.linkCategories(post.ID, dto.CategoryIDs)
		}
	}

	updated, err := s.GetByID(post.ID)
	if err != nil {
		return nil, warning, err
	}
	return updated, warning, nil
}

// Delete hard-deletes a post scoped to its owner. An ownership mismatch is
// reported exactly like a missing post.
func (s *Service) Delete(authorID, postID string) error {
	res := s.db.Where("id = ? AND author_id = ?", postID, authorID).Delete(&models.PostModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}

	if err := s.db.Where("post_id = ?", postID).Delete(&models.PostCategoryModel{}).Error; err != nil {
		s.logger.Warn("dangling category links after post delete",
			zap.String("post_id", postID), zap.Error(err))
	}
	return nil
}

// IncrementViewCount bumps the view counter of a published post atomically
// and returns the new value.
func (s *Service) IncrementViewCount(slug string) (int, error) {
	return s.incrementCounter(slug, "view_count")
}

// IncrementLikeCount bumps the like counter of a published post atomically
// and returns the new value.
func (s *Service) IncrementLikeCount(slug string) (int, error) {
	return s.incrementCounter(slug, "like_count")
}

func (s *Service) incrementCounter(slug, column string) (int, error) {
	var post models.PostModel
	if err := s.db.Select("id, view_count, like_count").
		Where("slug = ? AND status = ?", slug, models.StatusPublished).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.ErrNotFound
		}
		return 0, err
	}

	if err := s.db.Model(&models.PostModel{}).Where("id = ?", post.ID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error; err != nil {
		return 0, err
	}

	if column == "like_count" {
		return post.LikeCount + 1, nil
	}
	return post.ViewCount + 1, nil
}

// decorate resolves category join rows and fills the derived excerpt for a
// post loaded from the store.
func (s *Service) decorate(post *models.PostModel) {
	post.Categories = category.ResolveCategories(post.Relations)
	if strings.TrimSpace(post.Excerpt) == "" {
		post.Excerpt = textutil.GenerateExcerpt(post.Content, excerptMaxLength)
	}
}

// uniqueSlug appends a numeric suffix until the derived slug is free.
// Uniqueness lives here, not in the slug generator.
func (s *Service) uniqueSlug(base string) (string, error) {
	if base == "" {
		base = "untitled"
	}
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&models.PostModel{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// linkCategories inserts the requested relations one by one, collecting
// failures into a Warning instead of failing the operation.
func (s *Service) linkCategories(postID string, categoryIDs []string) *Warning {
	var failed []string
	for _, categoryID := range categoryIDs {
		id := strings.TrimSpace(categoryID)
		if id == "" {
			continue
		}
		rel := models.PostCategoryModel{PostID: postID, CategoryID: id}
		if err := s.db.Create(&rel).Error; err != nil {
			failed = append(failed, id)
			s.logger.Warn("category link insert failed",
				zap.String("post_id", postID), zap.String("category_id", id), zap.Error(err))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &Warning{
		Message:           "post saved, but some category links failed",
		FailedCategoryIDs: failed,
	}
}
