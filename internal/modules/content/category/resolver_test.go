package category

import (
	"testing"

	"github.com/hyolog/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func rel(cat *models.CategoryModel) models.PostCategoryModel {
	r := models.PostCategoryModel{PostID: "p1", Category: cat}
	if cat != nil {
		r.CategoryID = cat.ID
	}
	return r
}

func TestResolveCategoriesDropsPartialRows(t *testing.T) {
	rels := []models.PostCategoryModel{
		rel(&models.CategoryModel{Base: models.Base{ID: "c1"}, Name: "Go", Slug: "go", Color: "#00ADD8"}),
		rel(nil),
		rel(&models.CategoryModel{Base: models.Base{ID: ""}, Name: "NoID", Slug: "no-id"}),
		rel(&models.CategoryModel{Base: models.Base{ID: "c2"}, Name: "", Slug: "no-name"}),
		rel(&models.CategoryModel{Base: models.Base{ID: "c3"}, Name: "NoSlug", Slug: ""}),
		rel(&models.CategoryModel{Base: models.Base{ID: "c4"}, Name: "Infra", Slug: "infra"}),
	}

	cats := ResolveCategories(rels)

	assert.Len(t, cats, 2)
	assert.Equal(t, "go", cats[0].Slug)
	assert.Equal(t, "infra", cats[1].Slug)
}

func TestResolveCategoriesDefaultColor(t *testing.T) {
	rels := []models.PostCategoryModel{
		rel(&models.CategoryModel{Base: models.Base{ID: "c1"}, Name: "Go", Slug: "go"}),
	}

	cats := ResolveCategories(rels)

	assert.Len(t, cats, 1)
	assert.Equal(t, models.DefaultCategoryColor, cats[0].Color)
}

func TestResolveCategoriesEmptyInput(t *testing.T) {
	assert.Empty(t, ResolveCategories(nil))
	assert.Empty(t, ResolveCategories([]models.PostCategoryModel{}))
}

func TestCategoryIDs(t *testing.T) {
	cats := []models.CategoryModel{
		{Base: models.Base{ID: "c1"}},
		{Base: models.Base{ID: "c2"}},
	}
	assert.Equal(t, []string{"c1", "c2"}, CategoryIDs(cats))
	assert.Equal(t, []string{}, CategoryIDs(nil))
}
