package category

import "github.com/hyolog/core/internal/models"

// ResolveCategories normalizes raw join rows into a clean category list.
// The join can legitimately return partial rows (a category deleted after
// the relation was created); dangling relations are silently dropped and a
// missing color falls back to the default. Worst case the result is empty,
// never an error.
func ResolveCategories(rels []models.PostCategoryModel) []models.CategoryModel {
	out := make([]models.CategoryModel, 0, len(rels))
	for _, rel := range rels {
		cat := rel.Category
		if cat == nil || cat.ID == "" || cat.Name == "" || cat.Slug == "" {
			continue
		}
		resolved := *cat
		if resolved.Color == "" {
			resolved.Color = models.DefaultCategoryColor
		}
		out = append(out, resolved)
	}
	return out
}

// CategoryIDs flattens resolved categories into their id list, used for
// form pre-population on the edit screen.
func CategoryIDs(cats []models.CategoryModel) []string {
	ids := make([]string, 0, len(cats))
	for _, cat := range cats {
		ids = append(ids, cat.ID)
	}
	return ids
}
