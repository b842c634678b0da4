package incident

import (
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

// resolveCategoryNames joins categoryId against the taxonomy in one pass and
// writes the resolved name onto each report. Orphaned references degrade to
// the fallback name instead of failing.
func (s *Service) resolveCategoryNames(reports []incidentTypes.Report) error {
	if len(reports) == 0 {
		return nil
	}

	categories, err := s.store.GetCategories()
	if err != nil {
		return &StoreError{Op: "load categories", Err: err}
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID.Hex()] = c.Name
	}

	for i := range reports {
		reports[i].CategoryName = ResolveCategoryName(names, reports[i].CategoryID)
	}
	return nil
}

// lookupCategoryName resolves a single categoryId, with the same orphan
// fallback as the batch join.
func (s *Service) lookupCategoryName(categoryID string) string {
	if categoryID == "" {
		return incidentTypes.UNKNOWN_CATEGORY_NAME
	}
	category, err := s.store.GetCategoryByID(categoryID)
	if err != nil {
		return incidentTypes.UNKNOWN_CATEGORY_NAME
	}
	return category.Name
}

// ResolveCategoryName maps a categoryId onto its display name using a
// pre-built id to name map. Deleted categories resolve to the fallback.
func ResolveCategoryName(names map[string]string, categoryID string) string {
	if name, ok := names[categoryID]; ok && name != "" {
		return name
	}
	return incidentTypes.UNKNOWN_CATEGORY_NAME
}
