package incident

import (
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/circlekay00/theft-app/pkg/policy"
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

// ListCategories returns all categories ordered by name. Readable by every
// authenticated role: submitters need it to render the report form.
func (s *Service) ListCategories() ([]incidentTypes.Category, error) {
	categories, err := s.store.GetCategories()
	if err != nil {
		return nil, &StoreError{Op: "list categories", Err: err}
	}
	if categories == nil {
		categories = []incidentTypes.Category{}
	}
	return categories, nil
}

func (s *Service) CreateCategory(actor userTypes.ActorContext, name string, initialSubcategories []string) (incidentTypes.Category, error) {
	var category incidentTypes.Category
	if !policy.CanManageTaxonomy(actor) {
		return category, &AuthorizationError{Reason: "managing categories requires an admin role"}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return category, &ValidationError{Fields: []string{"name"}}
	}
	if _, err := s.store.GetCategoryByName(name); err == nil {
		return category, &ValidationError{Fields: []string{"name"}}
	} else if err != mongo.ErrNoDocuments {
		return category, &StoreError{Op: "check category name", Err: err}
	}

	subcategories := []string{}
	for _, sub := range initialSubcategories {
		sub = strings.TrimSpace(sub)
		if sub == "" {
			continue
		}
		duplicate := false
		for _, existing := range subcategories {
			if existing == sub {
				duplicate = true
				break
			}
		}
		if !duplicate {
			subcategories = append(subcategories, sub)
		}
	}

	category = incidentTypes.Category{
		Name:          name,
		Subcategories: subcategories,
	}
	if err := s.store.CreateCategory(&category); err != nil {
		if isDuplicateKeyErr(err) {
			return category, &ValidationError{Fields: []string{"name"}}
		}
		return category, &StoreError{Op: "create category", Err: err}
	}
	return category, nil
}

func (s *Service) RenameCategory(actor userTypes.ActorContext, categoryID string, newName string) error {
	if !policy.CanManageTaxonomy(actor) {
		return &AuthorizationError{Reason: "managing categories requires an admin role"}
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &ValidationError{Fields: []string{"name"}}
	}

	if err := s.store.RenameCategory(categoryID, newName); err != nil {
		if isDuplicateKeyErr(err) {
			return &ValidationError{Fields: []string{"name"}}
		}
		return wrapStoreErr("rename category", "category", categoryID, err)
	}
	return nil
}

// AddSubcategory appends the subcategory if not already present (exact,
// case-sensitive match). A duplicate is signalled through added=false, it is
// not an error.
func (s *Service) AddSubcategory(actor userTypes.ActorContext, categoryID string, name string) (added bool, err error) {
	if !policy.CanManageTaxonomy(actor) {
		return false, &AuthorizationError{Reason: "managing categories requires an admin role"}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return false, &ValidationError{Fields: []string{"subcategory"}}
	}

	added, err = s.store.AddSubcategory(categoryID, name)
	if err != nil {
		return false, wrapStoreErr("add subcategory", "category", categoryID, err)
	}
	return added, nil
}

func (s *Service) RemoveSubcategory(actor userTypes.ActorContext, categoryID string, name string) error {
	if !policy.CanManageTaxonomy(actor) {
		return &AuthorizationError{Reason: "managing categories requires an admin role"}
	}

	if err := s.store.RemoveSubcategory(categoryID, name); err != nil {
		return wrapStoreErr("remove subcategory", "category", categoryID, err)
	}
	return nil
}

// DeleteCategory does not cascade to reports referencing it: their categoryId
// goes orphaned and resolves to the fallback name at display time.
func (s *Service) DeleteCategory(actor userTypes.ActorContext, categoryID string) error {
	if !policy.CanManageTaxonomy(actor) {
		return &AuthorizationError{Reason: "managing categories requires an admin role"}
	}

	if err := s.store.DeleteCategory(categoryID); err != nil {
		return wrapStoreErr("delete category", "category", categoryID, err)
	}
	return nil
}
