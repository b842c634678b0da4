package incident

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/circlekay00/theft-app/pkg/policy"
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

// ListFields returns all custom field definitions ordered by name.
func (s *Service) ListFields() ([]incidentTypes.FieldDefinition, error) {
	fields, err := s.store.GetFieldDefinitions()
	if err != nil {
		return nil, &StoreError{Op: "list fields", Err: err}
	}
	if fields == nil {
		fields = []incidentTypes.FieldDefinition{}
	}
	return fields, nil
}

func (s *Service) CreateField(actor userTypes.ActorContext, field incidentTypes.FieldDefinition) (incidentTypes.FieldDefinition, error) {
	if !policy.CanManageTaxonomy(actor) {
		return field, &AuthorizationError{Reason: "managing fields requires an admin role"}
	}

	field.Name = strings.TrimSpace(field.Name)
	if field.Type == "" {
		field.Type = incidentTypes.FIELD_TYPE_TEXT
	}
	if err := s.validateFieldDefinition(field, ""); err != nil {
		return field, err
	}

	if err := s.store.CreateFieldDefinition(&field); err != nil {
		if isDuplicateKeyErr(err) {
			return field, &ValidationError{Fields: []string{"name"}}
		}
		return field, &StoreError{Op: "create field", Err: err}
	}
	return field, nil
}

// UpdateField replaces name, type and options of one definition. Values
// already stored in reports stay keyed by the old name: renaming detaches
// them, which is the documented behavior of name-keyed dynamic fields.
func (s *Service) UpdateField(actor userTypes.ActorContext, fieldID string, update incidentTypes.FieldDefinition) error {
	if !policy.CanManageTaxonomy(actor) {
		return &AuthorizationError{Reason: "managing fields requires an admin role"}
	}

	update.Name = strings.TrimSpace(update.Name)
	if err := s.validateFieldDefinition(update, fieldID); err != nil {
		return err
	}

	if err := s.store.UpdateFieldDefinition(fieldID, update); err != nil {
		if isDuplicateKeyErr(err) {
			return &ValidationError{Fields: []string{"name"}}
		}
		return wrapStoreErr("update field", "field", fieldID, err)
	}
	return nil
}

// DeleteField does not cascade: reports keep stale keys in their fields map
// as orphaned display-only data, never resurrected into new forms.
func (s *Service) DeleteField(actor userTypes.ActorContext, fieldID string) error {
	if !policy.CanManageTaxonomy(actor) {
		return &AuthorizationError{Reason: "managing fields requires an admin role"}
	}

	if err := s.store.DeleteFieldDefinition(fieldID); err != nil {
		return wrapStoreErr("delete field", "field", fieldID, err)
	}
	return nil
}

// validateFieldDefinition runs the structural checks of the definition type
// and adds the duplicate-name check against the store, collecting every
// invalid attribute into one ValidationError. excludeID skips the name check
// against the definition being updated itself.
func (s *Service) validateFieldDefinition(field incidentTypes.FieldDefinition, excludeID string) error {
	invalid := []string{}

	if err := field.Validate(); err != nil {
		var structErrs validator.ValidationErrors
		if errors.As(err, &structErrs) {
			for _, structErr := range structErrs {
				invalid = append(invalid, strings.ToLower(structErr.Field()))
			}
		} else {
			// the only non-struct errors of Validate are the select/options
			// coupling rules
			invalid = append(invalid, "options")
		}
	}

	if field.Name != "" {
		existing, err := s.store.GetFieldDefinitionByName(field.Name)
		if err == nil && existing.ID.Hex() != excludeID {
			invalid = append(invalid, "name")
		} else if err != nil && err != mongo.ErrNoDocuments {
			return &StoreError{Op: "check field name", Err: err}
		}
	}

	if len(invalid) > 0 {
		return &ValidationError{Fields: invalid}
	}
	return nil
}
