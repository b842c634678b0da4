package incident

import (
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

// FormSchema is everything a client needs to render the submission form (and
// the admin edit form): the taxonomy, the offender registry and the custom
// field definitions, each ordered by name.
type FormSchema struct {
	Categories []incidentTypes.Category        `json:"categories"`
	Offenders  []incidentTypes.Offender        `json:"offenders"`
	Fields     []incidentTypes.FieldDefinition `json:"fields"`
}

// GetFormSchema loads the three registries in one call.
func (s *Service) GetFormSchema() (FormSchema, error) {
	schema := FormSchema{}

	categories, err := s.ListCategories()
	if err != nil {
		return schema, err
	}
	offenders, err := s.ListOffenders()
	if err != nil {
		return schema, err
	}
	fields, err := s.ListFields()
	if err != nil {
		return schema, err
	}

	schema.Categories = categories
	schema.Offenders = offenders
	schema.Fields = fields
	return schema, nil
}
