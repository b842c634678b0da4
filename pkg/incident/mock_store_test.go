package incident

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

// mockStore is an in-memory IncidentStore mimicking the document store
// semantics the service relies on (ErrNoDocuments, invalid hex ids,
// idempotent subcategory add).
type mockStore struct {
	categories []incidentTypes.Category
	offenders  []incidentTypes.Offender
	fields     []incidentTypes.FieldDefinition
	reports    []incidentTypes.Report
}

func (m *mockStore) GetCategories() ([]incidentTypes.Category, error) {
	out := append([]incidentTypes.Category{}, m.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockStore) GetCategoryByID(categoryID string) (incidentTypes.Category, error) {
	if _, err := primitive.ObjectIDFromHex(categoryID); err != nil {
		return incidentTypes.Category{}, err
	}
	for _, c := range m.categories {
		if c.ID.Hex() == categoryID {
			return c, nil
		}
	}
	return incidentTypes.Category{}, mongo.ErrNoDocuments
}

func (m *mockStore) GetCategoryByName(name string) (incidentTypes.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return incidentTypes.Category{}, mongo.ErrNoDocuments
}

func (m *mockStore) CreateCategory(category *incidentTypes.Category) error {
	category.ID = primitive.NewObjectID()
	m.categories = append(m.categories, *category)
	return nil
}

func (m *mockStore) RenameCategory(categoryID string, newName string) error {
	for i := range m.categories {
		if m.categories[i].ID.Hex() == categoryID {
			m.categories[i].Name = newName
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockStore) AddSubcategory(categoryID string, name string) (bool, error) {
	for i := range m.categories {
		if m.categories[i].ID.Hex() == categoryID {
			for _, s := range m.categories[i].Subcategories {
				if s == name {
					return false, nil
				}
			}
			m.categories[i].Subcategories = append(m.categories[i].Subcategories, name)
			return true, nil
		}
	}
	return false, mongo.ErrNoDocuments
}

func (m *mockStore) RemoveSubcategory(categoryID string, name string) error {
	for i := range m.categories {
		if m.categories[i].ID.Hex() == categoryID {
			kept := []string{}
			for _, s := range m.categories[i].Subcategories {
				if s != name {
					kept = append(kept, s)
				}
			}
			m.categories[i].Subcategories = kept
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockStore) DeleteCategory(categoryID string) error {
	for i := range m.categories {
		if m.categories[i].ID.Hex() == categoryID {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockStore) GetOffenders() ([]incidentTypes.Offender, error) {
	out := append([]incidentTypes.Offender{}, m.offenders...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockStore) GetOffenderByName(name string) (incidentTypes.Offender, error) {
	for _, o := range m.offenders {
		if o.Name == name {
			return o, nil
		}
	}
	return incidentTypes.Offender{}, mongo.ErrNoDocuments
}

func (m *mockStore) CreateOffender(offender *incidentTypes.Offender) error {
	offender.ID = primitive.NewObjectID()
	m.offenders = append(m.offenders, *offender)
	return nil
}

func (m *mockStore) RenameOffender(offenderID string, newName string) error {
	for i := range m.offenders {
		if m.offenders[i].ID.Hex() == offenderID {
			m.offenders[i].Name = newName
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockStore) DeleteOffender(offenderID string) error {
	for i := range m.offenders {
		if m.offenders[i].ID.Hex() == offenderID {
			m.offenders = append(m.offenders[:i], m.offenders[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockStore) GetFieldDefinitions() ([]incidentTypes.FieldDefinition, error) {
	out := append([]incidentTypes.FieldDefinition{}, m.fields...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockStore) GetFieldDefinitionByID(fieldID string) (incidentTypes.FieldDefinition, error) {
	for _, f := range m.fields {
		if f.ID.Hex() == fieldID {
			return f, nil
		}
	}
	return incidentTypes.FieldDefinition{}, mongo.ErrNoDocuments
}

func (m *mockStore) GetFieldDefinitionByName(name string) (incidentTypes.FieldDefinition, error) {
	for _, f := range m.fields {
		if f.Name == name {
			return f, nil
		}
	}
	return incidentTypes.FieldDefinition{}, mongo.ErrNoDocuments
}

func (m *mockStore) CreateFieldDefinition(field *incidentTypes.FieldDefinition) error {
	field.ID = primitive.NewObjectID()
	m.fields = append(m.fields, *field)
	return nil
}

func (m *mockStore) UpdateFieldDefinition(fieldID string, update incidentTypes.FieldDefinition) error {
	for i := range m.fields {
		if m.fields[i].ID.Hex() == fieldID {
			m.fields[i].Name = update.Name
			m.fields[i].Type = update.Type
			m.fields[i].Options = update.Options
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockStore) DeleteFieldDefinition(fieldID string) error {
	for i := range m.fields {
		if m.fields[i].ID.Hex() == fieldID {
			m.fields = append(m.fields[:i], m.fields[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockStore) CreateReport(report *incidentTypes.Report) error {
	report.ID = primitive.NewObjectID()
	m.reports = append(m.reports, *report)
	return nil
}

func (m *mockStore) GetReportByID(reportID string) (incidentTypes.Report, error) {
	if _, err := primitive.ObjectIDFromHex(reportID); err != nil {
		return incidentTypes.Report{}, err
	}
	for _, r := range m.reports {
		if r.ID.Hex() == reportID {
			return r, nil
		}
	}
	return incidentTypes.Report{}, mongo.ErrNoDocuments
}

func (m *mockStore) GetReports(scope bson.M) ([]incidentTypes.Report, error) {
	out := []incidentTypes.Report{}
	for _, r := range m.reports {
		if store, ok := scope["storeNumber"]; ok && r.StoreNumber != store.(string) {
			continue
		}
		if reporter, ok := scope["reporterId"]; ok && r.ReporterID != reporter.(string) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockStore) UpdateReport(reportID string, set bson.M) error {
	for i := range m.reports {
		if m.reports[i].ID.Hex() != reportID {
			continue
		}
		for key, value := range set {
			switch key {
			case "status":
				m.reports[i].Status = value.(string)
			case "adminComment":
				m.reports[i].AdminComment = value.(string)
			case "categoryId":
				m.reports[i].CategoryID = value.(string)
			case "subcategory":
				m.reports[i].Subcategory = value.(string)
			case "offender":
				m.reports[i].Offender = value.(string)
			case "fields":
				m.reports[i].Fields = value.(map[string]string)
			case "updatedAt":
				m.reports[i].UpdatedAt = value.(time.Time)
			}
		}
		return nil
	}
	return mongo.ErrNoDocuments
}

func (m *mockStore) DeleteReport(reportID string) error {
	for i := range m.reports {
		if m.reports[i].ID.Hex() == reportID {
			m.reports = append(m.reports[:i], m.reports[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}
