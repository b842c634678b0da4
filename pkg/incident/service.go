package incident

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

// IncidentStore is the slice of the document store the report core consumes.
// Implemented by *incidentdb.IncidentDBService; tests use an in-memory fake.
type IncidentStore interface {
	GetCategories() ([]incidentTypes.Category, error)
	GetCategoryByID(categoryID string) (incidentTypes.Category, error)
	GetCategoryByName(name string) (incidentTypes.Category, error)
	CreateCategory(category *incidentTypes.Category) error
	RenameCategory(categoryID string, newName string) error
	AddSubcategory(categoryID string, name string) (added bool, err error)
	RemoveSubcategory(categoryID string, name string) error
	DeleteCategory(categoryID string) error

	GetOffenders() ([]incidentTypes.Offender, error)
	GetOffenderByName(name string) (incidentTypes.Offender, error)
	CreateOffender(offender *incidentTypes.Offender) error
	RenameOffender(offenderID string, newName string) error
	DeleteOffender(offenderID string) error

	GetFieldDefinitions() ([]incidentTypes.FieldDefinition, error)
	GetFieldDefinitionByID(fieldID string) (incidentTypes.FieldDefinition, error)
	GetFieldDefinitionByName(name string) (incidentTypes.FieldDefinition, error)
	CreateFieldDefinition(field *incidentTypes.FieldDefinition) error
	UpdateFieldDefinition(fieldID string, update incidentTypes.FieldDefinition) error
	DeleteFieldDefinition(fieldID string) error

	CreateReport(report *incidentTypes.Report) error
	GetReportByID(reportID string) (incidentTypes.Report, error)
	GetReports(scope bson.M) ([]incidentTypes.Report, error)
	UpdateReport(reportID string, set bson.M) error
	DeleteReport(reportID string) error
}

// Notifier is called after a report has been persisted. Implementations must
// not block the submit path; failures are their own concern.
type Notifier interface {
	ReportSubmitted(ctx context.Context, report incidentTypes.Report, categoryName string)
}

// Service implements the report lifecycle and the taxonomy, field schema and
// offender registries on top of the document store.
type Service struct {
	store    IncidentStore
	notifier Notifier
}

func NewService(store IncidentStore, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
	}
}
