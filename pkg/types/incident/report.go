package incident

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	REPORT_STATUS_PENDING  = "Pending"
	REPORT_STATUS_COMPLETE = "Complete"
)

// Fallback used when a report references a category that has been deleted since.
const UNKNOWN_CATEGORY_NAME = "Unknown"

// Report is the central entity: one incident submitted by a store employee.
// Custom field values are keyed by FieldDefinition.name; keys whose definition
// has been deleted or renamed stay in the map as display-only data.
type Report struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CategoryID   string             `bson:"categoryId" json:"categoryId"`
	Subcategory  string             `bson:"subcategory" json:"subcategory"`
	Offender     string             `bson:"offender" json:"offender"`
	StoreNumber  string             `bson:"storeNumber" json:"storeNumber"`
	Fields       map[string]string  `bson:"fields" json:"fields"`
	Status       string             `bson:"status" json:"status"`
	AdminComment string             `bson:"adminComment" json:"adminComment"`
	ReporterID   string             `bson:"reporterId" json:"reporterId"`
	ReporterName string             `bson:"reporterName" json:"reporterName"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`

	// Resolved at read time by joining CategoryID against the categories
	// collection, never persisted.
	CategoryName string `bson:"-" json:"categoryName,omitempty"`
}

// SearchText returns the normalized textual projection of the report used for
// free-text matching: every scalar attribute plus every custom field value,
// lower-cased, in a deterministic order independent of map iteration.
func (r Report) SearchText() string {
	parts := []string{
		r.ID.Hex(),
		r.CategoryID,
		r.CategoryName,
		r.Subcategory,
		r.Offender,
		r.StoreNumber,
		r.Status,
		r.AdminComment,
		r.ReporterID,
		r.ReporterName,
	}

	for _, k := range r.SortedFieldKeys() {
		parts = append(parts, k, r.Fields[k])
	}

	return strings.ToLower(strings.Join(parts, "\n"))
}

// SortedFieldKeys returns the custom field names of this report in a stable
// alphabetical order.
func (r Report) SortedFieldKeys() []string {
	fieldKeys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		fieldKeys = append(fieldKeys, k)
	}
	sort.Strings(fieldKeys)
	return fieldKeys
}
