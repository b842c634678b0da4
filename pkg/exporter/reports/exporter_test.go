package reports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

func sampleReports() []incidentTypes.Report {
	created := time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC)
	return []incidentTypes.Report{
		{
			ID:           primitive.NewObjectID(),
			CategoryID:   "cat-1",
			Subcategory:  "Shoplifting",
			Offender:     "Known Local",
			StoreNumber:  "12",
			Status:       incidentTypes.REPORT_STATUS_PENDING,
			ReporterID:   "uid-1",
			ReporterName: "Sam",
			CreatedAt:    created,
			Fields:       map[string]string{"Details": "caught on camera"},
		},
		{
			ID:           primitive.NewObjectID(),
			CategoryID:   "cat-gone",
			Subcategory:  "Break-in",
			StoreNumber:  "7",
			Status:       incidentTypes.REPORT_STATUS_COMPLETE,
			AdminComment: "handed to police",
			ReporterID:   "uid-2",
			ReporterName: "Alex",
			CreatedAt:    created.Add(time.Hour),
			UpdatedAt:    created.Add(2 * time.Hour),
			Fields:       map[string]string{"Details": "back door", "Witness": "none"},
		},
	}
}

func TestCSVExport(t *testing.T) {
	t.Parallel()

	reportsToExport := sampleReports()
	categoryNames := map[string]string{"cat-1": "Theft"}

	buf := &bytes.Buffer{}
	exporter, err := NewReportExporter(buf, EXPORT_FORMAT_CSV, categoryNames, FieldColumnsFromReports(reportsToExport))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, report := range reportsToExport {
		if err := exporter.WriteReport(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := exporter.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	header := rows[0]
	if header[len(header)-2] != "Details" || header[len(header)-1] != "Witness" {
		t.Errorf("custom field columns missing from header: %v", header)
	}

	col := func(row []string, name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("column %s not found", name)
		return ""
	}

	if got := col(rows[1], "category"); got != "Theft" {
		t.Errorf("expected resolved category name, got %q", got)
	}
	if got := col(rows[2], "category"); got != incidentTypes.UNKNOWN_CATEGORY_NAME {
		t.Errorf("deleted category must fall back to %q, got %q", incidentTypes.UNKNOWN_CATEGORY_NAME, got)
	}
	if got := col(rows[1], "updatedAt"); got != "" {
		t.Errorf("never updated report must export empty updatedAt, got %q", got)
	}
	if got := col(rows[2], "Witness"); got != "none" {
		t.Errorf("custom field value missing: %q", got)
	}
	if got := col(rows[1], "Witness"); got != "" {
		t.Errorf("report without the field must export an empty cell, got %q", got)
	}
	if exporter.WrittenCount() != 2 {
		t.Errorf("expected written count 2, got %d", exporter.WrittenCount())
	}
}

func TestJSONExport(t *testing.T) {
	t.Parallel()

	reportsToExport := sampleReports()
	categoryNames := map[string]string{"cat-1": "Theft"}

	buf := &bytes.Buffer{}
	exporter, err := NewReportExporter(buf, EXPORT_FORMAT_JSON, categoryNames, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, report := range reportsToExport {
		if err := exporter.WriteReport(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := exporter.Finish(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed struct {
		Reports []incidentTypes.Report `json:"reports"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(parsed.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(parsed.Reports))
	}
	if parsed.Reports[0].CategoryName != "Theft" {
		t.Errorf("expected resolved category name, got %q", parsed.Reports[0].CategoryName)
	}
	if parsed.Reports[1].CategoryName != incidentTypes.UNKNOWN_CATEGORY_NAME {
		t.Errorf("deleted category must fall back, got %q", parsed.Reports[1].CategoryName)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := NewReportExporter(&bytes.Buffer{}, "xml", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}
