package reports

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

const (
	EXPORT_FORMAT_CSV  = "csv"
	EXPORT_FORMAT_JSON = "json"
)

var baseColumns = []string{
	"id",
	"createdAt",
	"updatedAt",
	"status",
	"category",
	"subcategory",
	"offender",
	"storeNumber",
	"adminComment",
	"reporterId",
	"reporterName",
}

// ReportExporter streams reports into a writer one at a time, so export
// jobs never have to hold a full result set in memory.
type ReportExporter struct {
	writer        io.Writer
	format        string
	categoryNames map[string]string
	fieldColumns  []string

	csvWriter    *csv.Writer
	jsonEncoder  *json.Encoder
	wroteFirst   bool
	writtenCount int
}

func NewReportExporter(
	writer io.Writer,
	format string,
	categoryNames map[string]string,
	fieldColumns []string,
) (*ReportExporter, error) {
	re := &ReportExporter{
		writer:        writer,
		format:        format,
		categoryNames: categoryNames,
		fieldColumns:  fieldColumns,
	}

	if err := re.init(); err != nil {
		return nil, err
	}

	return re, nil
}

func (re *ReportExporter) init() error {
	switch re.format {
	case EXPORT_FORMAT_CSV:
		re.csvWriter = csv.NewWriter(re.writer)
		header := append([]string{}, baseColumns...)
		header = append(header, re.fieldColumns...)
		return re.csvWriter.Write(header)
	case EXPORT_FORMAT_JSON:
		re.jsonEncoder = json.NewEncoder(re.writer)
		_, err := io.WriteString(re.writer, "{\"reports\":[")
		return err
	default:
		return fmt.Errorf("unsupported format: %s", re.format)
	}
}

func (re *ReportExporter) WriteReport(report incidentTypes.Report) error {
	defer func() { re.writtenCount++ }()

	switch re.format {
	case EXPORT_FORMAT_CSV:
		return re.csvWriter.Write(re.csvRow(report))
	case EXPORT_FORMAT_JSON:
		if re.wroteFirst {
			if _, err := io.WriteString(re.writer, ","); err != nil {
				return err
			}
		}
		re.wroteFirst = true
		report.CategoryName = re.categoryName(report.CategoryID)
		return re.jsonEncoder.Encode(report)
	default:
		return fmt.Errorf("unsupported format: %s", re.format)
	}
}

func (re *ReportExporter) Finish() error {
	switch re.format {
	case EXPORT_FORMAT_CSV:
		re.csvWriter.Flush()
		return re.csvWriter.Error()
	case EXPORT_FORMAT_JSON:
		_, err := io.WriteString(re.writer, "]}")
		return err
	default:
		return fmt.Errorf("unsupported format: %s", re.format)
	}
}

// WrittenCount reports how many reports went through WriteReport.
func (re *ReportExporter) WrittenCount() int {
	return re.writtenCount
}

func (re *ReportExporter) csvRow(report incidentTypes.Report) []string {
	row := []string{
		report.ID.Hex(),
		report.CreatedAt.UTC().Format(time.RFC3339),
		formatOptionalTime(report.UpdatedAt),
		report.Status,
		re.categoryName(report.CategoryID),
		report.Subcategory,
		report.Offender,
		report.StoreNumber,
		report.AdminComment,
		report.ReporterID,
		report.ReporterName,
	}
	for _, colName := range re.fieldColumns {
		row = append(row, report.Fields[colName])
	}
	return row
}

func (re *ReportExporter) categoryName(categoryID string) string {
	if name, ok := re.categoryNames[categoryID]; ok {
		return name
	}
	return incidentTypes.UNKNOWN_CATEGORY_NAME
}

func formatOptionalTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FieldColumnsFromReports collects the union of custom field names found in
// the given reports, in the order they are first seen. Export jobs use this
// when reports hold keys of since deleted field definitions.
func FieldColumnsFromReports(reports []incidentTypes.Report) []string {
	seen := map[string]bool{}
	colNames := []string{}
	for _, report := range reports {
		for _, key := range report.SortedFieldKeys() {
			if !seen[key] {
				seen[key] = true
				colNames = append(colNames, key)
			}
		}
	}
	return colNames
}
