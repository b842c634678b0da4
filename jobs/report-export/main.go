package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	reportExporter "github.com/circlekay00/theft-app/pkg/exporter/reports"
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
	"github.com/circlekay00/theft-app/pkg/utils"
)

func main() {
	slog.Info("Starting report export job")
	start := time.Now()

	cleanupOldExports()

	categoryNames, fieldColumns, err := loadExportContext()
	if err != nil {
		slog.Error("Error preparing export context", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, task := range conf.ReportExports.ExportTasks {
		if err := runExportTask(task, categoryNames, fieldColumns); err != nil {
			slog.Error("Export task failed", slog.String("task", task.Name), slog.String("error", err.Error()))
			continue
		}
	}

	if err := incidentDBService.DBClient.Disconnect(context.Background()); err != nil {
		slog.Error("Error closing DB connection", slog.String("error", err.Error()))
	}
	slog.Info("Report export job completed", slog.String("duration", time.Since(start).String()))
}

// loadExportContext fetches what every task needs once: the category id to
// name mapping and the custom field column set.
func loadExportContext() (map[string]string, []string, error) {
	categories, err := incidentDBService.GetCategories()
	if err != nil {
		return nil, nil, err
	}
	categoryNames := map[string]string{}
	for _, cat := range categories {
		categoryNames[cat.ID.Hex()] = cat.Name
	}

	fields, err := incidentDBService.GetFieldDefinitions()
	if err != nil {
		return nil, nil, err
	}
	fieldColumns := make([]string, 0, len(fields))
	for _, field := range fields {
		fieldColumns = append(fieldColumns, field.Name)
	}

	return categoryNames, fieldColumns, nil
}

func runExportTask(task ReportExportTask, categoryNames map[string]string, fieldColumns []string) error {
	format := task.ExportFormat
	if format == "" {
		format = reportExporter.EXPORT_FORMAT_CSV
	}
	if !utils.ContainsString([]string{reportExporter.EXPORT_FORMAT_CSV, reportExporter.EXPORT_FORMAT_JSON}, format) {
		return fmt.Errorf("unsupported format: %s", format)
	}

	filter := bson.M{}
	if task.StoreNumber != "" {
		filter["storeNumber"] = strings.TrimSpace(task.StoreNumber)
	}
	if task.Status != "" {
		filter["status"] = task.Status
	}

	total, err := incidentDBService.GetReportCountForQuery(filter)
	if err != nil {
		return err
	}
	if total == 0 {
		slog.Info("No reports match the task, skipping file", slog.String("task", task.Name))
		return nil
	}

	name := task.Name
	if name == "" {
		name = "all-reports"
	}
	filename := fmt.Sprintf("%s_%s.%s", name, time.Now().Format("2006-01-02"), format)
	targetPath := filepath.Join(conf.ExportPath, filename)

	file, err := os.Create(targetPath)
	if err != nil {
		return err
	}
	defer file.Close()

	exporter, err := reportExporter.NewReportExporter(file, format, categoryNames, fieldColumns)
	if err != nil {
		return err
	}

	err = incidentDBService.FindAndExecuteOnReports(
		context.Background(),
		filter,
		func(report incidentTypes.Report) error {
			return exporter.WriteReport(report)
		},
	)
	if err != nil {
		return err
	}
	if err := exporter.Finish(); err != nil {
		return err
	}

	slog.Info("Export file written",
		slog.String("task", task.Name),
		slog.String("file", targetPath),
		slog.Int("count", exporter.WrittenCount()))
	return nil
}

// cleanupOldExports deletes export files older than the configured retention.
// An unset retention keeps everything.
func cleanupOldExports() {
	if exportRetention <= 0 {
		return
	}
	cutoff := time.Now().Add(-exportRetention)

	entries, err := os.ReadDir(conf.ExportPath)
	if err != nil {
		slog.Error("Error reading export path", slog.String("error", err.Error()))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(conf.ExportPath, entry.Name())); err != nil {
				slog.Error("Error removing old export file", slog.String("file", entry.Name()), slog.String("error", err.Error()))
				continue
			}
			slog.Info("Removed old export file", slog.String("file", entry.Name()))
		}
	}
}
