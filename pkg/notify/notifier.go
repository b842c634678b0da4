package notify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"text/template"
	"time"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

const newReportTemplate = `<h2>New incident report</h2>
<p>A new report was submitted and is waiting for review.</p>
<table>
<tr><td>Category</td><td>{{.Category}}</td></tr>
<tr><td>Subcategory</td><td>{{.Subcategory}}</td></tr>
{{if .Offender}}<tr><td>Offender</td><td>{{.Offender}}</td></tr>{{end}}
<tr><td>Store</td><td>{{.StoreNumber}}</td></tr>
<tr><td>Submitted by</td><td>{{.ReporterName}}</td></tr>
<tr><td>Submitted at</td><td>{{.SubmittedAt}}</td></tr>
</table>`

type mailer interface {
	SendMail(to []string, subject string, htmlContent string) error
}

// ReportNotifier sends a notification email to the configured recipients when
// a report has been submitted. It never surfaces errors to the submit path.
type ReportNotifier struct {
	clients    mailer
	recipients []string
	tmpl       *template.Template
}

func NewReportNotifier(clients *SmtpClients, recipients []string) *ReportNotifier {
	return &ReportNotifier{
		clients:    clients,
		recipients: recipients,
		tmpl:       template.Must(template.New("new-report").Parse(newReportTemplate)),
	}
}

func (n *ReportNotifier) ReportSubmitted(ctx context.Context, report incidentTypes.Report, categoryName string) {
	if len(n.recipients) < 1 {
		return
	}

	content, err := n.renderContent(report, categoryName)
	if err != nil {
		slog.Error("error when rendering report notification", slog.String("error", err.Error()))
		return
	}

	subject := fmt.Sprintf("New incident report for store %s", report.StoreNumber)
	if err := n.clients.SendMail(n.recipients, subject, content); err != nil {
		slog.Error("error when sending report notification",
			slog.String("reportID", report.ID.Hex()),
			slog.String("error", err.Error()))
	}
}

func (n *ReportNotifier) renderContent(report incidentTypes.Report, categoryName string) (string, error) {
	var tpl bytes.Buffer
	err := n.tmpl.Execute(&tpl, map[string]string{
		"Category":     categoryName,
		"Subcategory":  report.Subcategory,
		"Offender":     report.Offender,
		"StoreNumber":  report.StoreNumber,
		"ReporterName": report.ReporterName,
		"SubmittedAt":  report.CreatedAt.UTC().Format(time.RFC1123),
	})
	if err != nil {
		return "", err
	}
	return tpl.String(), nil
}
