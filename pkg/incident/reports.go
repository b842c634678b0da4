package incident

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/circlekay00/theft-app/pkg/filter"
	"github.com/circlekay00/theft-app/pkg/policy"
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
	"github.com/circlekay00/theft-app/pkg/utils"
)

// SubmitReportRequest is the payload of one report submission.
type SubmitReportRequest struct {
	CategoryID  string            `json:"categoryId"`
	Subcategory string            `json:"subcategory"`
	Offender    string            `json:"offender"`
	StoreNumber string            `json:"storeNumber"`
	Fields      map[string]string `json:"fields"`
}

// ReportPatch is the admin edit payload. Nil pointers leave the attribute
// untouched; Fields, when present, replaces the whole fields map. The patch
// can never rewrite storeNumber, reporterId or createdAt.
type ReportPatch struct {
	Status       *string            `json:"status,omitempty"`
	AdminComment *string            `json:"adminComment,omitempty"`
	CategoryID   *string            `json:"categoryId,omitempty"`
	Subcategory  *string            `json:"subcategory,omitempty"`
	Offender     *string            `json:"offender,omitempty"`
	Fields       *map[string]string `json:"fields,omitempty"`
}

// Submit validates and persists a new report: status Pending, createdAt now,
// updatedAt unset, reporter identity taken from the actor. Nothing is
// persisted when validation fails.
func (s *Service) Submit(actor userTypes.ActorContext, req SubmitReportRequest) (incidentTypes.Report, error) {
	var report incidentTypes.Report

	if _, ok := userTypes.ParseRole(string(actor.Role)); !ok {
		return report, &AuthorizationError{Reason: "submitting a report requires a signed in user"}
	}

	invalid := []string{}

	var category incidentTypes.Category
	if req.CategoryID == "" {
		invalid = append(invalid, "categoryId")
	} else {
		var err error
		category, err = s.store.GetCategoryByID(req.CategoryID)
		if err != nil {
			if err == mongo.ErrNoDocuments || errors.Is(err, primitive.ErrInvalidHex) {
				invalid = append(invalid, "categoryId")
			} else {
				return report, &StoreError{Op: "load category", Err: err}
			}
		}
	}

	subcategory := strings.TrimSpace(req.Subcategory)
	if subcategory == "" {
		invalid = append(invalid, "subcategory")
	} else if category.Name != "" && !category.HasSubcategory(subcategory) {
		invalid = append(invalid, "subcategory")
	}

	storeNumber := strings.TrimSpace(req.StoreNumber)
	if storeNumber == "" {
		invalid = append(invalid, "storeNumber")
	}

	if len(invalid) > 0 {
		return report, &ValidationError{Fields: invalid}
	}

	fields := req.Fields
	if fields == nil {
		fields = map[string]string{}
	}

	report = incidentTypes.Report{
		CategoryID:   req.CategoryID,
		Subcategory:  subcategory,
		Offender:     strings.TrimSpace(req.Offender),
		StoreNumber:  storeNumber,
		Fields:       fields,
		Status:       incidentTypes.REPORT_STATUS_PENDING,
		ReporterID:   actor.UID,
		ReporterName: actor.Name,
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateReport(&report); err != nil {
		return report, &StoreError{Op: "create report", Err: err}
	}
	report.CategoryName = category.Name

	if s.notifier != nil {
		go s.notifier.ReportSubmitted(context.Background(), report, category.Name)
	}
	return report, nil
}

// ListReports applies, in order: the visibility scope of the actor, the multi
// criteria filter, the stable sort and the pagination slicing. An actor
// without a resolved role gets an authorization error, never an empty list.
func (s *Service) ListReports(actor userTypes.ActorContext, spec filter.FilterSpec, page int, pageSize int) (reports []incidentTypes.Report, total int, err error) {
	if !policy.CanListReports(actor) {
		return nil, 0, &AuthorizationError{Reason: "listing reports requires a signed in user with a resolved role"}
	}

	scope := scopeForActor(actor)
	loaded, err := s.store.GetReports(scope)
	if err != nil {
		return nil, 0, &StoreError{Op: "list reports", Err: err}
	}

	visible := make([]incidentTypes.Report, 0, len(loaded))
	for _, r := range loaded {
		if policy.CanSeeReport(actor, r) {
			visible = append(visible, r)
		}
	}

	if err := s.resolveCategoryNames(visible); err != nil {
		return nil, 0, err
	}

	filtered := spec.Apply(visible)
	total = len(filtered)

	if pageSize <= 0 {
		return filtered, total, nil
	}
	return filter.Paginate(filtered, page, pageSize), total, nil
}

// GetReport loads one report, gated by the visibility policy, with the
// category name resolved (fallback for orphaned references).
func (s *Service) GetReport(actor userTypes.ActorContext, reportID string) (incidentTypes.Report, error) {
	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return report, wrapStoreErr("load report", "report", reportID, err)
	}
	if !policy.CanSeeReport(actor, report) {
		return incidentTypes.Report{}, &AuthorizationError{Reason: "report not visible for this role"}
	}
	report.CategoryName = s.lookupCategoryName(report.CategoryID)
	return report, nil
}

// UpdateAdminFields merges the patch into the report and stamps updatedAt.
// Authorization is checked before anything is written.
func (s *Service) UpdateAdminFields(actor userTypes.ActorContext, reportID string, patch ReportPatch) (incidentTypes.Report, error) {
	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return report, wrapStoreErr("load report", "report", reportID, err)
	}
	if !policy.CanMutateReport(actor, report) {
		return incidentTypes.Report{}, &AuthorizationError{Reason: "editing reports requires an admin role for this store"}
	}

	set := bson.M{}
	invalid := []string{}

	if patch.Status != nil {
		switch *patch.Status {
		case incidentTypes.REPORT_STATUS_PENDING, incidentTypes.REPORT_STATUS_COMPLETE:
			set["status"] = *patch.Status
			report.Status = *patch.Status
		default:
			invalid = append(invalid, "status")
		}
	}
	if patch.AdminComment != nil {
		set["adminComment"] = *patch.AdminComment
		report.AdminComment = *patch.AdminComment
	}
	var newCategory incidentTypes.Category
	if patch.CategoryID != nil {
		var err error
		newCategory, err = s.store.GetCategoryByID(*patch.CategoryID)
		if err != nil {
			if err == mongo.ErrNoDocuments || errors.Is(err, primitive.ErrInvalidHex) {
				invalid = append(invalid, "categoryId")
			} else {
				return incidentTypes.Report{}, &StoreError{Op: "load category", Err: err}
			}
		} else {
			set["categoryId"] = *patch.CategoryID
			report.CategoryID = *patch.CategoryID
		}
	}
	if patch.Subcategory != nil {
		sub := strings.TrimSpace(*patch.Subcategory)
		if sub == "" {
			invalid = append(invalid, "subcategory")
		} else {
			set["subcategory"] = sub
			report.Subcategory = sub
		}
	}
	// A category change must leave a consistent pair behind: the effective
	// subcategory (patched or kept) has to be a member of the new category.
	if patch.CategoryID != nil && newCategory.Name != "" &&
		!newCategory.HasSubcategory(report.Subcategory) &&
		!utils.ContainsString(invalid, "subcategory") {
		invalid = append(invalid, "subcategory")
	}
	if patch.Offender != nil {
		set["offender"] = strings.TrimSpace(*patch.Offender)
		report.Offender = set["offender"].(string)
	}
	if patch.Fields != nil {
		fields := *patch.Fields
		if fields == nil {
			fields = map[string]string{}
		}
		set["fields"] = fields
		report.Fields = fields
	}

	if len(invalid) > 0 {
		return incidentTypes.Report{}, &ValidationError{Fields: invalid}
	}
	if len(set) == 0 {
		return report, nil
	}

	now := time.Now()
	set["updatedAt"] = now
	report.UpdatedAt = now

	if err := s.store.UpdateReport(reportID, set); err != nil {
		return incidentTypes.Report{}, wrapStoreErr("update report", "report", reportID, err)
	}
	report.CategoryName = s.lookupCategoryName(report.CategoryID)
	return report, nil
}

// ToggleStatus flips Pending and Complete. Exposed separately from
// UpdateAdminFields because it is the common one-click case.
func (s *Service) ToggleStatus(actor userTypes.ActorContext, reportID string) (incidentTypes.Report, error) {
	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return report, wrapStoreErr("load report", "report", reportID, err)
	}
	if !policy.CanMutateReport(actor, report) {
		return incidentTypes.Report{}, &AuthorizationError{Reason: "toggling status requires an admin role for this store"}
	}

	newStatus := incidentTypes.REPORT_STATUS_COMPLETE
	if report.Status == incidentTypes.REPORT_STATUS_COMPLETE {
		newStatus = incidentTypes.REPORT_STATUS_PENDING
	}

	now := time.Now()
	if err := s.store.UpdateReport(reportID, bson.M{"status": newStatus, "updatedAt": now}); err != nil {
		return incidentTypes.Report{}, wrapStoreErr("toggle status", "report", reportID, err)
	}
	report.Status = newStatus
	report.UpdatedAt = now
	report.CategoryName = s.lookupCategoryName(report.CategoryID)
	return report, nil
}

// DeleteReport hard deletes, irreversibly. It is only ever reached through an
// explicit delete request, never as a side effect of a read.
func (s *Service) DeleteReport(actor userTypes.ActorContext, reportID string) error {
	report, err := s.store.GetReportByID(reportID)
	if err != nil {
		return wrapStoreErr("load report", "report", reportID, err)
	}
	if !policy.CanMutateReport(actor, report) {
		return &AuthorizationError{Reason: "deleting reports requires an admin role for this store"}
	}

	if err := s.store.DeleteReport(reportID); err != nil {
		return wrapStoreErr("delete report", "report", reportID, err)
	}
	slog.Info("report deleted", slog.String("reportID", reportID), slog.String("actor", actor.UID))
	return nil
}

// scopeForActor narrows the DB query to the actor's visibility partition.
// The pure policy check still runs over the loaded set afterwards; this is
// only load shedding.
func scopeForActor(actor userTypes.ActorContext) bson.M {
	switch actor.Role {
	case userTypes.ROLE_SUPERADMIN:
		return bson.M{}
	case userTypes.ROLE_ADMIN:
		return bson.M{"storeNumber": strings.TrimSpace(actor.StoreNumber)}
	default:
		return bson.M{"reporterId": actor.UID}
	}
}
