package incident

import (
	"errors"
	"testing"

	"github.com/circlekay00/theft-app/pkg/filter"
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

func newTestService(t *testing.T) (*Service, *mockStore) {
	t.Helper()
	store := &mockStore{}
	return NewService(store, nil), store
}

func mustCreateCategory(t *testing.T, s *Service, name string, subcategories []string) incidentTypes.Category {
	t.Helper()
	category, err := s.CreateCategory(superadmin(), name, subcategories)
	if err != nil {
		t.Fatalf("creating category %s: %v", name, err)
	}
	return category
}

func superadmin() userTypes.ActorContext {
	return userTypes.ActorContext{UID: "root", Name: "Root", Role: userTypes.ROLE_SUPERADMIN}
}

func storeAdmin(storeNumber string) userTypes.ActorContext {
	return userTypes.ActorContext{UID: "admin-" + storeNumber, Name: "Admin", Role: userTypes.ROLE_ADMIN, StoreNumber: storeNumber}
}

func submitter(uid string, storeNumber string) userTypes.ActorContext {
	return userTypes.ActorContext{UID: uid, Name: "Employee", Role: userTypes.ROLE_USER, StoreNumber: storeNumber}
}

func TestSubmitSetsPendingAndLeavesUpdatedAtUnset(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting", "Employee"})

	report, err := s.Submit(submitter("uid-1", "12"), SubmitReportRequest{
		CategoryID:  category.ID.Hex(),
		Subcategory: "Shoplifting",
		StoreNumber: "12",
		Fields:      map[string]string{"Details": "caught on camera"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if report.Status != incidentTypes.REPORT_STATUS_PENDING {
		t.Errorf("expected status Pending, got %s", report.Status)
	}
	if !report.UpdatedAt.IsZero() {
		t.Error("submit must not set updatedAt")
	}
	if report.CreatedAt.IsZero() {
		t.Error("submit must set createdAt")
	}
	if report.ReporterID != "uid-1" {
		t.Errorf("reporterId not taken from actor: %s", report.ReporterID)
	}
	if report.CategoryName != "Theft" {
		t.Errorf("expected resolved category name, got %q", report.CategoryName)
	}
}

func TestSubmitValidationListsAllBadFields(t *testing.T) {
	t.Parallel()

	s, store := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})

	tests := []struct {
		name     string
		req      SubmitReportRequest
		expected []string
	}{
		{
			name:     "everything missing",
			req:      SubmitReportRequest{},
			expected: []string{"categoryId", "subcategory", "storeNumber"},
		},
		{
			name: "unknown category",
			req: SubmitReportRequest{
				CategoryID:  "000000000000000000000000",
				Subcategory: "Shoplifting",
				StoreNumber: "12",
			},
			expected: []string{"categoryId"},
		},
		{
			name: "malformed category id",
			req: SubmitReportRequest{
				CategoryID:  "not-a-hex-id",
				Subcategory: "Shoplifting",
				StoreNumber: "12",
			},
			expected: []string{"categoryId"},
		},
		{
			name: "subcategory not in category list",
			req: SubmitReportRequest{
				CategoryID:  category.ID.Hex(),
				Subcategory: "Arson",
				StoreNumber: "12",
			},
			expected: []string{"subcategory"},
		},
		{
			name: "blank store number",
			req: SubmitReportRequest{
				CategoryID:  category.ID.Hex(),
				Subcategory: "Shoplifting",
				StoreNumber: "   ",
			},
			expected: []string{"storeNumber"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			before := len(store.reports)
			_, err := s.Submit(submitter("uid-1", "12"), test.req)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(vErr.Fields) != len(test.expected) {
				t.Fatalf("expected invalid fields %v, got %v", test.expected, vErr.Fields)
			}
			for i, f := range test.expected {
				if vErr.Fields[i] != f {
					t.Errorf("expected invalid field %s at %d, got %s", f, i, vErr.Fields[i])
				}
			}
			if len(store.reports) != before {
				t.Error("validation failure must never partially persist")
			}
		})
	}
}

func TestSubmitWithoutRoleIsDenied(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	_, err := s.Submit(userTypes.ActorContext{UID: "ghost"}, SubmitReportRequest{})
	var aErr *AuthorizationError
	if !errors.As(err, &aErr) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
}

func TestToggleStatusIsItsOwnInverse(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})
	report, err := s.Submit(submitter("uid-1", "12"), SubmitReportRequest{
		CategoryID:  category.ID.Hex(),
		Subcategory: "Shoplifting",
		StoreNumber: "12",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	admin := storeAdmin("12")

	toggled, err := s.ToggleStatus(admin, report.ID.Hex())
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.Status != incidentTypes.REPORT_STATUS_COMPLETE {
		t.Errorf("expected Complete after first toggle, got %s", toggled.Status)
	}
	if toggled.UpdatedAt.IsZero() {
		t.Error("toggle must stamp updatedAt")
	}
	firstUpdate := toggled.UpdatedAt

	back, err := s.ToggleStatus(admin, report.ID.Hex())
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if back.Status != incidentTypes.REPORT_STATUS_PENDING {
		t.Errorf("toggle applied twice must restore the original status, got %s", back.Status)
	}
	if back.UpdatedAt.Before(firstUpdate) {
		t.Error("each toggle must advance updatedAt")
	}
}

func TestUpdateAdminFieldsMergesPatch(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})
	report, err := s.Submit(submitter("uid-1", "12"), SubmitReportRequest{
		CategoryID:  category.ID.Hex(),
		Subcategory: "Shoplifting",
		Offender:    "John Doe",
		StoreNumber: "12",
		Fields:      map[string]string{"Details": "caught on camera"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	comment := "reviewed"
	updated, err := s.UpdateAdminFields(storeAdmin("12"), report.ID.Hex(), ReportPatch{
		AdminComment: &comment,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.AdminComment != "reviewed" {
		t.Errorf("adminComment not applied: %q", updated.AdminComment)
	}
	if updated.UpdatedAt.IsZero() {
		t.Error("admin update must stamp updatedAt")
	}
	// unspecified keys untouched
	if updated.Offender != "John Doe" || updated.Subcategory != "Shoplifting" {
		t.Error("patch must not touch unspecified attributes")
	}
	if updated.StoreNumber != "12" || updated.ReporterID != "uid-1" {
		t.Error("patch must never rewrite storeNumber or reporterId")
	}
	if !updated.CreatedAt.Equal(report.CreatedAt) {
		t.Error("patch must never rewrite createdAt")
	}
}

func TestUpdateAdminFieldsRejectsInvalidPatch(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})
	report, err := s.Submit(submitter("uid-1", "12"), SubmitReportRequest{
		CategoryID:  category.ID.Hex(),
		Subcategory: "Shoplifting",
		StoreNumber: "12",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	badStatus := "Archived"
	_, err = s.UpdateAdminFields(storeAdmin("12"), report.ID.Hex(), ReportPatch{Status: &badStatus})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown status, got %v", err)
	}

	badCategory := "000000000000000000000000"
	_, err = s.UpdateAdminFields(storeAdmin("12"), report.ID.Hex(), ReportPatch{CategoryID: &badCategory})
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown category, got %v", err)
	}

	reloaded, err := s.GetReport(storeAdmin("12"), report.ID.Hex())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.UpdatedAt.IsZero() {
		t.Error("rejected patch must not have written anything")
	}
}

func TestUpdateAdminFieldsChecksSubcategoryMembership(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	theft := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})
	vandalism := mustCreateCategory(t, s, "Vandalism", []string{"Graffiti"})

	report, err := s.Submit(submitter("uid-1", "12"), SubmitReportRequest{
		CategoryID:  theft.ID.Hex(),
		Subcategory: "Shoplifting",
		StoreNumber: "12",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// moving the report to a category that does not contain its current
	// subcategory must fail, nothing persisted
	newCategory := vandalism.ID.Hex()
	_, err = s.UpdateAdminFields(storeAdmin("12"), report.ID.Hex(), ReportPatch{CategoryID: &newCategory})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for inconsistent category change, got %v", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0] != "subcategory" {
		t.Errorf("expected invalid fields [subcategory], got %v", vErr.Fields)
	}

	reloaded, err := s.GetReport(storeAdmin("12"), report.ID.Hex())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.CategoryID != theft.ID.Hex() || reloaded.Subcategory != "Shoplifting" {
		t.Errorf("rejected patch must not change the report, got %s/%s", reloaded.CategoryID, reloaded.Subcategory)
	}

	// category and subcategory patched together succeed when consistent
	graffiti := "Graffiti"
	updated, err := s.UpdateAdminFields(storeAdmin("12"), report.ID.Hex(), ReportPatch{
		CategoryID:  &newCategory,
		Subcategory: &graffiti,
	})
	if err != nil {
		t.Fatalf("consistent category change failed: %v", err)
	}
	if updated.CategoryID != newCategory || updated.Subcategory != "Graffiti" {
		t.Errorf("patch not applied: %s/%s", updated.CategoryID, updated.Subcategory)
	}
}

func TestUpdateAdminFieldsDeniedBeforeWrite(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})
	report, err := s.Submit(submitter("uid-1", "12"), SubmitReportRequest{
		CategoryID:  category.ID.Hex(),
		Subcategory: "Shoplifting",
		StoreNumber: "12",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	comment := "should not land"
	tests := []struct {
		name  string
		actor userTypes.ActorContext
	}{
		{name: "admin of another store", actor: storeAdmin("99")},
		{name: "submitter of the report", actor: submitter("uid-1", "12")},
		{name: "actor without role", actor: userTypes.ActorContext{UID: "ghost"}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, err := s.UpdateAdminFields(test.actor, report.ID.Hex(), ReportPatch{AdminComment: &comment})
			var aErr *AuthorizationError
			if !errors.As(err, &aErr) {
				t.Fatalf("expected AuthorizationError, got %v", err)
			}
		})
	}

	reloaded, err := s.GetReport(superadmin(), report.ID.Hex())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.AdminComment != "" || !reloaded.UpdatedAt.IsZero() {
		t.Error("denied mutation must not leave a partial write behind")
	}
}

func TestListReportsVisibilityScoping(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})

	for _, store := range []string{"12", "12", "7"} {
		_, err := s.Submit(submitter("uid-"+store, store), SubmitReportRequest{
			CategoryID:  category.ID.Hex(),
			Subcategory: "Shoplifting",
			StoreNumber: store,
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	reports, total, err := s.ListReports(storeAdmin("12"), filter.FilterSpec{}, 0, 0)
	if err != nil {
		t.Fatalf("admin listing failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("admin at store 12 expected 2 reports, got %d", total)
	}
	for _, r := range reports {
		if r.StoreNumber != "12" {
			t.Errorf("admin at store 12 must never see store %s", r.StoreNumber)
		}
	}

	// a crafted search cannot leak other stores' data
	_, total, err = s.ListReports(storeAdmin("12"), filter.FilterSpec{Text: "uid-7"}, 0, 0)
	if err != nil {
		t.Fatalf("admin listing failed: %v", err)
	}
	if total != 0 {
		t.Error("search must operate over the visibility scoped subset only")
	}

	_, total, err = s.ListReports(superadmin(), filter.FilterSpec{}, 0, 0)
	if err != nil {
		t.Fatalf("superadmin listing failed: %v", err)
	}
	if total != 3 {
		t.Errorf("superadmin expected all 3 reports, got %d", total)
	}

	own, total, err := s.ListReports(submitter("uid-7", "7"), filter.FilterSpec{}, 0, 0)
	if err != nil {
		t.Fatalf("user listing failed: %v", err)
	}
	if total != 1 || own[0].ReporterID != "uid-7" {
		t.Error("user must see exactly their own submissions")
	}
}

func TestListReportsWithoutRoleIsAuthorizationError(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	_, _, err := s.ListReports(userTypes.ActorContext{UID: "anonymous"}, filter.FilterSpec{}, 0, 0)
	var aErr *AuthorizationError
	if !errors.As(err, &aErr) {
		t.Fatalf("listing without a resolved role must be an authorization error, got %v", err)
	}
}

func TestDeletedCategoryResolvesToFallback(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})
	report, err := s.Submit(submitter("uid-1", "12"), SubmitReportRequest{
		CategoryID:  category.ID.Hex(),
		Subcategory: "Shoplifting",
		StoreNumber: "12",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := s.DeleteCategory(superadmin(), category.ID.Hex()); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}

	reloaded, err := s.GetReport(superadmin(), report.ID.Hex())
	if err != nil {
		t.Fatalf("reading a report with an orphaned category must not fail: %v", err)
	}
	if reloaded.CategoryName != incidentTypes.UNKNOWN_CATEGORY_NAME {
		t.Errorf("expected fallback category name, got %q", reloaded.CategoryName)
	}
	if reloaded.CategoryID != category.ID.Hex() {
		t.Error("orphaned categoryId must round-trip unchanged")
	}

	listed, _, err := s.ListReports(superadmin(), filter.FilterSpec{}, 0, 0)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if listed[0].CategoryName != incidentTypes.UNKNOWN_CATEGORY_NAME {
		t.Error("listing must apply the same fallback resolution")
	}
}

func TestDeleteReport(t *testing.T) {
	t.Parallel()

	s, store := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})
	report, err := s.Submit(submitter("uid-1", "12"), SubmitReportRequest{
		CategoryID:  category.ID.Hex(),
		Subcategory: "Shoplifting",
		StoreNumber: "12",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	var aErr *AuthorizationError
	if err := s.DeleteReport(submitter("uid-1", "12"), report.ID.Hex()); !errors.As(err, &aErr) {
		t.Fatalf("submitter must not delete their own report, got %v", err)
	}
	if err := s.DeleteReport(storeAdmin("99"), report.ID.Hex()); !errors.As(err, &aErr) {
		t.Fatalf("admin of another store must not delete, got %v", err)
	}
	if len(store.reports) != 1 {
		t.Fatal("denied deletes must not remove anything")
	}

	if err := s.DeleteReport(storeAdmin("12"), report.ID.Hex()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(store.reports) != 0 {
		t.Error("report not removed")
	}

	var nfErr *NotFoundError
	if err := s.DeleteReport(storeAdmin("12"), report.ID.Hex()); !errors.As(err, &nfErr) {
		t.Errorf("deleting a missing report must be NotFoundError, got %v", err)
	}
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting", "Employee"})

	report, err := s.Submit(submitter("uid-1", "12"), SubmitReportRequest{
		CategoryID:  category.ID.Hex(),
		Subcategory: "Shoplifting",
		StoreNumber: "12",
		Fields:      map[string]string{"Details": "caught on camera"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if report.Status != incidentTypes.REPORT_STATUS_PENDING {
		t.Fatalf("expected Pending, got %s", report.Status)
	}

	toggled, err := s.ToggleStatus(storeAdmin("12"), report.ID.Hex())
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.Status != incidentTypes.REPORT_STATUS_COMPLETE {
		t.Fatalf("expected Complete, got %s", toggled.Status)
	}

	comment := "reviewed"
	annotated, err := s.UpdateAdminFields(storeAdmin("12"), report.ID.Hex(), ReportPatch{AdminComment: &comment})
	if err != nil {
		t.Fatalf("annotate failed: %v", err)
	}
	if annotated.AdminComment != "reviewed" || annotated.UpdatedAt.IsZero() {
		t.Error("annotation not applied")
	}

	// admin at store 99 cannot see it, superadmin can
	_, total, err := s.ListReports(storeAdmin("99"), filter.FilterSpec{}, 0, 0)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if total != 0 {
		t.Error("admin at store 99 must not see the report")
	}
	_, total, err = s.ListReports(superadmin(), filter.FilterSpec{}, 0, 0)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}
	if total != 1 {
		t.Error("superadmin must see the report")
	}
}

func TestStatsCountsVisibleReports(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	category := mustCreateCategory(t, s, "Theft", []string{"Shoplifting"})

	for _, c := range []struct{ store, offender string }{
		{"12", "John Doe"},
		{"12", ""},
		{"7", "John Doe"},
	} {
		_, err := s.Submit(submitter("uid-"+c.store, c.store), SubmitReportRequest{
			CategoryID:  category.ID.Hex(),
			Subcategory: "Shoplifting",
			Offender:    c.offender,
			StoreNumber: c.store,
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	stats, err := s.GetStats(storeAdmin("12"))
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("store admin stats must cover own store only, got total %d", stats.Total)
	}
	if stats.ByCategory["Theft"] != 2 {
		t.Errorf("expected 2 Theft reports, got %d", stats.ByCategory["Theft"])
	}
	if stats.ByOffender["John Doe"] != 1 {
		t.Errorf("expected 1 report for John Doe, got %d", stats.ByOffender["John Doe"])
	}

	global, err := s.GetStats(superadmin())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if global.Total != 3 || global.Pending != 3 {
		t.Errorf("unexpected superadmin stats: %+v", global)
	}
}
