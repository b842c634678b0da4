package filter

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

func testReports() []incidentTypes.Report {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return []incidentTypes.Report{
		{
			ID:          primitive.NewObjectID(),
			CategoryID:  "cat-theft",
			Subcategory: "Shoplifting",
			StoreNumber: "12",
			Status:      incidentTypes.REPORT_STATUS_PENDING,
			Fields:      map[string]string{"Details": "Theft occurred at 5pm"},
			CreatedAt:   base,
		},
		{
			ID:          primitive.NewObjectID(),
			CategoryID:  "cat-theft",
			Subcategory: "Employee",
			StoreNumber: "7",
			Status:      incidentTypes.REPORT_STATUS_COMPLETE,
			Fields:      map[string]string{"Details": "register short"},
			CreatedAt:   base.Add(24 * time.Hour),
		},
		{
			ID:          primitive.NewObjectID(),
			CategoryID:  "cat-vandalism",
			Subcategory: "Graffiti",
			StoreNumber: "12",
			Status:      incidentTypes.REPORT_STATUS_COMPLETE,
			Fields:      map[string]string{"Details": "back wall"},
			CreatedAt:   base.Add(48 * time.Hour),
		},
	}
}

func TestMatchesSingleCriteria(t *testing.T) {
	t.Parallel()

	reports := testReports()

	tests := []struct {
		name     string
		spec     FilterSpec
		expected int
	}{
		{name: "no constraint matches all", spec: FilterSpec{}, expected: 3},
		{name: "status", spec: FilterSpec{Status: incidentTypes.REPORT_STATUS_COMPLETE}, expected: 2},
		{name: "category", spec: FilterSpec{CategoryID: "cat-theft"}, expected: 2},
		{name: "store trimmed", spec: FilterSpec{StoreNumber: " 12 "}, expected: 2},
		{name: "free text case insensitive", spec: FilterSpec{Text: "theft"}, expected: 2},
		{name: "free text trims boundaries", spec: FilterSpec{Text: "  THEFT  "}, expected: 2},
		{name: "free text in custom field", spec: FilterSpec{Text: "register"}, expected: 1},
		{name: "free text no match", spec: FilterSpec{Text: "flood"}, expected: 0},
		{
			name: "date range inclusive",
			spec: FilterSpec{
				From: DayStart(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)),
				To:   DayEnd(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)),
			},
			expected: 1,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := test.spec.Apply(reports)
			if len(got) != test.expected {
				t.Errorf("expected %d matches but got %d", test.expected, len(got))
			}
		})
	}
}

func TestFilterComposition(t *testing.T) {
	t.Parallel()

	reports := testReports()

	combined := FilterSpec{
		Status:     incidentTypes.REPORT_STATUS_COMPLETE,
		CategoryID: "cat-theft",
	}.Apply(reports)

	sequential := FilterSpec{CategoryID: "cat-theft"}.Apply(
		FilterSpec{Status: incidentTypes.REPORT_STATUS_COMPLETE}.Apply(reports),
	)

	if len(combined) != len(sequential) {
		t.Fatalf("combined filter returned %d reports, sequential %d", len(combined), len(sequential))
	}
	for i := range combined {
		if combined[i].ID != sequential[i].ID {
			t.Errorf("report %d differs between combined and sequential filtering", i)
		}
	}
	if len(combined) != 1 || combined[0].StoreNumber != "7" {
		t.Errorf("unexpected composition result: %+v", combined)
	}
}

func TestApplySortsNewestFirst(t *testing.T) {
	t.Parallel()

	reports := testReports()
	got := FilterSpec{}.Apply(reports)

	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("reports not sorted by createdAt descending at index %d", i)
		}
	}
}

func TestSortTiesBrokenByID(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	a := incidentTypes.Report{ID: mustObjectID(t, "653f00000000000000000001"), CreatedAt: ts}
	b := incidentTypes.Report{ID: mustObjectID(t, "653f00000000000000000002"), CreatedAt: ts}

	got := FilterSpec{}.Apply([]incidentTypes.Report{b, a})
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Errorf("ties must be broken by id ascending, got %s, %s", got[0].ID.Hex(), got[1].ID.Hex())
	}
}

func TestPaginateRoundTrip(t *testing.T) {
	t.Parallel()

	reports := make([]incidentTypes.Report, 0, 23)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		reports = append(reports, incidentTypes.Report{
			ID:        primitive.NewObjectID(),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	filtered := FilterSpec{}.Apply(reports)

	const pageSize = 10
	seen := map[string]bool{}
	collected := []incidentTypes.Report{}
	for page := 0; ; page++ {
		chunk := Paginate(filtered, page, pageSize)
		if len(chunk) == 0 {
			break
		}
		for _, r := range chunk {
			if seen[r.ID.Hex()] {
				t.Fatalf("report %s appeared on more than one page", r.ID.Hex())
			}
			seen[r.ID.Hex()] = true
		}
		collected = append(collected, chunk...)
	}

	if len(collected) != len(filtered) {
		t.Fatalf("pages reproduce %d reports, expected %d", len(collected), len(filtered))
	}
	for i := range filtered {
		if collected[i].ID != filtered[i].ID {
			t.Errorf("page concatenation out of order at index %d", i)
		}
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	t.Parallel()

	reports := testReports()
	if got := Paginate(reports, 5, 10); len(got) != 0 {
		t.Errorf("expected empty slice for out of range page, got %d", len(got))
	}
	if got := Paginate(reports, -1, 10); len(got) != 0 {
		t.Errorf("expected empty slice for negative page, got %d", len(got))
	}
	if got := Paginate(reports, 0, 0); len(got) != 0 {
		t.Errorf("expected empty slice for zero page size, got %d", len(got))
	}
}

func TestSearchTextIndependentOfFieldOrder(t *testing.T) {
	t.Parallel()

	a := incidentTypes.Report{Fields: map[string]string{"A": "one", "B": "two", "C": "three"}}
	b := incidentTypes.Report{Fields: map[string]string{"C": "three", "A": "one", "B": "two"}}
	if a.SearchText() != b.SearchText() {
		t.Error("search projection must not depend on map key order")
	}
}

func mustObjectID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		t.Fatalf("bad object id %s: %v", hex, err)
	}
	return id
}
