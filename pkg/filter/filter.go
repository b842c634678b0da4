package filter

import (
	"sort"
	"strings"
	"time"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
)

// FilterSpec is the multi criteria filter admins apply over the already
// visibility scoped report list. Zero values mean "no constraint", never
// "match empty".
type FilterSpec struct {
	Text        string
	Status      string
	CategoryID  string
	StoreNumber string
	From        time.Time
	To          time.Time
}

// IsZero reports whether no predicate is set.
func (f FilterSpec) IsZero() bool {
	return f.Text == "" && f.Status == "" && f.CategoryID == "" &&
		f.StoreNumber == "" && f.From.IsZero() && f.To.IsZero()
}

// Matches evaluates the predicates in short-circuit order, cheapest first:
// status, category, store number, date range, free text.
func (f FilterSpec) Matches(r incidentTypes.Report) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.CategoryID != "" && r.CategoryID != f.CategoryID {
		return false
	}
	if f.StoreNumber != "" && strings.TrimSpace(r.StoreNumber) != strings.TrimSpace(f.StoreNumber) {
		return false
	}
	if !f.From.IsZero() && r.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.CreatedAt.After(f.To) {
		return false
	}
	if f.Text != "" {
		needle := strings.ToLower(strings.TrimSpace(f.Text))
		if needle != "" && !strings.Contains(r.SearchText(), needle) {
			return false
		}
	}
	return true
}

// Apply filters the list and returns it sorted by createdAt descending, ties
// broken by id ascending for determinism. The input slice is not modified.
func (f FilterSpec) Apply(reports []incidentTypes.Report) []incidentTypes.Report {
	out := make([]incidentTypes.Report, 0, len(reports))
	for _, r := range reports {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	SortReports(out)
	return out
}

// SortReports orders reports by createdAt descending, then id ascending.
func SortReports(reports []incidentTypes.Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		}
		return reports[i].ID.Hex() < reports[j].ID.Hex()
	})
}

// Paginate is a pure slicing operation over the filtered, sorted list. Pages
// are zero based; an out of range page yields an empty, non-nil slice.
func Paginate(reports []incidentTypes.Report, page int, pageSize int) []incidentTypes.Report {
	if pageSize <= 0 || page < 0 {
		return []incidentTypes.Report{}
	}
	start := page * pageSize
	if start >= len(reports) {
		return []incidentTypes.Report{}
	}
	end := start + pageSize
	if end > len(reports) {
		end = len(reports)
	}
	return reports[start:end]
}

// DayStart floors t to 00:00:00 of its calendar day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd ceils t to 23:59:59 of its calendar day (inclusive range end).
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
