package incident

import (
	"github.com/circlekay00/theft-app/pkg/policy"
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

// ReportStats carries per category and per offender report counts over the
// visibility scoped report set, for the dashboard charts.
type ReportStats struct {
	Total       int            `json:"total"`
	Pending     int            `json:"pending"`
	Complete    int            `json:"complete"`
	ByCategory  map[string]int `json:"byCategory"`
	ByOffender  map[string]int `json:"byOffender"`
	ByStore     map[string]int `json:"byStore"`
	BySubcategy map[string]int `json:"bySubcategory"`
}

// GetStats aggregates counts over the reports the actor may see. Categories
// are counted by resolved name, with the orphan fallback bucket.
func (s *Service) GetStats(actor userTypes.ActorContext) (ReportStats, error) {
	stats := ReportStats{
		ByCategory:  map[string]int{},
		ByOffender:  map[string]int{},
		ByStore:     map[string]int{},
		BySubcategy: map[string]int{},
	}

	if !policy.CanListReports(actor) {
		return stats, &AuthorizationError{Reason: "stats require a signed in user with a resolved role"}
	}

	reports, err := s.store.GetReports(scopeForActor(actor))
	if err != nil {
		return stats, &StoreError{Op: "load reports for stats", Err: err}
	}

	categories, err := s.store.GetCategories()
	if err != nil {
		return stats, &StoreError{Op: "load categories for stats", Err: err}
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID.Hex()] = c.Name
	}

	for _, r := range reports {
		if !policy.CanSeeReport(actor, r) {
			continue
		}
		stats.Total++
		switch r.Status {
		case incidentTypes.REPORT_STATUS_PENDING:
			stats.Pending++
		case incidentTypes.REPORT_STATUS_COMPLETE:
			stats.Complete++
		}
		stats.ByCategory[ResolveCategoryName(names, r.CategoryID)]++
		if r.Offender != "" {
			stats.ByOffender[r.Offender]++
		}
		if r.StoreNumber != "" {
			stats.ByStore[r.StoreNumber]++
		}
		if r.Subcategory != "" {
			stats.BySubcategy[r.Subcategory]++
		}
	}
	return stats, nil
}
