package policy

import (
	"strings"

	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

// Visibility and mutation policy over reports. All functions are pure; they
// are evaluated before any filter or search predicate so that a store scoped
// admin can never reach another store's data through a crafted query.

// CanListReports reports whether the actor may request a report listing at
// all. An actor without a resolved role must be denied the listing, not given
// an empty result.
func CanListReports(actor userTypes.ActorContext) bool {
	_, ok := userTypes.ParseRole(string(actor.Role))
	return ok
}

// CanSeeReport applies the role based visibility rules:
// superadmin sees everything, admin sees reports of their own store (exact
// string match after trimming), user sees only their own submissions.
func CanSeeReport(actor userTypes.ActorContext, report incidentTypes.Report) bool {
	switch actor.Role {
	case userTypes.ROLE_SUPERADMIN:
		return true
	case userTypes.ROLE_ADMIN:
		return strings.TrimSpace(report.StoreNumber) == strings.TrimSpace(actor.StoreNumber)
	case userTypes.ROLE_USER:
		return report.ReporterID == actor.UID
	default:
		return false
	}
}

// CanMutateReport reports whether the actor may edit, toggle or delete the
// given report. Submitters can create reports but never mutate them once
// submitted.
func CanMutateReport(actor userTypes.ActorContext, report incidentTypes.Report) bool {
	switch actor.Role {
	case userTypes.ROLE_SUPERADMIN:
		return true
	case userTypes.ROLE_ADMIN:
		return CanSeeReport(actor, report)
	default:
		return false
	}
}

// CanManageTaxonomy reports whether the actor may create, rename or delete
// categories, field definitions and offenders.
func CanManageTaxonomy(actor userTypes.ActorContext) bool {
	return actor.Role == userTypes.ROLE_ADMIN || actor.Role == userTypes.ROLE_SUPERADMIN
}

// CanManageUsers gates the user management screens (role and store
// assignment). Cross store rights, superadmin only.
func CanManageUsers(actor userTypes.ActorContext) bool {
	return actor.Role == userTypes.ROLE_SUPERADMIN
}
