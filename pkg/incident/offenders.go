package incident

import (
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/circlekay00/theft-app/pkg/policy"
	incidentTypes "github.com/circlekay00/theft-app/pkg/types/incident"
	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

// ListOffenders returns the known offender registry ordered by name.
func (s *Service) ListOffenders() ([]incidentTypes.Offender, error) {
	offenders, err := s.store.GetOffenders()
	if err != nil {
		return nil, &StoreError{Op: "list offenders", Err: err}
	}
	if offenders == nil {
		offenders = []incidentTypes.Offender{}
	}
	return offenders, nil
}

func (s *Service) CreateOffender(actor userTypes.ActorContext, name string) (incidentTypes.Offender, error) {
	var offender incidentTypes.Offender
	if !policy.CanManageTaxonomy(actor) {
		return offender, &AuthorizationError{Reason: "managing offenders requires an admin role"}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return offender, &ValidationError{Fields: []string{"name"}}
	}
	if _, err := s.store.GetOffenderByName(name); err == nil {
		return offender, &ValidationError{Fields: []string{"name"}}
	} else if err != mongo.ErrNoDocuments {
		return offender, &StoreError{Op: "check offender name", Err: err}
	}

	offender = incidentTypes.Offender{Name: name}
	if err := s.store.CreateOffender(&offender); err != nil {
		if isDuplicateKeyErr(err) {
			return offender, &ValidationError{Fields: []string{"name"}}
		}
		return offender, &StoreError{Op: "create offender", Err: err}
	}
	return offender, nil
}

// RenameOffender only touches the registry entry. Reports store the offender
// as a plain string copy, so historic reports keep the old name.
func (s *Service) RenameOffender(actor userTypes.ActorContext, offenderID string, newName string) error {
	if !policy.CanManageTaxonomy(actor) {
		return &AuthorizationError{Reason: "managing offenders requires an admin role"}
	}

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &ValidationError{Fields: []string{"name"}}
	}

	if err := s.store.RenameOffender(offenderID, newName); err != nil {
		if isDuplicateKeyErr(err) {
			return &ValidationError{Fields: []string{"name"}}
		}
		return wrapStoreErr("rename offender", "offender", offenderID, err)
	}
	return nil
}

func (s *Service) DeleteOffender(actor userTypes.ActorContext, offenderID string) error {
	if !policy.CanManageTaxonomy(actor) {
		return &AuthorizationError{Reason: "managing offenders requires an admin role"}
	}

	if err := s.store.DeleteOffender(offenderID); err != nil {
		return wrapStoreErr("delete offender", "offender", offenderID, err)
	}
	return nil
}
