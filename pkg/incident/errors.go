package incident

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ValidationError reports the caller supplied blank, duplicate or otherwise
// invalid input. It lists every offending field and is raised before anything
// is persisted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid or missing fields: " + strings.Join(e.Fields, ", ")
}

// NotFoundError is returned when an id no longer resolves to an entity; the
// caller should refresh and retry, not crash.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// AuthorizationError is raised before any store mutation is attempted when
// the role lacks permission or the visibility policy denies access.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// StoreError wraps failures of the underlying document store. Reads may be
// retried by the caller; writes must not be silently retried.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %s", e.Op, e.Err.Error())
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// wrapStoreErr maps driver level errors onto the documented error kinds:
// missing documents and malformed ids become NotFoundError, everything else a
// StoreError.
func wrapStoreErr(op string, resource string, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, primitive.ErrInvalidHex) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return &StoreError{Op: op, Err: err}
}

func isDuplicateKeyErr(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
