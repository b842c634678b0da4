package incident

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FIELD_TYPE_TEXT     = "text"
	FIELD_TYPE_NUMBER   = "number"
	FIELD_TYPE_SELECT   = "select"
	FIELD_TYPE_TEXTAREA = "textarea"
)

var validate = validator.New()

// FieldDefinition describes one site-configured custom field that appears, by
// name, on every report submission form. Report values are keyed by Name, not
// ID: renaming a definition detaches previously stored values.
type FieldDefinition struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name    string             `bson:"name" json:"name" validate:"required"`
	Type    string             `bson:"type" json:"type" validate:"required,oneof=text number select textarea"`
	Options []string           `bson:"options,omitempty" json:"options,omitempty"`
}

// Validate checks the definition against the documented field type set and the
// select/options coupling (options required and non-empty iff type is select).
func (f FieldDefinition) Validate() error {
	if err := validate.Struct(f); err != nil {
		return err
	}
	if f.Type == FIELD_TYPE_SELECT && len(f.Options) == 0 {
		return errors.New("options are required for select fields")
	}
	if f.Type != FIELD_TYPE_SELECT && len(f.Options) > 0 {
		return errors.New("options are only allowed for select fields")
	}
	return nil
}
