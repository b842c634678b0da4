package incident

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is one entry of the two level report taxonomy. Subcategories are
// plain ordered strings, unique within their category (case-sensitive).
type Category struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Subcategories []string           `bson:"subcategories" json:"subcategories"`
}

// HasSubcategory reports whether name is a member of the subcategory list
// (exact match).
func (c Category) HasSubcategory(name string) bool {
	for _, s := range c.Subcategories {
		if s == name {
			return true
		}
	}
	return false
}
