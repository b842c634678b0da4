package incident

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Offender is a label only: reports copy the name as a free string, there is
// no referential integrity between the registry and Report.Offender.
type Offender struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
}
