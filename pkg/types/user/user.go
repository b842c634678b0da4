package user

import (
	"strings"
)

// Role is the closed role set of the system. Anything else coming from the
// token or the users collection is treated as no role at all.
type Role string

const (
	ROLE_USER       Role = "user"
	ROLE_ADMIN      Role = "admin"
	ROLE_SUPERADMIN Role = "superadmin"
)

// ParseRole maps a raw role string onto the closed role set. The second return
// value is false for empty or unknown values.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(raw)) {
	case ROLE_USER:
		return ROLE_USER, true
	case ROLE_ADMIN:
		return ROLE_ADMIN, true
	case ROLE_SUPERADMIN:
		return ROLE_SUPERADMIN, true
	default:
		return "", false
	}
}

// User is the users collection document. The report core only consumes Role
// and StoreNumber; the rest exists for the admin user management screens.
type User struct {
	ID          string `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	Role        string `bson:"role" json:"role"`
	StoreNumber string `bson:"storeNumber" json:"storeNumber"`
}

// ActorContext carries the resolved identity of the caller into every
// lifecycle and policy call. It is always passed explicitly, never read from
// ambient state.
type ActorContext struct {
	UID         string
	Name        string
	Role        Role
	StoreNumber string
}
