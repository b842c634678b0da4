package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

// Information a token encodes
type UserClaims struct {
	Role        string `json:"role,omitempty"`
	StoreNumber string `json:"store_number,omitempty"`
	Name        string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// ToActorContext maps the token claims onto the identity every operation
// receives. The role string is carried verbatim; unknown roles are rejected
// later by the access policy, not here.
func (c *UserClaims) ToActorContext() userTypes.ActorContext {
	return userTypes.ActorContext{
		UID:         c.Subject,
		Name:        c.Name,
		Role:        userTypes.Role(c.Role),
		StoreNumber: c.StoreNumber,
	}
}

func GenerateNewUserToken(
	expiresIn time.Duration,
	uid string,
	role string,
	storeNumber string,
	name string,
	secretKey string,
) (tokenString string, err error) {
	claims := UserClaims{
		role,
		storeNumber,
		name,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   uid,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateUserToken(tokenString string, secretKey string) (claims *UserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*UserClaims)
	valid = valid && token.Valid
	return
}
