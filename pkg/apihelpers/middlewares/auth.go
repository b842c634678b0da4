package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/circlekay00/theft-app/pkg/jwt-handling"
	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

const HeaderAuthorization = "Authorization"

// GetAndValidateUserJWT is a middleware that extracts the JWT from the request
// and validates it
func GetAndValidateUserJWT(tokenSignKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		parsedToken, ok, err := jwthandling.ValidateUserToken(token, tokenSignKey)
		if err != nil || !ok {
			slog.Warn("token validation failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "error during token validation"})
			c.Abort()
			return
		}
		c.Set("validatedToken", parsedToken)
	}
}

// RequireAdminUser expects a validated token and blocks requests whose role
// is neither admin nor superadmin.
func RequireAdminUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := validatedClaims(c)
		if !ok {
			return
		}

		role, ok := userTypes.ParseRole(claims.Role)
		if !ok || (role != userTypes.ROLE_ADMIN && role != userTypes.ROLE_SUPERADMIN) {
			slog.Warn("non admin user tried to access admin endpoint", slog.String("userID", claims.Subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access to admin endpoint"})
			return
		}
	}
}

// RequireSuperadminUser expects a validated token and blocks everyone but
// superadmins.
func RequireSuperadminUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := validatedClaims(c)
		if !ok {
			return
		}

		role, ok := userTypes.ParseRole(claims.Role)
		if !ok || role != userTypes.ROLE_SUPERADMIN {
			slog.Warn("non superadmin user tried to access superadmin endpoint", slog.String("userID", claims.Subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access to superadmin endpoint"})
			return
		}
	}
}

// RequirePayload blocks post requests that have no payload attached
func RequirePayload() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength == 0 {
			slog.Debug("RequirePayload Middleware: payload missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "payload missing"})
			return
		}
		c.Next()
	}
}

func validatedClaims(c *gin.Context) (*jwthandling.UserClaims, bool) {
	tokenValue, ok := c.Get("validatedToken")
	if !ok {
		slog.Warn("validatedToken not found in context")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return nil, false
	}
	claims, ok := tokenValue.(*jwthandling.UserClaims)
	if !ok {
		slog.Warn("validatedToken has unexpected type")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return nil, false
	}
	return claims, true
}

func extractToken(c *gin.Context) (string, error) {
	req := c.Request

	var token string
	tokens, ok := req.Header[HeaderAuthorization]
	if ok && len(tokens) > 0 {
		token = tokens[0]
		token = strings.TrimPrefix(token, "Bearer ")
		if len(token) == 0 {
			return token, errors.New("no token found in Authorization header")
		}
	} else {
		return token, errors.New("no Authorization header found")
	}
	return token, nil
}
