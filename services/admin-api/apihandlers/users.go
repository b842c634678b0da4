package apihandlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	mw "github.com/circlekay00/theft-app/pkg/apihelpers/middlewares"
	jwthandling "github.com/circlekay00/theft-app/pkg/jwt-handling"
	userTypes "github.com/circlekay00/theft-app/pkg/types/user"
)

func (h *HttpEndpoints) AddUserManagementAPI(rg *gin.RouterGroup) {
	umGroup := rg.Group("/users")
	umGroup.Use(mw.GetAndValidateUserJWT(h.tokenSignKey))
	umGroup.Use(mw.RequireSuperadminUser())
	{
		umGroup.GET("", h.getAllUsers)
		umGroup.GET("/:userID", h.getUser)
		umGroup.PUT("/:userID", mw.RequirePayload(), h.updateUser)
	}
}

type userUpdatePayload struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Role        *string `json:"role"`
	StoreNumber *string `json:"storeNumber"`
}

func (h *HttpEndpoints) getAllUsers(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)

	slog.Info("getAllUsers: getting all users", slog.String("userID", token.Subject))

	users, err := h.userDBConn.GetUsers()
	if err != nil {
		slog.Error("getAllUsers: error retrieving users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error getting users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *HttpEndpoints) getUser(c *gin.Context) {
	userID := c.Param("userID")

	user, err := h.userDBConn.GetUserByID(userID)
	if err != nil {
		slog.Error("getUser: error retrieving user", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// updateUser changes role and store assignment of an account. The closed role
// set is enforced here: unknown role strings are rejected, not stored.
func (h *HttpEndpoints) updateUser(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	userID := c.Param("userID")

	var req userUpdatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("updateUser: error binding payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	set := bson.M{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
			return
		}
		set["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		set["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Role != nil {
		role, ok := userTypes.ParseRole(*req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
			return
		}
		if token.Subject == userID && role != userTypes.ROLE_SUPERADMIN {
			slog.Warn("updateUser: superadmin tried to demote itself", slog.String("userID", token.Subject))
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot change own role"})
			return
		}
		set["role"] = string(role)
	}
	if req.StoreNumber != nil {
		set["storeNumber"] = strings.TrimSpace(*req.StoreNumber)
	}

	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := h.userDBConn.UpdateUser(userID, set); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("updateUser: error updating user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error updating user"})
		return
	}

	slog.Info("updateUser: user updated", slog.String("userID", token.Subject), slog.String("updatedUserID", userID))
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}
