package middleware

import (
	"errors"
	"guruschool_backend/internal/model"
	"guruschool_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// RoleResolver loads the current role for a user id. The role inside the
// token is ignored for authorization so promotions and demotions take
// effect on the next request, not the next login.
type RoleResolver interface {
	FindByID(id string) (*model.Profile, error)
}

func AuthMiddleware(secret string, profiles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c, "missing token")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				util.Unauthorized(c, "token expired")
			} else {
				util.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		profile, err := profiles.FindByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Unauthorized(c, "account no longer exists")
			} else {
				util.LogInternalError(c, err)
			}
			c.Abort()
			return
		}
		if profile.Disabled {
			util.Forbidden(c, "account disabled")
			c.Abort()
			return
		}

		claims.Role = profile.Role
		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware gates a route group to the given roles. Super admins
// pass every gate.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c, "")
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == model.SuperAdmin {
				hasRole = true
				break
			}
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
