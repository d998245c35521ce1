package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/pkg/jwt"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/redis"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/response"
)

// JWTAuth extracts and verifies the Access Token from
// Authorization: Bearer <token>. rdb may be nil; the blacklist check is
// then skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "token is invalid or has expired")
			c.Abort()
			return
		}

		if rdb != nil && claims.ID != "" {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, "token has been revoked")
				c.Abort()
				return
			}
			// Redis errors degrade to allowing the request through.
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("center_id", claims.CenterID)

		c.Next()
	}
}

// RoleAuth checks that the authenticated user holds one of the allowed
// roles.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "insufficient permissions")
		c.Abort()
	}
}
