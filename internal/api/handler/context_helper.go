package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Giovannytrotta/Programa-SENTYA/pkg/response"
)

// MustGetUserID extracts user_id from the Gin context. Returns false
// and writes a 401 when the auth middleware did not inject it; the
// caller should return immediately on ok=false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts role from the Gin context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "not authenticated")
		return "", false
	}
	return s, true
}
