package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/internal/model"
	"github.com/fibidydev01-sys/administrasi-pkbm-sub001/pkg/response"
)

// MustGetUserID extracts user_id from the context. When the auth middleware
// did not inject it, a 401 is written and ok is false; callers must return.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetRole extracts role from the context.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	role, _ := c.Get("role")
	s, _ := role.(string)
	return s == model.RoleAdmin
}
