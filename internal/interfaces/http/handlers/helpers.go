package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"caseflow/internal/shared/authorization"
	"caseflow/internal/shared/constants"
	"caseflow/internal/shared/errors"
)

// sanitizer strips all HTML from free-text inputs before they reach storage
// or notification bodies.
var sanitizer = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return sanitizer.Sanitize(s)
}

// actingIdentity reads the authenticated user and role set by the auth
// middleware.
func actingIdentity(c *gin.Context) (uint, authorization.UserRole, error) {
	rawID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, "", errors.NewForbiddenError("missing authenticated user")
	}
	userID, ok := rawID.(uint)
	if !ok {
		return 0, "", errors.NewForbiddenError("invalid authenticated user")
	}

	role := authorization.ParseUserRole(c.GetString(constants.ContextKeyUserRole))
	return userID, role, nil
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name)
	}
	return uint(id), nil
}

func parseUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, errors.NewValidationError("invalid " + key)
	}
	v := uint(val)
	return &v, nil
}
