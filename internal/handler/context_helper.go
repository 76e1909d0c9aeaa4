package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

func int64Param(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}

func int64Query(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}

// firstQuery returns the first non-empty query value among names.
func firstQuery(c *gin.Context, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(c.Query(name)); v != "" {
			return v
		}
	}
	return ""
}
