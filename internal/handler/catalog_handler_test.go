package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

func TestCatalogHandler(t *testing.T) {
	r, f := newTestRouter(nil)

	rec := do(r, http.MethodGet, "/api/v1/departments", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/api/v1/levels?departmentCode=INFO", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "INFO", f.catalog.lastDepartment)

	f.catalog.err = appErrors.Clone(appErrors.ErrNotFound, "department not found")
	rec = do(r, http.MethodGet, "/api/v1/levels?departmentCode=NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterWithAuth(t *testing.T) {
	var role models.UserRole
	auth := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("currentUser", &models.JWTClaims{UserID: "u-1", Role: role})
		c.Next()
	}
	r, _ := newTestRouter(auth)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/api/v1/departments", nil).Code)

	role = models.RoleStaff
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/departments", nil, "Authorization", "Bearer x").Code)
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodDelete, "/api/v1/students/1", nil, "Authorization", "Bearer x").Code)

	role = models.RoleAdmin
	assert.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/api/v1/students/1", nil, "Authorization", "Bearer x").Code)

	role = "GUEST"
	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/v1/departments", nil, "Authorization", "Bearer x").Code)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestMetricsHandlerReady(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewMetricsHandler(nil, map[string]Pinger{"postgres": stubPinger{}})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	h = NewMetricsHandler(nil, map[string]Pinger{"redis": PingFunc(func(context.Context) error { return errors.New("down") })})
	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
	h.Ready(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "down")

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	h.Prometheus(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
