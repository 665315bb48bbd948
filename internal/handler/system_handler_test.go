package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohirU-coder/landlord-property-service/internal/middleware"
	"github.com/JohirU-coder/landlord-property-service/internal/service"
)

func TestHealth(t *testing.T) {
	w, out := do(t, newTestRouter(&fakePropertyService{}), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", out["status"])
	assert.Equal(t, "property-api", out["service"])
	assert.Equal(t, "9.9.9", out["version"])
	_, err := time.Parse(time.RFC3339, out["timestamp"].(string))
	assert.NoError(t, err)
}

func TestHealthUsesClock(t *testing.T) {
	fixed := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	h := NewSystemHandler(ServiceInfo{Name: "property-api"}, &fakePropertyService{})
	h.Now = func() time.Time { return fixed }

	r := gin.New()
	h.RegisterRoutes(r)
	_, out := do(t, r, http.MethodGet, "/health", "")

	assert.Equal(t, "2026-10-15T12:00:00Z", out["timestamp"])
}

func TestDirectoryListsEndpoints(t *testing.T) {
	w, out := do(t, newTestRouter(&fakePropertyService{}), http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	list := out["endpoints"].([]any)
	assert.Len(t, list, len(endpoints))
	var paths []string
	for _, e := range list {
		paths = append(paths, e.(map[string]any)["path"].(string))
	}
	assert.Contains(t, paths, "/properties/stats")
	assert.NotContains(t, paths, "/properties/:id/photo")
}

func TestDirectoryIncludesPhotoRoutesWhenEnabled(t *testing.T) {
	h := NewRouter(RouterDeps{
		Info:       ServiceInfo{Name: "property-api", PhotoStorageConfigured: true},
		Properties: &fakePropertyService{},
		Photos:     &fakePhotoService{},
	})

	_, out := do(t, h, http.MethodGet, "/", "")
	assert.Len(t, out["endpoints"].([]any), len(endpoints)+len(photoEndpoints))
}

func TestSmokeTestEndpoint(t *testing.T) {
	w, out := do(t, newTestRouter(&fakePropertyService{}), http.MethodGet, "/test", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", out["environment"])
	assert.Equal(t, true, out["database_configured"])
	assert.Equal(t, false, out["photo_storage_configured"])
}

func TestSetupDatabase(t *testing.T) {
	svc := &fakePropertyService{}
	w, out := do(t, newTestRouter(svc), http.MethodGet, "/setup-database", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.setupCalled)
	assert.Equal(t, "properties", out["table"])
}

func TestSetupDatabaseFailureSurfacesStoreMessage(t *testing.T) {
	svc := &fakePropertyService{err: &service.AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       service.ErrCodeDatabaseSetup,
		Message:    `relation "users" does not exist`,
		Err:        errors.New(`relation "users" does not exist`),
	}}

	w, out := do(t, newTestRouter(svc), http.MethodGet, "/setup-database", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, service.ErrCodeDatabaseSetup, out["error"])
	assert.Equal(t, `relation "users" does not exist`, out["message"])
}

func TestUnknownRoute(t *testing.T) {
	w, out := do(t, newTestRouter(&fakePropertyService{}), http.MethodDelete, "/properties/1", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", out["error"])
}

func TestRequestIDIsAssignedAndEchoed(t *testing.T) {
	h := newTestRouter(&fakePropertyService{})

	w, _ := do(t, h, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := newRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}
