package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JohirU-coder/landlord-property-service/internal/logger"
	"github.com/JohirU-coder/landlord-property-service/internal/model"
	"github.com/JohirU-coder/landlord-property-service/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type fakePropertyService struct {
	created     *model.CreatePropertyRequest
	createErr   error
	detail      *model.PropertyDetail
	getErr      error
	searched    *model.SearchParams
	searchRes   *model.SearchResult
	stats       *model.PropertyStats
	err         error
	setupCalled bool
}

func (f *fakePropertyService) SetupDatabase(ctx context.Context) error {
	f.setupCalled = true
	return f.err
}

func (f *fakePropertyService) CreateProperty(ctx context.Context, req *model.CreatePropertyRequest) (*model.Property, error) {
	f.created = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := req.Property()
	p.ID = 1
	return p, nil
}

func (f *fakePropertyService) GetProperty(ctx context.Context, id int64) (*model.PropertyDetail, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.detail, nil
}

func (f *fakePropertyService) SearchProperties(ctx context.Context, params model.SearchParams) (*model.SearchResult, error) {
	f.searched = &params
	if f.searchRes != nil {
		return f.searchRes, nil
	}
	return &model.SearchResult{
		Properties:     []model.PropertyListItem{},
		Pagination:     model.NewPagination(0, params.Limit, params.Offset),
		FiltersApplied: model.FiltersApplied{SearchFilters: params.SearchFilters, SortBy: params.SortBy},
	}, nil
}

func (f *fakePropertyService) Stats(ctx context.Context) (*model.PropertyStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func newTestRouter(svc PropertyService) http.Handler {
	return NewRouter(RouterDeps{
		Info:        ServiceInfo{Name: "property-api", Version: "9.9.9", Environment: "test", DatabaseConfigured: true},
		Properties:  svc,
		CORSOrigins: []string{"*"},
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestCreatePropertyReturns201(t *testing.T) {
	svc := &fakePropertyService{}
	h := newTestRouter(svc)

	body := `{"address":" 123 Main St ","city":"Austin","state":"TX","zip_code":"78701","landlord_id":5,"landlord_verified":true}`
	w, out := do(t, h, http.MethodPost, "/properties", body)

	require.Equal(t, http.StatusCreated, w.Code)
	prop := out["property"].(map[string]any)
	assert.Equal(t, "123 Main St", prop["address"])
	assert.Equal(t, false, prop["landlord_verified"])
	assert.Nil(t, prop["rent_amount"])
	assert.NotContains(t, prop, "landlord")
	assert.Equal(t, "123 Main St", svc.created.Address)
}

func TestCreatePropertyMalformedJSON(t *testing.T) {
	svc := &fakePropertyService{}
	w, out := do(t, newTestRouter(svc), http.MethodPost, "/properties", `{"address":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrCodeInvalidPayload, out["error"])
	assert.Nil(t, svc.created)
}

func TestCreatePropertyValidationErrors(t *testing.T) {
	svc := &fakePropertyService{}
	w, out := do(t, newTestRouter(svc), http.MethodPost, "/properties",
		`{"address":"1 A St","city":"Austin","state":"TX","zip_code":"123","landlord_id":5,"rent_amount":0}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrCodeValidation, out["error"])
	details := out["details"].([]any)
	require.Len(t, details, 2)
	var got []string
	for _, d := range details {
		got = append(got, d.(map[string]any)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"zip_code", "rent_amount"}, got)
	assert.Nil(t, svc.created)
}

func TestCreatePropertyServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not a landlord", &service.AppError{StatusCode: 403, Code: service.ErrCodeNotALandlord, Message: "user 6 is not a landlord"}, 403, service.ErrCodeNotALandlord},
		{"landlord missing", &service.AppError{StatusCode: 404, Code: service.ErrCodeLandlordNotFound, Message: "landlord 9 not found"}, 404, service.ErrCodeLandlordNotFound},
		{"duplicate", &service.AppError{StatusCode: 409, Code: service.ErrCodeDuplicateProperty, Message: "dup", Details: service.DuplicateDetails{ExistingPropertyID: 12}}, 409, service.ErrCodeDuplicateProperty},
		{"unexpected", errors.New("kaboom"), 500, service.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakePropertyService{createErr: tt.err}
			w, out := do(t, newTestRouter(svc), http.MethodPost, "/properties",
				`{"address":"1 A St","city":"Austin","state":"TX","zip_code":"78701","landlord_id":5}`)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, out["error"])
			assert.NotEmpty(t, out["message"])
			assert.NotContains(t, w.Body.String(), "kaboom")
		})
	}
}

func TestCreatePropertyDuplicateCarriesExistingID(t *testing.T) {
	svc := &fakePropertyService{createErr: &service.AppError{
		StatusCode: http.StatusConflict,
		Code:       service.ErrCodeDuplicateProperty,
		Message:    "a property with this address and zip code already exists",
		Details:    service.DuplicateDetails{ExistingPropertyID: 12},
	}}
	_, out := do(t, newTestRouter(svc), http.MethodPost, "/properties",
		`{"address":"1 A St","city":"Austin","state":"TX","zip_code":"78701","landlord_id":5}`)

	details := out["details"].(map[string]any)
	assert.Equal(t, float64(12), details["existing_property_id"])
}

func TestGetPropertyByID(t *testing.T) {
	first := "Ada"
	svc := &fakePropertyService{detail: &model.PropertyDetail{
		Property: model.Property{ID: 7, Address: "1 Elm", LandlordID: 5, CreatedAt: time.Now()},
		Landlord: model.Landlord{ID: 5, FirstName: &first},
	}}

	w, out := do(t, newTestRouter(svc), http.MethodGet, "/properties/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	prop := out["property"].(map[string]any)
	assert.Equal(t, float64(7), prop["id"])
	landlord := prop["landlord"].(map[string]any)
	assert.Equal(t, float64(5), landlord["id"])
	assert.Equal(t, "Ada", landlord["first_name"])
	assert.Contains(t, landlord, "email")
}

func TestGetPropertyByIDRejectsBadIDs(t *testing.T) {
	for _, id := range []string{"abc", "0", "-4", "1.5"} {
		t.Run(id, func(t *testing.T) {
			w, out := do(t, newTestRouter(&fakePropertyService{}), http.MethodGet, "/properties/"+id, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, service.ErrCodeInvalidID, out["error"])
		})
	}
}

func TestGetPropertyByIDNotFound(t *testing.T) {
	svc := &fakePropertyService{getErr: &service.AppError{StatusCode: 404, Code: service.ErrCodePropertyNotFound, Message: "property 8 not found"}}

	w, out := do(t, newTestRouter(svc), http.MethodGet, "/properties/8", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.ErrCodePropertyNotFound, out["error"])
}

func TestSearchPropertiesPassesParsedParams(t *testing.T) {
	svc := &fakePropertyService{}

	w, out := do(t, newTestRouter(svc), http.MethodGet, "/properties?min_bedrooms=2&sort_by=rent_asc&limit=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.searched)
	assert.Equal(t, 2, *svc.searched.MinBedrooms)
	assert.Equal(t, model.SortRentAsc, svc.searched.SortBy)
	assert.Equal(t, 10, svc.searched.Limit)
	assert.Nil(t, svc.searched.MinRent)

	assert.Equal(t, []any{}, out["properties"])
	pagination := out["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["current_page"])
	filters := out["filters_applied"].(map[string]any)
	assert.Equal(t, map[string]any{"min_bedrooms": float64(2), "sort_by": "rent_asc"}, filters)
}

func TestSearchPropertiesRejectsInvertedRentBeforeQuerying(t *testing.T) {
	svc := &fakePropertyService{}

	w, out := do(t, newTestRouter(svc), http.MethodGet, "/properties?min_rent=2000&max_rent=1000", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, service.ErrCodeValidation, out["error"])
	assert.Nil(t, svc.searched)
}

func TestGetStats(t *testing.T) {
	svc := &fakePropertyService{stats: &model.PropertyStats{TotalProperties: 0}}

	w, out := do(t, newTestRouter(svc), http.MethodGet, "/properties/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := out["statistics"].(map[string]any)
	assert.Equal(t, float64(0), stats["total_properties"])
	assert.Equal(t, float64(0), stats["verification_rate"])
	assert.Contains(t, stats, "average_rent")
	assert.Nil(t, stats["average_rent"])
}

func TestGetStatsFailure(t *testing.T) {
	svc := &fakePropertyService{err: &service.AppError{StatusCode: 500, Code: service.ErrCodeInternal, Message: "failed to compute property statistics", Err: errors.New("db down")}}

	w, out := do(t, newTestRouter(svc), http.MethodGet, "/properties/stats", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, service.ErrCodeInternal, out["error"])
	assert.NotContains(t, w.Body.String(), "db down")
}
