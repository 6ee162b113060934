package geography_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/ridematch/internal/geography"
	"github.com/richxcame/ridematch/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(h *geography.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestDetectProvince(t *testing.T) {
	resolver := geography.NewResolver(nil, nil, geography.ResolverConfig{})
	router := setupRouter(geography.NewHandler(resolver, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/provinces/detect?address=Xai-Xai", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := parseResponse(t, w)
	assert.True(t, response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "gaza", data["province"])
	assert.Equal(t, "Gaza", data["display_name"])
	assert.Equal(t, "south", data["region"])
	assert.Equal(t, float64(2), data["corridor_order"])
	assert.Equal(t, "dictionary", data["source"])
}

func TestDetectProvinceMissingAddress(t *testing.T) {
	resolver := geography.NewResolver(nil, nil, geography.ResolverConfig{})
	router := setupRouter(geography.NewHandler(resolver, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/provinces/detect", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseResponse(t, w)
	assert.False(t, response["success"].(bool))
	errInfo := response["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errInfo["error_code"])
}

func TestListProvincesFromDatabase(t *testing.T) {
	lister := new(mocks.MockProvinceLister)
	lister.On("ListProvinceOrdering", mock.Anything).Return([]geography.ProvinceOrdering{
		{Province: geography.Maputo, CorridorOrder: 1, Region: "south"},
		{Province: geography.Gaza, CorridorOrder: 2, Region: "south"},
	}, nil)

	router := setupRouter(geography.NewHandler(geography.NewResolver(nil, nil, geography.ResolverConfig{}), lister))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/provinces", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 2)
	lister.AssertExpectations(t)
}

func TestListProvincesFallsBackToBuiltInTable(t *testing.T) {
	lister := new(mocks.MockProvinceLister)
	lister.On("ListProvinceOrdering", mock.Anything).Return(nil, errors.New("db down"))

	router := setupRouter(geography.NewHandler(geography.NewResolver(nil, nil, geography.ResolverConfig{}), lister))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/provinces", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].([]interface{})
	require.Len(t, data, 11)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "maputo", first["province"])
	last := data[10].(map[string]interface{})
	assert.Equal(t, "niassa", last["province"])
}

func TestClearCacheEndpoint(t *testing.T) {
	cache := geography.NewMemoryCache()
	resolver := geography.NewResolver(nil, cache, geography.ResolverConfig{})
	router := setupRouter(geography.NewHandler(resolver, nil))

	resolver.Resolve(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "Beira")
	assert.Equal(t, 1, cache.Len())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/admin/province-cache/clear", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, cache.Len())
}
