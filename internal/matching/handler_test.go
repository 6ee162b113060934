package matching_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/ridematch/internal/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(svc *matching.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	matching.NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestSearchRidesRequiresEndpoints(t *testing.T) {
	_, _, _, tiers := mockTiers()
	router := setupRouter(matching.NewService(newResolver(), tiers, testSearchConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rides/search", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseResponse(t, w)
	assert.False(t, response["success"].(bool))
	assert.Equal(t, "VALIDATION_ERROR", response["error"].(map[string]interface{})["error_code"])
}

func TestSearchRidesAppliesFilters(t *testing.T) {
	smart, _, _, tiers := mockTiers()
	affordable := match(newRide("Xai-Xai", "Maxixe", 500), 100, matching.ExactMatch, matching.StrategySmartFunction)
	expensive := match(newRide("Xai-Xai", "Maxixe", 700), 100, matching.ExactMatch, matching.StrategySmartFunction)
	smart.On("Attempt", mock.Anything, mock.Anything).Return([]matching.MatchResult{expensive, affordable}, nil)

	router := setupRouter(matching.NewService(newResolver(), tiers, testSearchConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rides/search?from=Xai-Xai&to=Maxixe&maxPrice=600", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])

	rides := data["rides"].([]interface{})
	require.Len(t, rides, 1)
	ride := rides[0].(map[string]interface{})
	assert.Equal(t, affordable.ID.String(), ride["id"])
	assert.Equal(t, float64(100), ride["compatibility_score"])
	assert.Equal(t, "exact_match", ride["match_type"])
	assert.Equal(t, "smart_function", ride["search_strategy"])
}

func TestSearchRidesFiltersByDriver(t *testing.T) {
	smart, _, _, tiers := mockTiers()
	wanted := match(newRide("Maputo", "Inhambane", 900), 100, matching.ExactMatch, matching.StrategySmartFunction)
	other := match(newRide("Maputo", "Inhambane", 800), 100, matching.ExactMatch, matching.StrategySmartFunction)
	smart.On("Attempt", mock.Anything, mock.Anything).Return([]matching.MatchResult{other, wanted}, nil)

	router := setupRouter(matching.NewService(newResolver(), tiers, testSearchConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/rides/search?from=Maputo&to=Inhambane&driverId="+wanted.DriverID.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	rides := parseResponse(t, w)["data"].(map[string]interface{})["rides"].([]interface{})
	require.Len(t, rides, 1)
	assert.Equal(t, wanted.ID.String(), rides[0].(map[string]interface{})["id"])
}

func TestSearchRidesRejectsMalformedDriverID(t *testing.T) {
	_, _, _, tiers := mockTiers()
	router := setupRouter(matching.NewService(newResolver(), tiers, testSearchConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rides/search?from=Maputo&driverId=driver-7", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, parseResponse(t, w)["success"].(bool))
}

func TestSearchRidesSmartDisabled(t *testing.T) {
	smart, province, _, tiers := mockTiers()
	province.On("Attempt", mock.Anything, mock.Anything).Return(nil, matching.ErrEmptyResult)

	router := setupRouter(matching.NewService(newResolver(), tiers, testSearchConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rides/search?from=Beira&smart=false", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["total"])
	assert.Empty(t, data["rides"])

	smart.AssertNotCalled(t, "Attempt", mock.Anything, mock.Anything)
	province.AssertNumberOfCalls(t, "Attempt", 1)
}

func TestSearchRidesRejectsInvertedPriceRange(t *testing.T) {
	_, _, _, tiers := mockTiers()
	router := setupRouter(matching.NewService(newResolver(), tiers, testSearchConfig()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rides/search?from=Beira&minPrice=900&maxPrice=100", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateCompatibilityEndpoint(t *testing.T) {
	router := setupRouter(matching.NewService(newResolver(), nil, testSearchConfig()))

	body, _ := json.Marshal(map[string]string{
		"driver_from":    "Maputo",
		"driver_to":      "Sofala",
		"passenger_from": "Gaza",
		"passenger_to":   "Inhambane",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rides/compatibility", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := parseResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(90), data["score"])
	assert.Equal(t, "same_segment", data["match_type"])
	assert.Equal(t, 0.9, data["ratio"])
	assert.Equal(t, false, data["is_exact_match"])
}

func TestCalculateCompatibilityValidation(t *testing.T) {
	router := setupRouter(matching.NewService(newResolver(), nil, testSearchConfig()))

	body, _ := json.Marshal(map[string]string{"driver_from": "Maputo"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rides/compatibility", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
