package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detectQuery struct {
	Address string `form:"address" validate:"required,max=20"`
}

type routeBody struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

func serve(handler gin.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	router := gin.New()
	router.Handle(method, "/t", handler)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBindQuery(t *testing.T) {
	handler := func(c *gin.Context) {
		var q detectQuery
		if !BindQuery(c, &q) {
			return
		}
		c.String(http.StatusOK, q.Address)
	}

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantBody string
	}{
		{"valid", "/t?address=Beira", http.StatusOK, "Beira"},
		{"missing", "/t", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"too long", "/t?address=" + strings.Repeat("x", 21), http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestBindJSON(t *testing.T) {
	handler := func(c *gin.Context) {
		var body routeBody
		if !BindJSON(c, &body) {
			return
		}
		c.String(http.StatusOK, body.From+"-"+body.To)
	}

	w := serve(handler, http.MethodPost, "/t", `{"from":"Maputo","to":"Inhambane"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Maputo-Inhambane", w.Body.String())

	w = serve(handler, http.MethodPost, "/t", `{"from":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")

	w = serve(handler, http.MethodPost, "/t", `{"from":"Maputo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestParseUUIDQuery(t *testing.T) {
	var got *uuid.UUID
	handler := func(c *gin.Context) {
		id, ok := ParseUUIDQuery(c, "driverId")
		if !ok {
			return
		}
		got = id
		c.Status(http.StatusNoContent)
	}

	w := serve(handler, http.MethodGet, "/t", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Nil(t, got)

	id := uuid.New()
	w = serve(handler, http.MethodGet, "/t?driverId="+id.String(), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)

	w = serve(handler, http.MethodGet, "/t?driverId=driver-7", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid driverId")
}
