// file: internal/server/middleware/request_size_test.go
// version: 1.1.0
// guid: 8f5ed221-2f04-49aa-86f7-f63fa1732b2d

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMethodHasBody(t *testing.T) {
	t.Parallel()

	assert.True(t, methodHasBody(http.MethodPost))
	assert.True(t, methodHasBody(http.MethodPut))
	assert.True(t, methodHasBody(http.MethodPatch))
	assert.False(t, methodHasBody(http.MethodGet))
	assert.False(t, methodHasBody(http.MethodDelete))
}

func TestMaxRequestBodySize_Middleware(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MaxRequestBodySize(8))
	router.PUT("/api/v1/profile", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/profile", func(c *gin.Context) { c.Status(http.StatusOK) })

	over := httptest.NewRequest(http.MethodPut, "/api/v1/profile", bytes.NewReader(bytes.Repeat([]byte("a"), 9)))
	overResp := httptest.NewRecorder()
	router.ServeHTTP(overResp, over)
	assert.Equal(t, http.StatusRequestEntityTooLarge, overResp.Code)
	assert.Contains(t, overResp.Body.String(), "PAYLOAD_TOO_LARGE")

	under := httptest.NewRequest(http.MethodPut, "/api/v1/profile", bytes.NewReader(bytes.Repeat([]byte("a"), 8)))
	underResp := httptest.NewRecorder()
	router.ServeHTTP(underResp, under)
	assert.Equal(t, http.StatusOK, underResp.Code)

	get := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, get)
	assert.Equal(t, http.StatusOK, getResp.Code)
}

func TestMaxRequestBodySize_DefaultLimit(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(MaxRequestBodySize(0))
	router.POST("/api/v1/favorites", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites", bytes.NewReader(make([]byte, DefaultMaxBodyBytes+1)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}
