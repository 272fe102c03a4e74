// file: internal/server/error_handler_test.go
// version: 2.0.0
// guid: 6e7f8a9b-0c1d-2e3f-4a5b-6c7d8e9f0a1b

package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/bookshelf/internal/models"
	"github.com/stretchr/testify/assert"
)

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestRespondWithHelpers(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *gin.Context)
		status int
		code   string
		body   string
	}{
		{"bad request", func(c *gin.Context) { RespondWithBadRequest(c, "test error") }, http.StatusBadRequest, "BAD_REQUEST", "test error"},
		{"not found", func(c *gin.Context) { RespondWithNotFound(c, "profile", "") }, http.StatusNotFound, "NOT_FOUND", "profile not found"},
		{"not found with id", func(c *gin.Context) { RespondWithNotFound(c, "favorite", "x") }, http.StatusNotFound, "NOT_FOUND", "favorite not found: x"},
		{"internal", func(c *gin.Context) { RespondWithInternalError(c, "disk full") }, http.StatusInternalServerError, "INTERNAL_ERROR", "disk full"},
		{"conflict", func(c *gin.Context) { RespondWithConflict(c, "dup") }, http.StatusConflict, "CONFLICT", "dup"},
		{"validation", func(c *gin.Context) { RespondWithValidationError(c, "name", "must not be empty") }, http.StatusBadRequest, "VALIDATION_ERROR", "validation error: name (must not be empty)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("/")
			tt.call(c)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
			assert.Contains(t, w.Body.String(), `"code":"`+tt.code+`"`)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestRespondWithServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &models.ValidationError{Field: "genre", Reason: "must not be empty"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrapped validation", fmt.Errorf("set profile: %w", &models.ValidationError{Field: "name", Reason: "x"}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"duplicate", fmt.Errorf("add: %w", &models.DuplicateError{Key: "k"}), http.StatusConflict, "CONFLICT"},
		{"storage", errors.New("pebble: closed"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("/")
			RespondWithServiceError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.code)
		})
	}
}

func TestRespondWithSuccessShapes(t *testing.T) {
	c, w := newTestContext("/")
	RespondWithCreated(c, map[string]string{"key": "a"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"data":{"key":"a"}}`, w.Body.String())

	c, w = newTestContext("/")
	RespondWithList(c, []string{"a", "b"}, 2)
	assert.JSONEq(t, `{"items":["a","b"],"count":2}`, w.Body.String())
}

func TestHandleBindError(t *testing.T) {
	c, _ := newTestContext("/")
	assert.False(t, HandleBindError(c, nil))

	c, w := newTestContext("/")
	assert.True(t, HandleBindError(c, errors.New("unexpected EOF")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_REQUEST")

	c, w = newTestContext("/")
	assert.True(t, HandleBindError(c, errors.New("Key: 'x' Error:Field validation for 'x' failed on the 'required' tag")))
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestParseQueryInt(t *testing.T) {
	c, _ := newTestContext("/?k=5&bad=x")
	assert.Equal(t, 5, ParseQueryInt(c, "k", 3))
	assert.Equal(t, 3, ParseQueryInt(c, "missing", 3))
	assert.Equal(t, 3, ParseQueryInt(c, "bad", 3))
}

func TestParseQueryBool(t *testing.T) {
	c, _ := newTestContext("/?a=true&b=1&c=no")
	assert.True(t, ParseQueryBool(c, "a", false))
	assert.True(t, ParseQueryBool(c, "b", false))
	assert.False(t, ParseQueryBool(c, "c", true))
	assert.True(t, ParseQueryBool(c, "missing", true))
}
