// file: internal/server/error_handler.go
// version: 2.0.0
// guid: 5d6e7f8a-9b0c-1d2e-3f4a-5b6c7d8e9f0a

package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jdfalk/bookshelf/internal/models"
)

// ErrorResponse provides a consistent error response format
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Status int    `json:"status"`
}

// SuccessResponse provides a consistent success response format
type SuccessResponse struct {
	Data any `json:"data"`
}

// ListResponse wraps a collection with its size
type ListResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// RespondWithError sends a standardized error response and logs the error
func RespondWithError(c *gin.Context, statusCode int, message string, code string) {
	logErrorWithContext(c, statusCode, message)

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:  message,
		Code:   code,
		Status: statusCode,
	})
}

// RespondWithBadRequest sends a 400 Bad Request error response
func RespondWithBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message, "BAD_REQUEST")
}

// RespondWithValidationError sends a 400 error for validation failures
func RespondWithValidationError(c *gin.Context, field string, reason string) {
	message := "validation error: " + field
	if reason != "" {
		message = message + " (" + reason + ")"
	}
	RespondWithError(c, http.StatusBadRequest, message, "VALIDATION_ERROR")
}

// RespondWithNotFound sends a 404 Not Found error response
func RespondWithNotFound(c *gin.Context, resourceType string, id string) {
	message := resourceType + " not found"
	if id != "" {
		message = message + ": " + id
	}
	RespondWithError(c, http.StatusNotFound, message, "NOT_FOUND")
}

// RespondWithInternalError sends a 500 Internal Server Error response
func RespondWithInternalError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// RespondWithConflict sends a 409 Conflict error response
func RespondWithConflict(c *gin.Context, message string) {
	RespondWithError(c, http.StatusConflict, message, "CONFLICT")
}

// RespondWithServiceError maps an error from the stores to a response.
// Validation and duplicate errors are the caller's fault; anything else
// is a storage failure.
func RespondWithServiceError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		RespondWithValidationError(c, verr.Field, verr.Reason)
	case errors.Is(err, models.ErrValidation):
		RespondWithValidationError(c, "request", err.Error())
	case errors.Is(err, models.ErrDuplicate):
		RespondWithConflict(c, err.Error())
	default:
		RespondWithInternalError(c, err.Error())
	}
}

// RespondWithSuccess sends a successful response with data
func RespondWithSuccess(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, SuccessResponse{
		Data: data,
	})
}

// RespondWithList sends a successful list response
func RespondWithList(c *gin.Context, items any, count int) {
	c.JSON(http.StatusOK, ListResponse{
		Items: items,
		Count: count,
	})
}

// RespondWithCreated sends a 201 Created response
func RespondWithCreated(c *gin.Context, data any) {
	RespondWithSuccess(c, http.StatusCreated, data)
}

// RespondWithOK sends a 200 OK response
func RespondWithOK(c *gin.Context, data any) {
	RespondWithSuccess(c, http.StatusOK, data)
}

// RespondWithNoContent sends a 204 No Content response
func RespondWithNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// logErrorWithContext logs an error with request context for debugging
func logErrorWithContext(c *gin.Context, statusCode int, message string) {
	logLevel := "WARN"
	if statusCode >= 500 {
		logLevel = "ERROR"
	}

	log.Printf("[%s] %s %s %d - %s (from %s) [request-id: %s]",
		logLevel, c.Request.Method, c.Request.URL.Path, statusCode, message, c.ClientIP(), RequestID(c))
}

// HandleBindError handles JSON binding errors with a consistent response
func HandleBindError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "required") || strings.Contains(errMsg, "binding") {
		RespondWithValidationError(c, "request body", errMsg)
	} else {
		RespondWithBadRequest(c, "invalid request: "+errMsg)
	}
	return true
}

// ParseQueryInt parses an integer query parameter with a default value
func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// ParseQueryBool parses a boolean query parameter with a default value
func ParseQueryBool(c *gin.Context, key string, defaultValue bool) bool {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.ToLower(valueStr) == "true" || valueStr == "1"
}
