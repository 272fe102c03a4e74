// file: internal/server/logger.go
// version: 2.0.0
// guid: 1d2e3f4a-5b6c-7d8e-9f0a-1b2c3d4e5f6a

package server

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// NewRequestID returns a fresh ULID string.
func NewRequestID() string {
	return ulid.Make().String()
}

// RequestID returns the id assigned by RequestLogging, or "" outside it.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogging assigns every request an id (reusing a client supplied
// X-Request-ID) and logs the request and its response.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = NewRequestID()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		rl := NewRequestLogger(id, c.ClientIP(), c.Request.UserAgent(), c.Request.Method, c.Request.URL.Path)
		rl.LogRequest()
		c.Next()
		rl.LogResponse(c.Writer.Status(), c.Writer.Size())
	}
}

// OperationLogger tracks the lifecycle of a handler operation
type OperationLogger struct {
	handler    string
	method     string
	path       string
	startTime  time.Time
	requestID  string
	resourceID string
	details    map[string]any
}

// NewOperationLogger creates a new operation logger
func NewOperationLogger(handler, method, path, requestID string) *OperationLogger {
	return &OperationLogger{
		handler:   handler,
		method:    method,
		path:      path,
		startTime: time.Now(),
		requestID: requestID,
		details:   make(map[string]any),
	}
}

// operationLogger builds an OperationLogger from the gin context.
func operationLogger(c *gin.Context, handler string) *OperationLogger {
	return NewOperationLogger(handler, c.Request.Method, c.FullPath(), RequestID(c))
}

// SetResourceID sets the resource ID being operated on
func (ol *OperationLogger) SetResourceID(id string) {
	ol.resourceID = id
}

// AddDetail adds a contextual detail to the operation log
func (ol *OperationLogger) AddDetail(key string, value any) {
	ol.details[key] = value
}

func (ol *OperationLogger) suffix() string {
	s := ""
	if ol.resourceID != "" {
		s = fmt.Sprintf(" (resource: %s)", ol.resourceID)
	}
	if len(ol.details) > 0 {
		s = fmt.Sprintf("%s %v", s, ol.details)
	}
	return s
}

// LogSuccess logs the successful completion of the operation
func (ol *OperationLogger) LogSuccess(statusCode int) {
	log.Printf("[INFO] %s: %s %s (%d) in %v%s [request-id: %s]",
		ol.handler, ol.method, ol.path, statusCode, time.Since(ol.startTime), ol.suffix(), ol.requestID)
}

// LogError logs an error that occurred during the operation
func (ol *OperationLogger) LogError(statusCode int, err error) {
	log.Printf("[ERROR] %s: %s %s (%d) in %v: %v%s [request-id: %s]",
		ol.handler, ol.method, ol.path, statusCode, time.Since(ol.startTime), err, ol.suffix(), ol.requestID)
}

// LogWarning logs a warning message
func (ol *OperationLogger) LogWarning(message string) {
	log.Printf("[WARN] %s: %s [request-id: %s]", ol.handler, message, ol.requestID)
}

// RequestLogger provides request-level logging
type RequestLogger struct {
	requestID string
	clientIP  string
	userAgent string
	method    string
	path      string
	startTime time.Time
}

// NewRequestLogger creates a new request logger
func NewRequestLogger(requestID, clientIP, userAgent, method, path string) *RequestLogger {
	return &RequestLogger{
		requestID: requestID,
		clientIP:  clientIP,
		userAgent: userAgent,
		method:    method,
		path:      path,
		startTime: time.Now(),
	}
}

// LogRequest logs the received request
func (rl *RequestLogger) LogRequest() {
	log.Printf("[DEBUG] request %s %s from %s [request-id: %s] [agent: %s]",
		rl.method, rl.path, rl.clientIP, rl.requestID, rl.userAgent)
}

// LogResponse logs the response sent
func (rl *RequestLogger) LogResponse(statusCode int, responseSize int) {
	log.Printf("[INFO] %s %s -> %d (%d bytes) in %v [request-id: %s]",
		rl.method, rl.path, statusCode, responseSize, time.Since(rl.startTime), rl.requestID)
}
