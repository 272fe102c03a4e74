// file: internal/server/middleware/request_size.go
// version: 1.1.0
// guid: f2129ae7-cf11-4888-bd4f-ab4b578f8f18

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes bounds profile and favorite payloads.
const DefaultMaxBodyBytes = 1 << 20

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// MaxRequestBodySize rejects bodies larger than limitBytes and caps the
// reader for requests without a Content-Length.
func MaxRequestBodySize(limitBytes int64) gin.HandlerFunc {
	if limitBytes < 1 {
		limitBytes = DefaultMaxBodyBytes
	}

	return func(c *gin.Context) {
		if !methodHasBody(c.Request.Method) {
			c.Next()
			return
		}

		if c.Request.ContentLength > limitBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":  "request body too large",
				"code":   "PAYLOAD_TOO_LARGE",
				"status": http.StatusRequestEntityTooLarge,
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limitBytes)
		c.Next()
	}
}
