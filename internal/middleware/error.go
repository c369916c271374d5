package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler turns errors attached to the gin context into responses. The
// status comes from the application error taxonomy: conflicts (slot taken,
// schedule overlap) map to 409, malformed input to 422, transient storage
// failures to 503.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		traceID := c.GetString(ContextRequestID)

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("trace_id", traceID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Request error")
		}

		lastErr := c.Errors.Last()
		status := http.StatusInternalServerError
		reason := ""
		message := lastErr.Error()

		if appErr, ok := apperrors.As(lastErr.Err); ok {
			status = appErr.StatusCode()
			reason = appErr.Reason
			message = appErr.Message
		}

		c.JSON(status, ErrorResponse{
			Code:    status,
			Reason:  reason,
			Message: message,
			TraceID: traceID,
		})
	}
}
