package handlers

import (
	"rbac-dashboard/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// fail renders an error from the taxonomy as a structured JSON response.
// Internal faults are logged with request context; the client only sees the
// sanitized message.
func fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= 500 {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Msg("request failed")
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
