// README: Shared response and error mapping for the HTTP handlers.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyager/internal/modules/assistant"
	"voyager/internal/modules/trip"
	"voyager/internal/modules/usage"
	"voyager/internal/modules/voice"
)

func writeJSON(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, trip.ErrBadRequest), errors.Is(err, assistant.ErrEmptyMessage):
		status = http.StatusBadRequest
	case errors.Is(err, voice.ErrMediaAccess):
		status = http.StatusForbidden
	case errors.Is(err, trip.ErrNotFound), errors.Is(err, assistant.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, trip.ErrInvalidState),
		errors.Is(err, assistant.ErrBusy),
		errors.Is(err, voice.ErrBusy),
		errors.Is(err, voice.ErrIdle):
		status = http.StatusConflict
	case errors.Is(err, usage.ErrInsufficientTokens):
		status = http.StatusTooManyRequests
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
