package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
)

// ErrorResponse is the wire shape of every error.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// Error translates a service error into an HTTP response. Unexpected errors
// are logged and returned as a generic 500.
func Error(c *gin.Context, err error, fallback string) {
	appErr := apperr.From(err, fallback)
	if appErr.Kind == apperr.KindInternal {
		log.Error().
			Err(appErr).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("request failed")
	}
	c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}
