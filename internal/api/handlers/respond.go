package handlers

import (
	"errors"
	"net/http"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/forecast"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/ledger"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/service"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, service.ErrUnknownProduct):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrUnknownProduct),
		errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, forecast.ErrInvalidStock):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
