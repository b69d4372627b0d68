package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/forecast"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/report"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/service"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/session"
	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	service  *service.ForecastService
	sessions *session.Store
}

func NewForecastHandler(svc *service.ForecastService, sessions *session.Store) *ForecastHandler {
	return &ForecastHandler{service: svc, sessions: sessions}
}

type forecastRequest struct {
	CurrentStock map[string]float64 `json:"current_stock"`
}

type outcomeResponse struct {
	Outcome domain.Outcome `json:"outcome"`
	Display report.View    `json:"display"`
}

// ForecastAll forecasts every product in the session's ledger.
func (h *ForecastHandler) ForecastAll(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req forecastRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	stocks := make(map[domain.Product]float64, len(req.CurrentStock))
	for name, qty := range req.CurrentStock {
		product, ok := domain.ParseProduct(name)
		if !ok {
			respondError(c, fmt.Errorf("%w: %q", service.ErrUnknownProduct, name))
			return
		}
		stocks[product] = qty
	}

	rep, err := h.service.ForecastAll(c.Request.Context(), sess.Ledger, stocks)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]outcomeResponse, len(rep.Outcomes))
	for i, o := range rep.Outcomes {
		items[i] = outcomeResponse{Outcome: o, Display: report.Render(o)}
	}

	resp := gin.H{
		"status":       rep.Status,
		"generated_at": rep.GeneratedAt,
		"outcomes":     items,
	}
	if rep.Status == domain.StatusEmptyLedger {
		resp["message"] = report.MsgEmptyLedger
	}
	c.JSON(http.StatusOK, resp)
}

// ForecastProduct forecasts one product, with a recommendation when current_stock is given.
func (h *ForecastHandler) ForecastProduct(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var stock *float64
	if raw := strings.TrimSpace(c.Query("current_stock")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "current_stock must be a number"})
			return
		}
		if err := forecast.ValidateStock(v); err != nil {
			respondError(c, err)
			return
		}
		stock = &v
	}

	outcome, err := h.service.ForecastProduct(c.Request.Context(), sess.Ledger, c.Param("product"), stock)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcomeResponse{Outcome: outcome, Display: report.Render(outcome)})
}
