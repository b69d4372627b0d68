package handlers

import (
	"net/http"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/ledger"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/session"
	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	sessions *session.Store
}

func NewSalesHandler(sessions *session.Store) *SalesHandler {
	return &SalesHandler{sessions: sessions}
}

type addSaleRequest struct {
	Date     string `json:"date" binding:"required"`
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity"`
}

// GetProducts returns the product picker catalog.
func (h *SalesHandler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": domain.Catalog()})
}

// CreateSession starts a new session with an empty ledger.
func (h *SalesHandler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{
		"session_id": sess.ID.String(),
		"created_at": sess.CreatedAt.UTC(),
	})
}

// AddSale records one sale in the session ledger.
func (h *SalesHandler) AddSale(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req addSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		respondError(c, err)
		return
	}

	event, err := sess.Ledger.Add(domain.SaleInput{
		Date:     date,
		Product:  domain.Product(req.Product),
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetSales lists the session's sales history in entry order.
func (h *SalesHandler) GetSales(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": sess.Ledger.Snapshot()})
}
