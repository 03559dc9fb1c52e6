package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coreyonbreeze/pbc-x402-api/internal/catalog"
	"github.com/coreyonbreeze/pbc-x402-api/internal/config"
	"github.com/coreyonbreeze/pbc-x402-api/internal/payment"
)

// CatalogLoader reloads the menu from its backing store. Nil when the
// deployment runs on the built-in catalog.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// StatusSource checks a payment intent with the backend.
type StatusSource interface {
	CheckStatus(ctx context.Context, intentID string) (string, error)
}

type Handler struct {
	cfg    *config.Config
	store  *catalog.Store
	loader CatalogLoader
	status StatusSource
}

func NewHandler(cfg *config.Config, store *catalog.Store, loader CatalogLoader, status StatusSource) *Handler {
	return &Handler{cfg: cfg, store: store, loader: loader, status: status}
}

// --------------------------------------------------
// Payment configuration state (auditable demo mode)
// --------------------------------------------------
func (h *Handler) PaymentInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mode":          h.cfg.PaymentMode,
		"network":       h.cfg.Network,
		"asset":         payment.AssetName,
		"strict_amount": h.cfg.StrictAmount,
	})
}

// --------------------------------------------------
// Check a payment intent with the backend
// --------------------------------------------------
func (h *Handler) IntentStatus(c *gin.Context) {
	if h.cfg.PaymentMode == config.ModeDemo {
		c.JSON(http.StatusConflict, gin.H{"error": "demo mode: no payment backend configured"})
		return
	}

	status, err := h.status.CheckStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"intent_id": c.Param("id"), "status": status})
}

// --------------------------------------------------
// Reload catalog from the database
// --------------------------------------------------
func (h *Handler) ReloadCatalog(c *gin.Context) {
	if h.loader == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no database configured, catalog is built-in"})
		return
	}

	cat, err := h.loader.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.store.Swap(cat)
	c.JSON(http.StatusOK, gin.H{
		"message": "catalog reloaded",
		"items":   len(cat.Items()),
	})
}
