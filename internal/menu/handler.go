package menu

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coreyonbreeze/pbc-x402-api/internal/catalog"
	"github.com/coreyonbreeze/pbc-x402-api/internal/pricing"
)

// Handler serves the free, read-only menu endpoints.
type Handler struct {
	store *catalog.Store
}

func NewHandler(store *catalog.Store) *Handler {
	return &Handler{store: store}
}

// --------------------------------------------------
// Full menu with tax policy
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	cat := h.store.Current()
	c.JSON(http.StatusOK, gin.H{
		"items": cat.Items(),
		"tax":   cat.Tax(),
	})
}

// --------------------------------------------------
// Single item
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	item, ok := h.store.Current().Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// --------------------------------------------------
// Price preview: /menu/calculate?items=a,b,c
// --------------------------------------------------
func (h *Handler) Calculate(c *gin.Context) {
	raw := c.Query("items")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items query parameter is required"})
		return
	}

	ids := strings.Split(raw, ",")
	cat := h.store.Current()

	summary := pricing.Calculate(cat, ids)
	if len(summary.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "no recognized items",
			"unknown_items": pricing.UnknownIDs(cat, ids),
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
