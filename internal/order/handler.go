package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coreyonbreeze/pbc-x402-api/internal/payment"
)

// ProofHeader carries the base64 payment proof on POST /order.
const ProofHeader = "X-Payment"

type Handler struct {
	pipeline *Pipeline
}

func NewHandler(pipeline *Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// --------------------------------------------------
// Place order (payment-gated)
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res := h.pipeline.PlaceOrder(c.Request.Context(), req, c.GetHeader(ProofHeader))

	switch res.Outcome {
	case OutcomeChallenge:
		// 402 with the challenge and a priced preview, so the client
		// can confirm what it is paying for before committing funds.
		c.JSON(http.StatusPaymentRequired, gin.H{
			"x402Version": 1,
			"error":       "payment required",
			"accepts":     []payment.Challenge{*res.Challenge},
			"preview":     res.Preview,
		})
	case OutcomeConfirmed:
		c.JSON(http.StatusCreated, res.Order)
	case OutcomeRejected:
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":  "payment rejected",
			"reason": res.Reason,
		})
	case OutcomeUnavailable:
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "payment backend unavailable, check PAYMENT_API_URL or retry later",
		})
	default:
		body := gin.H{"error": res.Reason}
		if len(res.UnknownIDs) > 0 {
			body["unknown_items"] = res.UnknownIDs
		}
		if len(res.MissingFields) > 0 {
			body["missing_fields"] = res.MissingFields
		}
		c.JSON(http.StatusBadRequest, body)
	}
}

// --------------------------------------------------
// Order lookup (no backing store)
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error":    "order lookup is not available: orders are not persisted",
		"order_id": c.Param("id"),
	})
}
