package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/coreyonbreeze/pbc-x402-api/internal/pricing"
)

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

type DeliveryAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Request is the POST /order body. The payment proof travels in the
// X-Payment header, not here.
type Request struct {
	Items           []string         `json:"items"`
	Fulfillment     string           `json:"fulfillment"`
	Customer        Customer         `json:"customer"`
	PickupTime      string           `json:"pickup_time,omitempty"`
	DeliveryAddress *DeliveryAddress `json:"delivery_address,omitempty"`
	DeliveryWindow  string           `json:"delivery_window,omitempty"`
	Location        string           `json:"location,omitempty"`
}

// PaymentEvidence records what the accepted proof claimed. Orders are
// only ever created with verified evidence attached.
type PaymentEvidence struct {
	From        string `json:"from"`
	To          string `json:"to"`
	AmountCents int64  `json:"amount_cents"`
}

const StatusConfirmed = "confirmed"

// Order is the created resource returned on 201. Immutable after
// construction; not persisted anywhere.
type Order struct {
	OrderID         string             `json:"order_id"`
	Status          string             `json:"status"`
	Customer        Customer           `json:"customer"`
	Fulfillment     string             `json:"fulfillment"`
	PickupTime      string             `json:"pickup_time,omitempty"`
	DeliveryAddress *DeliveryAddress   `json:"delivery_address,omitempty"`
	DeliveryWindow  string             `json:"delivery_window,omitempty"`
	Location        string             `json:"location,omitempty"`
	Items           []pricing.LineItem `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	Tax             decimal.Decimal    `json:"tax"`
	Total           decimal.Decimal    `json:"total"`
	Payment         PaymentEvidence    `json:"payment"`
	CreatedAt       time.Time          `json:"created_at"`
}
