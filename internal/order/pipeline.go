package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coreyonbreeze/pbc-x402-api/internal/catalog"
	"github.com/coreyonbreeze/pbc-x402-api/internal/clock"
	"github.com/coreyonbreeze/pbc-x402-api/internal/config"
	"github.com/coreyonbreeze/pbc-x402-api/internal/payment"
	"github.com/coreyonbreeze/pbc-x402-api/internal/pricing"
)

// Outcome tags the terminal state of a place-order attempt.
type Outcome int

const (
	OutcomeChallenge Outcome = iota
	OutcomeConfirmed
	OutcomeRejected
	OutcomeClientError
	OutcomeUnavailable
)

// Result is the tagged outcome of PlaceOrder. Exactly one of
// Challenge/Order is set, matching the Outcome.
type Result struct {
	Outcome       Outcome
	Challenge     *payment.Challenge
	Preview       *pricing.Summary
	Order         *Order
	Reason        string
	UnknownIDs    []string
	MissingFields []string
}

// Pipeline drives an order from priced, through payment, to confirmed.
// Everything it touches is request-scoped except the catalog store,
// which is read-only per request.
type Pipeline struct {
	store       *catalog.Store
	provisioner *payment.Provisioner
	verifier    *payment.Verifier
	cfg         *config.Config
	clock       clock.Clock
}

func NewPipeline(
	store *catalog.Store,
	provisioner *payment.Provisioner,
	verifier *payment.Verifier,
	cfg *config.Config,
	clk clock.Clock,
) *Pipeline {
	return &Pipeline{
		store:       store,
		provisioner: provisioner,
		verifier:    verifier,
		cfg:         cfg,
		clock:       clk,
	}
}

func (p *Pipeline) PlaceOrder(ctx context.Context, req Request, proofHeader string) Result {
	if len(req.Items) == 0 {
		return Result{Outcome: OutcomeClientError, Reason: "items must not be empty"}
	}

	cat := p.store.Current()
	summary := pricing.Calculate(cat, req.Items)
	if len(summary.Items) == 0 {
		return Result{
			Outcome:    OutcomeClientError,
			Reason:     "no recognized items",
			UnknownIDs: pricing.UnknownIDs(cat, req.Items),
		}
	}

	if proofHeader == "" {
		payTo, err := p.provisioner.Provision(ctx, summary.TotalCents, "")
		if err != nil {
			return Result{Outcome: OutcomeUnavailable, Reason: "payment backend unavailable"}
		}
		ch := payment.NewChallenge(p.cfg, summary.Total, payTo)
		return Result{Outcome: OutcomeChallenge, Challenge: &ch, Preview: &summary}
	}

	now := p.clock.Now()
	vr := p.verifier.Verify(proofHeader, summary.TotalCents, now.Unix())
	if !vr.Valid {
		return Result{Outcome: OutcomeRejected, Reason: vr.Reason}
	}

	// Payment settles before fulfillment fields are checked: the
	// protocol pays first, then the resource is delivered or the caller
	// is told why it can't be. A paid request can still fail here and
	// there is no refund path yet.
	if missing := missingFulfillmentFields(req); len(missing) > 0 {
		return Result{
			Outcome:       OutcomeClientError,
			Reason:        "missing required fields",
			MissingFields: missing,
		}
	}

	ord := &Order{
		OrderID:         newOrderID(now),
		Status:          StatusConfirmed,
		Customer:        req.Customer,
		Fulfillment:     req.Fulfillment,
		PickupTime:      req.PickupTime,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryWindow:  req.DeliveryWindow,
		Location:        req.Location,
		Items:           summary.Items,
		Subtotal:        summary.Subtotal,
		Tax:             summary.Tax,
		Total:           summary.Total,
		Payment: PaymentEvidence{
			From:        vr.From,
			To:          vr.To,
			AmountCents: vr.AmountCents,
		},
		CreatedAt: now,
	}

	return Result{Outcome: OutcomeConfirmed, Order: ord}
}

func missingFulfillmentFields(req Request) []string {
	var missing []string

	if req.Customer.Name == "" {
		missing = append(missing, "customer.name")
	}
	if req.Customer.Phone == "" {
		missing = append(missing, "customer.phone")
	}

	switch req.Fulfillment {
	case "pickup":
		if req.PickupTime == "" {
			missing = append(missing, "pickup_time")
		}
	case "delivery":
		addr := req.DeliveryAddress
		if addr == nil || addr.Street == "" || addr.City == "" || addr.State == "" || addr.Zip == "" {
			missing = append(missing, "delivery_address")
		}
		if req.DeliveryWindow == "" {
			missing = append(missing, "delivery_window")
		}
	default:
		missing = append(missing, "fulfillment")
	}

	return missing
}

// newOrderID mints an id unique within this process: UTC timestamp for
// ordering plus a uuid fragment against same-second collisions.
func newOrderID(now time.Time) string {
	return fmt.Sprintf("ord-%s-%s", now.UTC().Format("20060102150405"), uuid.NewString()[:8])
}
