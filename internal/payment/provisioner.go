package payment

import (
	"context"
	"fmt"

	"github.com/coreyonbreeze/pbc-x402-api/internal/config"
)

// AddressSource is the slice of the payment backend the provisioner
// needs.
type AddressSource interface {
	CreateIntent(ctx context.Context, amountCents int64, network string) (string, error)
}

// DemoAddress is the placeholder destination served in demo mode. It
// is not a real deposit address; the mode is logged at startup and
// visible on /admin/payment.
const DemoAddress = "0x00000000000000000000000000000000DeaDBeef"

type Provisioner struct {
	mode    config.Mode
	network string
	source  AddressSource
}

func NewProvisioner(cfg *config.Config, source AddressSource) *Provisioner {
	return &Provisioner{
		mode:    cfg.PaymentMode,
		network: cfg.Network,
		source:  source,
	}
}

func (p *Provisioner) Mode() config.Mode {
	return p.mode
}

// Provision returns the deposit address for a challenge of the given
// amount. A retried request that already carries a proof reuses the
// destination embedded in it instead of minting a second address.
func (p *Provisioner) Provision(ctx context.Context, amountCents int64, proofHeader string) (string, error) {
	if proofHeader != "" {
		proof, err := DecodeProof(proofHeader)
		if err == nil && proof.Payload != nil && proof.Payload.Authorization != nil &&
			addressPattern.MatchString(proof.Payload.Authorization.To) {
			return proof.Payload.Authorization.To, nil
		}
	}

	if p.mode == config.ModeDemo {
		return DemoAddress, nil
	}

	addr, err := p.source.CreateIntent(ctx, amountCents, p.network)
	if err != nil {
		return "", fmt.Errorf("provision deposit address: %w", err)
	}
	return addr, nil
}
