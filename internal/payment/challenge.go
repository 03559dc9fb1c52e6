package payment

import (
	"github.com/shopspring/decimal"

	"github.com/coreyonbreeze/pbc-x402-api/internal/config"
)

// Challenge is the x402 "exact" scheme payment requirement carried in
// a 402 response. Constructed per response, never persisted.
type Challenge struct {
	Scheme            string `json:"scheme"`
	Network           string `json:"network"`
	MaxAmountRequired string `json:"maxAmountRequired"`
	Resource          string `json:"resource"`
	PayTo             string `json:"payTo"`
	MaxTimeoutSeconds int    `json:"maxTimeoutSeconds"`
	Asset             string `json:"asset"`
	AssetDecimals     int    `json:"assetDecimals"`
}

func NewChallenge(cfg *config.Config, total decimal.Decimal, payTo string) Challenge {
	return Challenge{
		Scheme:            "exact",
		Network:           cfg.Network,
		MaxAmountRequired: total.StringFixed(2),
		Resource:          cfg.PublicBaseURL + "/order",
		PayTo:             payTo,
		MaxTimeoutSeconds: cfg.PayTimeoutSeconds,
		Asset:             AssetName,
		AssetDecimals:     AssetDecimals,
	}
}
