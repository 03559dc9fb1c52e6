package payment

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"regexp"

	"github.com/shopspring/decimal"
)

var errValueNegative = errors.New("negative payment value")

// Settlement asset metadata. On-chain amounts use 6-decimal fixed
// point regardless of network.
const (
	AssetName     = "USDC"
	AssetDecimals = 6
)

// Proof is a decoded X-Payment header: base64-wrapped JSON evidence of
// an on-chain payment authorization. Parsed once per request, never
// stored.
type Proof struct {
	X402Version int           `json:"x402Version"`
	Scheme      string        `json:"scheme,omitempty"`
	Network     string        `json:"network,omitempty"`
	Payload     *ProofPayload `json:"payload"`
}

type ProofPayload struct {
	Signature     string         `json:"signature"`
	Authorization *Authorization `json:"authorization"`
}

type Authorization struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value,omitempty"`
	ValidAfter  *int64 `json:"validAfter,omitempty"`
	ValidBefore *int64 `json:"validBefore,omitempty"`
	Nonce       string `json:"nonce,omitempty"`
}

type VerificationResult struct {
	Valid       bool
	From        string
	To          string
	AmountCents int64
	Reason      string
}

// Verification failure reasons. Stable strings: clients and tests
// match on them, and the check order keeps them specific (structural
// failures report before semantic ones).
const (
	ReasonMalformed        = "malformed proof"
	ReasonMissingPayload   = "missing payload/authorization"
	ReasonInvalidAddress   = "invalid address"
	ReasonMissingSignature = "missing signature"
	ReasonAmountMismatch   = "amount mismatch"
	ReasonNotYetValid      = "not yet valid"
	ReasonExpired          = "expired"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func DecodeProof(header string) (*Proof, error) {
	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return nil, err
	}
	var p Proof
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Verifier runs structural and semantic checks on payment proofs.
// It does NOT verify signatures against a chain; that step belongs to
// a settlement service and is deferred.
type Verifier struct {
	// StrictAmount rejects claimed amounts outside tolerance instead
	// of logging a warning.
	StrictAmount bool
}

func NewVerifier(strictAmount bool) *Verifier {
	return &Verifier{StrictAmount: strictAmount}
}

const amountToleranceCents = 1

func (v *Verifier) Verify(header string, expectedCents int64, nowUnix int64) VerificationResult {
	proof, err := DecodeProof(header)
	if err != nil {
		return fail(ReasonMalformed)
	}

	if proof.Payload == nil || proof.Payload.Authorization == nil {
		return fail(ReasonMissingPayload)
	}
	auth := proof.Payload.Authorization

	if !addressPattern.MatchString(auth.From) || !addressPattern.MatchString(auth.To) {
		return fail(ReasonInvalidAddress)
	}

	if proof.Payload.Signature == "" {
		return fail(ReasonMissingSignature)
	}

	var amountCents int64
	if auth.Value != "" {
		amountCents, err = AssetValueToCents(auth.Value)
		if err != nil {
			return fail(ReasonMalformed)
		}
		if diff := amountCents - expectedCents; diff > amountToleranceCents || diff < -amountToleranceCents {
			if v.StrictAmount {
				return fail(ReasonAmountMismatch)
			}
			// TODO: make strict the default once a refund path exists.
			log.Printf("⚠️ payment amount mismatch: claimed %d cents, expected %d cents", amountCents, expectedCents)
		}
	}

	if auth.ValidAfter != nil && nowUnix < *auth.ValidAfter {
		return fail(ReasonNotYetValid)
	}
	if auth.ValidBefore != nil && nowUnix > *auth.ValidBefore {
		return fail(ReasonExpired)
	}

	return VerificationResult{
		Valid:       true,
		From:        auth.From,
		To:          auth.To,
		AmountCents: amountCents,
	}
}

func fail(reason string) VerificationResult {
	return VerificationResult{Reason: reason}
}

// AssetValueToCents converts a 6-decimal fixed-point asset amount
// ("13590000" = 13.59 USDC) into currency cents. The scale factor is
// the difference between asset decimals and cents; getting it wrong
// mis-reconciles every payment by orders of magnitude, so the
// conversion lives here with its own tests.
func AssetValueToCents(value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, errValueNegative
	}
	cents := d.Shift(-AssetDecimals).Mul(decimal.NewFromInt(100)).Round(0)
	return cents.IntPart(), nil
}
