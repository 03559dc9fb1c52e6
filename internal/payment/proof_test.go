package payment

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
)

const (
	fromAddr = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	toAddr   = "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
)

func encodeProof(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal proof: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func validProof(t *testing.T, auth map[string]interface{}) string {
	t.Helper()
	return encodeProof(t, map[string]interface{}{
		"x402Version": 1,
		"payload": map[string]interface{}{
			"signature":     "0xsig",
			"authorization": auth,
		},
	})
}

const testNow = int64(1_700_000_000)

func TestVerifyRejectsNonBase64Header(t *testing.T) {
	v := NewVerifier(false)

	res := v.Verify("not base64 at all!!!", 1359, testNow)
	if res.Valid {
		t.Fatal("expected rejection")
	}
	if res.Reason != ReasonMalformed {
		t.Errorf("expected reason %q, got %q", ReasonMalformed, res.Reason)
	}
}

func TestVerifyRejectsNonJSONPayload(t *testing.T) {
	v := NewVerifier(false)
	header := base64.StdEncoding.EncodeToString([]byte("this is not json"))

	res := v.Verify(header, 1359, testNow)
	if res.Valid || res.Reason != ReasonMalformed {
		t.Errorf("expected %q, got valid=%v reason=%q", ReasonMalformed, res.Valid, res.Reason)
	}
}

func TestVerifyRejectsMissingAuthorization(t *testing.T) {
	v := NewVerifier(false)
	header := encodeProof(t, map[string]interface{}{
		"x402Version": 1,
		"payload":     map[string]interface{}{"signature": "0xsig"},
	})

	res := v.Verify(header, 1359, testNow)
	if res.Reason != ReasonMissingPayload {
		t.Errorf("expected reason %q, got %q", ReasonMissingPayload, res.Reason)
	}
}

func TestVerifyRejectsInvalidAddress(t *testing.T) {
	v := NewVerifier(false)
	header := validProof(t, map[string]interface{}{
		"from": "0xshort",
		"to":   toAddr,
	})

	res := v.Verify(header, 1359, testNow)
	if res.Reason != ReasonInvalidAddress {
		t.Errorf("expected reason %q, got %q", ReasonInvalidAddress, res.Reason)
	}
}

// Structural checks run in order: a proof with both a bad address and
// a missing signature reports the address first.
func TestVerifyChecksAddressBeforeSignature(t *testing.T) {
	v := NewVerifier(false)
	header := encodeProof(t, map[string]interface{}{
		"payload": map[string]interface{}{
			"authorization": map[string]interface{}{
				"from": "junk",
				"to":   "junk",
			},
		},
	})

	res := v.Verify(header, 1359, testNow)
	if res.Reason != ReasonInvalidAddress {
		t.Errorf("expected reason %q, got %q", ReasonInvalidAddress, res.Reason)
	}
}

func TestVerifyRejectsMissingSignature(t *testing.T) {
	v := NewVerifier(false)
	header := encodeProof(t, map[string]interface{}{
		"payload": map[string]interface{}{
			"authorization": map[string]interface{}{
				"from": fromAddr,
				"to":   toAddr,
			},
		},
	})

	res := v.Verify(header, 1359, testNow)
	if res.Reason != ReasonMissingSignature {
		t.Errorf("expected reason %q, got %q", ReasonMissingSignature, res.Reason)
	}
}

func TestVerifyRejectsExpiredProof(t *testing.T) {
	v := NewVerifier(false)
	header := validProof(t, map[string]interface{}{
		"from":        fromAddr,
		"to":          toAddr,
		"value":       "13590000",
		"validBefore": testNow - 60,
	})

	res := v.Verify(header, 1359, testNow)
	if res.Reason != ReasonExpired {
		t.Errorf("expected reason %q, got %q", ReasonExpired, res.Reason)
	}
}

func TestVerifyRejectsNotYetValidProof(t *testing.T) {
	v := NewVerifier(false)
	header := validProof(t, map[string]interface{}{
		"from":       fromAddr,
		"to":         toAddr,
		"value":      "13590000",
		"validAfter": testNow + 60,
	})

	res := v.Verify(header, 1359, testNow)
	if res.Reason != ReasonNotYetValid {
		t.Errorf("expected reason %q, got %q", ReasonNotYetValid, res.Reason)
	}
}

func TestVerifyAcceptsMatchingProof(t *testing.T) {
	v := NewVerifier(false)
	header := validProof(t, map[string]interface{}{
		"from":  fromAddr,
		"to":    toAddr,
		"value": "13590000",
	})

	res := v.Verify(header, 1359, testNow)
	if !res.Valid {
		t.Fatalf("expected valid proof, got reason %q", res.Reason)
	}
	if res.From != fromAddr || res.To != toAddr {
		t.Errorf("expected addresses carried through, got from=%s to=%s", res.From, res.To)
	}
	if res.AmountCents != 1359 {
		t.Errorf("expected 1359 cents, got %d", res.AmountCents)
	}
}

// Default behavior: a beyond-tolerance mismatch warns but still
// verifies. Strict mode turns it into a rejection.
func TestVerifyAmountMismatchWarnsByDefault(t *testing.T) {
	v := NewVerifier(false)
	header := validProof(t, map[string]interface{}{
		"from":  fromAddr,
		"to":    toAddr,
		"value": "99000000", // 99.00, way off
	})

	res := v.Verify(header, 1359, testNow)
	if !res.Valid {
		t.Fatalf("expected lenient verifier to pass, got reason %q", res.Reason)
	}
}

func TestVerifyStrictAmountRejectsMismatch(t *testing.T) {
	v := NewVerifier(true)
	header := validProof(t, map[string]interface{}{
		"from":  fromAddr,
		"to":    toAddr,
		"value": "99000000",
	})

	res := v.Verify(header, 1359, testNow)
	if res.Valid {
		t.Fatal("expected strict verifier to reject")
	}
	if res.Reason != ReasonAmountMismatch {
		t.Errorf("expected reason %q, got %q", ReasonAmountMismatch, res.Reason)
	}
}

func TestVerifyStrictAmountAllowsOneCentTolerance(t *testing.T) {
	v := NewVerifier(true)
	header := validProof(t, map[string]interface{}{
		"from":  fromAddr,
		"to":    toAddr,
		"value": "13600000", // 13.60 vs expected 13.59
	})

	res := v.Verify(header, 1359, testNow)
	if !res.Valid {
		t.Fatalf("expected 1-cent tolerance to pass, got reason %q", res.Reason)
	}
}

func TestAssetValueToCents(t *testing.T) {
	cases := []struct {
		value string
		cents int64
	}{
		{"13590000", 1359},
		{"1000000", 100},
		{"2500000", 250},
		{"10000", 1},
		{"0", 0},
	}

	for _, tc := range cases {
		got, err := AssetValueToCents(tc.value)
		if err != nil {
			t.Fatalf("value %s: unexpected error: %v", tc.value, err)
		}
		if got != tc.cents {
			t.Errorf("value %s: expected %d cents, got %d", tc.value, tc.cents, got)
		}
	}
}

func TestAssetValueToCentsRejectsBadInput(t *testing.T) {
	for _, value := range []string{"abc", "-5000000", "12.5.3"} {
		if _, err := AssetValueToCents(value); err == nil {
			t.Errorf("value %q: expected error", value)
		}
	}
}

func TestDecodeProofRoundTrip(t *testing.T) {
	header := validProof(t, map[string]interface{}{
		"from":  fromAddr,
		"to":    toAddr,
		"value": "13590000",
		"nonce": "0x01",
	})

	proof, err := DecodeProof(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	auth := proof.Payload.Authorization
	if auth.From != fromAddr || auth.To != toAddr || auth.Value != "13590000" {
		t.Errorf("authorization fields lost in decode: %+v", auth)
	}
	if !strings.HasPrefix(auth.Nonce, "0x") {
		t.Errorf("nonce lost in decode: %q", auth.Nonce)
	}
}
