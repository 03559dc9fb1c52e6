package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// IntentClient is the narrow boundary to the payment-intent backend.
// Its wire shapes stay private; callers only see deposit addresses and
// status strings.
type IntentClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewIntentClient(apiKey, baseURL string) *IntentClient {
	return &IntentClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type intentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Asset    string `json:"asset"`
	Network  string `json:"network"`
}

type intentResponse struct {
	ID             string `json:"id"`
	DepositAddress string `json:"deposit_address"`
	Status         string `json:"status"`
}

// CreateIntent asks the backend for a single-use deposit address sized
// to the amount.
func (c *IntentClient) CreateIntent(ctx context.Context, amountCents int64, network string) (string, error) {
	payload, err := json.Marshal(intentRequest{
		Amount:   amountCents,
		Currency: "usd",
		Asset:    AssetName,
		Network:  network,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/payment_intents", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("payment backend error - Status: %d, Response: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("payment backend returned status %d", resp.StatusCode)
	}

	var ir intentResponse
	if err := json.Unmarshal(body, &ir); err != nil {
		return "", fmt.Errorf("failed to parse intent response: %w", err)
	}

	if ir.DepositAddress == "" {
		return "", fmt.Errorf("intent response missing deposit address")
	}

	return ir.DepositAddress, nil
}

// CheckStatus reports the backend's view of an intent.
func (c *IntentClient) CheckStatus(ctx context.Context, intentID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/payment_intents/"+intentID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("payment backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("payment backend returned status %d", resp.StatusCode)
	}

	var ir intentResponse
	if err := json.Unmarshal(body, &ir); err != nil {
		return "", fmt.Errorf("failed to parse intent response: %w", err)
	}

	return ir.Status, nil
}
