package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RazorpayGateway talks to a Razorpay-compatible REST API. Amounts are sent
// in the currency's smallest unit (paise for INR).
type RazorpayGateway struct {
	keyID   string
	secret  string
	baseURL string
	client  *http.Client
}

func NewRazorpayGateway(keyID, secret, baseURL string) *RazorpayGateway {
	return &RazorpayGateway{
		keyID:   keyID,
		secret:  secret,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type razorpayOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type razorpayOrderResponse struct {
	ID string `json:"id"`
}

type razorpayRefundRequest struct {
	Amount int64 `json:"amount"`
}

type razorpayRefundResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount float64, currency, receiptRef string) (*Order, error) {
	payload := razorpayOrderRequest{
		Amount:   toSubunits(amount),
		Currency: currency,
		Receipt:  receiptRef,
	}

	var resp razorpayOrderResponse
	if err := g.post(ctx, "/orders", payload, &resp); err != nil {
		return nil, fmt.Errorf("gateway create order: %w", err)
	}
	return &Order{OrderID: resp.ID}, nil
}

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" with the
// shared secret and compares in constant time.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (g *RazorpayGateway) Refund(ctx context.Context, paymentID string, amount float64) (*RefundResult, error) {
	payload := razorpayRefundRequest{Amount: toSubunits(amount)}

	var resp razorpayRefundResponse
	path := fmt.Sprintf("/payments/%s/refund", paymentID)
	if err := g.post(ctx, path, payload, &resp); err != nil {
		return nil, fmt.Errorf("gateway refund: %w", err)
	}
	return &RefundResult{RefundID: resp.ID, Status: resp.Status}, nil
}

func (g *RazorpayGateway) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.secret)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func toSubunits(amount float64) int64 {
	return int64(amount*100 + 0.5)
}
