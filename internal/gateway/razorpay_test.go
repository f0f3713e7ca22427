package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	g := NewRazorpayGateway("key", "topsecret", "")

	sig := sign("topsecret", "order_123", "pay_456")
	assert.True(t, g.VerifySignature("order_123", "pay_456", sig))
}

func TestVerifySignature_Tampered(t *testing.T) {
	g := NewRazorpayGateway("key", "topsecret", "")

	sig := sign("topsecret", "order_123", "pay_456")
	assert.False(t, g.VerifySignature("order_123", "pay_999", sig))
	assert.False(t, g.VerifySignature("order_123", "pay_456", sig+"00"))
	assert.False(t, g.VerifySignature("order_123", "pay_456", ""))
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	g := NewRazorpayGateway("key", "topsecret", "")

	sig := sign("othersecret", "order_123", "pay_456")
	assert.False(t, g.VerifySignature("order_123", "pay_456", sig))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		w.Write([]byte(`{"id":"order_abc"}`))
	}))
	defer srv.Close()

	g := NewRazorpayGateway("key", "secret", srv.URL)
	order, err := g.CreateOrder(context.Background(), 510, "INR", "CHESS-20260314-0042")

	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.OrderID)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewRazorpayGateway("key", "secret", srv.URL)
	order, err := g.CreateOrder(context.Background(), 510, "INR", "ref")

	assert.Error(t, err)
	assert.Nil(t, order)
}

func TestRefund(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay_456/refund", r.URL.Path)
		w.Write([]byte(`{"id":"rfnd_1","status":"processed"}`))
	}))
	defer srv.Close()

	g := NewRazorpayGateway("key", "secret", srv.URL)
	res, err := g.Refund(context.Background(), "pay_456", 510)

	require.NoError(t, err)
	assert.Equal(t, "rfnd_1", res.RefundID)
	assert.Equal(t, "processed", res.Status)
}

func TestToSubunits(t *testing.T) {
	assert.Equal(t, int64(51000), toSubunits(510))
	assert.Equal(t, int64(50050), toSubunits(500.5))
	assert.Equal(t, int64(0), toSubunits(0))
}
