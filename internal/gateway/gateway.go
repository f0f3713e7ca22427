// Package gateway defines the contract a payment gateway integration must
// satisfy and a Razorpay-compatible implementation of it.
package gateway

import "context"

type Order struct {
	OrderID string
}

type RefundResult struct {
	RefundID string
	Status   string
}

// Gateway is the three-operation contract the reconciliation layer consumes.
// Signature verification is a keyed hash over "orderID|paymentID".
type Gateway interface {
	CreateOrder(ctx context.Context, amount float64, currency, receiptRef string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	Refund(ctx context.Context, paymentID string, amount float64) (*RefundResult, error)
}
