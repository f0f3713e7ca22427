package models

import "time"

type PaymentGateway string

const (
	GatewayOnline  PaymentGateway = "ONLINE_GATEWAY"
	GatewayOffline PaymentGateway = "OFFLINE"
)

type PaymentRecordStatus string

const (
	PaymentRecordPending   PaymentRecordStatus = "PENDING"
	PaymentRecordCompleted PaymentRecordStatus = "COMPLETED"
	PaymentRecordFailed    PaymentRecordStatus = "FAILED"
	PaymentRecordRefunded  PaymentRecordStatus = "REFUNDED"
)

// Payment is immutable evidence of a charge attempt. A booking may carry
// several (payment retries); the booking's own PaymentStatus is the summary
// consumers read.
type Payment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"not null;index" json:"booking_id"`

	// TransactionID is the gateway order id, or a synthesized offline id.
	TransactionID    string `gorm:"type:varchar(64);not null;uniqueIndex" json:"transaction_id"`
	GatewayPaymentID string `gorm:"type:varchar(64)" json:"gateway_payment_id,omitempty"`

	Amount         float64             `gorm:"not null" json:"amount"`
	Currency       string              `gorm:"type:varchar(8);not null;default:'INR'" json:"currency"`
	PaymentGateway PaymentGateway      `gorm:"type:varchar(20);not null" json:"payment_gateway"`
	Status         PaymentRecordStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	RefundAmount *float64   `json:"refund_amount,omitempty"`
	RefundDate   *time.Time `json:"refund_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
