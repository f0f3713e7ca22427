package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
	PaymentFailed   PaymentStatus = "FAILED"
)

type Booking struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	BookingReference string        `gorm:"type:varchar(20);not null;uniqueIndex" json:"booking_reference"`
	EventID          uint          `gorm:"not null;index" json:"event_id"`
	UserID           string        `gorm:"not null;index" json:"user_id"`
	BookingStatus    BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"booking_status"`
	PaymentStatus    PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`

	// AmountPaid is the quote frozen at creation; never recomputed.
	AmountPaid float64 `gorm:"not null" json:"amount_paid"`

	Participants []BookingParticipant `gorm:"foreignKey:BookingID" json:"participants,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// BookingParticipant links a booking to a participant, optionally within a
// category. The join carries no state beyond the foreign keys.
type BookingParticipant struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	BookingID     uint  `gorm:"not null;index" json:"booking_id"`
	ParticipantID uint  `gorm:"not null;index" json:"participant_id"`
	CategoryID    *uint `json:"category_id,omitempty"`
}

// CanConfirm reports whether the booking may transition to CONFIRMED/PAID.
// Legal from {PENDING,PENDING} and {PENDING,FAILED} (payment retry).
func (b *Booking) CanConfirm() bool {
	return b.BookingStatus == BookingPending &&
		(b.PaymentStatus == PaymentPending || b.PaymentStatus == PaymentFailed)
}

// IsConfirmedPaid reports whether the booking is already settled; a repeat
// confirmation of such a booking is a no-op, not an error.
func (b *Booking) IsConfirmedPaid() bool {
	return b.BookingStatus == BookingConfirmed && b.PaymentStatus == PaymentPaid
}

// CanCancel reports whether cancellation is legal. CANCELLED and COMPLETED
// are terminal for cancellation purposes.
func (b *Booking) CanCancel() bool {
	return b.BookingStatus != BookingCancelled && b.BookingStatus != BookingCompleted
}

// CanComplete reports whether the booking may be administratively closed out
// after the event; only CONFIRMED+PAID bookings qualify.
func (b *Booking) CanComplete() bool {
	return b.BookingStatus == BookingConfirmed && b.PaymentStatus == PaymentPaid
}
