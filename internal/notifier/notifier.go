// Package notifier emits booking-confirmed notifications and audit records
// over RabbitMQ. Delivery is best-effort: a publish failure is logged and
// never rolls back the booking that triggered it.
package notifier

import (
	"time"

	"github.com/chessdesk/tournament-booking/pkg/rabbitmq"
	"github.com/sirupsen/logrus"
)

const (
	routingBookingConfirmed = "booking.confirmed"
	routingAuditBooking     = "audit.booking"
)

type BookingConfirmed struct {
	BookingID        uint    `json:"booking_id"`
	BookingReference string  `json:"booking_reference"`
	UserID           string  `json:"user_id"`
	EventName        string  `json:"event_name"`
	Amount           float64 `json:"amount"`
	ParticipantCount int     `json:"participant_count"`
}

type AuditRecord struct {
	AdminID    string    `json:"admin_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uint      `json:"entity_id"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Notifier interface {
	BookingConfirmed(n BookingConfirmed)
	Audit(rec AuditRecord)
}

type publisher interface {
	Publish(routingKey string, payload any) error
}

type rabbitNotifier struct {
	pub publisher
}

func NewRabbitNotifier(pub *rabbitmq.Publisher) Notifier {
	return &rabbitNotifier{pub: pub}
}

func (n *rabbitNotifier) BookingConfirmed(msg BookingConfirmed) {
	if err := n.pub.Publish(routingBookingConfirmed, msg); err != nil {
		logrus.WithError(err).WithField("booking_id", msg.BookingID).
			Warn("failed to publish booking confirmation")
	}
}

func (n *rabbitNotifier) Audit(rec AuditRecord) {
	if rec.EntityType == "" {
		rec.EntityType = "BOOKING"
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now()
	}
	if err := n.pub.Publish(routingAuditBooking, rec); err != nil {
		logrus.WithError(err).WithField("entity_id", rec.EntityID).
			Warn("failed to publish audit record")
	}
}

// NoopNotifier is used when RabbitMQ is not configured (tests, local runs).
type NoopNotifier struct{}

func (NoopNotifier) BookingConfirmed(BookingConfirmed) {}
func (NoopNotifier) Audit(AuditRecord)                 {}
