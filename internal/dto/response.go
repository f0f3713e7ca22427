package dto

import (
	"time"

	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/chessdesk/tournament-booking/internal/pricing"
)

type BookingResponse struct {
	ID               uint                 `json:"id"`
	BookingReference string               `json:"booking_reference"`
	EventID          uint                 `json:"event_id"`
	UserID           string               `json:"user_id"`
	BookingStatus    models.BookingStatus `json:"booking_status"`
	PaymentStatus    models.PaymentStatus `json:"payment_status"`
	AmountPaid       float64              `json:"amount_paid"`
	ParticipantCount int                  `json:"participant_count"`
	Quote            *pricing.Quote       `json:"quote,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

type PaymentResponse struct {
	ID               uint                       `json:"id"`
	BookingID        uint                       `json:"booking_id"`
	TransactionID    string                     `json:"transaction_id"`
	GatewayPaymentID string                     `json:"gateway_payment_id,omitempty"`
	Amount           float64                    `json:"amount"`
	Currency         string                     `json:"currency"`
	PaymentGateway   models.PaymentGateway      `json:"payment_gateway"`
	Status           models.PaymentRecordStatus `json:"status"`
	RefundAmount     *float64                   `json:"refund_amount,omitempty"`
	RefundDate       *time.Time                 `json:"refund_date,omitempty"`
}

type EventResponse struct {
	ID                  uint                  `json:"id"`
	OrganizerID         string                `json:"organizer_id"`
	Name                string                `json:"name"`
	StartDate           time.Time             `json:"start_date"`
	MaxCapacity         *int                  `json:"max_capacity,omitempty"`
	CurrentBookings     int                   `json:"current_bookings"`
	SlotsAvailable      int                   `json:"slots_available"`
	EntryFee            float64               `json:"entry_fee"`
	IsOnline            bool                  `json:"is_online"`
	GovtConcessionType  models.ConcessionType `json:"govt_concession_type"`
	GovtConcessionValue float64               `json:"govt_concession_value"`
	EventStatus         models.EventStatus    `json:"event_status"`
	Categories          []models.Category     `json:"categories,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToBookingResponse(b *models.Booking, quote *pricing.Quote) BookingResponse {
	return BookingResponse{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		EventID:          b.EventID,
		UserID:           b.UserID,
		BookingStatus:    b.BookingStatus,
		PaymentStatus:    b.PaymentStatus,
		AmountPaid:       b.AmountPaid,
		ParticipantCount: len(b.Participants),
		Quote:            quote,
		CreatedAt:        b.CreatedAt,
	}
}

func ToPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		BookingID:        p.BookingID,
		TransactionID:    p.TransactionID,
		GatewayPaymentID: p.GatewayPaymentID,
		Amount:           p.Amount,
		Currency:         p.Currency,
		PaymentGateway:   p.PaymentGateway,
		Status:           p.Status,
		RefundAmount:     p.RefundAmount,
		RefundDate:       p.RefundDate,
	}
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:                  e.ID,
		OrganizerID:         e.OrganizerID,
		Name:                e.Name,
		StartDate:           e.StartDate,
		MaxCapacity:         e.MaxCapacity,
		CurrentBookings:     e.CurrentBookings,
		SlotsAvailable:      e.SlotsAvailable(),
		EntryFee:            e.EntryFee,
		IsOnline:            e.IsOnline,
		GovtConcessionType:  e.GovtConcessionType,
		GovtConcessionValue: e.GovtConcessionValue,
		EventStatus:         e.EventStatus,
		Categories:          e.Categories,
	}
}
