package dto

type ParticipantSelectionRequest struct {
	ParticipantID uint  `json:"participant_id"`
	CategoryID    *uint `json:"category_id,omitempty"`
}

type CreateBookingRequest struct {
	Participants []ParticipantSelectionRequest `json:"participants"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type CreateOrderRequest struct {
	BookingID uint `json:"booking_id"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}

type CreateEventRequest struct {
	Name                string                 `json:"name"`
	StartDate           string                 `json:"start_date"`
	MaxCapacity         *int                   `json:"max_capacity,omitempty"`
	EntryFee            float64                `json:"entry_fee"`
	IsOnline            bool                   `json:"is_online"`
	GovtConcessionType  string                 `json:"govt_concession_type"`
	GovtConcessionValue float64                `json:"govt_concession_value"`
	Categories          []CreateCategoryInline `json:"categories,omitempty"`
}

type CreateCategoryInline struct {
	Name   string `json:"name"`
	MaxAge int    `json:"max_age"`
}

type UpdateEventStatusRequest struct {
	Status string `json:"status"`
}
