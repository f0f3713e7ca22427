package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		name       string
		booking    Booking
		canConfirm bool
		canCancel  bool
	}{
		{
			name:       "pending pending",
			booking:    Booking{BookingStatus: BookingPending, PaymentStatus: PaymentPending},
			canConfirm: true,
			canCancel:  true,
		},
		{
			name:       "pending failed retry",
			booking:    Booking{BookingStatus: BookingPending, PaymentStatus: PaymentFailed},
			canConfirm: true,
			canCancel:  true,
		},
		{
			name:       "confirmed paid",
			booking:    Booking{BookingStatus: BookingConfirmed, PaymentStatus: PaymentPaid},
			canConfirm: false,
			canCancel:  true,
		},
		{
			name:       "cancelled",
			booking:    Booking{BookingStatus: BookingCancelled, PaymentStatus: PaymentRefunded},
			canConfirm: false,
			canCancel:  false,
		},
		{
			name:       "completed is terminal",
			booking:    Booking{BookingStatus: BookingCompleted, PaymentStatus: PaymentPaid},
			canConfirm: false,
			canCancel:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canConfirm, tt.booking.CanConfirm())
			assert.Equal(t, tt.canCancel, tt.booking.CanCancel())
		})
	}
}

func TestIsConfirmedPaid(t *testing.T) {
	b := Booking{BookingStatus: BookingConfirmed, PaymentStatus: PaymentPaid}
	assert.True(t, b.IsConfirmedPaid())

	b.PaymentStatus = PaymentPending
	assert.False(t, b.IsConfirmedPaid())
}

func TestCanComplete(t *testing.T) {
	b := Booking{BookingStatus: BookingConfirmed, PaymentStatus: PaymentPaid}
	assert.True(t, b.CanComplete())

	b = Booking{BookingStatus: BookingPending, PaymentStatus: PaymentPending}
	assert.False(t, b.CanComplete())
}

func TestParticipantAgeAt(t *testing.T) {
	p := Participant{DateOfBirth: time.Date(2012, 6, 15, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, 13, p.AgeAt(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 14, p.AgeAt(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 14, p.AgeAt(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestEventSlotsAvailable(t *testing.T) {
	cap := 10
	e := Event{MaxCapacity: &cap, CurrentBookings: 7}
	assert.Equal(t, 3, e.SlotsAvailable())

	unlimited := Event{}
	assert.Equal(t, -1, unlimited.SlotsAvailable())
}
