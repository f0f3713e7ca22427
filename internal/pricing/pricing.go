// Package pricing computes the total charge for a booking from the event fee,
// per-participant concession eligibility, and the platform fee policy. The
// computation is pure: the same inputs always yield the same quote, so a
// stored quote can be re-derived for auditing.
package pricing

import "github.com/chessdesk/tournament-booking/internal/models"

// Quote is the priced breakdown persisted (as TotalAmount) at booking time.
type Quote struct {
	EventFee          float64 `json:"event_fee"`
	PlatformFee       float64 `json:"platform_fee"`
	TotalAmount       float64 `json:"total_amount"`
	ConcessionApplied float64 `json:"concession_applied"`
	GovtStudentCount  int     `json:"govt_student_count"`
	ParticipantCount  int     `json:"participant_count"`
}

type Input struct {
	EntryFee        float64
	IsOnline        bool
	ConcessionType  models.ConcessionType
	ConcessionValue float64

	// GovtStudentFlags holds one entry per participant, in booking order.
	GovtStudentFlags []bool

	// OfflinePlatformFee is charged per participant for offline events.
	OfflinePlatformFee float64
}

// Compute prices one booking. Concession never drives a participant fee
// below zero; online events carry no platform fee.
func Compute(in Input) Quote {
	q := Quote{ParticipantCount: len(in.GovtStudentFlags)}

	for _, isGovtStudent := range in.GovtStudentFlags {
		fee := in.EntryFee
		if isGovtStudent {
			q.GovtStudentCount++
			discount := concessionFor(in.EntryFee, in.ConcessionType, in.ConcessionValue)
			if discount > fee {
				discount = fee
			}
			fee -= discount
			q.ConcessionApplied += discount
		}
		q.EventFee += fee
	}

	if !in.IsOnline {
		q.PlatformFee = in.OfflinePlatformFee * float64(q.ParticipantCount)
	}

	q.TotalAmount = q.EventFee + q.PlatformFee
	return q
}

func concessionFor(entryFee float64, ctype models.ConcessionType, value float64) float64 {
	switch ctype {
	case models.ConcessionRupees:
		return value
	case models.ConcessionPercentage:
		return entryFee * value / 100
	default:
		return 0
	}
}
