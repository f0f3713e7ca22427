package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/chessdesk/tournament-booking/internal/notifier"
	"github.com/chessdesk/tournament-booking/internal/pricing"
	"github.com/chessdesk/tournament-booking/internal/reference"
	"github.com/chessdesk/tournament-booking/internal/repository"
	"github.com/chessdesk/tournament-booking/internal/settings"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrEventNotOpen          = errors.New("event is not open for booking")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrNoParticipants        = errors.New("at least one participant is required")
	ErrParticipantNotFound   = errors.New("participant not found")
	ErrParticipantNotOwned   = errors.New("participant does not belong to user")
	ErrCategoryNotFound      = errors.New("category not found for this event")
	ErrCategoryAgeExceeded   = errors.New("participant exceeds category age limit")
	ErrInsufficientSlots     = errors.New("not enough slots available")
	ErrAlreadyCancelled      = errors.New("booking is already cancelled")
	ErrAlreadyPaid           = errors.New("booking is already paid")
	ErrCannotCancelCompleted = errors.New("completed booking cannot be cancelled")
	ErrCannotComplete        = errors.New("only confirmed and paid bookings can be completed")
	ErrNotOwner              = errors.New("booking does not belong to user")
	ErrIllegalTransition     = errors.New("illegal booking state transition")
)

// maxReferenceAttempts bounds retries when a generated booking reference
// collides with an existing one.
const maxReferenceAttempts = 3

// ParticipantSelection names one participant to book, optionally into a
// category of the event.
type ParticipantSelection struct {
	ParticipantID uint
	CategoryID    *uint
}

// SettingsProvider supplies the current platform settings snapshot.
type SettingsProvider interface {
	Current(ctx context.Context) settings.Snapshot
}

type BookingService interface {
	CreateBooking(ctx context.Context, eventID uint, userID string, selections []ParticipantSelection) (*models.Booking, *pricing.Quote, error)
	CancelBooking(ctx context.Context, bookingID uint, userID string, isAdmin bool, reason string) (*models.Booking, error)
	RecordOfflinePayment(ctx context.Context, bookingID uint, userID string, isAdmin bool) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID uint, adminID string) (*models.Booking, error)
	ConfirmPaidTx(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Booking, bool, error)
	NotifyConfirmed(ctx context.Context, booking *models.Booking)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	GetByReference(ctx context.Context, ref string) (*models.Booking, error)
	ListByEvent(ctx context.Context, eventID uint, status *models.BookingStatus) ([]models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

type bookingService struct {
	bookingRepo     repository.BookingRepository
	eventRepo       repository.EventRepository
	participantRepo repository.ParticipantRepository
	paymentRepo     repository.PaymentRepository
	settings        SettingsProvider
	notifier        notifier.Notifier
	refs            *reference.Generator
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	participantRepo repository.ParticipantRepository,
	paymentRepo repository.PaymentRepository,
	settingsProvider SettingsProvider,
	n notifier.Notifier,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		paymentRepo:     paymentRepo,
		settings:        settingsProvider,
		notifier:        n,
		refs:            reference.NewGenerator(),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID uint, userID string, selections []ParticipantSelection) (*models.Booking, *pricing.Quote, error) {
	if len(selections) == 0 {
		return nil, nil, ErrNoParticipants
	}

	// Validate participants and categories before touching any state.
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, nil, ErrEventNotFound
	}
	if event.EventStatus != models.EventUpcoming {
		return nil, nil, ErrEventNotOpen
	}

	participants, err := s.validateSelections(ctx, event, userID, selections)
	if err != nil {
		return nil, nil, err
	}

	snap := s.settings.Current(ctx)

	flags := make([]bool, len(participants))
	for i, p := range participants {
		flags[i] = p.IsGovtStudent
	}
	quote := pricing.Compute(pricing.Input{
		EntryFee:           event.EntryFee,
		IsOnline:           event.IsOnline,
		ConcessionType:     event.GovtConcessionType,
		ConcessionValue:    event.GovtConcessionValue,
		GovtStudentFlags:   flags,
		OfflinePlatformFee: snap.OfflinePlatformFee,
	})

	var result *models.Booking

	// A reference collision aborts the whole transaction in Postgres, so
	// the retry wraps the transaction rather than the single insert.
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		ref := s.refs.Next(snap.BookingRefPrefix)

		err = s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// 1. Lock the event row — serializes concurrent reservations.
			locked, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
			if err != nil {
				return ErrEventNotFound
			}
			if locked.EventStatus != models.EventUpcoming {
				return ErrEventNotOpen
			}

			// 2. Reserve slots; failure is a normal business outcome.
			if !s.eventRepo.ReserveSlots(ctx, tx, locked, len(selections)) {
				return ErrInsufficientSlots
			}

			// 3. Persist the booking and participant links in the same
			// transaction, so a reservation never survives a failed insert.
			booking := &models.Booking{
				BookingReference: ref,
				EventID:          eventID,
				UserID:           userID,
				BookingStatus:    models.BookingPending,
				PaymentStatus:    models.PaymentPending,
				AmountPaid:       quote.TotalAmount,
			}
			for _, sel := range selections {
				booking.Participants = append(booking.Participants, models.BookingParticipant{
					ParticipantID: sel.ParticipantID,
					CategoryID:    sel.CategoryID,
				})
			}
			if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
				return err
			}

			result = booking
			return nil
		})

		if err == nil || !repository.IsReferenceCollision(err) {
			break
		}
		logrus.WithField("reference", ref).Info("booking reference collision, retrying")
	}
	if err != nil {
		return nil, nil, err
	}

	return result, &quote, nil
}

func (s *bookingService) validateSelections(ctx context.Context, event *models.Event, userID string, selections []ParticipantSelection) ([]models.Participant, error) {
	categories := make(map[uint]models.Category, len(event.Categories))
	for _, c := range event.Categories {
		categories[c.ID] = c
	}

	participants := make([]models.Participant, 0, len(selections))
	seen := make(map[uint]bool, len(selections))

	for _, sel := range selections {
		if seen[sel.ParticipantID] {
			return nil, fmt.Errorf("%w: participant %d selected twice", ErrParticipantNotOwned, sel.ParticipantID)
		}
		seen[sel.ParticipantID] = true

		p, err := s.participantRepo.FindByID(ctx, sel.ParticipantID)
		if err != nil {
			return nil, ErrParticipantNotFound
		}
		if p.UserID != userID {
			return nil, ErrParticipantNotOwned
		}

		if sel.CategoryID != nil {
			cat, ok := categories[*sel.CategoryID]
			if !ok {
				return nil, ErrCategoryNotFound
			}
			if p.AgeAt(event.StartDate) > cat.MaxAge {
				return nil, ErrCategoryAgeExceeded
			}
		}

		participants = append(participants, *p)
	}
	return participants, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID uint, userID string, isAdmin bool, reason string) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if !isAdmin && booking.UserID != userID {
			return ErrNotOwner
		}

		switch booking.BookingStatus {
		case models.BookingCancelled:
			return ErrAlreadyCancelled
		case models.BookingCompleted:
			return ErrCannotCancelCompleted
		}

		oldBooking, oldPayment := booking.BookingStatus, booking.PaymentStatus

		// Paid bookings are marked refunded here; the gateway refund call
		// itself is the reconciliation layer's job.
		nextPayment := booking.PaymentStatus
		if booking.PaymentStatus == models.PaymentPaid {
			nextPayment = models.PaymentRefunded
		}

		// Booking mutation happens before the slot release, so a crash
		// between the two never shows a released slot with no visible
		// cancellation.
		if err := s.bookingRepo.UpdateStatuses(ctx, tx, bookingID, models.BookingCancelled, nextPayment); err != nil {
			return err
		}

		count, err := s.bookingRepo.CountParticipants(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := s.eventRepo.ReleaseSlots(ctx, tx, booking.EventID, int(count)); err != nil {
			return err
		}

		booking.BookingStatus = models.BookingCancelled
		booking.PaymentStatus = nextPayment
		result = booking

		if isAdmin {
			s.notifier.Audit(notifier.AuditRecord{
				AdminID:  userID,
				Action:   "CANCEL_BOOKING",
				EntityID: bookingID,
				OldValue: fmt.Sprintf("%s/%s", oldBooking, oldPayment),
				NewValue: fmt.Sprintf("%s/%s", models.BookingCancelled, nextPayment),
			})
		}

		logrus.WithFields(logrus.Fields{
			"booking_id": bookingID,
			"user_id":    userID,
			"reason":     reason,
		}).Info("booking cancelled")
		return nil
	})

	return result, err
}

// ConfirmPaidTx flips a booking to CONFIRMED/PAID within the caller's
// transaction. The second return value reports whether the booking was
// already settled (a replayed confirmation is a no-op success).
func (s *bookingService) ConfirmPaidTx(ctx context.Context, tx *gorm.DB, bookingID uint) (*models.Booking, bool, error) {
	booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		return nil, false, ErrBookingNotFound
	}

	if booking.IsConfirmedPaid() {
		return booking, true, nil
	}
	if !booking.CanConfirm() {
		return nil, false, ErrIllegalTransition
	}

	if err := s.bookingRepo.UpdateStatuses(ctx, tx, bookingID, models.BookingConfirmed, models.PaymentPaid); err != nil {
		return nil, false, err
	}
	booking.BookingStatus = models.BookingConfirmed
	booking.PaymentStatus = models.PaymentPaid
	return booking, false, nil
}

// NotifyConfirmed emits the booking-confirmed event after commit. Delivery
// failure never affects the booking.
func (s *bookingService) NotifyConfirmed(ctx context.Context, booking *models.Booking) {
	eventName := ""
	if event, err := s.eventRepo.FindByID(ctx, booking.EventID); err == nil {
		eventName = event.Name
	}
	s.notifier.BookingConfirmed(notifier.BookingConfirmed{
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		UserID:           booking.UserID,
		EventName:        eventName,
		Amount:           booking.AmountPaid,
		ParticipantCount: len(booking.Participants),
	})
}

func (s *bookingService) RecordOfflinePayment(ctx context.Context, bookingID uint, userID string, isAdmin bool) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if !isAdmin && booking.UserID != userID {
			return ErrNotOwner
		}
		if booking.IsConfirmedPaid() {
			return ErrAlreadyPaid
		}
		// Offline settlement is only legal from {PENDING,PENDING}; retries
		// after a failed gateway attempt go through the gateway again.
		if booking.BookingStatus != models.BookingPending || booking.PaymentStatus != models.PaymentPending {
			return ErrIllegalTransition
		}

		payment := &models.Payment{
			BookingID:      bookingID,
			TransactionID:  "OFFLINE-" + uuid.NewString(),
			Amount:         booking.AmountPaid,
			PaymentGateway: models.GatewayOffline,
			Status:         models.PaymentRecordCompleted,
		}
		if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}

		if err := s.bookingRepo.UpdateStatuses(ctx, tx, bookingID, models.BookingConfirmed, models.PaymentPaid); err != nil {
			return err
		}
		booking.BookingStatus = models.BookingConfirmed
		booking.PaymentStatus = models.PaymentPaid
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.NotifyConfirmed(ctx, result)
	return result, nil
}

// CompleteBooking is the administrative close-out after the event took
// place. COMPLETED is terminal.
func (s *bookingService) CompleteBooking(ctx context.Context, bookingID uint, adminID string) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if !booking.CanComplete() {
			return ErrCannotComplete
		}

		if err := s.bookingRepo.UpdateStatuses(ctx, tx, bookingID, models.BookingCompleted, models.PaymentPaid); err != nil {
			return err
		}

		s.notifier.Audit(notifier.AuditRecord{
			AdminID:  adminID,
			Action:   "COMPLETE_BOOKING",
			EntityID: bookingID,
			OldValue: fmt.Sprintf("%s/%s", booking.BookingStatus, booking.PaymentStatus),
			NewValue: fmt.Sprintf("%s/%s", models.BookingCompleted, models.PaymentPaid),
		})

		booking.BookingStatus = models.BookingCompleted
		result = booking
		return nil
	})

	return result, err
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

func (s *bookingService) GetByReference(ctx context.Context, ref string) (*models.Booking, error) {
	return s.bookingRepo.FindByReference(ctx, ref)
}

func (s *bookingService) ListByEvent(ctx context.Context, eventID uint, status *models.BookingStatus) ([]models.Booking, error) {
	return s.bookingRepo.FindByEventID(ctx, eventID, status)
}

func (s *bookingService) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.bookingRepo.FindByUserID(ctx, userID)
}
