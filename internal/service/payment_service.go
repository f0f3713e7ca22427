package service

import (
	"context"
	"errors"
	"time"

	"github.com/chessdesk/tournament-booking/internal/gateway"
	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/chessdesk/tournament-booking/internal/notifier"
	"github.com/chessdesk/tournament-booking/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrBookingCancelled  = errors.New("booking is cancelled")
	ErrInvalidSignature  = errors.New("invalid payment signature")
	ErrGatewayFailure    = errors.New("payment gateway unavailable")
	ErrRefundNotEligible = errors.New("only completed payments can be refunded")
)

const paymentCurrency = "INR"

type PaymentService interface {
	CreateOrder(ctx context.Context, bookingID uint, userID string) (*models.Payment, error)
	VerifyAndComplete(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature string) (*models.Booking, error)
	InitiateRefund(ctx context.Context, paymentID uint, adminID string) (*models.Payment, error)
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	bookingSvc  BookingService
	gw          gateway.Gateway
	notifier    notifier.Notifier
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	bookingSvc BookingService,
	gw gateway.Gateway,
	n notifier.Notifier,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		bookingSvc:  bookingSvc,
		gw:          gw,
		notifier:    n,
	}
}

// CreateOrder opens a gateway order for the booking's frozen quote. The
// Payment row is only written after the gateway confirms order creation, so
// a timed-out gateway call leaves nothing behind and the caller can retry.
func (s *paymentService) CreateOrder(ctx context.Context, bookingID uint, userID string) (*models.Payment, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrNotOwner
	}
	if booking.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if booking.BookingStatus == models.BookingCancelled {
		return nil, ErrBookingCancelled
	}

	// The charge is the amount frozen at booking creation, never the live
	// event fee.
	order, err := s.gw.CreateOrder(ctx, booking.AmountPaid, paymentCurrency, booking.BookingReference)
	if err != nil {
		logrus.WithError(err).WithField("booking_id", bookingID).Warn("gateway order creation failed")
		return nil, ErrGatewayFailure
	}

	payment := &models.Payment{
		BookingID:      bookingID,
		TransactionID:  order.OrderID,
		Amount:         booking.AmountPaid,
		Currency:       paymentCurrency,
		PaymentGateway: models.GatewayOnline,
		Status:         models.PaymentRecordPending,
	}
	if err := s.paymentRepo.Create(ctx, nil, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// VerifyAndComplete authenticates gateway evidence and settles the booking.
// The payment update and the booking update commit as one transaction.
func (s *paymentService) VerifyAndComplete(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature string) (*models.Booking, error) {
	if !s.gw.VerifySignature(gatewayOrderID, gatewayPaymentID, signature) {
		logrus.WithFields(logrus.Fields{
			"order_id":   gatewayOrderID,
			"payment_id": gatewayPaymentID,
		}).Error("payment signature mismatch, possible forgery attempt")
		return nil, ErrInvalidSignature
	}

	var (
		result      *models.Booking
		alreadyPaid bool
	)

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payment, err := s.paymentRepo.FindByTransactionID(ctx, tx, gatewayOrderID)
		if err != nil {
			return ErrPaymentNotFound
		}

		if payment.Status != models.PaymentRecordCompleted {
			payment.Status = models.PaymentRecordCompleted
			payment.GatewayPaymentID = gatewayPaymentID
			if err := s.paymentRepo.Update(ctx, tx, payment); err != nil {
				return err
			}
		}

		booking, wasPaid, err := s.bookingSvc.ConfirmPaidTx(ctx, tx, payment.BookingID)
		if err != nil {
			return err
		}
		result = booking
		alreadyPaid = wasPaid
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notify only on the first confirmation; replays are no-op successes.
	if !alreadyPaid {
		s.bookingSvc.NotifyConfirmed(ctx, result)
	}
	return result, nil
}

// InitiateRefund refunds a completed payment in full. Gateway-backed
// payments call the gateway first; a gateway failure surfaces to the caller
// and never marks the payment refunded.
func (s *paymentService) InitiateRefund(ctx context.Context, paymentID uint, adminID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status != models.PaymentRecordCompleted {
		return nil, ErrRefundNotEligible
	}

	if payment.PaymentGateway == models.GatewayOnline {
		if _, err := s.gw.Refund(ctx, payment.GatewayPaymentID, payment.Amount); err != nil {
			logrus.WithError(err).WithField("payment_id", paymentID).Warn("gateway refund failed")
			return nil, ErrGatewayFailure
		}
	}

	now := time.Now()
	amount := payment.Amount
	payment.Status = models.PaymentRecordRefunded
	payment.RefundAmount = &amount
	payment.RefundDate = &now
	if err := s.paymentRepo.Update(ctx, nil, payment); err != nil {
		return nil, err
	}

	s.notifier.Audit(notifier.AuditRecord{
		AdminID:  adminID,
		Action:   "REFUND_PAYMENT",
		EntityID: payment.BookingID,
		OldValue: string(models.PaymentRecordCompleted),
		NewValue: string(models.PaymentRecordRefunded),
	})
	return payment, nil
}

func (s *paymentService) ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	return s.paymentRepo.FindByBookingID(ctx, bookingID)
}
