package repository

import (
	"context"

	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	FindAll(ctx context.Context, status *models.EventStatus) ([]models.Event, error)
	UpdateStatus(ctx context.Context, id uint, status models.EventStatus) error
	ReserveSlots(ctx context.Context, tx *gorm.DB, event *models.Event, count int) bool
	ReleaseSlots(ctx context.Context, tx *gorm.DB, eventID uint, count int) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Preload("Categories").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate acquires a row-level lock on the event within the given
// transaction, serializing concurrent reservations for that event.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, status *models.EventStatus) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("event_status = ?", *status)
	}
	if err := q.Order("start_date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id uint, status models.EventStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("event_status", status).Error
}

// ReserveSlots admits count participants against the locked event row. The
// caller must hold the row lock (FindByIDForUpdate) in tx. Returns false
// without mutating anything when capacity would be exceeded.
func (r *eventRepository) ReserveSlots(ctx context.Context, tx *gorm.DB, event *models.Event, count int) bool {
	if event.MaxCapacity != nil && event.CurrentBookings+count > *event.MaxCapacity {
		return false
	}
	if err := tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", event.ID).
		Update("current_bookings", gorm.Expr("current_bookings + ?", count)).Error; err != nil {
		return false
	}
	event.CurrentBookings += count
	return true
}

// ReleaseSlots returns count slots on cancellation, floored at zero. The
// decrement is relative so it composes with concurrent reserves. A floor hit
// means reserve/release were unpaired somewhere; log it loudly.
func (r *eventRepository) ReleaseSlots(ctx context.Context, tx *gorm.DB, eventID uint, count int) error {
	var event models.Event
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, eventID).Error; err != nil {
		return err
	}

	if event.CurrentBookings < count {
		logrus.WithFields(logrus.Fields{
			"event_id": eventID,
			"current":  event.CurrentBookings,
			"release":  count,
		}).Error("capacity counter would go negative, flooring at zero")
	}

	return tx.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("current_bookings", gorm.Expr("GREATEST(current_bookings - ?, 0)", count)).Error
}
