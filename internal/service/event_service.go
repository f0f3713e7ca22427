package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/chessdesk/tournament-booking/internal/notifier"
	"github.com/chessdesk/tournament-booking/internal/repository"
)

var (
	ErrInvalidEntryFee    = errors.New("entry fee cannot be negative")
	ErrInvalidConcession  = errors.New("concession value cannot be negative")
	ErrInvalidCapacity    = errors.New("capacity must be positive when set")
	ErrIllegalEventStatus = errors.New("illegal event status transition")
)

// eventStatusTransitions is the closed set of legal event status moves.
var eventStatusTransitions = map[models.EventStatus][]models.EventStatus{
	models.EventUpcoming:   {models.EventInProgress, models.EventCancelled},
	models.EventInProgress: {models.EventCompleted, models.EventCancelled},
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, status *models.EventStatus) ([]models.Event, error)
	UpdateStatus(ctx context.Context, id uint, status models.EventStatus, adminID string) (*models.Event, error)
}

type eventService struct {
	repo     repository.EventRepository
	notifier notifier.Notifier
}

func NewEventService(repo repository.EventRepository, n notifier.Notifier) EventService {
	return &eventService{repo: repo, notifier: n}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.EntryFee < 0 {
		return ErrInvalidEntryFee
	}
	if event.GovtConcessionValue < 0 {
		return ErrInvalidConcession
	}
	if event.MaxCapacity != nil && *event.MaxCapacity <= 0 {
		return ErrInvalidCapacity
	}
	if event.GovtConcessionType == "" {
		event.GovtConcessionType = models.ConcessionNone
	}
	event.EventStatus = models.EventUpcoming
	event.CurrentBookings = 0

	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context, status *models.EventStatus) ([]models.Event, error) {
	return s.repo.FindAll(ctx, status)
}

func (s *eventService) UpdateStatus(ctx context.Context, id uint, status models.EventStatus, adminID string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	legal := false
	for _, next := range eventStatusTransitions[event.EventStatus] {
		if next == status {
			legal = true
			break
		}
	}
	if !legal {
		return nil, ErrIllegalEventStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.notifier.Audit(notifier.AuditRecord{
		AdminID:    adminID,
		Action:     "UPDATE_EVENT_STATUS",
		EntityType: "EVENT",
		EntityID:   id,
		OldValue:   string(event.EventStatus),
		NewValue:   string(status),
	})

	event.EventStatus = status
	return event, nil
}
