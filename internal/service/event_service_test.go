package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chessdesk/tournament-booking/internal/models"
	"github.com/chessdesk/tournament-booking/internal/notifier"
	"github.com/stretchr/testify/assert"
)

type eventRepoForService struct {
	mockEventRepo
	createFn func(ctx context.Context, event *models.Event) error
	updated  []models.EventStatus
}

func (m *eventRepoForService) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}

func (m *eventRepoForService) UpdateStatus(ctx context.Context, id uint, status models.EventStatus) error {
	m.updated = append(m.updated, status)
	return nil
}

func sampleEvent() *models.Event {
	cap := 64
	return &models.Event{
		Name:        "State Championship 2026",
		StartDate:   time.Date(2026, 12, 5, 9, 0, 0, 0, time.UTC),
		MaxCapacity: &cap,
		EntryFee:    750,
	}
}

func TestCreateEvent_Success(t *testing.T) {
	repo := &eventRepoForService{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 1
			return nil
		},
	}
	svc := NewEventService(repo, notifier.NoopNotifier{})

	event := sampleEvent()
	err := svc.CreateEvent(context.Background(), event)

	assert.NoError(t, err)
	assert.Equal(t, uint(1), event.ID)
	assert.Equal(t, models.EventUpcoming, event.EventStatus)
	assert.Equal(t, models.ConcessionNone, event.GovtConcessionType)
	assert.Equal(t, 0, event.CurrentBookings)
}

func TestCreateEvent_NegativeEntryFee(t *testing.T) {
	svc := NewEventService(&eventRepoForService{}, notifier.NoopNotifier{})

	event := sampleEvent()
	event.EntryFee = -1
	assert.ErrorIs(t, svc.CreateEvent(context.Background(), event), ErrInvalidEntryFee)
}

func TestCreateEvent_InvalidCapacity(t *testing.T) {
	svc := NewEventService(&eventRepoForService{}, notifier.NoopNotifier{})

	zero := 0
	event := sampleEvent()
	event.MaxCapacity = &zero
	assert.ErrorIs(t, svc.CreateEvent(context.Background(), event), ErrInvalidCapacity)
}

func TestCreateEvent_RepoError(t *testing.T) {
	repo := &eventRepoForService{
		createFn: func(ctx context.Context, event *models.Event) error {
			return errors.New("db connection failed")
		},
	}
	svc := NewEventService(repo, notifier.NoopNotifier{})

	err := svc.CreateEvent(context.Background(), sampleEvent())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db connection failed")
}

func TestUpdateStatus_LegalTransition(t *testing.T) {
	event := sampleEvent()
	event.ID = 1
	event.EventStatus = models.EventUpcoming

	repo := &eventRepoForService{}
	repo.findByIDFn = func(ctx context.Context, id uint) (*models.Event, error) {
		return event, nil
	}
	n := &countingNotifier{}
	svc := NewEventService(repo, n)

	updated, err := svc.UpdateStatus(context.Background(), 1, models.EventInProgress, "admin-1")

	assert.NoError(t, err)
	assert.Equal(t, models.EventInProgress, updated.EventStatus)
	assert.Len(t, n.audits, 1)
	assert.Equal(t, "UPDATE_EVENT_STATUS", n.audits[0].Action)
	assert.Equal(t, "UPCOMING", n.audits[0].OldValue)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	event := sampleEvent()
	event.EventStatus = models.EventCompleted

	repo := &eventRepoForService{}
	repo.findByIDFn = func(ctx context.Context, id uint) (*models.Event, error) {
		return event, nil
	}
	svc := NewEventService(repo, notifier.NoopNotifier{})

	_, err := svc.UpdateStatus(context.Background(), 1, models.EventUpcoming, "admin-1")
	assert.ErrorIs(t, err, ErrIllegalEventStatus)
	assert.Empty(t, repo.updated)
}
