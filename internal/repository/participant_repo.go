package repository

import (
	"context"

	"github.com/chessdesk/tournament-booking/internal/models"
	"gorm.io/gorm"
)

type ParticipantRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Participant, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Participant, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Participant, error)
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) FindByID(ctx context.Context, id uint) (*models.Participant, error) {
	var p models.Participant
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *participantRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Participant, error) {
	var participants []models.Participant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *participantRepository) FindByUserID(ctx context.Context, userID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}
