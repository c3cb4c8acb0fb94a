package repository

import (
	"time"

	"github.com/google/uuid"

	"debate_arena/internal/models"
	"debate_arena/internal/storage"
)

type ParticipantRepository interface {
	Create(participant *models.RoomParticipant) error
	FindActive(roomID, userID uuid.UUID) (*models.RoomParticipant, error)
	MarkLeft(id uuid.UUID, leftAt time.Time) error
}

type participantRepository struct {
	db *storage.PostgresDB
}

func NewParticipantRepository(db *storage.PostgresDB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(participant *models.RoomParticipant) error {
	return r.db.Create(participant).Error
}

// FindActive 查詢用戶在房間內尚未離開的參與紀錄
func (r *participantRepository) FindActive(roomID, userID uuid.UUID) (*models.RoomParticipant, error) {
	var participant models.RoomParticipant
	err := r.db.Where("room_id = ? AND user_id = ? AND left_at IS NULL", roomID, userID).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// MarkLeft 將參與紀錄標記為已離開
func (r *participantRepository) MarkLeft(id uuid.UUID, leftAt time.Time) error {
	return r.db.Model(&models.RoomParticipant{}).
		Where("id = ?", id).
		Update("left_at", leftAt).Error
}
