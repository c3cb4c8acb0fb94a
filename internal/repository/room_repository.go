package repository

import (
	"github.com/google/uuid"

	"debate_arena/internal/models"
	"debate_arena/internal/storage"
)

type RoomRepository interface {
	Create(room *models.Room) error
	FindByID(id uuid.UUID) (*models.Room, error)
	FindByDebateID(debateID uuid.UUID) ([]models.Room, error)
	Update(room *models.Room) error
}

type roomRepository struct {
	db *storage.PostgresDB
}

func NewRoomRepository(db *storage.PostgresDB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

// FindByID 查詢單一房間，連同參與紀錄與其用戶資料
func (r *roomRepository) FindByID(id uuid.UUID) (*models.Room, error) {
	var room models.Room
	err := r.db.Preload("Participants").
		Preload("Participants.User").
		Preload("Debate").
		Preload("Debate.CreatedBy").
		First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByDebateID 查詢辯論主題底下的所有房間
func (r *roomRepository) FindByDebateID(debateID uuid.UUID) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.Preload("Participants").
		Preload("Participants.User").
		Where("debate_id = ?", debateID).
		Order("created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}
