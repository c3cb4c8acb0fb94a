package repository

import (
	"github.com/google/uuid"

	"debate_arena/internal/models"
	"debate_arena/internal/storage"
)

// DebateListOptions 是分頁查詢辯論主題時的條件
type DebateListOptions struct {
	Page   int
	Limit  int
	Status models.DebateStatus // 空字串表示不過濾
}

type DebateRepository interface {
	Create(debate *models.Debate) error
	FindByID(id uuid.UUID) (*models.Debate, error)
	Update(debate *models.Debate) error
	List(opts DebateListOptions) ([]models.Debate, int64, error)
}

type debateRepository struct {
	db *storage.PostgresDB
}

func NewDebateRepository(db *storage.PostgresDB) DebateRepository {
	return &debateRepository{db: db}
}

func (r *debateRepository) Create(debate *models.Debate) error {
	return r.db.Create(debate).Error
}

func (r *debateRepository) FindByID(id uuid.UUID) (*models.Debate, error) {
	var debate models.Debate
	err := r.db.Preload("CreatedBy").First(&debate, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &debate, nil
}

func (r *debateRepository) Update(debate *models.Debate) error {
	return r.db.Save(debate).Error
}

// List 依建立時間由新到舊分頁查詢
func (r *debateRepository) List(opts DebateListOptions) ([]models.Debate, int64, error) {
	query := r.db.Model(&models.Debate{})
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var debates []models.Debate
	err := query.Preload("CreatedBy").
		Order("created_at DESC").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&debates).Error
	return debates, total, err
}
