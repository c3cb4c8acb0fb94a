package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"debate_arena/internal/models"
	"debate_arena/internal/repository"
)

var ErrDebateNotFound = errors.New("辯論主題不存在")

type DebateService struct {
	debateRepo repository.DebateRepository
}

func NewDebateService(debateRepo repository.DebateRepository) *DebateService {
	return &DebateService{debateRepo: debateRepo}
}

// PageMeta 是分頁查詢結果的附帶資訊
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// CreateDebate 建立新的辯論主題
func (s *DebateService) CreateDebate(title, topic string, category models.DebateCategory, createdBy uuid.UUID) (*models.Debate, error) {
	if !models.ValidCategory(category) {
		return nil, errors.New("無效的辯論分類")
	}

	debate := &models.Debate{
		Title:       title,
		Topic:       topic,
		Category:    category,
		Status:      models.DebateStatusPending,
		CreatedByID: createdBy,
	}

	if err := s.debateRepo.Create(debate); err != nil {
		return nil, err
	}
	return s.debateRepo.FindByID(debate.ID)
}

// GetDebate 查詢單一辯論主題
func (s *DebateService) GetDebate(id uuid.UUID) (*models.Debate, error) {
	debate, err := s.debateRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDebateNotFound
		}
		return nil, err
	}
	return debate, nil
}

// ListDebates 分頁查詢辯論主題
func (s *DebateService) ListDebates(opts repository.DebateListOptions) ([]models.Debate, *PageMeta, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 || opts.Limit > 100 {
		opts.Limit = 10
	}

	debates, total, err := s.debateRepo.List(opts)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int((total + int64(opts.Limit) - 1) / int64(opts.Limit))
	meta := &PageMeta{
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages,
	}
	return debates, meta, nil
}
