package models

import (
	"time"

	"github.com/google/uuid"
)

// Debate 表示一個辯論主題，底下可以開設多個房間
type Debate struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Topic       string         `gorm:"type:text;not null" json:"topic"`
	Category    DebateCategory `gorm:"type:varchar(50);not null" json:"category"`
	Status      DebateStatus   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedByID uuid.UUID      `gorm:"type:uuid;not null" json:"createdById"`
	CreatedBy   User           `gorm:"foreignKey:CreatedByID" json:"createdBy"`
	Rooms       []Room         `gorm:"foreignKey:DebateID" json:"rooms,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

// DebateStatus 定義辯論主題狀態的類型
type DebateStatus string

const (
	DebateStatusPending DebateStatus = "PENDING"
	DebateStatusActive  DebateStatus = "ACTIVE"
	DebateStatusEnded   DebateStatus = "ENDED"
)

// DebateCategory 定義辯論主題的分類
type DebateCategory string

const (
	CategoryPolitics    DebateCategory = "POLITICS"
	CategoryTechnology  DebateCategory = "TECHNOLOGY"
	CategoryEducation   DebateCategory = "EDUCATION"
	CategorySports      DebateCategory = "SPORTS"
	CategoryPhilosophy  DebateCategory = "PHILOSOPHY"
	CategorySociety     DebateCategory = "SOCIETY"
	CategoryEnvironment DebateCategory = "ENVIRONMENT"
)

// Categories 列出所有合法的分類
var Categories = []DebateCategory{
	CategoryPolitics,
	CategoryTechnology,
	CategoryEducation,
	CategorySports,
	CategoryPhilosophy,
	CategorySociety,
	CategoryEnvironment,
}

// ValidCategory 檢查分類是否合法
func ValidCategory(c DebateCategory) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
