package models

import (
	"time"

	"github.com/google/uuid"
)

// Room 表示一個辯論房間
type Room struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DebateID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"debateId"`
	Debate       Debate            `gorm:"foreignKey:DebateID" json:"debate,omitempty"`
	Status       RoomStatus        `gorm:"type:varchar(20);not null;default:'WAITING'" json:"status"`
	StartedAt    *time.Time        `json:"startedAt"`
	EndedAt      *time.Time        `json:"endedAt"`
	Participants []RoomParticipant `gorm:"foreignKey:RoomID" json:"participants"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
}

// RoomStatus 定義房間狀態的類型
// 狀態只能單向前進：WAITING -> LIVE -> FINISHED
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "WAITING"
	RoomStatusLive     RoomStatus = "LIVE"
	RoomStatusFinished RoomStatus = "FINISHED"
)

// ParseRoomStatus 解析房間狀態字串，同時接受舊版 API 的別名
// （ACTIVE 等同 LIVE，ENDED / COMPLETED 等同 FINISHED）
func ParseRoomStatus(s string) (RoomStatus, bool) {
	switch s {
	case "WAITING":
		return RoomStatusWaiting, true
	case "LIVE", "ACTIVE":
		return RoomStatusLive, true
	case "FINISHED", "ENDED", "COMPLETED":
		return RoomStatusFinished, true
	default:
		return "", false
	}
}

// rank 回傳狀態在生命週期中的順序
func (s RoomStatus) rank() int {
	switch s {
	case RoomStatusWaiting:
		return 0
	case RoomStatusLive:
		return 1
	case RoomStatusFinished:
		return 2
	default:
		return -1
	}
}

// CanTransitionTo 檢查狀態是否能轉移到 next
// 只允許前進一步，不允許回退或跳過
func (s RoomStatus) CanTransitionTo(next RoomStatus) bool {
	from, to := s.rank(), next.rank()
	if from < 0 || to < 0 {
		return false
	}
	return to == from+1
}

// ActiveParticipants 回傳尚未離開的參與者
func (r *Room) ActiveParticipants() []RoomParticipant {
	active := make([]RoomParticipant, 0, len(r.Participants))
	for _, p := range r.Participants {
		if p.LeftAt == nil {
			active = append(active, p)
		}
	}
	return active
}

// CanStart 檢查房間是否具備開始條件：至少一位正方與一位反方
func (r *Room) CanStart() bool {
	var hasProposer, hasOpponent bool
	for _, p := range r.Participants {
		if p.LeftAt != nil {
			continue
		}
		switch p.Role {
		case RoleProposer:
			hasProposer = true
		case RoleOpponent:
			hasOpponent = true
		}
	}
	return hasProposer && hasOpponent
}
