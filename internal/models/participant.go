package models

import (
	"time"

	"github.com/google/uuid"
)

// RoomParticipant 表示用戶在某個房間內的一筆參與紀錄
// LeftAt 為 nil 代表仍在房間內；離開後再加入會產生新的紀錄
type RoomParticipant struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RoomID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"roomId"`
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"userId"`
	User     User            `gorm:"foreignKey:UserID" json:"user"`
	Role     ParticipantRole `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time       `gorm:"autoCreateTime" json:"joinedAt"`
	LeftAt   *time.Time      `json:"leftAt"`
}

// ParticipantRole 定義房間內的參與角色
type ParticipantRole string

const (
	RoleProposer ParticipantRole = "PROPOSER" // 正方
	RoleOpponent ParticipantRole = "OPPONENT" // 反方
	RoleAudience ParticipantRole = "AUDIENCE" // 觀眾
)

// ParseParticipantRole 解析角色字串
func ParseParticipantRole(s string) (ParticipantRole, bool) {
	switch s {
	case "PROPOSER":
		return RoleProposer, true
	case "OPPONENT":
		return RoleOpponent, true
	case "AUDIENCE":
		return RoleAudience, true
	default:
		return "", false
	}
}
