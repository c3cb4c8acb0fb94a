// Package roomstate 提供辯論房間成員與生命週期的純推導邏輯。
//
// 這個包不做任何 I/O：輸入是後端回傳的參與紀錄列表，
// 輸出是房間就緒狀態與當前用戶的參與情況，供呼叫端在每次
// 重新抓取資料後重算。
package roomstate

import (
	"time"
)

// Role 定義房間內的參與角色
type Role string

const (
	RoleProposer Role = "PROPOSER" // 正方
	RoleOpponent Role = "OPPONENT" // 反方
	RoleAudience Role = "AUDIENCE" // 觀眾
)

// Status 定義房間狀態，只能單向前進：WAITING -> LIVE -> FINISHED
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusLive     Status = "LIVE"
	StatusFinished Status = "FINISHED"
)

// ParseStatus 解析狀態字串，接受舊版 API 的別名
// （ACTIVE 等同 LIVE，ENDED / COMPLETED 等同 FINISHED）
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "WAITING":
		return StatusWaiting, true
	case "LIVE", "ACTIVE":
		return StatusLive, true
	case "FINISHED", "ENDED", "COMPLETED":
		return StatusFinished, true
	default:
		return "", false
	}
}

// User 是參與紀錄附帶的用戶資料
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

// Participant 是後端回傳的一筆參與紀錄
// LeftAt 為 nil 代表仍在房間內
type Participant struct {
	ID       string     `json:"id"`
	UserID   string     `json:"userId"`
	RoomID   string     `json:"roomId"`
	Role     Role       `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
	LeftAt   *time.Time `json:"leftAt"`
	User     User       `json:"user"`
}

// Active 回傳參與紀錄是否仍在場
func (p Participant) Active() bool {
	return p.LeftAt == nil
}

// Properties 是由參與紀錄推導出的房間就緒狀態
type Properties struct {
	ParticipantCount int  `json:"participantCount"`
	HasProposer      bool `json:"hasProposer"`
	HasOpponent      bool `json:"hasOpponent"`
	CanStart         bool `json:"canStart"`
}

// Derive 由參與紀錄列表推導房間就緒狀態
// 純函數：結果不依賴列表順序，空列表也是合法輸入
func Derive(participants []Participant) Properties {
	var props Properties
	for _, p := range participants {
		if !p.Active() {
			continue
		}
		props.ParticipantCount++
		switch p.Role {
		case RoleProposer:
			props.HasProposer = true
		case RoleOpponent:
			props.HasOpponent = true
		}
	}
	props.CanStart = props.HasProposer && props.HasOpponent
	return props
}

// Groups 是依角色分組的在場參與者
type Groups struct {
	Proposers []Participant `json:"proposers"`
	Opponents []Participant `json:"opponents"`
	Audience  []Participant `json:"audience"`
}

// Group 將在場的參與紀錄依角色分組，已離開的不列入
func Group(participants []Participant) Groups {
	var groups Groups
	for _, p := range participants {
		if !p.Active() {
			continue
		}
		switch p.Role {
		case RoleProposer:
			groups.Proposers = append(groups.Proposers, p)
		case RoleOpponent:
			groups.Opponents = append(groups.Opponents, p)
		case RoleAudience:
			groups.Audience = append(groups.Audience, p)
		}
	}
	return groups
}

// Participation 表示用戶在房間內的參與情況
type Participation struct {
	Role Role `json:"role"`
	User User `json:"user"`
}

// Resolve 查找用戶在分組中的參與情況
// userID 為空或找不到時回傳 nil；若同一用戶出現在多個分組
// （資料異常），依 正方 > 反方 > 觀眾 的優先序取第一筆
func Resolve(userID string, groups Groups) *Participation {
	if userID == "" {
		return nil
	}

	ordered := []struct {
		role    Role
		members []Participant
	}{
		{RoleProposer, groups.Proposers},
		{RoleOpponent, groups.Opponents},
		{RoleAudience, groups.Audience},
	}

	for _, group := range ordered {
		for _, p := range group.members {
			if p.UserID == userID {
				return &Participation{Role: group.role, User: p.User}
			}
		}
	}
	return nil
}
