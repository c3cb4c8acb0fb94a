package client

import (
	"time"

	"debate_arena/pkg/roomstate"
)

// Debate 是後端回傳的辯論主題
type Debate struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Topic     string         `json:"topic"`
	Category  string         `json:"category"`
	Status    string         `json:"status"`
	CreatedBy roomstate.User `json:"createdBy"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// PageMeta 是分頁查詢結果的附帶資訊
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// DebatePage 是一頁辯論主題
type DebatePage struct {
	Data []Debate `json:"data"`
	Meta PageMeta `json:"meta"`
}

// Room 是後端回傳的房間
type Room struct {
	ID           string                  `json:"id"`
	DebateID     string                  `json:"debateId"`
	Status       roomstate.Status        `json:"status"`
	StartedAt    *time.Time              `json:"startedAt"`
	EndedAt      *time.Time              `json:"endedAt"`
	Participants []roomstate.Participant `json:"participants"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// RoomSummary 是房間列表的一筆資料，推導欄位由客戶端
// 在每次抓取後以 roomstate.Derive 重算，不信任快取值
type RoomSummary struct {
	Room
	roomstate.Properties
}

// ParticipantCounts 是各角色的在場人數
type ParticipantCounts struct {
	Proposers int `json:"proposers"`
	Opponents int `json:"opponents"`
	Audience  int `json:"audience"`
	Total     int `json:"total"`
}

// RoomStatusFlags 是房間就緒狀態的旗標
// isReady 與 canStart 同值，保留是為了相容舊版回應
type RoomStatusFlags struct {
	HasProposer bool `json:"hasProposer"`
	HasOpponent bool `json:"hasOpponent"`
	CanStart    bool `json:"canStart"`
	IsReady     bool `json:"isReady"`
}

// RoomDetail 是單一房間頁面所需的完整資料
type RoomDetail struct {
	Room              Room              `json:"room"`
	Debate            Debate            `json:"debate"`
	Participants      roomstate.Groups  `json:"participants"`
	ParticipantCounts ParticipantCounts `json:"participantCounts"`
	RoomStatus        RoomStatusFlags   `json:"roomStatus"`
}

// AuthResult 是登入或註冊成功後回傳的資料
type AuthResult struct {
	User         *roomstate.User `json:"user"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}
