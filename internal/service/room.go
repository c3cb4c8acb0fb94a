package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"debate_arena/internal/models"
	"debate_arena/internal/repository"
)

var (
	ErrRoomNotFound  = errors.New("房間不存在")
	ErrAlreadyJoined = errors.New("用戶已在房間內，請先離開再加入")
	ErrRoomClosed    = errors.New("房間不開放加入")
	ErrNotInRoom     = errors.New("用戶不在房間內")
	ErrBadTransition = errors.New("房間狀態只能由 WAITING 進入 LIVE，再進入 FINISHED")
	ErrNotReady      = errors.New("正反方尚未到齊，無法開始辯論")
)

// RoomSummary 是房間列表用的摘要，附上由參與紀錄推導的欄位
type RoomSummary struct {
	models.Room
	ParticipantCount int  `json:"participantCount"`
	HasProposer      bool `json:"hasProposer"`
	HasOpponent      bool `json:"hasOpponent"`
	CanStart         bool `json:"canStart"`
	IsReady          bool `json:"isReady"` // 與 canStart 相同值，保留舊版欄位
}

// ParticipantGroups 是依角色分組的在場參與者
type ParticipantGroups struct {
	Proposers []models.RoomParticipant `json:"proposers"`
	Opponents []models.RoomParticipant `json:"opponents"`
	Audience  []models.RoomParticipant `json:"audience"`
}

// ParticipantCounts 是各角色的在場人數
type ParticipantCounts struct {
	Proposers int `json:"proposers"`
	Opponents int `json:"opponents"`
	Audience  int `json:"audience"`
	Total     int `json:"total"`
}

// RoomStatusFlags 是房間就緒狀態的旗標
type RoomStatusFlags struct {
	HasProposer bool `json:"hasProposer"`
	HasOpponent bool `json:"hasOpponent"`
	CanStart    bool `json:"canStart"`
	IsReady     bool `json:"isReady"`
}

// RoomDetail 是單一房間頁面所需的完整資料
type RoomDetail struct {
	Room              models.Room       `json:"room"`
	Debate            models.Debate     `json:"debate"`
	Participants      ParticipantGroups `json:"participants"`
	ParticipantCounts ParticipantCounts `json:"participantCounts"`
	RoomStatus        RoomStatusFlags   `json:"roomStatus"`
}

type RoomService struct {
	roomRepo        repository.RoomRepository
	participantRepo repository.ParticipantRepository
	debateRepo      repository.DebateRepository
	events          *EventManager
}

func NewRoomService(
	roomRepo repository.RoomRepository,
	participantRepo repository.ParticipantRepository,
	debateRepo repository.DebateRepository,
	events *EventManager,
) *RoomService {
	return &RoomService{
		roomRepo:        roomRepo,
		participantRepo: participantRepo,
		debateRepo:      debateRepo,
		events:          events,
	}
}

// CreateRoom 在辯論主題底下建立一個等待中的房間
func (s *RoomService) CreateRoom(debateID uuid.UUID) (*models.Room, error) {
	if _, err := s.debateRepo.FindByID(debateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDebateNotFound
		}
		return nil, err
	}

	room := &models.Room{
		DebateID: debateID,
		Status:   models.RoomStatusWaiting,
	}
	if err := s.roomRepo.Create(room); err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms 查詢辯論主題底下的房間，附上推導欄位
func (s *RoomService) ListRooms(debateID uuid.UUID) ([]RoomSummary, error) {
	rooms, err := s.roomRepo.FindByDebateID(debateID)
	if err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, summarizeRoom(room))
	}
	return summaries, nil
}

// GetRoomDetail 查詢單一房間的完整資料
func (s *RoomService) GetRoomDetail(roomID uuid.UUID) (*RoomDetail, error) {
	room, err := s.findRoom(roomID)
	if err != nil {
		return nil, err
	}

	groups := groupParticipants(room.Participants)
	counts := ParticipantCounts{
		Proposers: len(groups.Proposers),
		Opponents: len(groups.Opponents),
		Audience:  len(groups.Audience),
	}
	counts.Total = counts.Proposers + counts.Opponents + counts.Audience

	canStart := counts.Proposers > 0 && counts.Opponents > 0
	flags := RoomStatusFlags{
		HasProposer: counts.Proposers > 0,
		HasOpponent: counts.Opponents > 0,
		CanStart:    canStart,
		IsReady:     canStart,
	}

	detail := &RoomDetail{
		Room:              *room,
		Debate:            room.Debate,
		Participants:      groups,
		ParticipantCounts: counts,
		RoomStatus:        flags,
	}
	// room 欄位內不重複帶出完整的 debate 與參與者
	detail.Room.Debate = models.Debate{}
	detail.Room.DebateID = room.DebateID
	return detail, nil
}

// JoinRoom 讓用戶以指定角色加入房間
// 規則：同一用戶同時只能有一筆在場紀錄；正反方只能在等待階段加入，
// 觀眾在辯論進行中仍可加入
func (s *RoomService) JoinRoom(roomID, userID uuid.UUID, role models.ParticipantRole) (*models.RoomParticipant, error) {
	room, err := s.findRoom(roomID)
	if err != nil {
		return nil, err
	}

	if _, err := s.participantRepo.FindActive(roomID, userID); err == nil {
		return nil, ErrAlreadyJoined
	}

	switch role {
	case models.RoleProposer, models.RoleOpponent:
		if room.Status != models.RoomStatusWaiting {
			return nil, ErrRoomClosed
		}
	case models.RoleAudience:
		if room.Status == models.RoomStatusFinished {
			return nil, ErrRoomClosed
		}
	default:
		return nil, errors.New("無效的角色")
	}

	participant := &models.RoomParticipant{
		RoomID: roomID,
		UserID: userID,
		Role:   role,
	}
	if err := s.participantRepo.Create(participant); err != nil {
		return nil, err
	}

	s.events.ParticipantJoined(roomID, userID, role)
	return participant, nil
}

// LeaveRoom 將用戶的在場紀錄標記為已離開
func (s *RoomService) LeaveRoom(roomID, userID uuid.UUID) error {
	participant, err := s.participantRepo.FindActive(roomID, userID)
	if err != nil {
		return ErrNotInRoom
	}

	if err := s.participantRepo.MarkLeft(participant.ID, time.Now()); err != nil {
		return err
	}

	s.events.ParticipantLeft(roomID, userID, participant.Role)
	return nil
}

// UpdateStatus 轉移房間狀態
// 狀態只能單向前進；進入 LIVE 前必須正反方到齊
func (s *RoomService) UpdateStatus(roomID uuid.UUID, next models.RoomStatus) (*models.Room, error) {
	room, err := s.findRoom(roomID)
	if err != nil {
		return nil, err
	}

	if !room.Status.CanTransitionTo(next) {
		return nil, ErrBadTransition
	}

	now := time.Now()
	switch next {
	case models.RoomStatusLive:
		if !room.CanStart() {
			return nil, ErrNotReady
		}
		room.StartedAt = &now
	case models.RoomStatusFinished:
		room.EndedAt = &now
	}
	room.Status = next

	if err := s.roomRepo.Update(room); err != nil {
		return nil, err
	}

	s.events.StatusChanged(roomID, next)
	return room, nil
}

// ActiveParticipation 查詢用戶在房間內的在場紀錄，不在場時回傳 ErrNotInRoom
func (s *RoomService) ActiveParticipation(roomID, userID uuid.UUID) (*models.RoomParticipant, error) {
	participant, err := s.participantRepo.FindActive(roomID, userID)
	if err != nil {
		return nil, ErrNotInRoom
	}
	return participant, nil
}

func (s *RoomService) findRoom(roomID uuid.UUID) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// summarizeRoom 由參與紀錄推導房間摘要欄位
func summarizeRoom(room models.Room) RoomSummary {
	var proposers, opponents, total int
	for _, p := range room.Participants {
		if p.LeftAt != nil {
			continue
		}
		total++
		switch p.Role {
		case models.RoleProposer:
			proposers++
		case models.RoleOpponent:
			opponents++
		}
	}

	canStart := proposers > 0 && opponents > 0
	return RoomSummary{
		Room:             room,
		ParticipantCount: total,
		HasProposer:      proposers > 0,
		HasOpponent:      opponents > 0,
		CanStart:         canStart,
		IsReady:          canStart,
	}
}

// groupParticipants 將在場參與者依角色分組
func groupParticipants(participants []models.RoomParticipant) ParticipantGroups {
	groups := ParticipantGroups{
		Proposers: []models.RoomParticipant{},
		Opponents: []models.RoomParticipant{},
		Audience:  []models.RoomParticipant{},
	}
	for _, p := range participants {
		if p.LeftAt != nil {
			continue
		}
		switch p.Role {
		case models.RoleProposer:
			groups.Proposers = append(groups.Proposers, p)
		case models.RoleOpponent:
			groups.Opponents = append(groups.Opponents, p)
		case models.RoleAudience:
			groups.Audience = append(groups.Audience, p)
		}
	}
	return groups
}
