package client

import (
	"context"
	"net/http"

	"debate_arena/pkg/roomstate"
)

// ListRooms 查詢辯論主題底下的房間
// 推導欄位一律由參與紀錄重算，伺服器回傳的值只當參考
func (c *Client) ListRooms(ctx context.Context, debateID string) ([]RoomSummary, error) {
	var rooms []Room
	if err := c.do(ctx, http.MethodGet, "/api/debates/"+debateID+"/rooms", nil, &rooms); err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, RoomSummary{
			Room:       room,
			Properties: roomstate.Derive(room.Participants),
		})
	}
	return summaries, nil
}

// CreateRoom 在辯論主題底下建立新房間
func (c *Client) CreateRoom(ctx context.Context, debateID string) (*Room, error) {
	var room Room
	if err := c.do(ctx, http.MethodPost, "/api/debates/"+debateID+"/rooms", nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoom 查詢單一房間的完整資料
func (c *Client) GetRoom(ctx context.Context, roomID string) (*RoomDetail, error) {
	var detail RoomDetail
	if err := c.do(ctx, http.MethodGet, "/api/rooms/"+roomID, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// JoinRoom 以指定角色加入房間
func (c *Client) JoinRoom(ctx context.Context, roomID string, role roomstate.Role) (*roomstate.Participant, error) {
	body := map[string]string{"role": string(role)}

	var participant roomstate.Participant
	if err := c.do(ctx, http.MethodPost, "/api/rooms/"+roomID+"/join", body, &participant); err != nil {
		return nil, err
	}
	return &participant, nil
}

// LeaveRoom 離開房間
func (c *Client) LeaveRoom(ctx context.Context, roomID string) error {
	return c.do(ctx, http.MethodPost, "/api/rooms/"+roomID+"/leave", nil, nil)
}

// UpdateRoomStatus 要求轉移房間狀態
func (c *Client) UpdateRoomStatus(ctx context.Context, roomID string, status roomstate.Status) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPatch, "/api/rooms/"+roomID+"/status", body, nil)
}
