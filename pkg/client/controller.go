package client

import (
	"context"
	"errors"
	"sync"

	"debate_arena/pkg/roomstate"
)

// 在發出任何請求之前就能擋下的本地驗證錯誤
var (
	ErrAlreadyJoined = errors.New("用戶已在房間內，請先離開再加入")
	ErrNotInRoom     = errors.New("用戶不在房間內")
	ErrCannotStart   = errors.New("正反方尚未到齊，無法開始辯論")
	ErrCannotFinish  = errors.New("辯論尚未開始，無法結束")
	ErrNotLoaded     = errors.New("房間資料尚未載入")
)

// LeaveState 表示樂觀離開房間後的狀態
// 離開先在本地生效，等重新抓取資料後才確認或回滾
type LeaveState int

const (
	LeaveNone      LeaveState = iota // 沒有進行中的離開動作
	LeavePending                     // 已在本地生效，等待伺服器確認
	LeaveConfirmed                   // 重新抓取後確認已離開
	LeaveRolledBack                  // 離開未生效，參與狀態已還原
)

// RoomController 負責單一房間頁面的狀態：
// 抓取 → 推導 → 執行動作 → 重新抓取。伺服器永遠是唯一的真相來源，
// 除了離開房間之外不做任何樂觀更新。
type RoomController struct {
	client *Client
	roomID string

	mu            sync.Mutex
	detail        *RoomDetail
	props         roomstate.Properties
	participation *roomstate.Participation
	leaveState    LeaveState
}

// NewRoomController 建立指定房間的控制器，使用前需先呼叫 Refresh
func NewRoomController(c *Client, roomID string) *RoomController {
	return &RoomController{
		client: c,
		roomID: roomID,
	}
}

// Refresh 重新抓取房間資料並重算推導狀態
func (rc *RoomController) Refresh(ctx context.Context) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.refreshLocked(ctx)
}

// refreshLocked 呼叫前必須持有鎖
func (rc *RoomController) refreshLocked(ctx context.Context) error {
	detail, err := rc.client.GetRoom(ctx, rc.roomID)
	if err != nil {
		return err
	}

	rc.detail = detail
	rc.props = roomstate.Derive(detail.Room.Participants)
	rc.participation = roomstate.Resolve(rc.client.session.UserID(), detail.Participants)
	return nil
}

// Detail 回傳最近一次抓取的房間資料
func (rc *RoomController) Detail() *RoomDetail {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.detail
}

// Properties 回傳最近一次推導的房間就緒狀態
func (rc *RoomController) Properties() roomstate.Properties {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.props
}

// Participation 回傳當前用戶在房間內的參與情況，不在場時為 nil
func (rc *RoomController) Participation() *roomstate.Participation {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.participation
}

// LeaveStatus 回傳樂觀離開的目前狀態
func (rc *RoomController) LeaveStatus() LeaveState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.leaveState
}

// Join 以指定角色加入房間
// 用戶已在房間內時直接回傳錯誤，不會發出任何請求
func (rc *RoomController) Join(ctx context.Context, role roomstate.Role) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.participation != nil {
		return ErrAlreadyJoined
	}

	if _, err := rc.client.JoinRoom(ctx, rc.roomID, role); err != nil {
		return err
	}
	return rc.refreshLocked(ctx)
}

// Leave 離開房間
// 參與狀態先在本地清掉，重新抓取後與伺服器對帳：
// 伺服器仍回報在場時還原參與狀態並標記為已回滾
func (rc *RoomController) Leave(ctx context.Context) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.participation == nil {
		return ErrNotInRoom
	}

	previous := rc.participation
	rc.participation = nil
	rc.leaveState = LeavePending

	if err := rc.client.LeaveRoom(ctx, rc.roomID); err != nil {
		rc.participation = previous
		rc.leaveState = LeaveRolledBack
		return err
	}

	if err := rc.refreshLocked(ctx); err != nil {
		// 離開已送達伺服器，只是對帳失敗，留在 Pending 等下次 Refresh
		return err
	}

	if rc.participation != nil {
		rc.leaveState = LeaveRolledBack
	} else {
		rc.leaveState = LeaveConfirmed
	}
	return nil
}

// Start 開始辯論
// 前提：本地推導的 canStart 為真且房間仍在等待中，否則不發請求；
// 送出後若被伺服器拒絕，錯誤訊息原樣回傳給呼叫端
func (rc *RoomController) Start(ctx context.Context) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.detail == nil {
		return ErrNotLoaded
	}
	if rc.detail.Room.Status != roomstate.StatusWaiting || !rc.props.CanStart {
		return ErrCannotStart
	}

	if err := rc.client.UpdateRoomStatus(ctx, rc.roomID, roomstate.StatusLive); err != nil {
		return err
	}
	return rc.refreshLocked(ctx)
}

// Finish 結束辯論，只有進行中的房間可以結束
func (rc *RoomController) Finish(ctx context.Context) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.detail == nil {
		return ErrNotLoaded
	}
	if rc.detail.Room.Status != roomstate.StatusLive {
		return ErrCannotFinish
	}

	if err := rc.client.UpdateRoomStatus(ctx, rc.roomID, roomstate.StatusFinished); err != nil {
		return err
	}
	return rc.refreshLocked(ctx)
}
