package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"debate_arena/internal/models"
)

// 房間事件類型
const (
	EventParticipantJoined = "participant.joined"
	EventParticipantLeft   = "participant.left"
	EventStatusChanged     = "room.status_changed"
	EventSpeakingStarted   = "speaking.started"
	EventSpeakingStopped   = "speaking.stopped"
)

// RoomEvent 是廣播給房間訂閱者的事件
type RoomEvent struct {
	Type      string                 `json:"type"`
	RoomID    uuid.UUID              `json:"roomId"`
	UserID    uuid.UUID              `json:"userId,omitempty"`
	Role      models.ParticipantRole `json:"role,omitempty"`
	Status    models.RoomStatus      `json:"status,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Client 代表一個 WebSocket 客戶端連接
type Client struct {
	Conn     *websocket.Conn // WebSocket 連接
	UserID   uuid.UUID       // 用戶 ID
	RoomID   uuid.UUID       // 房間 ID
	Role     models.ParticipantRole
	SendChan chan *RoomEvent // 事件發送通道，用於異步傳送
}

// EventManager 管理所有的 WebSocket 連接和房間事件廣播
type EventManager struct {
	clients    map[uuid.UUID]map[*Client]bool // 兩層 map: roomID -> client -> bool
	clientsMux sync.RWMutex                   // 用於保護 clients map 的讀寫鎖
}

// NewEventManager 創建並初始化新的事件管理器
func NewEventManager() *EventManager {
	return &EventManager{
		clients: make(map[uuid.UUID]map[*Client]bool),
	}
}

// HandleConnection 處理新的 WebSocket 連接請求，阻塞直到連接關閉
func (m *EventManager) HandleConnection(conn *websocket.Conn, roomID, userID uuid.UUID, role models.ParticipantRole) {
	client := &Client{
		Conn:     conn,
		UserID:   userID,
		RoomID:   roomID,
		Role:     role,
		SendChan: make(chan *RoomEvent, 256),
	}

	m.addClient(client)

	// 確保連接關閉時清理資源
	defer func() {
		m.removeClient(client)
		conn.Close()
		close(client.SendChan)
	}()

	// 啟動讀寫處理
	go m.writePump(client)
	m.readPump(client)
}

// readPump 持續監聽客戶端傳來的發言狀態訊息
func (m *EventManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096)
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("websocket unexpected close")
			}
			break
		}

		var incoming struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(message, &incoming); err != nil {
			log.Debug().Err(err).Msg("無法解析客戶端訊息")
			continue
		}

		// 客戶端只能回報自己的發言狀態，其餘欄位由伺服器補上
		switch incoming.Type {
		case EventSpeakingStarted, EventSpeakingStopped:
			m.BroadcastToRoom(client.RoomID, &RoomEvent{
				Type:      incoming.Type,
				RoomID:    client.RoomID,
				UserID:    client.UserID,
				Role:      client.Role,
				Timestamp: time.Now(),
			})
		}
	}
}

// writePump 處理向客戶端發送事件的邏輯
func (m *EventManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			payload, err := json.Marshal(event)
			if err != nil {
				log.Error().Err(err).Msg("事件編碼失敗")
				continue
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastToRoom 向房間內的所有客戶端廣播事件
func (m *EventManager) BroadcastToRoom(roomID uuid.UUID, event *RoomEvent) {
	m.clientsMux.RLock()
	clients := m.clients[roomID]
	targets := make([]*Client, 0, len(clients))
	for client := range clients {
		targets = append(targets, client)
	}
	m.clientsMux.RUnlock()

	for _, client := range targets {
		select {
		case client.SendChan <- event:
			// 事件成功加入發送隊列
		default:
			// 客戶端隊列已滿，關閉連接
			m.removeClient(client)
			client.Conn.Close()
		}
	}
}

// ParticipantJoined 廣播用戶加入事件
func (m *EventManager) ParticipantJoined(roomID, userID uuid.UUID, role models.ParticipantRole) {
	m.BroadcastToRoom(roomID, &RoomEvent{
		Type:      EventParticipantJoined,
		RoomID:    roomID,
		UserID:    userID,
		Role:      role,
		Timestamp: time.Now(),
	})
}

// ParticipantLeft 廣播用戶離開事件
func (m *EventManager) ParticipantLeft(roomID, userID uuid.UUID, role models.ParticipantRole) {
	m.BroadcastToRoom(roomID, &RoomEvent{
		Type:      EventParticipantLeft,
		RoomID:    roomID,
		UserID:    userID,
		Role:      role,
		Timestamp: time.Now(),
	})
}

// StatusChanged 廣播房間狀態轉移事件
func (m *EventManager) StatusChanged(roomID uuid.UUID, status models.RoomStatus) {
	m.BroadcastToRoom(roomID, &RoomEvent{
		Type:      EventStatusChanged,
		RoomID:    roomID,
		Status:    status,
		Timestamp: time.Now(),
	})
}

// addClient 安全地添加新的客戶端連接
func (m *EventManager) addClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if m.clients[client.RoomID] == nil {
		m.clients[client.RoomID] = make(map[*Client]bool)
	}
	m.clients[client.RoomID][client] = true
}

// removeClient 安全地移除客戶端連接
func (m *EventManager) removeClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if clients, ok := m.clients[client.RoomID]; ok {
		delete(clients, client)
		// 如果房間空了，刪除房間
		if len(clients) == 0 {
			delete(m.clients, client.RoomID)
		}
	}
}

// GetRoomClients 獲取指定房間的在線客戶端數量
func (m *EventManager) GetRoomClients(roomID uuid.UUID) int {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	return len(m.clients[roomID])
}
