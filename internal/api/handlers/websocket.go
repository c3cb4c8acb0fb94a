package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"debate_arena/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理房間事件訂閱的 WebSocket 連接
type WebSocketHandler struct {
	events      *service.EventManager
	roomService *service.RoomService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(events *service.EventManager, roomService *service.RoomService) *WebSocketHandler {
	return &WebSocketHandler{
		events:      events,
		roomService: roomService,
	}
}

// HandleWebSocket 處理 WebSocket 連接請求
// 用戶必須是房間內的在場參與者才能訂閱房間事件
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "無效的房間ID")
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	// 確定用戶在房間中的角色
	participant, err := h.roomService.ActiveParticipation(roomID, userID)
	if err != nil {
		respondError(c, http.StatusForbidden, "用戶未加入此房間")
		return
	}

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "升級WebSocket失敗")
		return
	}

	// 阻塞直到連接關閉
	h.events.HandleConnection(conn, roomID, userID, participant.Role)
}
