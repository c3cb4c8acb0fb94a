package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"debate_arena/internal/models"
	"debate_arena/internal/service"
)

// RoomHandler 處理與辯論房間相關的請求
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler 創建一個新的 RoomHandler 實例
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// JoinRoomInput 定義加入房間請求的結構
type JoinRoomInput struct {
	Role string `json:"role" binding:"required"`
}

// UpdateStatusInput 定義轉移房間狀態請求的結構
type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// ListRooms 處理查詢辯論主題底下房間列表的請求
func (h *RoomHandler) ListRooms(c *gin.Context) {
	debateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "無效的辯論主題ID")
		return
	}

	rooms, err := h.roomService.ListRooms(debateID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "查詢房間列表失敗")
		return
	}

	respond(c, http.StatusOK, rooms, "")
}

// CreateRoom 處理建立房間的請求
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	debateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "無效的辯論主題ID")
		return
	}

	room, err := h.roomService.CreateRoom(debateID)
	if err != nil {
		if errors.Is(err, service.ErrDebateNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "建立房間失敗")
		return
	}

	respond(c, http.StatusCreated, room, "房間建立成功")
}

// GetRoom 處理查詢單一房間的請求
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "無效的房間ID")
		return
	}

	detail, err := h.roomService.GetRoomDetail(roomID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "查詢房間失敗")
		return
	}

	respond(c, http.StatusOK, detail, "")
}

// JoinRoom 處理加入房間的請求
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "無效的房間ID")
		return
	}

	var input JoinRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	role, ok := models.ParseParticipantRole(input.Role)
	if !ok {
		respondError(c, http.StatusBadRequest, "無效的角色")
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	participant, err := h.roomService.JoinRoom(roomID, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyJoined), errors.Is(err, service.ErrRoomClosed):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "加入房間失敗")
		}
		return
	}

	respond(c, http.StatusOK, participant, "成功加入房間")
}

// LeaveRoom 處理離開房間的請求
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "無效的房間ID")
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	if err := h.roomService.LeaveRoom(roomID, userID); err != nil {
		if errors.Is(err, service.ErrNotInRoom) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "離開房間失敗")
		return
	}

	respond(c, http.StatusOK, nil, "成功離開房間")
}

// UpdateStatus 處理轉移房間狀態的請求
func (h *RoomHandler) UpdateStatus(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "無效的房間ID")
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	status, ok := models.ParseRoomStatus(input.Status)
	if !ok {
		respondError(c, http.StatusBadRequest, "無效的房間狀態")
		return
	}

	room, err := h.roomService.UpdateStatus(roomID, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrBadTransition), errors.Is(err, service.ErrNotReady):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "更新房間狀態失敗")
		}
		return
	}

	respond(c, http.StatusOK, room, "")
}
