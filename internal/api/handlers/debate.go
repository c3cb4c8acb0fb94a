package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"debate_arena/internal/models"
	"debate_arena/internal/repository"
	"debate_arena/internal/service"
)

// DebateHandler 處理與辯論主題相關的請求
type DebateHandler struct {
	debateService *service.DebateService
}

// NewDebateHandler 創建一個新的 DebateHandler 實例
func NewDebateHandler(debateService *service.DebateService) *DebateHandler {
	return &DebateHandler{debateService: debateService}
}

// CreateDebateInput 定義建立辯論主題請求的結構
type CreateDebateInput struct {
	Title    string `json:"title" binding:"required"`
	Topic    string `json:"topic" binding:"required"`
	Category string `json:"category" binding:"required,debatecategory"`
}

// ListDebates 處理分頁查詢辯論主題的請求
func (h *DebateHandler) ListDebates(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	opts := repository.DebateListOptions{
		Page:   page,
		Limit:  limit,
		Status: models.DebateStatus(c.Query("status")),
	}

	debates, meta, err := h.debateService.ListDebates(opts)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "查詢辯論主題失敗")
		return
	}

	respond(c, http.StatusOK, gin.H{
		"data": debates,
		"meta": meta,
	}, "")
}

// CreateDebate 處理建立辯論主題的請求
func (h *DebateHandler) CreateDebate(c *gin.Context) {
	var input CreateDebateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := c.MustGet("userID").(uuid.UUID)

	debate, err := h.debateService.CreateDebate(input.Title, input.Topic, models.DebateCategory(input.Category), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "建立辯論主題失敗")
		return
	}

	respond(c, http.StatusCreated, debate, "辯論主題建立成功")
}

// GetDebate 處理查詢單一辯論主題的請求
func (h *DebateHandler) GetDebate(c *gin.Context) {
	debateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "無效的辯論主題ID")
		return
	}

	debate, err := h.debateService.GetDebate(debateID)
	if err != nil {
		if errors.Is(err, service.ErrDebateNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "查詢辯論主題失敗")
		return
	}

	respond(c, http.StatusOK, debate, "")
}
