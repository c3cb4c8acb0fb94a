package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"debate_arena/internal/service"
)

// AuthHandler 處理與認證相關的請求
type AuthHandler struct {
	userService *service.UserService
}

// NewAuthHandler 創建一個新的 AuthHandler 實例
func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RegisterInput 定義註冊請求的結構
type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2"`
	Surname  string `json:"surname" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Age      int    `json:"age" binding:"required,gte=13,lte=120"`
}

// LoginInput 定義登入請求的結構
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshInput 定義換發 token 請求的結構
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register 處理用戶註冊
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	// 解析並驗證請求體
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, tokens, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Name:     input.Name,
		Surname:  input.Surname,
		Email:    input.Email,
		Password: input.Password,
		Age:      input.Age,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "創建使用者失敗")
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}, "使用者註冊成功")
}

// Login 處理用戶登入
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, tokens, err := h.userService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	respond(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}, "")
}

// Refresh 用 refresh token 換發新的一組 token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.userService.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	respond(c, http.StatusOK, gin.H{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}, "")
}

// Profile 回傳當前登入用戶的資料
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondError(c, http.StatusNotFound, "用戶不存在")
		return
	}

	respond(c, http.StatusOK, gin.H{"user": user}, "")
}

// Logout 註銷當前用戶的 refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	if err := h.userService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, http.StatusInternalServerError, "登出失敗")
		return
	}

	respond(c, http.StatusOK, nil, "已登出")
}
