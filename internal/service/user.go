package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"debate_arena/internal/models"
	"debate_arena/internal/repository"
	"debate_arena/internal/utils"
	"debate_arena/pkg/config"
)

var (
	ErrEmailTaken         = errors.New("此信箱已被註冊")
	ErrInvalidCredentials = errors.New("信箱或密碼錯誤")
	ErrInvalidRefresh     = errors.New("refresh token 無效或已過期")
)

// TokenPair 是登入後發給客戶端的一組 token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtCfg    config.JWTConfig
}

func NewUserService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, jwtCfg config.JWTConfig) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtCfg:    jwtCfg,
	}
}

// RegisterInput 是註冊所需的欄位
type RegisterInput struct {
	Name     string
	Surname  string
	Email    string
	Password string
	Age      int
}

// Register 建立新用戶並簽發 token
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, *TokenPair, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, nil, ErrEmailTaken
	}

	// 對密碼進行加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Surname:  input.Surname,
		Email:    input.Email,
		Password: string(hashedPassword),
		Age:      input.Age,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Login 驗證密碼並簽發 token
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh 用 refresh token 換發新的 access token
// refresh token 必須和 Redis 中保存的一致，換發時一併輪替
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken([]byte(s.jwtCfg.Secret), refreshToken)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		return nil, ErrInvalidRefresh
	}

	stored, err := s.tokenRepo.GetRefreshToken(ctx, claims.UserID)
	if err != nil || stored != refreshToken {
		return nil, ErrInvalidRefresh
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	return s.issueTokens(ctx, user)
}

// Logout 註銷用戶的 refresh token
func (s *UserService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.tokenRepo.DeleteRefreshToken(ctx, userID)
}

// GetUser 查詢用戶資料
func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	secret := []byte(s.jwtCfg.Secret)
	accessTTL := time.Duration(s.jwtCfg.AccessTTLHours) * time.Hour
	refreshTTL := time.Duration(s.jwtCfg.RefreshTTLHours) * time.Hour

	access, err := utils.GenerateToken(secret, user.ID, utils.TokenTypeAccess, accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateToken(secret, user.ID, utils.TokenTypeRefresh, refreshTTL)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.SaveRefreshToken(ctx, user.ID, refresh, refreshTTL); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
