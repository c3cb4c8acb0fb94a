package client

import (
	"context"
	"net/http"

	"debate_arena/pkg/roomstate"
)

// RegisterInput 是註冊所需的欄位
type RegisterInput struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

// LoginInput 是登入所需的欄位
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register 註冊新用戶，成功後記錄登入狀態
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", input, &result); err != nil {
		return nil, err
	}
	c.session.SetCredentials(result.User, result.AccessToken, result.RefreshToken)
	return &result, nil
}

// Login 登入，成功後記錄登入狀態
func (c *Client) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", input, &result); err != nil {
		return nil, err
	}
	c.session.SetCredentials(result.User, result.AccessToken, result.RefreshToken)
	return &result, nil
}

// RefreshSession 用 refresh token 換發新的 access token
func (c *Client) RefreshSession(ctx context.Context) error {
	body := map[string]string{"refresh_token": c.session.RefreshToken()}

	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", body, &result); err != nil {
		return err
	}
	c.session.SetCredentials(nil, result.AccessToken, result.RefreshToken)
	return nil
}

// Profile 抓取當前登入用戶的資料
func (c *Client) Profile(ctx context.Context) (*roomstate.User, error) {
	var result struct {
		User *roomstate.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &result); err != nil {
		return nil, err
	}
	return result.User, nil
}

// Logout 登出並清空本地登入狀態
// 即使後端請求失敗，本地狀態也一律清空
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.session.Clear()
	return err
}
