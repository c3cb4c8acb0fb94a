package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"debate_arena/pkg/roomstate"
)

// SessionData 是需要持久化的登入狀態
type SessionData struct {
	User         *roomstate.User `json:"user,omitempty"`
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
}

// SessionStore 負責登入狀態的持久化
type SessionStore interface {
	Load() (*SessionData, error)
	Save(*SessionData) error
	Clear() error
}

// FileStore 以 JSON 檔案保存登入狀態
type FileStore struct {
	Path string
}

func (s *FileStore) Load() (*SessionData, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &SessionData{}, nil
		}
		return nil, err
	}
	var data SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *FileStore) Save(data *SessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, raw, 0600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Session 保存當前登入用戶與 token，應用程式啟動時從 store 還原，
// 登出時清空。所有方法都可以並發呼叫。
type Session struct {
	mu    sync.RWMutex
	data  SessionData
	store SessionStore // nil 表示不持久化
}

// NewSession 建立 Session，store 非 nil 時從中還原先前的登入狀態
func NewSession(store SessionStore) *Session {
	s := &Session{store: store}
	if store != nil {
		if data, err := store.Load(); err == nil && data != nil {
			s.data = *data
		}
	}
	return s
}

// SetCredentials 記錄登入結果
func (s *Session) SetCredentials(user *roomstate.User, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user != nil {
		s.data.User = user
	}
	s.data.AccessToken = accessToken
	if refreshToken != "" {
		s.data.RefreshToken = refreshToken
	}
	s.persist()
}

// Clear 清空登入狀態
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = SessionData{}
	if s.store != nil {
		s.store.Clear()
	}
}

// User 回傳當前登入用戶，未登入時為 nil
func (s *Session) User() *roomstate.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.User
}

// UserID 回傳當前登入用戶的 ID，未登入時為空字串
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.User == nil {
		return ""
	}
	return s.data.User.ID
}

// AccessToken 回傳當前的 access token，未登入時為空字串
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.AccessToken
}

// RefreshToken 回傳當前的 refresh token
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.RefreshToken
}

// Authenticated 回傳是否已登入
func (s *Session) Authenticated() bool {
	return s.AccessToken() != ""
}

// persist 呼叫前必須持有寫鎖
func (s *Session) persist() {
	if s.store != nil {
		s.store.Save(&s.data)
	}
}
