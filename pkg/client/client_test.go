package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"debate_arena/pkg/roomstate"
)

// writeEnvelope 以後端的統一格式回傳測試回應
func writeEnvelope(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    status < 400,
		"statusCode": status,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"path":       "",
		"method":     "",
		"data":       data,
		"message":    message,
	})
}

func TestDoUnwrapsEnvelopeData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]string{"id": "debate-1", "title": "全民基本收入"}, "")
	}))
	defer ts.Close()

	c := New(ts.URL)
	var out struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := c.do(context.Background(), http.MethodGet, "/api/debates/debate-1", nil, &out); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if out.ID != "debate-1" || out.Title != "全民基本收入" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestDoFallsBackToWholeBody(t *testing.T) {
	// 舊版端點不帶外層，直接回傳資料本體
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "room-1"})
	}))
	defer ts.Close()

	c := New(ts.URL)
	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(context.Background(), http.MethodGet, "/api/rooms/room-1", nil, &out); err != nil {
		t.Fatalf("do failed: %v", err)
	}
	if out.ID != "room-1" {
		t.Fatalf("expected fallback to body, got %+v", out)
	}
}

func TestDoSurfacesBackendMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, nil, "用戶已在房間內，請先離開再加入")
	}))
	defer ts.Close()

	c := New(ts.URL)
	err := c.do(context.Background(), http.MethodPost, "/api/rooms/room-1/join", nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	// 後端的錯誤訊息必須原樣呈現
	if apiErr.Message != "用戶已在房間內，請先離開再加入" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestDoFallbackMessage(t *testing.T) {
	// 後端沒有給訊息時要用預設文字
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(ts.URL)
	err := c.do(context.Background(), http.MethodGet, "/api/debates", nil, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != defaultErrorMessage {
		t.Fatalf("expected fallback message, got %q", err.Error())
	}
}

func TestDoUnauthorizedClearsSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil, "Invalid or expired token")
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.session.SetCredentials(&roomstate.User{ID: "u1"}, "stale-token", "refresh")

	_ = c.do(context.Background(), http.MethodGet, "/api/auth/profile", nil, nil)
	if c.session.Authenticated() {
		t.Fatal("session should be cleared after 401")
	}
}

func TestDoUnauthorizedOnLoginKeepsSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, nil, "信箱或密碼錯誤")
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.session.SetCredentials(&roomstate.User{ID: "u1"}, "valid-token", "refresh")

	// 登入失敗不應該動到既有的登入狀態
	_, err := c.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "wrong"})
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if !c.session.Authenticated() {
		t.Fatal("session should survive a failed login attempt")
	}
}

func TestLoginStoresCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"user":          map[string]string{"id": "u1", "name": "阿明", "email": "a@b.c"},
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
		}, "")
	}))
	defer ts.Close()

	c := New(ts.URL)
	result, err := c.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User == nil || result.User.ID != "u1" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if c.session.AccessToken() != "access-1" {
		t.Fatalf("access token not stored, got %q", c.session.AccessToken())
	}
	if c.session.UserID() != "u1" {
		t.Fatalf("user not stored, got %q", c.session.UserID())
	}
}

func TestListRoomsRecomputesProperties(t *testing.T) {
	leftAt := time.Now()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []Room{
			{
				ID:       "room-1",
				DebateID: "debate-1",
				Status:   roomstate.StatusWaiting,
				Participants: []roomstate.Participant{
					{ID: "p1", UserID: "u1", Role: roomstate.RoleProposer},
					{ID: "p2", UserID: "u2", Role: roomstate.RoleOpponent, LeftAt: &leftAt},
				},
			},
		}, "")
	}))
	defer ts.Close()

	c := New(ts.URL)
	rooms, err := c.ListRooms(context.Background(), "debate-1")
	if err != nil {
		t.Fatalf("list rooms failed: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}

	props := rooms[0].Properties
	if props.ParticipantCount != 1 {
		t.Fatalf("expected 1 active participant, got %d", props.ParticipantCount)
	}
	if !props.HasProposer || props.HasOpponent || props.CanStart {
		t.Fatalf("unexpected derived properties: %+v", props)
	}
}

func TestSessionFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := &FileStore{Path: path}

	s := NewSession(store)
	s.SetCredentials(&roomstate.User{ID: "u1", Name: "阿明"}, "access-1", "refresh-1")

	// 重新啟動後應還原登入狀態
	restored := NewSession(store)
	if restored.UserID() != "u1" {
		t.Fatalf("expected restored user u1, got %q", restored.UserID())
	}
	if restored.AccessToken() != "access-1" || restored.RefreshToken() != "refresh-1" {
		t.Fatal("tokens not restored")
	}

	restored.Clear()
	cleared := NewSession(store)
	if cleared.Authenticated() {
		t.Fatal("session should be empty after clear")
	}
}
