package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"debate_arena/pkg/roomstate"
)

// fakeRoomServer 模擬後端的單一房間，記錄每個端點被呼叫的次數
type fakeRoomServer struct {
	mu           sync.Mutex
	status       roomstate.Status
	participants []roomstate.Participant

	getCalls    int
	joinCalls   int
	leaveCalls  int
	statusCalls int

	failLeaveMessage string // 非空時 leave 回傳 400 與此訊息
	dropLeave        bool   // leave 回 200 但不真的移除參與紀錄
	rejectStatusWith string // 非空時 PATCH status 一律拒絕並回此訊息
}

func (f *fakeRoomServer) detail() RoomDetail {
	groups := roomstate.Group(f.participants)
	counts := ParticipantCounts{
		Proposers: len(groups.Proposers),
		Opponents: len(groups.Opponents),
		Audience:  len(groups.Audience),
	}
	counts.Total = counts.Proposers + counts.Opponents + counts.Audience
	canStart := counts.Proposers > 0 && counts.Opponents > 0

	return RoomDetail{
		Room: Room{
			ID:           "room-1",
			DebateID:     "debate-1",
			Status:       f.status,
			Participants: f.participants,
		},
		Debate:            Debate{ID: "debate-1", Title: "測試主題"},
		Participants:      groups,
		ParticipantCounts: counts,
		RoomStatus: RoomStatusFlags{
			HasProposer: counts.Proposers > 0,
			HasOpponent: counts.Opponents > 0,
			CanStart:    canStart,
			IsReady:     canStart,
		},
	}
}

func (f *fakeRoomServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/rooms/room-1":
		f.getCalls++
		writeEnvelope(w, http.StatusOK, f.detail(), "")

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/join"):
		f.joinCalls++
		var body struct {
			Role string `json:"role"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		p := roomstate.Participant{
			ID:       "p-new",
			UserID:   "u1",
			RoomID:   "room-1",
			Role:     roomstate.Role(body.Role),
			JoinedAt: time.Now(),
			User:     roomstate.User{ID: "u1", Name: "阿明"},
		}
		f.participants = append(f.participants, p)
		writeEnvelope(w, http.StatusOK, p, "成功加入房間")

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/leave"):
		f.leaveCalls++
		if f.failLeaveMessage != "" {
			writeEnvelope(w, http.StatusBadRequest, nil, f.failLeaveMessage)
			return
		}
		if !f.dropLeave {
			now := time.Now()
			for i, p := range f.participants {
				if p.UserID == "u1" && p.LeftAt == nil {
					f.participants[i].LeftAt = &now
				}
			}
		}
		writeEnvelope(w, http.StatusOK, nil, "成功離開房間")

	case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/status"):
		f.statusCalls++
		if f.rejectStatusWith != "" {
			writeEnvelope(w, http.StatusBadRequest, nil, f.rejectStatusWith)
			return
		}
		var body struct {
			Status string `json:"status"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		status, _ := roomstate.ParseStatus(body.Status)
		f.status = status
		writeEnvelope(w, http.StatusOK, f.detail().Room, "")

	default:
		writeEnvelope(w, http.StatusNotFound, nil, "找不到該路徑")
	}
}

func active(id, userID string, role roomstate.Role) roomstate.Participant {
	return roomstate.Participant{
		ID:       id,
		UserID:   userID,
		RoomID:   "room-1",
		Role:     role,
		JoinedAt: time.Now(),
		User:     roomstate.User{ID: userID},
	}
}

func newTestController(t *testing.T, fake *fakeRoomServer) (*RoomController, func()) {
	t.Helper()
	ts := httptest.NewServer(fake)

	c := New(ts.URL)
	c.session.SetCredentials(&roomstate.User{ID: "u1", Name: "阿明"}, "token", "")

	rc := NewRoomController(c, "room-1")
	if err := rc.Refresh(context.Background()); err != nil {
		ts.Close()
		t.Fatalf("initial refresh failed: %v", err)
	}
	return rc, ts.Close
}

func TestControllerRefreshDerivesState(t *testing.T) {
	fake := &fakeRoomServer{
		status: roomstate.StatusWaiting,
		participants: []roomstate.Participant{
			active("p1", "u1", roomstate.RoleProposer),
			active("p2", "u2", roomstate.RoleOpponent),
		},
	}
	rc, done := newTestController(t, fake)
	defer done()

	props := rc.Properties()
	if !props.CanStart || props.ParticipantCount != 2 {
		t.Fatalf("unexpected derived properties: %+v", props)
	}

	participation := rc.Participation()
	if participation == nil || participation.Role != roomstate.RoleProposer {
		t.Fatalf("expected proposer participation for current user, got %+v", participation)
	}
}

func TestControllerJoinRejectedLocally(t *testing.T) {
	fake := &fakeRoomServer{
		status: roomstate.StatusWaiting,
		participants: []roomstate.Participant{
			active("p1", "u1", roomstate.RoleAudience),
		},
	}
	rc, done := newTestController(t, fake)
	defer done()

	err := rc.Join(context.Background(), roomstate.RoleProposer)
	if err != ErrAlreadyJoined {
		t.Fatalf("expected ErrAlreadyJoined, got %v", err)
	}
	// 本地驗證失敗時不應該發出任何請求
	if fake.joinCalls != 0 {
		t.Fatalf("expected no join request, got %d", fake.joinCalls)
	}
}

func TestControllerJoinSuccess(t *testing.T) {
	fake := &fakeRoomServer{status: roomstate.StatusWaiting}
	rc, done := newTestController(t, fake)
	defer done()

	if err := rc.Join(context.Background(), roomstate.RoleOpponent); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if fake.joinCalls != 1 {
		t.Fatalf("expected 1 join request, got %d", fake.joinCalls)
	}

	participation := rc.Participation()
	if participation == nil || participation.Role != roomstate.RoleOpponent {
		t.Fatalf("expected opponent participation after join, got %+v", participation)
	}
}

func TestControllerLeaveConfirmed(t *testing.T) {
	fake := &fakeRoomServer{
		status: roomstate.StatusWaiting,
		participants: []roomstate.Participant{
			active("p1", "u1", roomstate.RoleProposer),
		},
	}
	rc, done := newTestController(t, fake)
	defer done()

	if err := rc.Leave(context.Background()); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if rc.LeaveStatus() != LeaveConfirmed {
		t.Fatalf("expected LeaveConfirmed, got %v", rc.LeaveStatus())
	}
	if rc.Participation() != nil {
		t.Fatal("participation should be nil after a confirmed leave")
	}
}

func TestControllerLeaveRequestFails(t *testing.T) {
	fake := &fakeRoomServer{
		status: roomstate.StatusWaiting,
		participants: []roomstate.Participant{
			active("p1", "u1", roomstate.RoleProposer),
		},
		failLeaveMessage: "用戶不在房間內",
	}
	rc, done := newTestController(t, fake)
	defer done()

	err := rc.Leave(context.Background())
	if err == nil {
		t.Fatal("expected leave to fail")
	}
	// 後端的錯誤訊息必須原樣呈現
	if err.Error() != "用戶不在房間內" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if rc.LeaveStatus() != LeaveRolledBack {
		t.Fatalf("expected LeaveRolledBack, got %v", rc.LeaveStatus())
	}
	// 參與狀態應該被還原
	if rc.Participation() == nil {
		t.Fatal("participation should be restored after a failed leave")
	}
}

func TestControllerLeaveNotTakenEffect(t *testing.T) {
	// 伺服器回應成功但參與紀錄沒有被移除，對帳後應視為回滾
	fake := &fakeRoomServer{
		status: roomstate.StatusWaiting,
		participants: []roomstate.Participant{
			active("p1", "u1", roomstate.RoleProposer),
		},
		dropLeave: true,
	}
	rc, done := newTestController(t, fake)
	defer done()

	if err := rc.Leave(context.Background()); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if rc.LeaveStatus() != LeaveRolledBack {
		t.Fatalf("expected LeaveRolledBack, got %v", rc.LeaveStatus())
	}
	if rc.Participation() == nil {
		t.Fatal("participation should reflect server truth")
	}
}

func TestControllerLeaveWithoutParticipation(t *testing.T) {
	fake := &fakeRoomServer{status: roomstate.StatusWaiting}
	rc, done := newTestController(t, fake)
	defer done()

	if err := rc.Leave(context.Background()); err != ErrNotInRoom {
		t.Fatalf("expected ErrNotInRoom, got %v", err)
	}
	if fake.leaveCalls != 0 {
		t.Fatalf("expected no leave request, got %d", fake.leaveCalls)
	}
}

func TestControllerStartRejectedLocally(t *testing.T) {
	// 只有正方在場，開始的前提不成立
	fake := &fakeRoomServer{
		status: roomstate.StatusWaiting,
		participants: []roomstate.Participant{
			active("p1", "u1", roomstate.RoleProposer),
		},
	}
	rc, done := newTestController(t, fake)
	defer done()

	if err := rc.Start(context.Background()); err != ErrCannotStart {
		t.Fatalf("expected ErrCannotStart, got %v", err)
	}
	if fake.statusCalls != 0 {
		t.Fatalf("expected no status request, got %d", fake.statusCalls)
	}
}

func TestControllerStartSuccess(t *testing.T) {
	fake := &fakeRoomServer{
		status: roomstate.StatusWaiting,
		participants: []roomstate.Participant{
			active("p1", "u1", roomstate.RoleProposer),
			active("p2", "u2", roomstate.RoleOpponent),
		},
	}
	rc, done := newTestController(t, fake)
	defer done()

	if err := rc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if rc.Detail().Room.Status != roomstate.StatusLive {
		t.Fatalf("expected LIVE after start, got %s", rc.Detail().Room.Status)
	}
}

func TestControllerStartBackendRejected(t *testing.T) {
	// 前提成立但伺服器拒絕（例如另一個用戶搶先開始），訊息原樣回傳
	fake := &fakeRoomServer{
		status: roomstate.StatusWaiting,
		participants: []roomstate.Participant{
			active("p1", "u1", roomstate.RoleProposer),
			active("p2", "u2", roomstate.RoleOpponent),
		},
		rejectStatusWith: "房間狀態只能由 WAITING 進入 LIVE，再進入 FINISHED",
	}
	rc, done := newTestController(t, fake)
	defer done()

	err := rc.Start(context.Background())
	if err == nil {
		t.Fatal("expected start to fail")
	}
	if err.Error() != "房間狀態只能由 WAITING 進入 LIVE，再進入 FINISHED" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestControllerFinish(t *testing.T) {
	fake := &fakeRoomServer{
		status: roomstate.StatusLive,
		participants: []roomstate.Participant{
			active("p1", "u1", roomstate.RoleProposer),
			active("p2", "u2", roomstate.RoleOpponent),
		},
	}
	rc, done := newTestController(t, fake)
	defer done()

	if err := rc.Finish(context.Background()); err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if rc.Detail().Room.Status != roomstate.StatusFinished {
		t.Fatalf("expected FINISHED, got %s", rc.Detail().Room.Status)
	}

	// 已結束的房間不能再結束一次
	if err := rc.Finish(context.Background()); err != ErrCannotFinish {
		t.Fatalf("expected ErrCannotFinish, got %v", err)
	}
}
