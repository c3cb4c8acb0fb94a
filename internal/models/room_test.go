package models

import (
	"testing"
	"time"
)

func TestRoomStatusTransitions(t *testing.T) {
	tests := []struct {
		from RoomStatus
		to   RoomStatus
		ok   bool
	}{
		{RoomStatusWaiting, RoomStatusLive, true},
		{RoomStatusLive, RoomStatusFinished, true},
		// 不允許跳過或回退
		{RoomStatusWaiting, RoomStatusFinished, false},
		{RoomStatusLive, RoomStatusWaiting, false},
		{RoomStatusFinished, RoomStatusLive, false},
		{RoomStatusFinished, RoomStatusWaiting, false},
		{RoomStatusWaiting, RoomStatusWaiting, false},
		{RoomStatusWaiting, RoomStatus("PAUSED"), false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.ok, got)
		}
	}
}

func TestParseRoomStatusAliases(t *testing.T) {
	tests := []struct {
		in   string
		want RoomStatus
		ok   bool
	}{
		{"WAITING", RoomStatusWaiting, true},
		{"ACTIVE", RoomStatusLive, true},
		{"ENDED", RoomStatusFinished, true},
		{"COMPLETED", RoomStatusFinished, true},
		{"waiting", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRoomStatus(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseRoomStatus(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRoomCanStart(t *testing.T) {
	leftAt := time.Now()

	room := Room{
		Participants: []RoomParticipant{
			{Role: RoleProposer},
			{Role: RoleAudience},
		},
	}
	if room.CanStart() {
		t.Fatal("room without an opponent must not be startable")
	}

	room.Participants = append(room.Participants, RoomParticipant{Role: RoleOpponent})
	if !room.CanStart() {
		t.Fatal("room with both sides should be startable")
	}

	// 反方離開後就不能開始
	room.Participants[2].LeftAt = &leftAt
	if room.CanStart() {
		t.Fatal("left opponent must not count toward readiness")
	}
}

func TestActiveParticipants(t *testing.T) {
	leftAt := time.Now()
	room := Room{
		Participants: []RoomParticipant{
			{Role: RoleProposer},
			{Role: RoleOpponent, LeftAt: &leftAt},
			{Role: RoleAudience},
		},
	}

	active := room.ActiveParticipants()
	if len(active) != 2 {
		t.Fatalf("expected 2 active participants, got %d", len(active))
	}
	for _, p := range active {
		if p.LeftAt != nil {
			t.Fatal("active list must not contain left participants")
		}
	}
}
