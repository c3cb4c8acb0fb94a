package service

import (
	"debate_arena/internal/repository"
	"debate_arena/pkg/config"
)

type Services struct {
	User   *UserService
	Debate *DebateService
	Room   *RoomService
	Events *EventManager
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	events := NewEventManager()

	userService := NewUserService(repos.User, repos.Token, cfg.JWT)
	debateService := NewDebateService(repos.Debate)
	roomService := NewRoomService(repos.Room, repos.Participant, repos.Debate, events)

	return &Services{
		User:   userService,
		Debate: debateService,
		Room:   roomService,
		Events: events,
	}
}
