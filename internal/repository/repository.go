package repository

import (
	"github.com/redis/go-redis/v9"

	"debate_arena/internal/storage"
)

type Repositories struct {
	User        UserRepository
	Debate      DebateRepository
	Room        RoomRepository
	Participant ParticipantRepository
	Token       TokenRepository
}

func NewRepositories(db *storage.PostgresDB, rdb *redis.Client) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Debate:      NewDebateRepository(db),
		Room:        NewRoomRepository(db),
		Participant: NewParticipantRepository(db),
		Token:       NewTokenRepository(rdb),
	}
}
