package httpUsecase

import (
	"context"

	"wordgame-service/domain"
	"wordgame-service/internal/game"
)

// GameEngine is the part of game.Manager the HTTP intents drive.
type GameEngine interface {
	CreateRoom(ctx context.Context, s domain.Session, in game.CreateRoomInput) (*domain.Room, error)
	ListOpenRooms(ctx context.Context, mode domain.Mode) ([]*domain.Room, error)
	GetRoom(ctx context.Context, roomID string) (*domain.Room, error)
	ReapHostedRooms(ctx context.Context, hostID string) (int, error)
	Join(ctx context.Context, roomID string, s domain.Session, password string) (*domain.Room, error)
	Leave(ctx context.Context, roomID, playerID string) (*domain.Room, error)
	StartGame(ctx context.Context, roomID string, s domain.Session) (*domain.Room, error)
	SubmitAnswer(ctx context.Context, roomID string, s domain.Session, input string, atCursor *int) (game.AnswerResult, error)
	Pass(ctx context.Context, roomID string, s domain.Session, confirm bool, atCursor *int) (*domain.Room, error)
	Type(ctx context.Context, roomID string, s domain.Session, input string) (game.TypeResult, error)
	Attack(ctx context.Context, roomID string, s domain.Session) (game.AttackResult, error)
	BoardSnapshot(ctx context.Context, roomID, playerID string) (game.BoardSnapshot, error)
}
