package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
	"wordgame-service/internal/game"
)

type CreateRoomUseCase interface {
	Execute(ctx context.Context, s domain.Session, in game.CreateRoomInput) (int, *domain.Room, error)
}

type createRoomUseCase struct {
	engine GameEngine
}

func NewCreateRoomUseCase(engine GameEngine) CreateRoomUseCase {
	return &createRoomUseCase{
		engine: engine,
	}
}

func (u *createRoomUseCase) Execute(ctx context.Context, s domain.Session, in game.CreateRoomInput) (int, *domain.Room, error) {
	room, err := u.engine.CreateRoom(ctx, s, in)
	if err != nil {
		return StatusFor(err), nil, err
	}
	return http.StatusCreated, room.Public(), nil
}
