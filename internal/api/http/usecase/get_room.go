package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/internal/game"
)

type RoomView = game.RoomView

type GetRoomUseCase interface {
	Execute(ctx context.Context, roomID string) (int, *RoomView, error)
}

type getRoomUseCase struct {
	engine GameEngine
}

func NewGetRoomUseCase(engine GameEngine) GetRoomUseCase {
	return &getRoomUseCase{
		engine: engine,
	}
}

func (u *getRoomUseCase) Execute(ctx context.Context, roomID string) (int, *RoomView, error) {
	room, err := u.engine.GetRoom(ctx, roomID)
	if err != nil {
		return StatusFor(err), nil, err
	}
	view := game.ViewOf(room)
	return http.StatusOK, &view, nil
}
