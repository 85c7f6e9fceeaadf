package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
	"wordgame-service/internal/game"
)

type StartGameUseCase interface {
	Execute(ctx context.Context, roomID string, s domain.Session) (int, *RoomView, error)
}

type startGameUseCase struct {
	engine GameEngine
}

func NewStartGameUseCase(engine GameEngine) StartGameUseCase {
	return &startGameUseCase{
		engine: engine,
	}
}

func (u *startGameUseCase) Execute(ctx context.Context, roomID string, s domain.Session) (int, *RoomView, error) {
	room, err := u.engine.StartGame(ctx, roomID, s)
	if err != nil {
		return StatusFor(err), nil, err
	}
	view := game.ViewOf(room)
	return http.StatusOK, &view, nil
}
