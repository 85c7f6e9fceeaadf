package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
	"wordgame-service/internal/game"
)

type PassUseCase interface {
	Execute(ctx context.Context, roomID string, s domain.Session, confirm bool, atCursor *int) (int, *RoomView, error)
}

type passUseCase struct {
	engine GameEngine
}

func NewPassUseCase(engine GameEngine) PassUseCase {
	return &passUseCase{
		engine: engine,
	}
}

func (u *passUseCase) Execute(ctx context.Context, roomID string, s domain.Session, confirm bool, atCursor *int) (int, *RoomView, error) {
	room, err := u.engine.Pass(ctx, roomID, s, confirm, atCursor)
	if err != nil {
		return StatusFor(err), nil, err
	}
	view := game.ViewOf(room)
	return http.StatusOK, &view, nil
}
