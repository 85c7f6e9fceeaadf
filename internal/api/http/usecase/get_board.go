package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
	"wordgame-service/internal/game"
)

type GetBoardUseCase interface {
	Execute(ctx context.Context, roomID string, s domain.Session) (int, *game.BoardSnapshot, error)
}

type getBoardUseCase struct {
	engine GameEngine
}

func NewGetBoardUseCase(engine GameEngine) GetBoardUseCase {
	return &getBoardUseCase{
		engine: engine,
	}
}

func (u *getBoardUseCase) Execute(ctx context.Context, roomID string, s domain.Session) (int, *game.BoardSnapshot, error) {
	snap, err := u.engine.BoardSnapshot(ctx, roomID, s.PlayerID)
	if err != nil {
		return StatusFor(err), nil, err
	}
	return http.StatusOK, &snap, nil
}
