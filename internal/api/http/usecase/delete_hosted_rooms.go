package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
)

// DeleteHostedRoomsUseCase removes rooms left behind by the caller, e.g. when
// the lobby mounts again after a crash.
type DeleteHostedRoomsUseCase interface {
	Execute(ctx context.Context, s domain.Session) (int, int, error)
}

type deleteHostedRoomsUseCase struct {
	engine GameEngine
}

func NewDeleteHostedRoomsUseCase(engine GameEngine) DeleteHostedRoomsUseCase {
	return &deleteHostedRoomsUseCase{
		engine: engine,
	}
}

func (u *deleteHostedRoomsUseCase) Execute(ctx context.Context, s domain.Session) (int, int, error) {
	removed, err := u.engine.ReapHostedRooms(ctx, s.PlayerID)
	if err != nil {
		return StatusFor(err), removed, err
	}
	return http.StatusOK, removed, nil
}
