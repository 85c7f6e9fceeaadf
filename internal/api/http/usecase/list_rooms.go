package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
)

type ListRoomsUseCase interface {
	Execute(ctx context.Context, mode domain.Mode) (int, []*domain.Room, error)
}

type listRoomsUseCase struct {
	engine GameEngine
}

func NewListRoomsUseCase(engine GameEngine) ListRoomsUseCase {
	return &listRoomsUseCase{
		engine: engine,
	}
}

func (u *listRoomsUseCase) Execute(ctx context.Context, mode domain.Mode) (int, []*domain.Room, error) {
	rooms, err := u.engine.ListOpenRooms(ctx, mode)
	if err != nil {
		return StatusFor(err), nil, err
	}
	return http.StatusOK, publicRooms(rooms), nil
}
