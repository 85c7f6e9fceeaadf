package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
)

type LeaveRoomUseCase interface {
	// Execute returns a nil room when leaving deleted it.
	Execute(ctx context.Context, roomID string, s domain.Session) (int, *domain.Room, error)
}

type leaveRoomUseCase struct {
	engine GameEngine
}

func NewLeaveRoomUseCase(engine GameEngine) LeaveRoomUseCase {
	return &leaveRoomUseCase{
		engine: engine,
	}
}

func (u *leaveRoomUseCase) Execute(ctx context.Context, roomID string, s domain.Session) (int, *domain.Room, error) {
	room, err := u.engine.Leave(ctx, roomID, s.PlayerID)
	if err != nil {
		return StatusFor(err), nil, err
	}
	if room == nil {
		return http.StatusOK, nil, nil
	}
	return http.StatusOK, room.Public(), nil
}
