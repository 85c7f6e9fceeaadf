package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"

	"go.uber.org/zap"
)

type JoinRoomUseCase interface {
	Execute(ctx context.Context, roomID string, s domain.Session, password string) (int, *domain.Room, error)
}

type joinRoomUseCase struct {
	engine GameEngine
}

func NewJoinRoomUseCase(engine GameEngine) JoinRoomUseCase {
	return &joinRoomUseCase{
		engine: engine,
	}
}

func (u *joinRoomUseCase) Execute(ctx context.Context, roomID string, s domain.Session, password string) (int, *domain.Room, error) {
	room, err := u.engine.Join(ctx, roomID, s, password)
	if err != nil {
		zap.L().Debug("Join rejected", zap.String("room_id", roomID), zap.String("player_id", s.PlayerID), zap.Error(err))
		return StatusFor(err), nil, err
	}
	return http.StatusOK, room.Public(), nil
}
