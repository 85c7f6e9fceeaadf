package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
)

type AttackView struct {
	TargetID string        `json:"target_id"`
	Effect   domain.Effect `json:"effect"`
	Room     *domain.Room  `json:"room"`
}

type AttackUseCase interface {
	Execute(ctx context.Context, roomID string, s domain.Session) (int, *AttackView, error)
}

type attackUseCase struct {
	engine GameEngine
}

func NewAttackUseCase(engine GameEngine) AttackUseCase {
	return &attackUseCase{
		engine: engine,
	}
}

func (u *attackUseCase) Execute(ctx context.Context, roomID string, s domain.Session) (int, *AttackView, error) {
	res, err := u.engine.Attack(ctx, roomID, s)
	if err != nil {
		return StatusFor(err), nil, err
	}
	return http.StatusOK, &AttackView{TargetID: res.TargetID, Effect: res.Effect, Room: res.Room.Public()}, nil
}
