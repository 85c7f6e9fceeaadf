package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
)

type TypeView struct {
	Matched bool         `json:"matched"`
	Room    *domain.Room `json:"room"`
}

type TypeWordUseCase interface {
	Execute(ctx context.Context, roomID string, s domain.Session, input string) (int, *TypeView, error)
}

type typeWordUseCase struct {
	engine GameEngine
}

func NewTypeWordUseCase(engine GameEngine) TypeWordUseCase {
	return &typeWordUseCase{
		engine: engine,
	}
}

func (u *typeWordUseCase) Execute(ctx context.Context, roomID string, s domain.Session, input string) (int, *TypeView, error) {
	res, err := u.engine.Type(ctx, roomID, s, input)
	if err != nil {
		return StatusFor(err), nil, err
	}
	return http.StatusOK, &TypeView{Matched: res.Matched, Room: res.Room.Public()}, nil
}
