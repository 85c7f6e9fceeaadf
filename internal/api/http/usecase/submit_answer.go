package httpUsecase

import (
	"context"
	"net/http"

	"wordgame-service/domain"
	"wordgame-service/internal/game"
)

type AnswerView struct {
	Verdict game.Verdict `json:"verdict"`
	RoomView
}

type SubmitAnswerUseCase interface {
	Execute(ctx context.Context, roomID string, s domain.Session, input string, atCursor *int) (int, *AnswerView, error)
}

type submitAnswerUseCase struct {
	engine GameEngine
}

func NewSubmitAnswerUseCase(engine GameEngine) SubmitAnswerUseCase {
	return &submitAnswerUseCase{
		engine: engine,
	}
}

func (u *submitAnswerUseCase) Execute(ctx context.Context, roomID string, s domain.Session, input string, atCursor *int) (int, *AnswerView, error) {
	res, err := u.engine.SubmitAnswer(ctx, roomID, s, input, atCursor)
	if err != nil {
		return StatusFor(err), nil, err
	}
	return http.StatusOK, &AnswerView{Verdict: res.Verdict, RoomView: game.ViewOf(res.Room)}, nil
}
