package handler

import (
	"context"

	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type SubmitAnswerRequest struct {
	RoomID string `params:"room_id" validate:"required,uuid"`
	Answer string `json:"answer" validate:"max=128"`
	// Cursor is the prompt index the client answered; omitted means current.
	Cursor *int `json:"cursor" validate:"omitempty,min=0"`
}

type SubmitAnswerHandler struct {
	usecase httpUsecase.SubmitAnswerUseCase
}

func NewSubmitAnswerHandler(usecase httpUsecase.SubmitAnswerUseCase) *SubmitAnswerHandler {
	return &SubmitAnswerHandler{
		usecase: usecase,
	}
}

func (h *SubmitAnswerHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *SubmitAnswerRequest) (*httpUsecase.AnswerView, int, error) {
	s, status, err := callerSession(fbrCtx)
	if err != nil {
		return nil, status, err
	}

	status, view, err := h.usecase.Execute(ctx, req.RoomID, s, req.Answer, req.Cursor)
	if err != nil {
		return nil, status, err
	}
	return view, status, nil
}
