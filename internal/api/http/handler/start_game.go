package handler

import (
	"context"

	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type StartGameRequest struct {
	RoomID string `params:"room_id" validate:"required,uuid"`
}

type StartGameHandler struct {
	usecase httpUsecase.StartGameUseCase
}

func NewStartGameHandler(usecase httpUsecase.StartGameUseCase) *StartGameHandler {
	return &StartGameHandler{
		usecase: usecase,
	}
}

func (h *StartGameHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *StartGameRequest) (*httpUsecase.RoomView, int, error) {
	s, status, err := callerSession(fbrCtx)
	if err != nil {
		return nil, status, err
	}

	status, view, err := h.usecase.Execute(ctx, req.RoomID, s)
	if err != nil {
		return nil, status, err
	}
	return view, status, nil
}
