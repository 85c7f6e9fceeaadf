package handler

import (
	"context"

	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type AttackRequest struct {
	RoomID string `params:"room_id" validate:"required,uuid"`
}

type AttackHandler struct {
	usecase httpUsecase.AttackUseCase
}

func NewAttackHandler(usecase httpUsecase.AttackUseCase) *AttackHandler {
	return &AttackHandler{
		usecase: usecase,
	}
}

func (h *AttackHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *AttackRequest) (*httpUsecase.AttackView, int, error) {
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
