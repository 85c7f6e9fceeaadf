package handler

import (
	"context"

	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetRoomRequest struct {
	RoomID string `params:"room_id" validate:"required,uuid"`
}

type GetRoomHandler struct {
	usecase httpUsecase.GetRoomUseCase
}

func NewGetRoomHandler(usecase httpUsecase.GetRoomUseCase) *GetRoomHandler {
	return &GetRoomHandler{
		usecase: usecase,
	}
}

func (h *GetRoomHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetRoomRequest) (*httpUsecase.RoomView, int, error) {
	status, view, err := h.usecase.Execute(ctx, req.RoomID)
	if err != nil {
		return nil, status, err
	}
	return view, status, nil
}
