package handler

import (
	"context"

	httpUsecase "wordgame-service/internal/api/http/usecase"
	"wordgame-service/internal/game"

	"github.com/gofiber/fiber/v2"
)

type GetBoardRequest struct {
	RoomID string `params:"room_id" validate:"required,uuid"`
}

type GetBoardHandler struct {
	usecase httpUsecase.GetBoardUseCase
}

func NewGetBoardHandler(usecase httpUsecase.GetBoardUseCase) *GetBoardHandler {
	return &GetBoardHandler{
		usecase: usecase,
	}
}

func (h *GetBoardHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetBoardRequest) (*game.BoardSnapshot, int, error) {
	s, status, err := callerSession(fbrCtx)
	if err != nil {
		return nil, status, err
	}

	status, snap, err := h.usecase.Execute(ctx, req.RoomID, s)
	if err != nil {
		return nil, status, err
	}
	return snap, status, nil
}
