package handler

import (
	"context"

	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type PassRequest struct {
	RoomID  string `params:"room_id" validate:"required,uuid"`
	Confirm bool   `json:"confirm"`
	Cursor  *int   `json:"cursor" validate:"omitempty,min=0"`
}

type PassHandler struct {
	usecase httpUsecase.PassUseCase
}

func NewPassHandler(usecase httpUsecase.PassUseCase) *PassHandler {
	return &PassHandler{
		usecase: usecase,
	}
}

func (h *PassHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *PassRequest) (*httpUsecase.RoomView, int, error) {
	s, status, err := callerSession(fbrCtx)
	if err != nil {
		return nil, status, err
	}

	status, view, err := h.usecase.Execute(ctx, req.RoomID, s, req.Confirm, req.Cursor)
	if err != nil {
		return nil, status, err
	}
	return view, status, nil
}
