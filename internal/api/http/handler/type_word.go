package handler

import (
	"context"

	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type TypeWordRequest struct {
	RoomID string `params:"room_id" validate:"required,uuid"`
	Input  string `json:"input" validate:"required,max=128"`
}

type TypeWordHandler struct {
	usecase httpUsecase.TypeWordUseCase
}

func NewTypeWordHandler(usecase httpUsecase.TypeWordUseCase) *TypeWordHandler {
	return &TypeWordHandler{
		usecase: usecase,
	}
}

func (h *TypeWordHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *TypeWordRequest) (*httpUsecase.TypeView, int, error) {
	s, status, err := callerSession(fbrCtx)
	if err != nil {
		return nil, status, err
	}

	status, view, err := h.usecase.Execute(ctx, req.RoomID, s, req.Input)
	if err != nil {
		return nil, status, err
	}
	return view, status, nil
}
