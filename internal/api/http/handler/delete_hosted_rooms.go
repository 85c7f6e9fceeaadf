package handler

import (
	"context"

	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type DeleteHostedRoomsRequest struct {
}

type DeleteHostedRoomsResponse struct {
	Removed int `json:"removed"`
}

type DeleteHostedRoomsHandler struct {
	usecase httpUsecase.DeleteHostedRoomsUseCase
}

func NewDeleteHostedRoomsHandler(usecase httpUsecase.DeleteHostedRoomsUseCase) *DeleteHostedRoomsHandler {
	return &DeleteHostedRoomsHandler{
		usecase: usecase,
	}
}

func (h *DeleteHostedRoomsHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *DeleteHostedRoomsRequest) (*DeleteHostedRoomsResponse, int, error) {
	s, status, err := callerSession(fbrCtx)
	if err != nil {
		return nil, status, err
	}
	status, removed, err := h.usecase.Execute(ctx, s)
	if err != nil {
		return nil, status, err
	}
	return &DeleteHostedRoomsResponse{Removed: removed}, status, nil
}
