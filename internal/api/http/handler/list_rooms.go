package handler

import (
	"context"

	"wordgame-service/domain"
	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type ListRoomsRequest struct {
	Mode string `query:"mode" validate:"required,oneof=battle survival"`
}

type ListRoomsResponse struct {
	Rooms []*domain.Room `json:"rooms"`
}

type ListRoomsHandler struct {
	usecase httpUsecase.ListRoomsUseCase
}

func NewListRoomsHandler(usecase httpUsecase.ListRoomsUseCase) *ListRoomsHandler {
	return &ListRoomsHandler{
		usecase: usecase,
	}
}

func (h *ListRoomsHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *ListRoomsRequest) (*ListRoomsResponse, int, error) {
	status, rooms, err := h.usecase.Execute(ctx, domain.Mode(req.Mode))
	if err != nil {
		return nil, status, err
	}
	return &ListRoomsResponse{Rooms: rooms}, status, nil
}
