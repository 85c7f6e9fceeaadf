package handler

import (
	"context"

	"wordgame-service/domain"
	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type JoinRoomRequest struct {
	RoomID   string `params:"room_id" validate:"required,uuid"`
	Password string `json:"password"`
}

type JoinRoomResponse struct {
	Message string       `json:"message"`
	Room    *domain.Room `json:"room"`
}

type JoinRoomHandler struct {
	usecase httpUsecase.JoinRoomUseCase
}

func NewJoinRoomHandler(usecase httpUsecase.JoinRoomUseCase) *JoinRoomHandler {
	return &JoinRoomHandler{
		usecase: usecase,
	}
}

func (h *JoinRoomHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *JoinRoomRequest) (*JoinRoomResponse, int, error) {
	s, status, err := callerSession(fbrCtx)
	if err != nil {
		return nil, status, err
	}

	status, room, err := h.usecase.Execute(ctx, req.RoomID, s, req.Password)
	if err != nil {
		return nil, status, err
	}

	return &JoinRoomResponse{Message: "Joined room", Room: room}, status, nil
}
