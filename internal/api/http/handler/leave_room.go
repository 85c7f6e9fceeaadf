package handler

import (
	"context"

	"wordgame-service/domain"
	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/fiber/v2"
)

type LeaveRoomRequest struct {
	RoomID string `params:"room_id" validate:"required,uuid"`
}

type LeaveRoomResponse struct {
	Message string       `json:"message"`
	Deleted bool         `json:"deleted"`
	Room    *domain.Room `json:"room,omitempty"`
}

type LeaveRoomHandler struct {
	usecase httpUsecase.LeaveRoomUseCase
}

func NewLeaveRoomHandler(usecase httpUsecase.LeaveRoomUseCase) *LeaveRoomHandler {
	return &LeaveRoomHandler{
		usecase: usecase,
	}
}

func (h *LeaveRoomHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *LeaveRoomRequest) (*LeaveRoomResponse, int, error) {
	s, status, err := callerSession(fbrCtx)
	if err != nil {
		return nil, status, err
	}

	status, room, err := h.usecase.Execute(ctx, req.RoomID, s)
	if err != nil {
		return nil, status, err
	}
	if room == nil {
		return &LeaveRoomResponse{Message: "Room closed", Deleted: true}, status, nil
	}
	return &LeaveRoomResponse{Message: "Left room", Room: room}, status, nil
}
