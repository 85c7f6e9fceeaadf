package handler

import (
	"context"

	"wordgame-service/domain"
	httpUsecase "wordgame-service/internal/api/http/usecase"
	"wordgame-service/internal/game"

	"github.com/gofiber/fiber/v2"
)

type CreateRoomRequest struct {
	Name       string `json:"name" validate:"required,max=64"`
	Mode       string `json:"mode" validate:"required,oneof=battle survival"`
	Capacity   int    `json:"capacity" validate:"omitempty,min=2,max=10"`
	Password   string `json:"password" validate:"omitempty,max=64"`
	Book       string `json:"book" validate:"omitempty,max=128"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy normal hard"`
}

type CreateRoomResponse struct {
	Message string       `json:"message"`
	Room    *domain.Room `json:"room"`
}

type CreateRoomHandler struct {
	usecase httpUsecase.CreateRoomUseCase
}

func NewCreateRoomHandler(usecase httpUsecase.CreateRoomUseCase) *CreateRoomHandler {
	return &CreateRoomHandler{
		usecase: usecase,
	}
}

func (h *CreateRoomHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *CreateRoomRequest) (*CreateRoomResponse, int, error) {
	s, status, err := callerSession(fbrCtx)
	if err != nil {
		return nil, status, err
	}

	status, room, err := h.usecase.Execute(ctx, s, game.CreateRoomInput{
		Name:       req.Name,
		Mode:       domain.Mode(req.Mode),
		Capacity:   req.Capacity,
		Password:   req.Password,
		Book:       req.Book,
		Difficulty: domain.Difficulty(req.Difficulty),
	})
	if err != nil {
		return nil, status, err
	}

	return &CreateRoomResponse{Message: "Room created", Room: room}, status, nil
}
