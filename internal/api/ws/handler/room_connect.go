package wsHandler

import (
	"context"
	"fmt"

	"wordgame-service/domain"
	wsUsecase "wordgame-service/internal/api/ws/usecase"
	middleware "wordgame-service/internal/handler"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
)

// WebSocketRoomHandler serves /ws/rooms/:room_id.
type WebSocketRoomHandler struct {
	usecase wsUsecase.RoomConnectUseCase
}

type WebSocketRoomRequest struct {
}

func NewWebSocketRoomHandler(usecase wsUsecase.RoomConnectUseCase) *WebSocketRoomHandler {
	return &WebSocketRoomHandler{
		usecase: usecase,
	}
}

func (h *WebSocketRoomHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *WebSocketRoomRequest) {
	s, ok := middleware.SessionFromContext(ctx)
	if !ok {
		wsUsecase.SendErrorAndClose(c, domain.ErrUnauthorized, fiber.StatusUnauthorized)
		return
	}

	roomID := utils.CopyString(c.Params("room_id"))
	if _, err := uuid.Parse(roomID); err != nil {
		wsUsecase.SendErrorAndClose(c, fmt.Errorf("%w: failed to parse room id", domain.ErrInvalidInput), fiber.StatusBadRequest)
		return
	}

	h.usecase.Execute(c, ctx, roomID, s)
}
