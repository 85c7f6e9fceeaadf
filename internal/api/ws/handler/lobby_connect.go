package wsHandler

import (
	"context"

	"wordgame-service/domain"
	wsUsecase "wordgame-service/internal/api/ws/usecase"
	middleware "wordgame-service/internal/handler"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// WebSocketLobbyHandler serves /ws/lobby/:mode.
type WebSocketLobbyHandler struct {
	usecase wsUsecase.LobbyConnectUseCase
}

type WebSocketLobbyRequest struct {
}

func NewWebSocketLobbyHandler(usecase wsUsecase.LobbyConnectUseCase) *WebSocketLobbyHandler {
	return &WebSocketLobbyHandler{
		usecase: usecase,
	}
}

func (h *WebSocketLobbyHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *WebSocketLobbyRequest) {
	s, ok := middleware.SessionFromContext(ctx)
	if !ok {
		wsUsecase.SendErrorAndClose(c, domain.ErrUnauthorized, fiber.StatusUnauthorized)
		return
	}
	h.usecase.Execute(c, ctx, domain.Mode(utils.CopyString(c.Params("mode"))), s)
}
