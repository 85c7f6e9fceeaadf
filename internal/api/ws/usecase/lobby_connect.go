package wsUsecase

import (
	"context"
	"fmt"
	"net/http"

	"wordgame-service/domain"
	httpUsecase "wordgame-service/internal/api/http/usecase"

	"github.com/gofiber/contrib/websocket"
)

type LobbyConnectUseCase interface {
	Execute(c *websocket.Conn, ctx context.Context, mode domain.Mode, s domain.Session)
}

type lobbyConnectUseCase struct {
	hub Hub
}

func NewLobbyConnectUseCase(hub Hub) LobbyConnectUseCase {
	return &lobbyConnectUseCase{
		hub: hub,
	}
}

func (u *lobbyConnectUseCase) Execute(c *websocket.Conn, ctx context.Context, mode domain.Mode, s domain.Session) {
	if !mode.Valid() {
		SendErrorAndClose(c, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, mode), http.StatusBadRequest)
		return
	}
	if err := u.hub.Serve(newClient(c, s, "", mode)); err != nil {
		SendErrorAndClose(c, err, httpUsecase.StatusFor(err))
	}
}
