package wsUsecase

import (
	"context"
	"fmt"
	"net/http"

	"wordgame-service/domain"
	httpUsecase "wordgame-service/internal/api/http/usecase"
	"wordgame-service/internal/api/ws/hub"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type RoomConnectUseCase interface {
	Execute(c *websocket.Conn, ctx context.Context, roomID string, s domain.Session)
}

type roomConnectUseCase struct {
	hub   Hub
	rooms RoomReader
}

func NewRoomConnectUseCase(hub Hub, rooms RoomReader) RoomConnectUseCase {
	return &roomConnectUseCase{
		hub:   hub,
		rooms: rooms,
	}
}

func newClient(c *websocket.Conn, s domain.Session, roomID string, mode domain.Mode) *domain.Client {
	return &domain.Client{
		ID:      s.PlayerID,
		RoomID:  roomID,
		Mode:    mode,
		Session: s,
		Conn:    c,
		Send:    make(chan []byte, hub.SendBuffer),
		Done:    make(chan struct{}),
	}
}

// SendErrorAndClose writes a single error frame and closes the socket.
func SendErrorAndClose(c *websocket.Conn, err error, code int) {
	msg := domain.WebSocketErrorMessage{
		Type:    "error",
		Message: err.Error(),
		Code:    code,
	}
	if werr := c.WriteJSON(msg); werr != nil {
		zap.L().Debug("Failed to send websocket error", zap.Error(werr))
	}
	c.Close()
}

// Execute blocks for the lifetime of the connection.
func (u *roomConnectUseCase) Execute(c *websocket.Conn, ctx context.Context, roomID string, s domain.Session) {
	room, err := u.rooms.GetRoom(ctx, roomID)
	if err != nil {
		SendErrorAndClose(c, err, httpUsecase.StatusFor(err))
		return
	}
	if !room.IsMember(s.PlayerID) {
		SendErrorAndClose(c, fmt.Errorf("%w: join the room before connecting", domain.ErrNotMember), http.StatusForbidden)
		return
	}

	client := newClient(c, s, roomID, room.Mode)
	if err := u.hub.Serve(client); err != nil {
		SendErrorAndClose(c, err, httpUsecase.StatusFor(err))
		return
	}
	zap.L().Debug("Room socket closed", zap.String("room_id", roomID), zap.String("player_id", s.PlayerID))
}
