package domain

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
)

type WebSocketErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// Client is one websocket connection. RoomID is empty for lobby connections.
type Client struct {
	ID        string
	RoomID    string
	Mode      Mode
	Session   Session
	Send      chan []byte
	Conn      *websocket.Conn
	WriteLock sync.Mutex
	Done      chan struct{}
}
