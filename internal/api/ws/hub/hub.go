package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"wordgame-service/domain"
	"wordgame-service/internal/presence"

	"github.com/fasthttp/websocket"
	"go.uber.org/zap"
)

type Message struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content"`
}

// Inbound is a client frame; Content is decoded per Type.
type Inbound struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// SendBuffer is the queue length of a client Send channel.
	SendBuffer = 256
)

var ErrHubClosed = errors.New("hub is not running")

// Limiter throttles intents per player.
type Limiter interface {
	Allow(playerID string) bool
}

type registration struct {
	client *domain.Client
	errc   chan error
}

// Hub fans room and lobby changes out to websocket clients and feeds their
// intents to the engine.
type Hub struct {
	// roomsClients odadaki istemcileri oyuncu ID'sine göre tutar
	roomsClients map[string]map[string]*domain.Client
	lobbyClients map[domain.Mode]map[string]*domain.Client
	watchers     map[string]*presence.RoomWatcher
	lobbies      map[domain.Mode]*presence.LobbyWatcher

	source  presence.Source
	engine  Engine
	limiter Limiter

	register   chan registration
	unregister chan *domain.Client

	mutex sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(source presence.Source, engine Engine, limiter Limiter) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		roomsClients: make(map[string]map[string]*domain.Client),
		lobbyClients: make(map[domain.Mode]map[string]*domain.Client),
		watchers:     make(map[string]*presence.RoomWatcher),
		lobbies:      make(map[domain.Mode]*presence.LobbyWatcher),
		source:       source,
		engine:       engine,
		limiter:      limiter,
		register:     make(chan registration),
		unregister:   make(chan *domain.Client),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Run is the heart of the hub: all registration changes go through it.
func (h *Hub) Run(ctx context.Context) {
	go func() {
		for {
			select {
			case reg := <-h.register:
				reg.errc <- h.registerClient(reg.client)
			case client := <-h.unregister:
				h.unregisterClient(client)
			case <-ctx.Done():
				h.shutdown()
				return
			case <-h.ctx.Done():
				h.shutdown()
				return
			}
		}
	}()
}

// Close stops the run loop and releases every watcher.
func (h *Hub) Close() {
	h.cancel()
}

func (h *Hub) RegisterClient(client *domain.Client) error {
	reg := registration{client: client, errc: make(chan error, 1)}
	select {
	case h.register <- reg:
	case <-h.ctx.Done():
		return ErrHubClosed
	}
	return <-reg.errc
}

func (h *Hub) UnregisterClient(client *domain.Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Serve registers client and pumps its connection until it closes. It returns
// only after both pumps are done, the connection is recycled once the
// websocket handler returns.
func (h *Hub) Serve(client *domain.Client) error {
	if err := h.RegisterClient(client); err != nil {
		return err
	}
	written := make(chan struct{})
	go func() {
		defer close(written)
		h.writePump(client)
	}()
	h.readPump(client)
	<-written
	return nil
}

// registerClient runs on the hub loop.
func (h *Hub) registerClient(client *domain.Client) error {
	if client.RoomID == "" {
		return h.registerLobbyClient(client)
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	roomClients, ok := h.roomsClients[client.RoomID]
	if !ok {
		roomClients = make(map[string]*domain.Client)
	}

	// Aynı oyuncu tekrar bağlandıysa eski bağlantıyı kapat
	if existing, ok := roomClients[client.ID]; ok {
		zap.L().Info("Player reconnected, closing old connection",
			zap.String("player_id", client.ID), zap.String("room_id", client.RoomID))
		close(existing.Done)
		delete(roomClients, client.ID)
	}

	w, ok := h.watchers[client.RoomID]
	if !ok {
		var err error
		w, err = h.startWatcher(client.RoomID)
		if err != nil {
			return err
		}
	}
	snap, err := w.Snapshot()
	if err == nil && !snap.IsMember(client.ID) {
		err = fmt.Errorf("%w: player %s", domain.ErrNotMember, client.ID)
	}
	if err != nil {
		if len(roomClients) == 0 {
			delete(h.roomsClients, client.RoomID)
			delete(h.watchers, client.RoomID)
			w.Close()
		}
		return err
	}

	roomClients[client.ID] = client
	h.roomsClients[client.RoomID] = roomClients
	zap.L().Debug("Client registered",
		zap.String("player_id", client.ID),
		zap.String("room_id", client.RoomID),
		zap.Int("clients", len(roomClients)))

	h.sendLocked(client, &Message{Type: "room_snapshot", Content: roomView(snap)})
	return nil
}

// unregisterClient runs on the hub loop. A client that was already replaced
// or dropped is ignored.
func (h *Hub) unregisterClient(client *domain.Client) {
	var stop func() error

	h.mutex.Lock()
	if client.RoomID == "" {
		stop = h.removeLobbyClientLocked(client)
	} else {
		stop = h.removeRoomClientLocked(client)
	}
	h.mutex.Unlock()

	if stop != nil {
		stop()
	}
}

func (h *Hub) removeRoomClientLocked(client *domain.Client) func() error {
	roomClients, ok := h.roomsClients[client.RoomID]
	if !ok || roomClients[client.ID] != client {
		return nil
	}
	delete(roomClients, client.ID)
	close(client.Send)
	zap.L().Debug("Client unregistered",
		zap.String("player_id", client.ID),
		zap.String("room_id", client.RoomID),
		zap.Int("remaining", len(roomClients)))

	if len(roomClients) > 0 {
		return nil
	}
	// Oda boşaldı, watcher kapatılıyor
	delete(h.roomsClients, client.RoomID)
	w, ok := h.watchers[client.RoomID]
	if !ok {
		return nil
	}
	delete(h.watchers, client.RoomID)
	return w.Close
}

func (h *Hub) shutdown() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for roomID, clients := range h.roomsClients {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.roomsClients, roomID)
	}
	for mode, clients := range h.lobbyClients {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.lobbyClients, mode)
	}
	for id, w := range h.watchers {
		w.Close()
		delete(h.watchers, id)
	}
	for mode, w := range h.lobbies {
		w.Close()
		delete(h.lobbies, mode)
	}
	h.cancel()
}

// RoomClientCount reports how many sockets follow roomID.
func (h *Hub) RoomClientCount(roomID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.roomsClients[roomID])
}

// LobbyClientCount reports how many sockets follow the lobby of mode.
func (h *Hub) LobbyClientCount(mode domain.Mode) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.lobbyClients[mode])
}

func (h *Hub) readPump(client *domain.Client) {
	defer func() {
		h.UnregisterClient(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Debug("Client connection closed", zap.String("player_id", client.ID))
			} else {
				zap.L().Debug("Client read error", zap.String("player_id", client.ID), zap.Error(err))
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.replyError(client, fmt.Errorf("%w: malformed message", domain.ErrInvalidInput))
			continue
		}
		if client.RoomID == "" {
			// lobby istemcileri sadece dinler
			continue
		}
		h.handleIntent(client, msg)
	}
}

func (h *Hub) writePump(client *domain.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
		h.UnregisterClient(client)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				// Hub Send kanalını kapattı
				client.WriteLock.Lock()
				client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				client.WriteLock.Unlock()
				return
			}

			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.TextMessage, msg)
			client.WriteLock.Unlock()
			if err != nil {
				zap.L().Debug("WebSocket write error", zap.String("player_id", client.ID), zap.Error(err))
				return
			}

		case <-ticker.C:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.PingMessage, nil)
			client.WriteLock.Unlock()
			if err != nil {
				return
			}

		case <-client.Done:
			return
		}
	}
}

// sendLocked queues v for client. The caller holds h.mutex.
func (h *Hub) sendLocked(client *domain.Client, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("Failed to marshal websocket message", zap.String("player_id", client.ID), zap.Error(err))
		return
	}
	select {
	case client.Send <- payload:
	default:
		zap.L().Warn("Client send channel is full, dropping message", zap.String("player_id", client.ID))
	}
}

// reply queues v for client if it is still registered.
func (h *Hub) reply(client *domain.Client, v any) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if !h.registeredLocked(client) {
		return
	}
	h.sendLocked(client, v)
}

func (h *Hub) registeredLocked(client *domain.Client) bool {
	if client.RoomID == "" {
		return h.lobbyClients[client.Mode][client.ID] == client
	}
	return h.roomsClients[client.RoomID][client.ID] == client
}
