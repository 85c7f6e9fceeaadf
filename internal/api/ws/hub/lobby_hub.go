package hub

import (
	"wordgame-service/domain"
	"wordgame-service/internal/presence"

	"go.uber.org/zap"
)

func publicRooms(rooms []*domain.Room) []*domain.Room {
	out := make([]*domain.Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Public())
	}
	return out
}

func (h *Hub) registerLobbyClient(client *domain.Client) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	clients, ok := h.lobbyClients[client.Mode]
	if !ok {
		clients = make(map[string]*domain.Client)
	}
	if existing, ok := clients[client.ID]; ok {
		close(existing.Done)
		delete(clients, client.ID)
	}

	w, ok := h.lobbies[client.Mode]
	if !ok {
		var err error
		w, err = presence.WatchLobby(h.ctx, h.source, client.Mode, func(rooms []*domain.Room) {
			h.BroadcastLobby(client.Mode, rooms)
		})
		if err != nil {
			return err
		}
		h.lobbies[client.Mode] = w
		zap.L().Debug("Lobby watcher started", zap.String("mode", string(client.Mode)))
	}

	clients[client.ID] = client
	h.lobbyClients[client.Mode] = clients
	h.sendLocked(client, &Message{Type: "lobby_snapshot", Content: publicRooms(w.Rooms())})
	return nil
}

func (h *Hub) removeLobbyClientLocked(client *domain.Client) func() error {
	clients, ok := h.lobbyClients[client.Mode]
	if !ok || clients[client.ID] != client {
		return nil
	}
	delete(clients, client.ID)
	close(client.Send)
	if len(clients) > 0 {
		return nil
	}
	delete(h.lobbyClients, client.Mode)
	w, ok := h.lobbies[client.Mode]
	if !ok {
		return nil
	}
	delete(h.lobbies, client.Mode)
	return w.Close
}

// BroadcastLobby sends the open-room list of mode to every lobby socket.
func (h *Hub) BroadcastLobby(mode domain.Mode, rooms []*domain.Room) {
	msg := &Message{Type: "lobby_snapshot", Content: publicRooms(rooms)}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for _, c := range h.lobbyClients[mode] {
		h.sendLocked(c, msg)
	}
}
