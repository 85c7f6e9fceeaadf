package hub

import (
	"wordgame-service/domain"
	"wordgame-service/internal/game"
	"wordgame-service/internal/presence"

	"go.uber.org/zap"
)

func roomView(room *domain.Room) game.RoomView {
	return game.ViewOf(room)
}

// startWatcher follows roomID for as long as it has clients. The caller
// holds h.mutex.
func (h *Hub) startWatcher(roomID string) (*presence.RoomWatcher, error) {
	w, err := presence.WatchRoom(h.ctx, h.source, roomID, func(room *domain.Room) {
		h.onRoomChange(roomID, room)
	})
	if err != nil {
		return nil, err
	}
	h.watchers[roomID] = w
	zap.L().Debug("Room watcher started", zap.String("room_id", roomID))
	return w, nil
}

// onRoomChange pushes a fresh snapshot to the room's sockets. Players who
// are no longer on the roster get the snapshot and are then disconnected;
// a deleted room disconnects everyone.
func (h *Hub) onRoomChange(roomID string, room *domain.Room) {
	var stop func() error

	h.mutex.Lock()
	clients := h.roomsClients[roomID]
	if room == nil {
		msg := &Message{Type: "room_deleted", Content: map[string]string{"room_id": roomID}}
		for id, c := range clients {
			h.sendLocked(c, msg)
			close(c.Send)
			delete(clients, id)
		}
		delete(h.roomsClients, roomID)
		if w, ok := h.watchers[roomID]; ok {
			delete(h.watchers, roomID)
			stop = w.Close
		}
		zap.L().Info("Room deleted, sockets closed", zap.String("room_id", roomID))
	} else {
		msg := &Message{Type: "room_snapshot", Content: roomView(room)}
		for id, c := range clients {
			h.sendLocked(c, msg)
			if !room.IsMember(id) {
				close(c.Send)
				delete(clients, id)
			}
		}
		if len(clients) == 0 {
			delete(h.roomsClients, roomID)
			if w, ok := h.watchers[roomID]; ok {
				delete(h.watchers, roomID)
				stop = w.Close
			}
		}
	}
	h.mutex.Unlock()

	if stop != nil {
		stop()
	}
}
