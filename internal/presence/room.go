package presence

import (
	"context"
	"fmt"
	"sync"

	"wordgame-service/domain"

	"go.uber.org/zap"
)

// Source is the read side of the room store.
type Source interface {
	Get(ctx context.Context, roomID string) (*domain.Room, error)
	List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error)
	Subscribe(ctx context.Context, filter domain.RoomFilter) (domain.Subscription, error)
}

// RoomChange is called after the held snapshot changed. room is nil once the
// room is gone.
type RoomChange func(room *domain.Room)

// RoomWatcher keeps a live copy of one room record.
type RoomWatcher struct {
	roomID   string
	sub      domain.Subscription
	onChange RoomChange

	mu   sync.RWMutex
	room *domain.Room
	gone bool

	done chan struct{}
	once sync.Once
}

// WatchRoom subscribes before fetching so no change between the two is lost.
func WatchRoom(ctx context.Context, src Source, roomID string, onChange RoomChange) (*RoomWatcher, error) {
	sub, err := src.Subscribe(ctx, domain.RoomFilter{ID: roomID})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to room %s: %w", roomID, err)
	}
	room, err := src.Get(ctx, roomID)
	if err != nil {
		sub.Close()
		return nil, err
	}

	w := &RoomWatcher{
		roomID:   roomID,
		sub:      sub,
		onChange: onChange,
		room:     room,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *RoomWatcher) run() {
	defer close(w.done)
	for ev := range w.sub.Events() {
		changed, room := w.apply(ev)
		if changed && w.onChange != nil {
			w.onChange(room)
		}
		if room == nil && changed {
			return
		}
	}
}

// apply replaces the snapshot wholesale unless ev is older than what is held.
func (w *RoomWatcher) apply(ev domain.RoomEvent) (bool, *domain.Room) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gone {
		return false, nil
	}
	if ev.Type == domain.EventDelete {
		w.gone = true
		w.room = nil
		return true, nil
	}
	if ev.Room == nil {
		return false, w.room.Clone()
	}
	if w.room != nil && ev.Room.Version < w.room.Version {
		zap.L().Debug("Discarding stale room notification",
			zap.String("room_id", w.roomID),
			zap.Int64("held", w.room.Version),
			zap.Int64("got", ev.Room.Version))
		return false, w.room.Clone()
	}
	w.room = ev.Room.Clone()
	return true, w.room.Clone()
}

// Snapshot returns the latest known record, or ErrNotFound after a delete.
func (w *RoomWatcher) Snapshot() (*domain.Room, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.gone {
		return nil, fmt.Errorf("%w: room %s", domain.ErrNotFound, w.roomID)
	}
	return w.room.Clone(), nil
}

func (w *RoomWatcher) RoomID() string {
	return w.roomID
}

// Done is closed once the watcher stopped following the room.
func (w *RoomWatcher) Done() <-chan struct{} {
	return w.done
}

// Close releases the subscription. It is safe to call from the change callback.
func (w *RoomWatcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.sub.Close()
	})
	return err
}
