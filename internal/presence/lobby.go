package presence

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"wordgame-service/domain"
)

// LobbyChange receives the full open-room list after every applied change.
type LobbyChange func(rooms []*domain.Room)

// LobbyWatcher keeps the open rooms of one mode, seeded by a list and kept
// current by the mode feed.
type LobbyWatcher struct {
	mode     domain.Mode
	sub      domain.Subscription
	onChange LobbyChange

	mu    sync.RWMutex
	rooms map[string]*domain.Room
	// last applied version per room id, kept after a room leaves the lobby
	seen map[string]int64

	done chan struct{}
	once sync.Once
}

func WatchLobby(ctx context.Context, src Source, mode domain.Mode, onChange LobbyChange) (*LobbyWatcher, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, mode)
	}
	sub, err := src.Subscribe(ctx, domain.RoomFilter{Mode: mode})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s lobby: %w", mode, err)
	}
	seed, err := src.List(ctx, domain.OpenRooms(mode))
	if err != nil {
		sub.Close()
		return nil, err
	}

	w := &LobbyWatcher{
		mode:     mode,
		sub:      sub,
		onChange: onChange,
		rooms:    make(map[string]*domain.Room, len(seed)),
		seen:     make(map[string]int64, len(seed)),
		done:     make(chan struct{}),
	}
	for _, r := range seed {
		w.rooms[r.ID] = r
		w.seen[r.ID] = r.Version
	}
	go w.run()
	return w, nil
}

func (w *LobbyWatcher) run() {
	defer close(w.done)
	for ev := range w.sub.Events() {
		if w.apply(ev) && w.onChange != nil {
			w.onChange(w.Rooms())
		}
	}
}

func (w *LobbyWatcher) apply(ev domain.RoomEvent) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, listed := w.rooms[ev.RoomID]
	if ev.Type == domain.EventDelete {
		w.seen[ev.RoomID] = math.MaxInt64
		delete(w.rooms, ev.RoomID)
		return listed
	}
	if ev.Room == nil {
		return false
	}
	if last, ok := w.seen[ev.RoomID]; ok && ev.Room.Version < last {
		return false
	}
	w.seen[ev.RoomID] = ev.Room.Version
	if !ev.Room.Status.Open() {
		delete(w.rooms, ev.RoomID)
		return listed
	}
	w.rooms[ev.RoomID] = ev.Room.Clone()
	return true
}

// Rooms returns the open rooms oldest first.
func (w *LobbyWatcher) Rooms() []*domain.Room {
	w.mu.RLock()
	out := make([]*domain.Room, 0, len(w.rooms))
	for _, r := range w.rooms {
		out = append(out, r.Clone())
	}
	w.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (w *LobbyWatcher) Mode() domain.Mode {
	return w.mode
}

func (w *LobbyWatcher) Done() <-chan struct{} {
	return w.done
}

func (w *LobbyWatcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.sub.Close()
	})
	return err
}
