package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"wordgame-service/domain"

	"github.com/google/uuid"
)

// Store keeps room records in process memory and fans out change events to
// subscribers. Each subscriber has its own unbounded queue so writers never
// block on slow readers.
type Store struct {
	mu      sync.RWMutex
	rooms   map[string]*domain.Room
	subs    map[int]*subscription
	nextSub int
	now     func() time.Time
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		rooms: make(map[string]*domain.Room),
		subs:  make(map[int]*subscription),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Insert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if room == nil {
		return nil, fmt.Errorf("%w: nil room", domain.ErrInvalidInput)
	}
	rec := room.Clone()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := s.now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	rec.Version = 1

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[rec.ID]; exists {
		return nil, fmt.Errorf("%w: room %s already exists", domain.ErrConflict, rec.ID)
	}
	s.rooms[rec.ID] = rec
	s.broadcast(domain.RoomEvent{Type: domain.EventInsert, RoomID: rec.ID, Mode: rec.Mode, Room: rec})
	return rec.Clone(), nil
}

func (s *Store) Get(ctx context.Context, roomID string) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", domain.ErrNotFound, roomID)
	}
	return rec.Clone(), nil
}

func (s *Store) List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	s.mu.RLock()
	out := make([]*domain.Room, 0, len(s.rooms))
	for _, rec := range s.rooms {
		if filter.Match(rec) {
			out = append(out, rec.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Update(ctx context.Context, roomID string, patch domain.RoomPatch) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", domain.ErrNotFound, roomID)
	}
	next := rec.Clone()
	patch.Apply(next)
	next.Version = rec.Version + 1
	next.UpdatedAt = s.now()
	s.rooms[roomID] = next
	s.broadcast(domain.RoomEvent{Type: domain.EventUpdate, RoomID: roomID, Mode: next.Mode, Room: next})
	return next.Clone(), nil
}

// Delete removes the record. Deleting a missing room is a no-op.
func (s *Store) Delete(ctx context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rooms[roomID]
	if !ok {
		return nil
	}
	delete(s.rooms, roomID)
	s.broadcast(domain.RoomEvent{Type: domain.EventDelete, RoomID: roomID, Mode: rec.Mode, Room: rec})
	return nil
}

func (s *Store) Subscribe(ctx context.Context, filter domain.RoomFilter) (domain.Subscription, error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	sub := newSubscription(s, id, filter)
	s.subs[id] = sub
	s.mu.Unlock()

	go sub.pump()
	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()
	return sub, nil
}

// broadcast must be called with s.mu held.
func (s *Store) broadcast(ev domain.RoomEvent) {
	for _, sub := range s.subs {
		if !sub.filter.MatchEvent(ev) {
			continue
		}
		cp := ev
		cp.Room = ev.Room.Clone()
		sub.push(cp)
	}
}

func (s *Store) removeSub(id int) {
	s.mu.Lock()
	delete(s.subs, id)
	s.mu.Unlock()
}

type subscription struct {
	store  *Store
	id     int
	filter domain.RoomFilter

	mu     sync.Mutex
	queue  []domain.RoomEvent
	notify chan struct{}
	out    chan domain.RoomEvent
	done   chan struct{}
	once   sync.Once
}

func newSubscription(store *Store, id int, filter domain.RoomFilter) *subscription {
	return &subscription{
		store:  store,
		id:     id,
		filter: filter,
		notify: make(chan struct{}, 1),
		out:    make(chan domain.RoomEvent),
		done:   make(chan struct{}),
	}
}

func (s *subscription) Events() <-chan domain.RoomEvent {
	return s.out
}

func (s *subscription) Close() error {
	s.once.Do(func() {
		s.store.removeSub(s.id)
		close(s.done)
	})
	return nil
}

func (s *subscription) push(ev domain.RoomEvent) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *subscription) pump() {
	defer close(s.out)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.notify:
				continue
			case <-s.done:
				return
			}
		}
		ev := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- ev:
		case <-s.done:
			return
		}
	}
}
