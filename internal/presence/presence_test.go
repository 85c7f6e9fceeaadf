package presence

import (
	"context"
	"sync"
	"testing"
	"time"

	"wordgame-service/domain"
	"wordgame-service/infra/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRoom(mode domain.Mode) *domain.Room {
	return &domain.Room{
		Name:     "r",
		Mode:     mode,
		Status:   domain.StatusWaiting,
		HostID:   "host",
		Capacity: 2,
		Roster:   domain.Roster{"host": {ID: "host"}},
	}
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	assert.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestRoomWatcherFollowsUpdates(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	room, err := store.Insert(ctx, newRoom(domain.ModeBattle))
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []int64
	w, err := WatchRoom(ctx, store, room.ID, func(r *domain.Room) {
		mu.Lock()
		defer mu.Unlock()
		if r != nil {
			seen = append(seen, r.Version)
		}
	})
	require.NoError(t, err)
	defer w.Close()

	snap, err := w.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Version)

	roster := domain.Roster{"host": {ID: "host"}, "p2": {ID: "p2"}}
	_, err = store.Update(ctx, room.ID, domain.RoomPatch{Roster: roster})
	require.NoError(t, err)

	eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	})
	mu.Lock()
	assert.Equal(t, []int64{2}, seen)
	mu.Unlock()
	snap, err = w.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.PlayerCount())
}

func TestRoomWatcherDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	room, err := store.Insert(ctx, newRoom(domain.ModeSurvival))
	require.NoError(t, err)

	gone := make(chan struct{})
	w, err := WatchRoom(ctx, store, room.ID, func(r *domain.Room) {
		if r == nil {
			close(gone)
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, store.Delete(ctx, room.ID))
	select {
	case <-gone:
	case <-time.After(time.Second):
		t.Fatal("delete was not observed")
	}
	_, err = w.Snapshot()
	assert.ErrorIs(t, err, domain.ErrNotFound)
	<-w.Done()
}

func TestRoomWatcherMissingRoom(t *testing.T) {
	_, err := WatchRoom(context.Background(), memory.NewStore(), "nope", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoomWatcherDiscardsStaleVersions(t *testing.T) {
	w := &RoomWatcher{roomID: "r1", room: &domain.Room{ID: "r1", Version: 5, Name: "fresh"}}

	changed, _ := w.apply(domain.RoomEvent{Type: domain.EventUpdate, RoomID: "r1", Room: &domain.Room{ID: "r1", Version: 3, Name: "old"}})
	assert.False(t, changed)
	snap, err := w.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "fresh", snap.Name)

	changed, _ = w.apply(domain.RoomEvent{Type: domain.EventUpdate, RoomID: "r1", Room: &domain.Room{ID: "r1", Version: 6, Name: "newer"}})
	assert.True(t, changed)
	snap, err = w.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "newer", snap.Name)

	changed, _ = w.apply(domain.RoomEvent{Type: domain.EventDelete, RoomID: "r1"})
	assert.True(t, changed)
	changed, _ = w.apply(domain.RoomEvent{Type: domain.EventUpdate, RoomID: "r1", Room: &domain.Room{ID: "r1", Version: 9}})
	assert.False(t, changed, "a deleted room stays gone")
}

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Get(ctx context.Context, roomID string) (*domain.Room, error) {
	args := m.Called(ctx, roomID)
	room, _ := args.Get(0).(*domain.Room)
	return room, args.Error(1)
}

func (m *MockSource) List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	args := m.Called(ctx, filter)
	rooms, _ := args.Get(0).([]*domain.Room)
	return rooms, args.Error(1)
}

func (m *MockSource) Subscribe(ctx context.Context, filter domain.RoomFilter) (domain.Subscription, error) {
	args := m.Called(ctx, filter)
	sub, _ := args.Get(0).(domain.Subscription)
	return sub, args.Error(1)
}

type MockSubscription struct {
	mock.Mock
	ch chan domain.RoomEvent
}

func (m *MockSubscription) Events() <-chan domain.RoomEvent {
	return m.ch
}

func (m *MockSubscription) Close() error {
	return m.Called().Error(0)
}

func TestRoomWatcherClosesSubscriptionWhenFetchFails(t *testing.T) {
	sub := &MockSubscription{ch: make(chan domain.RoomEvent)}
	sub.On("Close").Return(nil).Once()
	src := new(MockSource)
	src.On("Subscribe", mock.Anything, domain.RoomFilter{ID: "r1"}).Return(sub, nil)
	src.On("Get", mock.Anything, "r1").Return(nil, domain.ErrTransient)

	_, err := WatchRoom(context.Background(), src, "r1", nil)
	assert.ErrorIs(t, err, domain.ErrTransient)
	sub.AssertExpectations(t)
	src.AssertExpectations(t)
}

func TestLobbyWatcherReconciles(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seeded, err := store.Insert(ctx, newRoom(domain.ModeBattle))
	require.NoError(t, err)
	_, err = store.Insert(ctx, newRoom(domain.ModeSurvival))
	require.NoError(t, err)

	updates := make(chan []*domain.Room, 16)
	w, err := WatchLobby(ctx, store, domain.ModeBattle, func(rooms []*domain.Room) { updates <- rooms })
	require.NoError(t, err)
	defer w.Close()

	rooms := w.Rooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, seeded.ID, rooms[0].ID)

	added, err := store.Insert(ctx, newRoom(domain.ModeBattle))
	require.NoError(t, err)
	_, err = store.Insert(ctx, newRoom(domain.ModeSurvival))
	require.NoError(t, err)
	eventually(t, func() bool { return len(w.Rooms()) == 2 })

	finished := domain.StatusFinished
	_, err = store.Update(ctx, seeded.ID, domain.RoomPatch{Status: &finished})
	require.NoError(t, err)
	eventually(t, func() bool {
		rooms := w.Rooms()
		return len(rooms) == 1 && rooms[0].ID == added.ID
	})

	require.NoError(t, store.Delete(ctx, added.ID))
	eventually(t, func() bool { return len(w.Rooms()) == 0 })

	for _, r := range w.Rooms() {
		assert.Equal(t, domain.ModeBattle, r.Mode)
	}
	assert.NotEmpty(t, updates)
}

func TestLobbyWatcherIgnoresStaleAfterDelete(t *testing.T) {
	w := &LobbyWatcher{mode: domain.ModeBattle, rooms: map[string]*domain.Room{}, seen: map[string]int64{}}

	assert.True(t, w.apply(domain.RoomEvent{Type: domain.EventInsert, RoomID: "a", Room: &domain.Room{ID: "a", Version: 1, Status: domain.StatusWaiting}}))
	assert.True(t, w.apply(domain.RoomEvent{Type: domain.EventDelete, RoomID: "a"}))
	assert.False(t, w.apply(domain.RoomEvent{Type: domain.EventUpdate, RoomID: "a", Room: &domain.Room{ID: "a", Version: 2, Status: domain.StatusWaiting}}))
	assert.Empty(t, w.Rooms())
}

func TestWatchLobbyRejectsUnknownMode(t *testing.T) {
	_, err := WatchLobby(context.Background(), memory.NewStore(), "chess", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
