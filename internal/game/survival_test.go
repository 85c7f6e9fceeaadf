package game

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"wordgame-service/domain"
	"wordgame-service/infra/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	mu    sync.Mutex
	ticks map[string][]BoardSnapshot
}

func (l *recordingListener) OnTick(roomID string, boards []BoardSnapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ticks == nil {
		l.ticks = make(map[string][]BoardSnapshot)
	}
	l.ticks[roomID] = boards
}

func lethalBoard() Options {
	opts := DefaultOptions()
	opts.Board = steadyBoardConfig()
	opts.Board.Damage = domain.MaxHealth
	return opts
}

func (h *harness) survival(t *testing.T, players ...string) *domain.Room {
	t.Helper()
	ctx := context.Background()
	h.catalog.On("FetchPromptsForBook", mock.Anything, mock.Anything, mock.Anything).Return(onePrompt(), nil).Maybe()

	room, err := h.m.CreateRoom(ctx, session(players[0]), CreateRoomInput{Name: "arena", Mode: domain.ModeSurvival, Capacity: 5})
	require.NoError(t, err)
	for _, id := range players[1:] {
		_, err = h.m.Join(ctx, room.ID, session(id), "")
		require.NoError(t, err)
	}
	room, err = h.m.StartGame(ctx, room.ID, session(players[0]))
	require.NoError(t, err)
	return room
}

func (h *harness) tickTo(t *testing.T, roomID string, d time.Duration) {
	t.Helper()
	require.NoError(t, h.m.Tick(context.Background(), roomID, t0.Add(d)))
}

func TestStartSurvival(t *testing.T) {
	h := newHarness(t)
	room := h.survival(t, "a", "b", "c")

	assert.Equal(t, domain.StatusPlaying, room.Status)
	assert.Equal(t, 3, room.Survival.Participants)
	assert.Len(t, room.Survival.Prompts, 1)
	for _, id := range []string{"a", "b", "c"} {
		v := room.Survival.Vitals[id]
		require.NotNil(t, v)
		assert.Equal(t, domain.MaxHealth, v.Health)
		assert.True(t, v.Alive)
		assert.Zero(t, v.Gauge)
	}
}

func TestSurvivalLastStandingWins(t *testing.T) {
	h := newHarness(t, WithOptions(lethalBoard()))
	listener := &recordingListener{}
	h.m.SetTickListener(listener)
	ctx := context.Background()
	room := h.survival(t, "a", "b")

	for s := 0; s <= 4; s++ {
		h.tickTo(t, room.ID, time.Duration(s)*time.Second)
	}
	// b clears the prompt that spawned at 3s; a does not
	res, err := h.m.Type(ctx, room.ID, session("b"), "apple")
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, domain.MatchPoints, res.Room.Roster["b"].Score)
	assert.Equal(t, domain.MatchGauge, res.Room.Survival.Vitals["b"].Gauge)

	miss, err := h.m.Type(ctx, room.ID, session("b"), "apple")
	require.NoError(t, err)
	assert.False(t, miss.Matched)

	for s := 5; s <= 9; s++ {
		h.tickTo(t, room.ID, time.Duration(s)*time.Second)
	}
	listener.mu.Lock()
	assert.Len(t, listener.ticks[room.ID], 2)
	listener.mu.Unlock()

	h.tickTo(t, room.ID, 10*time.Second)
	final, err := h.store.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, final.Status)
	assert.Equal(t, "b", final.WinnerID)
	assert.False(t, final.Survival.Vitals["a"].Alive)
	assert.Equal(t, 0, final.Survival.Vitals["a"].Health)
	assert.True(t, final.Survival.Vitals["b"].Alive)

	assert.ErrorIs(t, h.m.Tick(ctx, room.ID, t0.Add(11*time.Second)), domain.ErrNotPlaying)
	h.recorder.AssertNumberOfCalls(t, "SaveGameResult", 1)
}

type flakyStore struct {
	*memory.Store
	failing atomic.Bool
}

func (s *flakyStore) Update(ctx context.Context, roomID string, patch domain.RoomPatch) (*domain.Room, error) {
	if s.failing.Load() {
		return nil, fmt.Errorf("%w: update rejected", domain.ErrTransient)
	}
	return s.Store.Update(ctx, roomID, patch)
}

func TestFailedTickWriteKeepsDamagePending(t *testing.T) {
	flaky := &flakyStore{}
	h := newHarnessOn(t, func(m *memory.Store) RoomStore {
		flaky.Store = m
		return flaky
	}, WithOptions(lethalBoard()))
	ctx := context.Background()
	room := h.survival(t, "a", "b")

	failed := false
	for s := 0; s <= 10; s++ {
		at := t0.Add(time.Duration(s) * time.Second)
		flaky.failing.Store(true)
		err := h.m.Tick(ctx, room.ID, at)
		flaky.failing.Store(false)
		if err == nil {
			continue
		}
		require.ErrorIs(t, err, domain.ErrTransient)
		failed = true

		stored, err := h.store.Get(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPlaying, stored.Status)
		assert.True(t, stored.Survival.Vitals["a"].Alive)

		// the same tick again inflicts the damage the failed write dropped
		require.NoError(t, h.m.Tick(ctx, room.ID, at))
		break
	}
	require.True(t, failed, "no tick ever needed a write")

	final, err := h.store.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, final.Status)
	assert.False(t, final.Survival.Vitals["a"].Alive)
	assert.False(t, final.Survival.Vitals["b"].Alive)
}

func TestSurvivalEveryoneDown(t *testing.T) {
	h := newHarness(t, WithOptions(lethalBoard()))
	ctx := context.Background()
	room := h.survival(t, "a", "b")

	for s := 0; s <= 10; s++ {
		h.tickTo(t, room.ID, time.Duration(s)*time.Second)
	}
	final, err := h.store.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, final.Status)
	assert.Empty(t, final.WinnerID)
}

func TestEliminationIsPermanent(t *testing.T) {
	opts := DefaultOptions()
	opts.Board = steadyBoardConfig()
	opts.Board.Damage = 60
	h := newHarness(t, WithOptions(opts))
	ctx := context.Background()
	room := h.survival(t, "a", "b", "c")

	// b and c keep their boards clear, a takes every hit
	for s := 0; s <= 20; s++ {
		h.tickTo(t, room.ID, time.Duration(s)*time.Second)
		for _, id := range []string{"b", "c"} {
			_, err := h.m.Type(ctx, room.ID, session(id), "apple")
			require.NoError(t, err)
		}
	}
	current, err := h.store.Get(ctx, room.ID)
	require.NoError(t, err)
	a := current.Survival.Vitals["a"]
	assert.False(t, a.Alive)
	assert.Equal(t, 0, a.Health)
	assert.Equal(t, domain.StatusPlaying, current.Status)

	_, err = h.m.Type(ctx, room.ID, session("a"), "apple")
	assert.ErrorIs(t, err, domain.ErrEliminated)
	_, err = h.m.Attack(ctx, room.ID, session("a"))
	assert.ErrorIs(t, err, domain.ErrEliminated)
}

func TestAttack(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	room := h.survival(t, "a", "b")

	_, err := h.m.Attack(ctx, room.ID, session("a"))
	assert.ErrorIs(t, err, domain.ErrGaugeNotFull)

	charged := room.Survival.Clone()
	charged.Vitals["a"].Gauge = domain.MaxGauge
	_, err = h.store.Update(ctx, room.ID, domain.RoomPatch{Survival: charged})
	require.NoError(t, err)

	res, err := h.m.Attack(ctx, room.ID, session("a"))
	require.NoError(t, err)
	assert.Equal(t, "b", res.TargetID)
	assert.Contains(t, domain.AttackEffects, res.Effect)
	assert.Zero(t, res.Room.Survival.Vitals["a"].Gauge)
	target := res.Room.Survival.Vitals["b"]
	assert.Equal(t, res.Effect, target.PendingEffect)
	require.NotNil(t, target.EffectUntil)
	assert.Equal(t, t0.Add(5*time.Second), *target.EffectUntil)

	snap, err := h.m.BoardSnapshot(ctx, room.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, res.Effect, snap.Effect)

	h.tickTo(t, room.ID, 0)
	h.tickTo(t, room.ID, 5*time.Second)
	cleared, err := h.store.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EffectNone, cleared.Survival.Vitals["b"].PendingEffect)
	assert.Nil(t, cleared.Survival.Vitals["b"].EffectUntil)
}

func TestAttackWithoutTarget(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	room := h.survival(t, "a", "b")

	state := room.Survival.Clone()
	state.Vitals["a"].Gauge = domain.MaxGauge
	state.Vitals["b"].Alive = false
	state.Vitals["b"].Health = 0
	_, err := h.store.Update(ctx, room.ID, domain.RoomPatch{Survival: state})
	require.NoError(t, err)

	_, err = h.m.Attack(ctx, room.ID, session("a"))
	assert.ErrorIs(t, err, domain.ErrNoTarget)
}

func TestSurvivalIntentsOnBattleRoom(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	room := h.battle(t, "host", "p2", 3, domain.DifficultyNormal)

	_, err := h.m.Type(ctx, room.ID, session("host"), "x")
	assert.ErrorIs(t, err, domain.ErrWrongMode)
	_, err = h.m.Attack(ctx, room.ID, session("host"))
	assert.ErrorIs(t, err, domain.ErrWrongMode)
	_, err = h.m.BoardSnapshot(ctx, room.ID, "host")
	assert.ErrorIs(t, err, domain.ErrWrongMode)
}

func TestSurvivalLeaveLeavesOneStanding(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	room := h.survival(t, "a", "b", "c")

	left, err := h.m.Leave(ctx, room.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaying, left.Status)

	left, err = h.m.Leave(ctx, room.ID, "c")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, left.Status)
	assert.Equal(t, "a", left.WinnerID)
}

type manualTicker struct {
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
}

func (m *manualTicker) Create(time.Duration) (<-chan time.Time, func()) {
	return m.ch, func() { m.once.Do(func() { close(m.stopped) }) }
}

func TestRoomLoopDrivesTicks(t *testing.T) {
	ticker := newManualTicker()
	h := newHarness(t, WithOptions(lethalBoard()), WithTickerGen(ticker))
	room := h.survival(t, "a", "b")

	for s := 0; s <= 10; s++ {
		ticker.ch <- t0.Add(time.Duration(s) * time.Second)
	}

	select {
	case <-ticker.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("room loop did not stop after the game finished")
	}
	final, err := h.store.Get(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFinished, final.Status)
}
