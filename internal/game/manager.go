package game

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"wordgame-service/domain"

	"go.uber.org/zap"
)

type Options struct {
	BattlePrompts    int
	SurvivalPrompts  int
	SurvivalCapacity int
	TickInterval     time.Duration
	HardTimeout      time.Duration
	EffectDuration   time.Duration
	DefaultBook      string
	DefaultAcademy   string
	Board            BoardConfig
}

func DefaultOptions() Options {
	return Options{
		BattlePrompts:    10,
		SurvivalPrompts:  50,
		SurvivalCapacity: domain.SurvivalMaxCapacity,
		TickInterval:     100 * time.Millisecond,
		HardTimeout:      10 * time.Second,
		EffectDuration:   5 * time.Second,
		DefaultBook:      "기본",
		DefaultAcademy:   "academy_default",
		Board:            DefaultBoardConfig(),
	}
}

// TickListener is told about every survival tick, after the write.
type TickListener interface {
	OnTick(roomID string, boards []BoardSnapshot)
}

// Manager is the authoritative coordinator for rooms. Every intent is applied
// as fetch, validate, write under a per-room lock, so concurrent intents on
// one room never race each other.
type Manager struct {
	store     RoomStore
	catalog   Catalog
	publisher EventPublisher
	results   ResultRecorder
	hasher    PasswordHasher
	tickers   TickerGen
	opts      Options
	now       func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	boardsMu sync.Mutex
	boards   map[string]map[string]*Board

	loopsMu  sync.Mutex
	loops    map[string]chan struct{}
	listener TickListener

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Manager)

func WithPublisher(p EventPublisher) Option {
	return func(m *Manager) { m.publisher = p }
}

func WithResultRecorder(r ResultRecorder) Option {
	return func(m *Manager) { m.results = r }
}

func WithHasher(h PasswordHasher) Option {
	return func(m *Manager) { m.hasher = h }
}

// WithTickerGen enables background room loops. Without it rooms only advance
// through explicit Tick calls.
func WithTickerGen(t TickerGen) Option {
	return func(m *Manager) { m.tickers = t }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithSeed(seed int64) Option {
	return func(m *Manager) { m.rng = rand.New(rand.NewSource(seed)) }
}

func WithOptions(o Options) Option {
	return func(m *Manager) { m.opts = o }
}

func NewManager(store RoomStore, catalog Catalog, opts ...Option) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		store:   store,
		catalog: catalog,
		hasher:  NewBcryptHasher(0),
		opts:    DefaultOptions(),
		now:     func() time.Time { return time.Now().UTC() },
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		locks:   make(map[string]*sync.Mutex),
		boards:  make(map[string]map[string]*Board),
		loops:   make(map[string]chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetTickListener registers the receiver of survival board snapshots.
func (m *Manager) SetTickListener(l TickListener) {
	m.loopsMu.Lock()
	m.listener = l
	m.loopsMu.Unlock()
}

func (m *Manager) Store() RoomStore {
	return m.store
}

// Close stops every room loop and waits for them to exit.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()
}

func (m *Manager) lockRoom(roomID string) func() {
	m.locksMu.Lock()
	mu, ok := m.locks[roomID]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[roomID] = mu
	}
	m.locksMu.Unlock()
	mu.Lock()
	return mu.Unlock
}

func (m *Manager) forgetLock(roomID string) {
	m.locksMu.Lock()
	delete(m.locks, roomID)
	m.locksMu.Unlock()
}

func (m *Manager) intn(n int) int {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return m.rng.Intn(n)
}

func (m *Manager) newRand() *rand.Rand {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return rand.New(rand.NewSource(m.rng.Int63()))
}

func (m *Manager) shuffle(prompts []domain.Prompt) {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	m.rng.Shuffle(len(prompts), func(i, j int) { prompts[i], prompts[j] = prompts[j], prompts[i] })
}

// mutation is the result of one serialized step on a room.
type mutation struct {
	room   *domain.Room
	events []domain.GameEventType
}

// withRoom runs fn against a fresh read of the room while holding its lock.
// Events are dispatched after the lock is released.
func (m *Manager) withRoom(ctx context.Context, roomID string, fn func(room *domain.Room) (mutation, error)) (*domain.Room, error) {
	unlock := m.lockRoom(roomID)
	room, err := m.store.Get(ctx, roomID)
	if err != nil {
		unlock()
		return nil, err
	}
	res, err := fn(room)
	unlock()
	if err != nil {
		return nil, err
	}
	if res.room == nil {
		res.room = room
	}
	m.dispatch(ctx, res.room, res.events)
	return res.room, nil
}

// write applies patch and records the events it implies.
func (m *Manager) write(ctx context.Context, room *domain.Room, patch domain.RoomPatch, events ...domain.GameEventType) (mutation, error) {
	if patch.Status != nil && !room.Status.CanAdvanceTo(*patch.Status) {
		return mutation{}, domain.ErrNotPlaying
	}
	next, err := m.store.Update(ctx, room.ID, patch)
	if err != nil {
		return mutation{}, err
	}
	return mutation{room: next, events: events}, nil
}

func (m *Manager) dispatch(ctx context.Context, room *domain.Room, events []domain.GameEventType) {
	for _, t := range events {
		ev := domain.GameEvent{
			Type:     t,
			RoomID:   room.ID,
			Mode:     room.Mode,
			HostID:   room.HostID,
			WinnerID: room.WinnerID,
			At:       m.now(),
		}
		if t == domain.GameEventGameFinished {
			ev.Scores = room.Scores()
			m.stopLoop(room.ID)
			m.dropBoards(room.ID)
			if m.results != nil {
				if err := m.results.SaveGameResult(ctx, room); err != nil {
					zap.L().Error("Failed to save game result", zap.String("room_id", room.ID), zap.Error(err))
				}
			}
			zap.L().Info("Game finished",
				zap.String("room_id", room.ID),
				zap.String("mode", string(room.Mode)),
				zap.String("winner_id", room.WinnerID))
		}
		if m.publisher == nil {
			continue
		}
		if err := m.publisher.Publish(ctx, ev); err != nil {
			zap.L().Warn("Failed to publish game event",
				zap.String("room_id", room.ID),
				zap.String("type", string(t)),
				zap.Error(err))
		}
	}
}

func isGone(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
