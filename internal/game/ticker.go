package game

import (
	"context"
	"errors"
	"time"

	"wordgame-service/domain"

	"go.uber.org/zap"
)

type tickerGen struct{}

func (tickerGen) Create(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

func NewTickerGen() TickerGen {
	return tickerGen{}
}

func needsLoop(room *domain.Room) bool {
	switch room.Mode {
	case domain.ModeSurvival:
		return true
	case domain.ModeBattle:
		return room.Battle != nil && room.Battle.Difficulty == domain.DifficultyHard
	}
	return false
}

// startLoop runs one ticking goroutine per playing room that needs it.
func (m *Manager) startLoop(room *domain.Room) {
	if m.tickers == nil || !needsLoop(room) {
		return
	}
	m.loopsMu.Lock()
	if _, running := m.loops[room.ID]; running {
		m.loopsMu.Unlock()
		return
	}
	stop := make(chan struct{})
	m.loops[room.ID] = stop
	m.loopsMu.Unlock()

	ch, release := m.tickers.Create(m.opts.TickInterval)
	roomID := room.ID
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer release()
		defer m.stopLoop(roomID)
		for {
			select {
			case <-m.ctx.Done():
				return
			case <-stop:
				return
			case now := <-ch:
				err := m.Tick(m.ctx, roomID, now.UTC())
				if err == nil {
					continue
				}
				if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrNotPlaying) {
					return
				}
				zap.L().Warn("Room tick failed", zap.String("room_id", roomID), zap.Error(err))
			}
		}
	}()
}

func (m *Manager) stopLoop(roomID string) {
	m.loopsMu.Lock()
	defer m.loopsMu.Unlock()
	if stop, ok := m.loops[roomID]; ok {
		close(stop)
		delete(m.loops, roomID)
	}
}

// Tick advances a playing room to now: hard-mode deadlines in battle, boards
// and effects in survival. Rooms that are not playing return ErrNotPlaying.
func (m *Manager) Tick(ctx context.Context, roomID string, now time.Time) error {
	var snapshots []BoardSnapshot
	_, err := m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		if room.Status != domain.StatusPlaying {
			return mutation{}, domain.ErrNotPlaying
		}
		switch room.Mode {
		case domain.ModeBattle:
			return m.tickBattle(ctx, room, now)
		case domain.ModeSurvival:
			res, snaps, err := m.tickSurvival(ctx, room, now)
			snapshots = snaps
			return res, err
		}
		return mutation{}, domain.ErrWrongMode
	})
	if err != nil {
		return err
	}

	m.loopsMu.Lock()
	listener := m.listener
	m.loopsMu.Unlock()
	if listener != nil && len(snapshots) > 0 {
		listener.OnTick(roomID, snapshots)
	}
	return nil
}
