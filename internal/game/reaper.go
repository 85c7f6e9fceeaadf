package game

import (
	"context"
	"time"

	"wordgame-service/domain"

	"go.uber.org/zap"
)

type ReaperConfig struct {
	Interval    time.Duration
	IdleTimeout time.Duration
	FinishedTTL time.Duration
}

func DefaultReaperConfig() ReaperConfig {
	return ReaperConfig{
		Interval:    time.Minute,
		IdleTimeout: 30 * time.Minute,
		FinishedTTL: 5 * time.Minute,
	}
}

// Reaper deletes rooms nobody touched for a while and finished rooms past
// their retention.
type Reaper struct {
	manager *Manager
	cfg     ReaperConfig
	tickers TickerGen
}

func NewReaper(m *Manager, cfg ReaperConfig, tickers TickerGen) *Reaper {
	if tickers == nil {
		tickers = NewTickerGen()
	}
	return &Reaper{manager: m, cfg: cfg, tickers: tickers}
}

// Run sweeps every Interval until ctx is done.
func (r *Reaper) Run(ctx context.Context) {
	ch, stop := r.tickers.Create(r.cfg.Interval)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ch:
			if _, err := r.Sweep(ctx); err != nil {
				zap.L().Warn("Room sweep failed", zap.Error(err))
			}
		}
	}
}

func (r *Reaper) expired(room *domain.Room, now time.Time) bool {
	last := room.UpdatedAt
	if last.IsZero() {
		last = room.CreatedAt
	}
	if room.Status == domain.StatusFinished {
		if room.FinishedAt != nil && room.FinishedAt.After(last) {
			last = *room.FinishedAt
		}
		return now.Sub(last) >= r.cfg.FinishedTTL
	}
	return now.Sub(last) >= r.cfg.IdleTimeout
}

// Sweep runs one pass and reports how many rooms it removed.
func (r *Reaper) Sweep(ctx context.Context) (int, error) {
	rooms, err := r.manager.store.List(ctx, domain.RoomFilter{})
	if err != nil {
		return 0, err
	}
	now := r.manager.now()
	removed := 0
	for _, room := range rooms {
		if !r.expired(room, now) {
			continue
		}
		if err := r.manager.DeleteRoom(ctx, room.ID); err != nil {
			zap.L().Warn("Failed to reap room", zap.String("room_id", room.ID), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		zap.L().Info("Reaped idle rooms", zap.Int("count", removed))
	}
	return removed, nil
}
