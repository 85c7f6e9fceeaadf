package initializer

import (
	"context"

	"wordgame-service/config"
	"wordgame-service/internal/game"

	"go.uber.org/zap"
)

// CatalogRecorder is the postgres repository as the engine sees it.
type CatalogRecorder interface {
	game.Catalog
	game.ResultRecorder
}

func gameOptions(cfg config.GameConfig) game.Options {
	opts := game.DefaultOptions()
	if cfg.BattlePrompts > 0 {
		opts.BattlePrompts = cfg.BattlePrompts
	}
	if cfg.SurvivalPrompts > 0 {
		opts.SurvivalPrompts = cfg.SurvivalPrompts
	}
	if cfg.SurvivalCapacity > 0 {
		opts.SurvivalCapacity = cfg.SurvivalCapacity
	}
	if cfg.TickInterval > 0 {
		opts.TickInterval = cfg.TickInterval
	}
	if cfg.HardTimeout > 0 {
		opts.HardTimeout = cfg.HardTimeout
	}
	if cfg.EffectDuration > 0 {
		opts.EffectDuration = cfg.EffectDuration
	}
	if cfg.DefaultBook != "" {
		opts.DefaultBook = cfg.DefaultBook
	}
	if cfg.DefaultAcademy != "" {
		opts.DefaultAcademy = cfg.DefaultAcademy
	}
	return opts
}

func InitGameManager(appConfig config.Config, store game.RoomStore, repo CatalogRecorder, publisher game.EventPublisher) *game.Manager {
	manager := game.NewManager(store, repo,
		game.WithOptions(gameOptions(appConfig.Game)),
		game.WithPublisher(publisher),
		game.WithResultRecorder(repo),
		game.WithHasher(game.NewBcryptHasher(appConfig.Game.BcryptCost)),
		game.WithTickerGen(game.NewTickerGen()),
	)
	zap.L().Info("Game manager initialized", zap.String("store", appConfig.Game.Store))
	return manager
}

// InitReaper starts the idle room sweep; it stops with ctx.
func InitReaper(ctx context.Context, appConfig config.Config, manager *game.Manager) *game.Reaper {
	cfg := game.DefaultReaperConfig()
	if appConfig.Game.ReapInterval > 0 {
		cfg.Interval = appConfig.Game.ReapInterval
	}
	if appConfig.Game.IdleTimeout > 0 {
		cfg.IdleTimeout = appConfig.Game.IdleTimeout
	}
	if appConfig.Game.FinishedTTL > 0 {
		cfg.FinishedTTL = appConfig.Game.FinishedTTL
	}
	reaper := game.NewReaper(manager, cfg, nil)
	go reaper.Run(ctx)
	return reaper
}
