package initializer

import (
	"wordgame-service/config"
	"wordgame-service/internal/handler"
)

func InitRateLimiter(appConfig config.Config) *handler.RateLimiter {
	cfg := handler.NewDefaultRateLimitConfig()
	rl := appConfig.RateLimit
	if rl.GlobalPerMinute > 0 {
		cfg.GlobalPerMinute = rl.GlobalPerMinute
	}
	if rl.GlobalBurst > 0 {
		cfg.GlobalBurst = rl.GlobalBurst
	}
	if rl.PlayerPerMinute > 0 {
		cfg.PlayerPerMinute = rl.PlayerPerMinute
	}
	if rl.PlayerBurst > 0 {
		cfg.PlayerBurst = rl.PlayerBurst
	}
	return handler.NewRateLimiter(cfg)
}
