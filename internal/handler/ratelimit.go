package handler

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	GlobalPerMinute int
	GlobalBurst     int
	PlayerPerMinute int
	PlayerBurst     int
}

func NewDefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		GlobalPerMinute: 6000,
		GlobalBurst:     500,
		PlayerPerMinute: 240,
		PlayerBurst:     20,
	}
}

// RateLimiter throttles intents globally and per player.
type RateLimiter struct {
	config RateLimitConfig

	globalLimiter *rate.Limiter
	// player id -> *rate.Limiter
	playerLimiters sync.Map
}

func every(perMinute int) rate.Limit {
	if perMinute <= 0 {
		return rate.Inf
	}
	return rate.Every(time.Minute / time.Duration(perMinute))
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		config:        cfg,
		globalLimiter: rate.NewLimiter(every(cfg.GlobalPerMinute), cfg.GlobalBurst),
	}
}

func (rl *RateLimiter) playerLimiter(playerID string) *rate.Limiter {
	limiter, _ := rl.playerLimiters.LoadOrStore(playerID, rate.NewLimiter(every(rl.config.PlayerPerMinute), rl.config.PlayerBurst))
	return limiter.(*rate.Limiter)
}

// Allow reports whether playerID may send another intent right now.
func (rl *RateLimiter) Allow(playerID string) bool {
	if !rl.globalLimiter.Allow() {
		return false
	}
	if playerID == "" {
		return true
	}
	return rl.playerLimiter(playerID).Allow()
}

// Forget drops the per-player limiter.
func (rl *RateLimiter) Forget(playerID string) {
	rl.playerLimiters.Delete(playerID)
}

// Middleware must run after Authenticate so the player id is known.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, _ := SessionFrom(c)
		if !rl.globalLimiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Global rate limit exceeded",
			})
		}
		if s.PlayerID != "" && !rl.playerLimiter(s.PlayerID).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Player rate limit exceeded",
			})
		}
		return c.Next()
	}
}
