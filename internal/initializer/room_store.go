package initializer

import (
	"context"
	"fmt"

	"wordgame-service/config"
	"wordgame-service/infra/memory"
	roomRedis "wordgame-service/infra/redis"
	"wordgame-service/internal/game"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRoomStore picks the room store backend. The returned func releases it.
func InitRoomStore(appConfig config.Config) (game.RoomStore, func() error) {
	switch appConfig.Game.Store {
	case "memory":
		zap.L().Info("Using in-memory room store")
		return memory.NewStore(), func() error { return nil }
	case "redis", "":
	default:
		zap.L().Fatal("Unknown room store", zap.String("store", appConfig.Game.Store))
	}

	cfg := appConfig.RoomRedis
	address := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		zap.L().Fatal("Failed to connect to room redis", zap.String("addr", address), zap.Error(err))
	}
	zap.L().Info("Connected to room redis successfully", zap.String("addr", address))

	store := roomRedis.NewRoomStore(client)
	return store, store.Close
}
