package initializer

import (
	"context"

	gameHub "wordgame-service/internal/api/ws/hub"
	"wordgame-service/internal/game"
)

func InitWebsocket(ctx context.Context, manager *game.Manager, limiter gameHub.Limiter) *gameHub.Hub {
	hub := gameHub.NewHub(manager.Store(), manager, limiter)
	hub.Run(ctx)
	manager.SetTickListener(hub)
	return hub
}
