package wsUsecase

import (
	"context"

	"wordgame-service/domain"
)

type Hub interface {
	Serve(client *domain.Client) error
}

type RoomReader interface {
	GetRoom(ctx context.Context, roomID string) (*domain.Room, error)
}
