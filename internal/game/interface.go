package game

import (
	"context"
	"time"

	"wordgame-service/domain"
)

// RoomStore is the shared room record store. Writes are last-write-wins per
// top-level field; Manager serializes its own writes per room.
type RoomStore interface {
	Insert(ctx context.Context, room *domain.Room) (*domain.Room, error)
	Get(ctx context.Context, roomID string) (*domain.Room, error)
	List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error)
	Update(ctx context.Context, roomID string, patch domain.RoomPatch) (*domain.Room, error)
	Delete(ctx context.Context, roomID string) error
	Subscribe(ctx context.Context, filter domain.RoomFilter) (domain.Subscription, error)
}

// Catalog supplies the vocabulary for a book.
type Catalog interface {
	FetchPromptsForBook(ctx context.Context, book, academyID string) ([]domain.Prompt, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.GameEvent) error
}

// ResultRecorder persists finished games.
type ResultRecorder interface {
	SaveGameResult(ctx context.Context, room *domain.Room) error
}

// TickerGen creates the periodic channel driving a room loop. The returned
// func stops it.
type TickerGen interface {
	Create(d time.Duration) (<-chan time.Time, func())
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
