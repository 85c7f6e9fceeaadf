package bootstrap

import (
	"context"

	"wordgame-service/config"
	"wordgame-service/domain"
	"wordgame-service/internal/initializer"
)

type SessionManager interface {
	GetSession(ctx context.Context, token string) (domain.Session, error)
	Close() error
}

// InitSessionRedis returns a nil interface, not a typed nil, when disabled.
func InitSessionRedis(config config.Config) SessionManager {
	sm := initializer.InitSessionRedis(config)
	if sm == nil {
		return nil
	}
	return sm
}
