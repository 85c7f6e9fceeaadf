package initializer

import (
	"fmt"

	"wordgame-service/config"
	"wordgame-service/infra/session"

	"go.uber.org/zap"
)

// InitSessionRedis returns nil when session lookups are disabled; the
// service then relies on gateway headers alone.
func InitSessionRedis(appConfig config.Config) *session.SessionManager {
	cfg := appConfig.SessionRedis
	if !cfg.Enabled {
		zap.L().Warn("Session redis disabled, only trusted gateway headers identify players")
		return nil
	}
	address := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

	sessionManager, err := session.NewSessionManager(address, cfg.Password, cfg.DB)
	if err != nil {
		zap.L().Fatal("Failed to connect to session redis", zap.String("addr", address), zap.Error(err))
	}
	return sessionManager
}
