package bootstrap

import (
	"wordgame-service/config"
	"wordgame-service/internal/initializer"
)

type PostgresRepository interface {
	initializer.CatalogRecorder
	Close() error
}

func InitDatabase(config config.Config) PostgresRepository {
	return initializer.InitDatabase(config)
}
