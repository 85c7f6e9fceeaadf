package initializer

import (
	"fmt"

	"wordgame-service/config"
	"wordgame-service/infra/postgres"

	"go.uber.org/zap"
)

func InitDatabase(appConfig config.Config) *postgres.Repository {
	pg := appConfig.Postgres
	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		pg.User, pg.Password, pg.Host, pg.Port, pg.DB)

	repo, err := postgres.NewRepository(connString)
	if err != nil {
		zap.L().Fatal("Failed to connect to postgres", zap.Error(err))
	}
	return repo
}
