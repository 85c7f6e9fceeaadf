package initializer

import (
	"context"

	"wordgame-service/config"
	"wordgame-service/domain"
	"wordgame-service/infra/messaging"

	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event domain.GameEvent) error
	Close() error
}

// InitMessaging returns the kafka publisher, or a no-op one when kafka is off.
func InitMessaging(appConfig config.Config) Publisher {
	cfg := appConfig.Kafka
	if !cfg.Enabled {
		zap.L().Info("Kafka disabled, game events are not published")
		return messaging.NopPublisher{}
	}

	kafkaConfig := messaging.NewDefaultConfig(cfg.Brokers)
	if cfg.Topic != "" {
		kafkaConfig.Topic = cfg.Topic
	}
	if cfg.ClientID != "" {
		kafkaConfig.ClientID = cfg.ClientID
	}
	return messaging.NewKafkaPublisher(kafkaConfig)
}
