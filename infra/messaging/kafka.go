package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wordgame-service/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	ClientID     string
	BatchTimeout time.Duration
	WriteTimeout time.Duration
}

func NewDefaultConfig(brokers []string) KafkaConfig {
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}
	return KafkaConfig{
		Brokers:      brokers,
		Topic:        "game-events",
		ClientID:     "wordgame-service",
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes game events keyed by room id, so every event of a
// room lands on the same partition in order.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(cfg KafkaConfig) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
		Transport:              &kafka.Transport{ClientID: cfg.ClientID},
	}
	zap.L().Info("Kafka publisher initialized", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))
	return &KafkaPublisher{writer: writer, topic: cfg.Topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.GameEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal game event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.RoomID),
		Value: payload,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
			{Key: "mode", Value: []byte(event.Mode)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: kafka write to %s: %v", domain.ErrTransient, p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events; used when kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event domain.GameEvent) error {
	zap.L().Debug("Game event dropped, publisher disabled",
		zap.String("type", string(event.Type)),
		zap.String("room_id", event.RoomID))
	return nil
}

func (NopPublisher) Close() error { return nil }
