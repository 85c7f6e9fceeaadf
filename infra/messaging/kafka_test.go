package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"wordgame-service/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestKafkaPublisherPublish(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	event := domain.GameEvent{
		Type:     domain.GameEventGameFinished,
		RoomID:   "room-1",
		Mode:     domain.ModeBattle,
		WinnerID: "p1",
		Scores:   map[string]int{"p1": 300, "p2": 100},
		At:       at,
	}

	w := new(MockWriter)
	w.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != "room-1" {
			return false
		}
		var got domain.GameEvent
		if err := json.Unmarshal(msgs[0].Value, &got); err != nil {
			return false
		}
		return got.WinnerID == "p1" && got.Scores["p1"] == 300
	})).Return(nil)

	p := &KafkaPublisher{writer: w, topic: "game-events"}
	require.NoError(t, p.Publish(context.Background(), event))
	w.AssertExpectations(t)
}

func TestKafkaPublisherWrapsWriteErrors(t *testing.T) {
	w := new(MockWriter)
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	p := &KafkaPublisher{writer: w, topic: "game-events"}
	err := p.Publish(context.Background(), domain.GameEvent{Type: domain.GameEventRoomCreated, RoomID: "r"})
	assert.ErrorIs(t, err, domain.ErrTransient)
}
