package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"wordgame-service/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	roomKeyPrefix   = "room:"
	roomIndexKey    = "rooms:all"
	modeChannelBase = "rooms:"
	maxWatchRetries = 8
)

// RoomStore keeps each room as a JSON document under room:<id> and publishes
// change events on room:<id> and rooms:<mode>.
type RoomStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRoomStore(client *redis.Client) *RoomStore {
	return &RoomStore{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Close, Redis bağlantısını kapatır
func (s *RoomStore) Close() error {
	return s.client.Close()
}

func roomKey(roomID string) string {
	return roomKeyPrefix + roomID
}

func roomChannel(roomID string) string {
	return roomKeyPrefix + roomID
}

func modeChannel(mode domain.Mode) string {
	return modeChannelBase + string(mode)
}

func transient(op string, err error) error {
	return fmt.Errorf("%w: redis %s: %v", domain.ErrTransient, op, err)
}

func (s *RoomStore) Insert(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if room == nil {
		return nil, fmt.Errorf("%w: nil room", domain.ErrInvalidInput)
	}
	rec := room.Clone()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := s.now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	rec.Version = 1

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal room: %w", err)
	}

	ok, err := s.client.SetNX(ctx, roomKey(rec.ID), payload, 0).Result()
	if err != nil {
		return nil, transient("insert", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: room %s already exists", domain.ErrConflict, rec.ID)
	}
	if err := s.client.SAdd(ctx, roomIndexKey, rec.ID).Err(); err != nil {
		return nil, transient("index", err)
	}

	s.publish(ctx, domain.RoomEvent{Type: domain.EventInsert, RoomID: rec.ID, Mode: rec.Mode, Room: rec})
	return rec, nil
}

func (s *RoomStore) Get(ctx context.Context, roomID string) (*domain.Room, error) {
	payload, err := s.client.Get(ctx, roomKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: room %s", domain.ErrNotFound, roomID)
	}
	if err != nil {
		return nil, transient("get", err)
	}
	return decodeRoom(payload)
}

func decodeRoom(payload []byte) (*domain.Room, error) {
	var rec domain.Room
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	return &rec, nil
}

func (s *RoomStore) List(ctx context.Context, filter domain.RoomFilter) ([]*domain.Room, error) {
	ids, err := s.client.SMembers(ctx, roomIndexKey).Result()
	if err != nil {
		return nil, transient("list", err)
	}
	if len(ids) == 0 {
		return []*domain.Room{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = roomKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, transient("list", err)
	}

	out := make([]*domain.Room, 0, len(values))
	var stale []interface{}
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		rec, err := decodeRoom([]byte(str))
		if err != nil {
			zap.L().Warn("Skipping undecodable room record", zap.String("room_id", ids[i]), zap.Error(err))
			continue
		}
		if filter.Match(rec) {
			out = append(out, rec)
		}
	}
	if len(stale) > 0 {
		s.client.SRem(ctx, roomIndexKey, stale...)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Update applies the patch inside a WATCH transaction so one patch never
// tears another; concurrent patches of the same field still resolve
// last-write-wins.
func (s *RoomStore) Update(ctx context.Context, roomID string, patch domain.RoomPatch) (*domain.Room, error) {
	key := roomKey(roomID)
	var next *domain.Room

	txf := func(tx *redis.Tx) error {
		payload, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%w: room %s", domain.ErrNotFound, roomID)
		}
		if err != nil {
			return err
		}
		rec, err := decodeRoom(payload)
		if err != nil {
			return err
		}
		patch.Apply(rec)
		rec.Version++
		rec.UpdatedAt = s.now()

		encoded, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			return nil
		})
		if err == nil {
			next = rec
		}
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			s.publish(ctx, domain.RoomEvent{Type: domain.EventUpdate, RoomID: roomID, Mode: next.Mode, Room: next})
			return next, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, transient("update", err)
	}
	return nil, transient("update", errors.New("too many concurrent writers"))
}

// Delete removes the record; a missing room is a no-op.
func (s *RoomStore) Delete(ctx context.Context, roomID string) error {
	rec, err := s.Get(ctx, roomID)
	if errors.Is(err, domain.ErrNotFound) {
		s.client.SRem(ctx, roomIndexKey, roomID)
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, roomKey(roomID))
	pipe.SRem(ctx, roomIndexKey, roomID)
	if _, err := pipe.Exec(ctx); err != nil {
		return transient("delete", err)
	}
	if del.Val() == 0 {
		return nil
	}

	s.publish(ctx, domain.RoomEvent{Type: domain.EventDelete, RoomID: roomID, Mode: rec.Mode, Room: rec})
	return nil
}

func (s *RoomStore) publish(ctx context.Context, ev domain.RoomEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		zap.L().Error("Failed to marshal room event", zap.String("room_id", ev.RoomID), zap.Error(err))
		return
	}
	pipe := s.client.Pipeline()
	pipe.Publish(ctx, roomChannel(ev.RoomID), payload)
	pipe.Publish(ctx, modeChannel(ev.Mode), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		zap.L().Error("Failed to publish room event",
			zap.String("room_id", ev.RoomID),
			zap.String("type", string(ev.Type)),
			zap.Error(err))
	}
}

// Subscribe opens a pub/sub feed. A filter with ID listens on the room
// channel, a Mode filter on the mode channel, otherwise on every mode.
func (s *RoomStore) Subscribe(ctx context.Context, filter domain.RoomFilter) (domain.Subscription, error) {
	var pubsub *redis.PubSub
	switch {
	case filter.ID != "":
		pubsub = s.client.Subscribe(ctx, roomChannel(filter.ID))
	case filter.Mode != "":
		pubsub = s.client.Subscribe(ctx, modeChannel(filter.Mode))
	default:
		pubsub = s.client.PSubscribe(ctx, modeChannelBase+"*")
	}

	// Abonelik onaylanmadan dönersek aradaki yayınlar kaçabilir.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, transient("subscribe", err)
	}

	sub := &subscription{
		pubsub: pubsub,
		filter: filter,
		out:    make(chan domain.RoomEvent, 64),
		done:   make(chan struct{}),
	}
	go sub.run(ctx)
	return sub, nil
}

type subscription struct {
	pubsub *redis.PubSub
	filter domain.RoomFilter
	out    chan domain.RoomEvent
	done   chan struct{}
	once   sync.Once
}

func (s *subscription) Events() <-chan domain.RoomEvent {
	return s.out
}

func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

func (s *subscription) run(ctx context.Context) {
	defer close(s.out)
	ch := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-s.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev domain.RoomEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				zap.L().Warn("Failed to unmarshal room event", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			if !s.filter.MatchEvent(ev) {
				continue
			}
			select {
			case s.out <- ev:
			case <-s.done:
				return
			}
		}
	}
}
