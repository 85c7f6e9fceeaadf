package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wordgame-service/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionManager resolves session tokens issued by the auth service.
type SessionManager struct {
	client *redis.Client
}

// NewSessionManager, yeni bir SessionManager örneği oluşturur
func NewSessionManager(redisAddr string, password string, db int) (*SessionManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	zap.L().Info("Connected to session redis successfully", zap.String("addr", redisAddr))
	return &SessionManager{client: client}, nil
}

func NewSessionManagerWithClient(client *redis.Client) *SessionManager {
	return &SessionManager{client: client}
}

func (sm *SessionManager) GetRedisClient() *redis.Client {
	return sm.client
}

func (sm *SessionManager) Close() error {
	return sm.client.Close()
}

// CreateSession stores userData under token, mirroring the auth service layout.
func (sm *SessionManager) CreateSession(ctx context.Context, userID, token string, userData map[string]string, duration time.Duration) error {
	jsonData, err := json.Marshal(userData)
	if err != nil {
		return err
	}

	pipe := sm.client.Pipeline()
	pipe.Set(ctx, token, jsonData, duration)
	pipe.SAdd(ctx, "user_sessions:"+userID, token)
	_, err = pipe.Exec(ctx)
	return err
}

// GetSession returns the identity bound to token.
func (sm *SessionManager) GetSession(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	data, err := sm.client.Get(ctx, token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: session lookup: %v", domain.ErrTransient, err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Session{}, fmt.Errorf("%w: malformed session", domain.ErrUnauthorized)
	}
	if !s.Valid() {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}
