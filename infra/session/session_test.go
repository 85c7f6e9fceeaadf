package session

import (
	"context"
	"testing"
	"time"

	"wordgame-service/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManagerGetSession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sm := NewSessionManagerWithClient(client)
	defer sm.Close()
	ctx := context.Background()

	err := sm.CreateSession(ctx, "u1", "token-1", map[string]string{
		"user_id":    "u1",
		"username":   "minji",
		"academy_id": "academy_default",
	}, time.Hour)
	require.NoError(t, err)

	s, err := sm.GetSession(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Session{PlayerID: "u1", DisplayName: "minji", AcademyID: "academy_default"}, s)

	_, err = sm.GetSession(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = sm.GetSession(ctx, "")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	mr.FastForward(2 * time.Hour)
	_, err = sm.GetSession(ctx, "token-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
