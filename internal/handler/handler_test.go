package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wordgame-service/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) GetSession(ctx context.Context, token string) (domain.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Session), args.Error(1)
}

func whoami(c *fiber.Ctx) error {
	s, ok := SessionFrom(c)
	if !ok {
		return c.SendStatus(fiber.StatusTeapot)
	}
	fromCtx, _ := SessionFromContext(c.UserContext())
	return c.JSON(fiber.Map{"id": s.PlayerID, "name": s.DisplayName, "academy": s.AcademyID, "ctx": fromCtx.PlayerID})
}

func decode(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]string{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestAuthenticate(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("GetSession", mock.Anything, "good").Return(domain.Session{PlayerID: "u1", DisplayName: "alice"}, nil)
	resolver.On("GetSession", mock.Anything, "expired").Return(domain.Session{}, domain.ErrSessionNotFound)
	resolver.On("GetSession", mock.Anything, "flaky").Return(domain.Session{}, domain.ErrTransient)

	testCases := []struct {
		name         string
		trustHeaders bool
		setup        func(r *http.Request)
		expectedCode int
		expectedID   string
	}{
		{
			name:         "no credentials",
			setup:        func(r *http.Request) {},
			expectedCode: fiber.StatusUnauthorized,
		},
		{
			name:         "bearer token",
			setup:        func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") },
			expectedCode: fiber.StatusOK,
			expectedID:   "u1",
		},
		{
			name:         "session cookie",
			setup:        func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "Session", Value: "good"}) },
			expectedCode: fiber.StatusOK,
			expectedID:   "u1",
		},
		{
			name:         "expired session",
			setup:        func(r *http.Request) { r.Header.Set("Authorization", "Bearer expired") },
			expectedCode: fiber.StatusUnauthorized,
		},
		{
			name:         "session store down",
			setup:        func(r *http.Request) { r.Header.Set("Authorization", "Bearer flaky") },
			expectedCode: fiber.StatusServiceUnavailable,
		},
		{
			name:         "gateway headers ignored unless trusted",
			setup:        func(r *http.Request) { r.Header.Set("X-User-ID", "spoofed") },
			expectedCode: fiber.StatusUnauthorized,
		},
		{
			name:         "trusted gateway headers",
			trustHeaders: true,
			setup: func(r *http.Request) {
				r.Header.Set("X-User-ID", "u2")
				r.Header.Set("X-User-Name", "bob")
				r.Header.Set("X-Academy-ID", "acad-1")
			},
			expectedCode: fiber.StatusOK,
			expectedID:   "u2",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/me", Authenticate(resolver, tc.trustHeaders), whoami)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.setup(req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCode, resp.StatusCode)
			if tc.expectedID != "" {
				body := decode(t, resp)
				assert.Equal(t, tc.expectedID, body["id"])
				assert.Equal(t, tc.expectedID, body["ctx"])
			}
		})
	}
}

func TestAuthenticateTrustedHeadersDefaultName(t *testing.T) {
	app := fiber.New()
	app.Get("/me", Authenticate(nil, true), whoami)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-User-ID", "u9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "u9", decode(t, resp)["name"])
}

func TestAuthenticateSessionOutlivesRequest(t *testing.T) {
	var kept []domain.Session
	app := fiber.New()
	app.Get("/me", Authenticate(nil, true), func(c *fiber.Ctx) error {
		s, _ := SessionFrom(c)
		kept = append(kept, s)
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, id := range []string{"guest", "zzzzz"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("X-User-ID", id)
		req.Header.Set("X-User-Name", "name-"+id)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	require.Len(t, kept, 2)
	assert.Equal(t, "guest", kept[0].PlayerID)
	assert.Equal(t, "name-guest", kept[0].DisplayName)
	assert.Equal(t, "zzzzz", kept[1].PlayerID)
}

func TestRateLimiterPerPlayer(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{GlobalPerMinute: 1000, GlobalBurst: 100, PlayerPerMinute: 1, PlayerBurst: 2})
	app := fiber.New()
	app.Get("/act", Authenticate(nil, true), rl.Middleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	call := func(id string) int {
		req := httptest.NewRequest(http.MethodGet, "/act", nil)
		req.Header.Set("X-User-ID", id)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusNoContent, call("a"))
	assert.Equal(t, fiber.StatusNoContent, call("a"))
	assert.Equal(t, fiber.StatusTooManyRequests, call("a"))
	assert.Equal(t, fiber.StatusNoContent, call("b"), "limits are per player")

	rl.Forget("a")
	assert.True(t, rl.Allow("a"))
}

type echoRequest struct {
	RoomID string `params:"room_id" validate:"required"`
	Name   string `json:"name" validate:"required,max=8"`
	Mode   string `query:"mode"`
}

type echoResponse struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
	Mode   string `json:"mode"`
}

type echoHandler struct {
	status int
	err    error
}

func (h echoHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *echoRequest) (*echoResponse, int, error) {
	if h.err != nil {
		return nil, h.status, h.err
	}
	return &echoResponse{RoomID: req.RoomID, Name: req.Name, Mode: req.Mode}, h.status, nil
}

func TestHandleWithFiber(t *testing.T) {
	testCases := []struct {
		name         string
		handler      echoHandler
		body         string
		expectedCode int
		expectedBody string
	}{
		{"parses params body and query", echoHandler{status: fiber.StatusCreated}, `{"name":"duel"}`, fiber.StatusCreated, `"room_id":"r1"`},
		{"invalid json", echoHandler{}, `{invalid}`, fiber.StatusBadRequest, "error"},
		{"validation", echoHandler{}, `{"name":"far too long"}`, fiber.StatusBadRequest, "validation failed"},
		{"usecase error", echoHandler{status: fiber.StatusConflict, err: domain.ErrCapacity}, `{"name":"duel"}`, fiber.StatusConflict, "room is full"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/rooms/:room_id", HandleWithFiber[echoRequest, echoResponse](tc.handler))

			req := httptest.NewRequest(http.MethodPost, "/rooms/r1?mode=battle", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedCode, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.expectedBody)
		})
	}
}
