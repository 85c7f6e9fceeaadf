package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"wordgame-service/domain"
	httpUsecase "wordgame-service/internal/api/http/usecase"
	"wordgame-service/internal/game"

	"go.uber.org/zap"
)

// Engine is the part of game.Manager websocket intents drive.
type Engine interface {
	SubmitAnswer(ctx context.Context, roomID string, s domain.Session, input string, atCursor *int) (game.AnswerResult, error)
	Pass(ctx context.Context, roomID string, s domain.Session, confirm bool, atCursor *int) (*domain.Room, error)
	Type(ctx context.Context, roomID string, s domain.Session, input string) (game.TypeResult, error)
	Attack(ctx context.Context, roomID string, s domain.Session) (game.AttackResult, error)
}

type answerIntent struct {
	Answer string `json:"answer"`
	Cursor *int   `json:"cursor"`
}

type passIntent struct {
	Confirm bool `json:"confirm"`
	Cursor  *int `json:"cursor"`
}

type typeIntent struct {
	Input string `json:"input"`
}

var errRateLimited = errors.New("player rate limit exceeded")

func decodeContent(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: malformed content", domain.ErrInvalidInput)
	}
	return nil
}

// handleIntent applies one client intent. Room state changes reach every
// socket through the room watcher; only the caller's verdict is replied here.
func (h *Hub) handleIntent(client *domain.Client, msg Inbound) {
	if h.limiter != nil && !h.limiter.Allow(client.ID) {
		h.replyError(client, errRateLimited)
		return
	}

	roomID, s := client.RoomID, client.Session
	switch msg.Type {
	case "answer":
		var in answerIntent
		if err := decodeContent(msg.Content, &in); err != nil {
			h.replyError(client, err)
			return
		}
		res, err := h.engine.SubmitAnswer(h.ctx, roomID, s, in.Answer, in.Cursor)
		if err != nil {
			h.replyError(client, err)
			return
		}
		h.reply(client, &Message{Type: "answer_result", Content: map[string]any{"verdict": res.Verdict}})

	case "pass":
		var in passIntent
		if err := decodeContent(msg.Content, &in); err != nil {
			h.replyError(client, err)
			return
		}
		if _, err := h.engine.Pass(h.ctx, roomID, s, in.Confirm, in.Cursor); err != nil {
			h.replyError(client, err)
		}

	case "type":
		var in typeIntent
		if err := decodeContent(msg.Content, &in); err != nil {
			h.replyError(client, err)
			return
		}
		res, err := h.engine.Type(h.ctx, roomID, s, in.Input)
		if err != nil {
			h.replyError(client, err)
			return
		}
		h.reply(client, &Message{Type: "type_result", Content: map[string]any{"matched": res.Matched}})

	case "attack":
		res, err := h.engine.Attack(h.ctx, roomID, s)
		if err != nil {
			h.replyError(client, err)
			return
		}
		h.reply(client, &Message{Type: "attack_result", Content: map[string]any{
			"target_id": res.TargetID,
			"effect":    res.Effect,
		}})

	default:
		h.replyError(client, fmt.Errorf("%w: unknown message type %q", domain.ErrInvalidInput, msg.Type))
	}
}

func (h *Hub) replyError(client *domain.Client, err error) {
	code := httpUsecase.StatusFor(err)
	if errors.Is(err, errRateLimited) {
		code = http.StatusTooManyRequests
	}
	if code >= http.StatusInternalServerError {
		zap.L().Error("Intent failed", zap.String("player_id", client.ID), zap.String("room_id", client.RoomID), zap.Error(err))
	}
	h.reply(client, domain.WebSocketErrorMessage{
		Type:    "error",
		Message: err.Error(),
		Code:    code,
	})
}

// OnTick pushes each survival board to its owner.
func (h *Hub) OnTick(roomID string, boards []game.BoardSnapshot) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	clients := h.roomsClients[roomID]
	for _, b := range boards {
		if c, ok := clients[b.PlayerID]; ok {
			h.sendLocked(c, &Message{Type: "board_snapshot", Content: b})
		}
	}
}
