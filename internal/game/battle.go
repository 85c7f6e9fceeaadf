package game

import (
	"context"
	"time"

	"wordgame-service/domain"
)

// AnswerResult is the outcome of a battle answer intent.
type AnswerResult struct {
	Verdict Verdict      `json:"verdict"`
	Room    *domain.Room `json:"room"`
}

func requireBattle(room *domain.Room, playerID string) error {
	if room.Mode != domain.ModeBattle || room.Battle == nil {
		return domain.ErrWrongMode
	}
	if room.Status != domain.StatusPlaying {
		return domain.ErrNotPlaying
	}
	if !room.IsMember(playerID) {
		return domain.ErrNotMember
	}
	return nil
}

// advance moves the cursor past the current prompt, finishing the game in the
// same write when it was the last one.
func (m *Manager) advance(roster domain.Roster, battle *domain.BattleState, patch *domain.RoomPatch) []domain.GameEventType {
	battle.Cursor++
	if battle.DeadlineAt != nil {
		battle.DeadlineAt = m.nextDeadline(m.now())
	}
	patch.Battle = battle
	if !battle.Exhausted() {
		return nil
	}
	battle.DeadlineAt = nil
	m.finishPatch(patch, battleWinner(roster))
	return []domain.GameEventType{domain.GameEventGameFinished}
}

// SubmitAnswer judges input against the current prompt. When atCursor is set
// and the prompt has already moved on the verdict is VerdictStale.
func (m *Manager) SubmitAnswer(ctx context.Context, roomID string, s domain.Session, input string, atCursor *int) (AnswerResult, error) {
	verdict := VerdictIncorrect
	room, err := m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		if err := requireBattle(room, s.PlayerID); err != nil {
			return mutation{}, err
		}
		if atCursor != nil && *atCursor != room.Battle.Cursor {
			verdict = VerdictStale
			return mutation{room: room}, nil
		}
		prompt, ok := room.Battle.Current()
		if !ok {
			return mutation{}, domain.ErrNotPlaying
		}
		verdict = Judge(prompt, input)
		if verdict != VerdictCorrect {
			return mutation{room: room}, nil
		}

		roster := room.Roster.Clone()
		roster[s.PlayerID].Score += domain.CorrectAnswerPoints
		battle := room.Battle.Clone()
		battle.LastActor = s.PlayerID
		patch := domain.RoomPatch{Roster: roster}
		events := m.advance(roster, battle, &patch)
		return m.write(ctx, room, patch, events...)
	})
	if err != nil {
		return AnswerResult{}, err
	}
	return AnswerResult{Verdict: verdict, Room: room}, nil
}

// Pass skips the current prompt for a score penalty. It needs explicit
// confirmation and is capped per player.
func (m *Manager) Pass(ctx context.Context, roomID string, s domain.Session, confirm bool, atCursor *int) (*domain.Room, error) {
	if !confirm {
		return nil, domain.ErrConfirmationRequired
	}
	return m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		if err := requireBattle(room, s.PlayerID); err != nil {
			return mutation{}, err
		}
		if atCursor != nil && *atCursor != room.Battle.Cursor {
			return mutation{}, domain.ErrStalePrompt
		}
		if room.Battle.Exhausted() {
			return mutation{}, domain.ErrNotPlaying
		}
		if room.Battle.PassesUsed[s.PlayerID] >= room.Battle.PassAllowance() {
			return mutation{}, domain.ErrPassLimit
		}

		roster := room.Roster.Clone()
		roster[s.PlayerID].Score -= domain.PassPenalty
		battle := room.Battle.Clone()
		if battle.PassesUsed == nil {
			battle.PassesUsed = make(map[string]int)
		}
		battle.PassesUsed[s.PlayerID]++
		patch := domain.RoomPatch{Roster: roster}
		events := m.advance(roster, battle, &patch)
		return m.write(ctx, room, patch, events...)
	})
}

// Timeout advances a hard-mode room whose prompt at atCursor ran out of time.
// A cursor that already moved makes it a no-op.
func (m *Manager) Timeout(ctx context.Context, roomID string, atCursor int) (*domain.Room, error) {
	return m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		if room.Mode != domain.ModeBattle || room.Battle == nil {
			return mutation{}, domain.ErrWrongMode
		}
		if room.Status != domain.StatusPlaying {
			return mutation{}, domain.ErrNotPlaying
		}
		if room.Battle.Cursor != atCursor {
			return mutation{room: room}, nil
		}
		return m.timeout(ctx, room)
	})
}

func (m *Manager) timeout(ctx context.Context, room *domain.Room) (mutation, error) {
	battle := room.Battle.Clone()
	patch := domain.RoomPatch{}
	events := m.advance(room.Roster, battle, &patch)
	return m.write(ctx, room, patch, events...)
}

func (m *Manager) tickBattle(ctx context.Context, room *domain.Room, now time.Time) (mutation, error) {
	deadline := room.Battle.DeadlineAt
	if room.Battle.Difficulty != domain.DifficultyHard || deadline == nil || now.Before(*deadline) {
		return mutation{room: room}, nil
	}
	return m.timeout(ctx, room)
}
