package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordgame-service/domain"

	"go.uber.org/zap"
)

func checkStartable(room *domain.Room, s domain.Session) error {
	if room.HostID != s.PlayerID {
		return fmt.Errorf("%w: only the host can start the game", domain.ErrForbidden)
	}
	if room.Status != domain.StatusWaiting {
		return fmt.Errorf("%w: game already started", domain.ErrConflict)
	}
	if len(room.Roster) < 2 {
		return domain.ErrNotEnoughPlayers
	}
	return nil
}

func (m *Manager) promptLimit(mode domain.Mode) int {
	if mode == domain.ModeBattle {
		return m.opts.BattlePrompts
	}
	return m.opts.SurvivalPrompts
}

// StartGame moves a waiting room to playing. Prompts come from the catalog,
// shuffled and truncated to the mode's size.
func (m *Manager) StartGame(ctx context.Context, roomID string, s domain.Session) (*domain.Room, error) {
	room, err := m.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := checkStartable(room, s); err != nil {
		return nil, err
	}

	// Slow read outside the room lock; state is re-checked below.
	prompts, err := m.catalog.FetchPromptsForBook(ctx, room.Book, room.AcademyID)
	if err != nil {
		if errors.Is(err, domain.ErrTransient) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: catalog: %v", domain.ErrTransient, err)
	}
	prompts = append([]domain.Prompt(nil), prompts...)
	m.shuffle(prompts)
	if limit := m.promptLimit(room.Mode); len(prompts) > limit {
		prompts = prompts[:limit]
	}
	if len(prompts) == 0 {
		return nil, domain.ErrNoPrompts
	}

	started, err := m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		if err := checkStartable(room, s); err != nil {
			return mutation{}, err
		}
		now := m.now()
		playing := domain.StatusPlaying
		roster := room.Roster.Clone()
		for _, p := range roster {
			p.Score = 0
			p.Ready = true
		}
		patch := domain.RoomPatch{Status: &playing, Roster: roster, StartedAt: &now}

		switch room.Mode {
		case domain.ModeBattle:
			difficulty := domain.DifficultyNormal
			if room.Battle != nil {
				difficulty = room.Battle.Difficulty
			}
			battle := &domain.BattleState{
				Difficulty: difficulty,
				Prompts:    prompts,
				PassesUsed: make(map[string]int, len(roster)),
			}
			for id := range roster {
				battle.PassesUsed[id] = 0
			}
			if difficulty == domain.DifficultyHard {
				deadline := now.Add(m.opts.HardTimeout)
				battle.DeadlineAt = &deadline
			}
			patch.Battle = battle
		case domain.ModeSurvival:
			survival := &domain.SurvivalState{
				Prompts:      prompts,
				Participants: len(roster),
				Vitals:       make(map[string]*domain.Vitals, len(roster)),
			}
			for id := range roster {
				survival.Vitals[id] = domain.NewVitals()
			}
			patch.Survival = survival
		}

		res, err := m.write(ctx, room, patch, domain.GameEventGameStarted)
		if err != nil {
			return res, err
		}
		if res.room.Mode == domain.ModeSurvival {
			m.resetBoards(res.room)
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("Game started",
		zap.String("room_id", roomID),
		zap.String("mode", string(started.Mode)),
		zap.Int("prompts", len(prompts)),
		zap.Int("players", len(started.Roster)))
	m.startLoop(started)
	return started, nil
}

// battleWinner picks the highest score; equal scores go to the lowest player id.
func battleWinner(roster domain.Roster) string {
	winner := ""
	for _, id := range roster.IDs() {
		if winner == "" || roster[id].Score > roster[winner].Score {
			winner = id
		}
	}
	return winner
}

// survivalOutcome reports whether the game is over and who is left standing.
// A game that started with a single participant never ends on elimination.
func survivalOutcome(state *domain.SurvivalState) (string, bool) {
	if state.Participants < 2 {
		return "", false
	}
	alive := state.AliveIDs()
	switch len(alive) {
	case 0:
		return "", true
	case 1:
		return alive[0], true
	}
	return "", false
}

func (m *Manager) finishPatch(patch *domain.RoomPatch, winnerID string) {
	finished := domain.StatusFinished
	now := m.now()
	patch.Status = &finished
	patch.WinnerID = &winnerID
	patch.FinishedAt = &now
}

// nextDeadline is when the next hard-mode prompt times out.
func (m *Manager) nextDeadline(now time.Time) *time.Time {
	d := now.Add(m.opts.HardTimeout)
	return &d
}
