package game

import (
	"context"

	"wordgame-service/domain"

	"go.uber.org/zap"
)

// Join adds the caller to a waiting room. Joining a room the caller is
// already in returns it unchanged.
func (m *Manager) Join(ctx context.Context, roomID string, s domain.Session, password string) (*domain.Room, error) {
	if !s.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		if room.IsMember(s.PlayerID) {
			return mutation{room: room}, nil
		}
		if room.Status != domain.StatusWaiting {
			return mutation{}, domain.ErrNotJoinable
		}
		if room.PasswordHash != "" && !m.hasher.Compare(room.PasswordHash, password) {
			return mutation{}, domain.ErrBadPassword
		}
		if len(room.Roster) >= room.Capacity {
			return mutation{}, domain.ErrCapacity
		}

		roster := room.Roster.Clone()
		roster[s.PlayerID] = &domain.PlayerState{
			ID:          s.PlayerID,
			DisplayName: s.DisplayName,
			JoinedAt:    m.now(),
		}
		patch := domain.RoomPatch{Roster: roster}
		if room.Mode == domain.ModeSurvival {
			survival := room.Survival.Clone()
			if survival == nil {
				survival = &domain.SurvivalState{}
			}
			if survival.Vitals == nil {
				survival.Vitals = make(map[string]*domain.Vitals)
			}
			survival.Vitals[s.PlayerID] = domain.NewVitals()
			patch.Survival = survival
		}

		res, err := m.write(ctx, room, patch)
		if err == nil {
			zap.L().Info("Player joined room",
				zap.String("room_id", roomID),
				zap.String("player_id", s.PlayerID),
				zap.Int("players", len(roster)))
		}
		return res, err
	})
}

// Leave removes playerID from the room. The host leaving deletes the room.
// Leaving mid-game can end the game for the remaining players.
func (m *Manager) Leave(ctx context.Context, roomID, playerID string) (*domain.Room, error) {
	room, err := m.store.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.HostID == playerID {
		return nil, m.DeleteRoom(ctx, roomID)
	}

	return m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		// finished rosters are the final standings; WinnerID must stay a roster key
		if !room.IsMember(playerID) || room.Status == domain.StatusFinished {
			return mutation{room: room}, nil
		}

		roster := room.Roster.Clone()
		delete(roster, playerID)
		patch := domain.RoomPatch{Roster: roster}

		switch room.Mode {
		case domain.ModeBattle:
			if room.Battle != nil {
				battle := room.Battle.Clone()
				delete(battle.PassesUsed, playerID)
				patch.Battle = battle
			}
		case domain.ModeSurvival:
			if room.Survival != nil {
				survival := room.Survival.Clone()
				delete(survival.Vitals, playerID)
				patch.Survival = survival
			}
		}

		var events []domain.GameEventType
		if room.Status == domain.StatusPlaying {
			if winner, over := m.terminalAfterLeave(room, roster, patch); over {
				m.finishPatch(&patch, winner)
				events = append(events, domain.GameEventGameFinished)
			}
		}

		res, err := m.write(ctx, room, patch, events...)
		if err == nil {
			zap.L().Info("Player left room", zap.String("room_id", roomID), zap.String("player_id", playerID))
		}
		return res, err
	})
}

func (m *Manager) terminalAfterLeave(room *domain.Room, roster domain.Roster, patch domain.RoomPatch) (string, bool) {
	switch room.Mode {
	case domain.ModeBattle:
		if len(roster) < domain.BattleCapacity {
			return battleWinner(roster), true
		}
	case domain.ModeSurvival:
		if patch.Survival != nil {
			return survivalOutcome(patch.Survival)
		}
	}
	return "", false
}
