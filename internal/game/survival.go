package game

import (
	"context"
	"time"

	"wordgame-service/domain"

	"go.uber.org/zap"
)

type TypeResult struct {
	Matched bool         `json:"matched"`
	Room    *domain.Room `json:"room"`
}

type AttackResult struct {
	TargetID string        `json:"target_id"`
	Effect   domain.Effect `json:"effect"`
	Room     *domain.Room  `json:"room"`
}

func requireSurvivor(room *domain.Room, playerID string) error {
	if room.Mode != domain.ModeSurvival || room.Survival == nil {
		return domain.ErrWrongMode
	}
	if room.Status != domain.StatusPlaying {
		return domain.ErrNotPlaying
	}
	v, ok := room.Survival.Vitals[playerID]
	if !ok || !room.IsMember(playerID) {
		return domain.ErrNotMember
	}
	if !v.Alive {
		return domain.ErrEliminated
	}
	return nil
}

// boardFor returns the player's board, creating it on first use. Callers hold
// the room lock.
func (m *Manager) boardFor(room *domain.Room, playerID string) *Board {
	m.boardsMu.Lock()
	defer m.boardsMu.Unlock()
	boards, ok := m.boards[room.ID]
	if !ok {
		boards = make(map[string]*Board)
		m.boards[room.ID] = boards
	}
	b, ok := boards[playerID]
	if !ok {
		b = NewBoard(m.opts.Board, room.Survival.Prompts, m.newRand())
		boards[playerID] = b
	}
	return b
}

// commitBoards installs ticked boards, unless the room's boards were dropped
// in the meantime.
func (m *Manager) commitBoards(roomID string, advanced map[string]*Board) {
	m.boardsMu.Lock()
	defer m.boardsMu.Unlock()
	boards, ok := m.boards[roomID]
	if !ok {
		return
	}
	for id, b := range advanced {
		boards[id] = b
	}
}

func (m *Manager) resetBoards(room *domain.Room) {
	m.boardsMu.Lock()
	delete(m.boards, room.ID)
	m.boardsMu.Unlock()
	for id := range room.Survival.Vitals {
		m.boardFor(room, id)
	}
}

func (m *Manager) dropBoards(roomID string) {
	m.boardsMu.Lock()
	delete(m.boards, roomID)
	m.boardsMu.Unlock()
}

// Type matches input against the caller's falling prompts. A hit scores and
// charges the attack gauge.
func (m *Manager) Type(ctx context.Context, roomID string, s domain.Session, input string) (TypeResult, error) {
	matched := false
	room, err := m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		if err := requireSurvivor(room, s.PlayerID); err != nil {
			return mutation{}, err
		}
		board := m.boardFor(room, s.PlayerID).Clone()
		if _, ok := board.Match(input); !ok {
			return mutation{room: room}, nil
		}

		roster := room.Roster.Clone()
		roster[s.PlayerID].Score += domain.MatchPoints
		survival := room.Survival.Clone()
		v := survival.Vitals[s.PlayerID]
		v.Gauge = min(domain.MaxGauge, v.Gauge+domain.MatchGauge)
		res, err := m.write(ctx, room, domain.RoomPatch{Roster: roster, Survival: survival})
		if err != nil {
			return res, err
		}
		matched = true
		m.commitBoards(room.ID, map[string]*Board{s.PlayerID: board})
		return res, nil
	})
	if err != nil {
		return TypeResult{}, err
	}
	return TypeResult{Matched: matched, Room: room}, nil
}

// Attack spends a full gauge to put a random effect on a random living
// opponent.
func (m *Manager) Attack(ctx context.Context, roomID string, s domain.Session) (AttackResult, error) {
	var result AttackResult
	room, err := m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		if err := requireSurvivor(room, s.PlayerID); err != nil {
			return mutation{}, err
		}
		survival := room.Survival.Clone()
		attacker := survival.Vitals[s.PlayerID]
		if attacker.Gauge < domain.MaxGauge {
			return mutation{}, domain.ErrGaugeNotFull
		}

		var targets []string
		for _, id := range survival.AliveIDs() {
			if id != s.PlayerID {
				targets = append(targets, id)
			}
		}
		if len(targets) == 0 {
			return mutation{}, domain.ErrNoTarget
		}
		targetID := targets[m.intn(len(targets))]
		effect := domain.AttackEffects[m.intn(len(domain.AttackEffects))]
		until := m.now().Add(m.opts.EffectDuration)

		attacker.Gauge = 0
		target := survival.Vitals[targetID]
		target.PendingEffect = effect
		target.EffectUntil = &until
		board := m.boardFor(room, targetID).Clone()
		board.ApplyEffect(effect, until)

		result = AttackResult{TargetID: targetID, Effect: effect}
		zap.L().Info("Attack launched",
			zap.String("room_id", room.ID),
			zap.String("attacker_id", s.PlayerID),
			zap.String("target_id", targetID),
			zap.String("effect", string(effect)))
		res, err := m.write(ctx, room, domain.RoomPatch{Survival: survival})
		if err != nil {
			return res, err
		}
		m.commitBoards(room.ID, map[string]*Board{targetID: board})
		return res, nil
	})
	if err != nil {
		return AttackResult{}, err
	}
	result.Room = room
	return result, nil
}

// applyDamage lowers one player's health. Reaching zero eliminates the player
// for good.
func applyDamage(v *domain.Vitals, amount int) {
	if !v.Alive || amount <= 0 {
		return
	}
	v.Health = max(0, v.Health-amount)
	if v.Health == 0 {
		v.Alive = false
	}
}

func (m *Manager) tickSurvival(ctx context.Context, room *domain.Room, now time.Time) (mutation, []BoardSnapshot, error) {
	survival := room.Survival.Clone()
	changed := false
	alive := survival.AliveIDs()
	snapshots := make([]BoardSnapshot, 0, len(alive))

	// boards advance on copies; they replace the live ones only once the
	// damage they caused is stored
	advanced := make(map[string]*Board, len(alive))
	for _, id := range alive {
		board := m.boardFor(room, id).Clone()
		advanced[id] = board
		if dmg := board.Tick(now); dmg > 0 {
			applyDamage(survival.Vitals[id], dmg)
			changed = true
			if !survival.Vitals[id].Alive {
				zap.L().Info("Player eliminated", zap.String("room_id", room.ID), zap.String("player_id", id))
			}
		}
		snapshots = append(snapshots, board.Snapshot(id))
	}
	for _, v := range survival.Vitals {
		if v.EffectUntil != nil && !now.Before(*v.EffectUntil) {
			v.PendingEffect = domain.EffectNone
			v.EffectUntil = nil
			changed = true
		}
	}
	if !changed {
		m.commitBoards(room.ID, advanced)
		return mutation{room: room}, snapshots, nil
	}

	patch := domain.RoomPatch{Survival: survival}
	var events []domain.GameEventType
	if winner, over := survivalOutcome(survival); over {
		m.finishPatch(&patch, winner)
		events = append(events, domain.GameEventGameFinished)
	}
	res, err := m.write(ctx, room, patch, events...)
	if err != nil {
		return res, nil, err
	}
	m.commitBoards(room.ID, advanced)
	return res, snapshots, nil
}

// BoardSnapshot returns the caller's current falling prompts.
func (m *Manager) BoardSnapshot(ctx context.Context, roomID, playerID string) (BoardSnapshot, error) {
	var snap BoardSnapshot
	_, err := m.withRoom(ctx, roomID, func(room *domain.Room) (mutation, error) {
		if room.Mode != domain.ModeSurvival || room.Survival == nil {
			return mutation{}, domain.ErrWrongMode
		}
		if !room.IsMember(playerID) {
			return mutation{}, domain.ErrNotMember
		}
		if room.Status != domain.StatusPlaying {
			snap = BoardSnapshot{PlayerID: playerID, Falling: []FallingPrompt{}}
			return mutation{room: room}, nil
		}
		snap = m.boardFor(room, playerID).Snapshot(playerID)
		return mutation{room: room}, nil
	})
	return snap, err
}
