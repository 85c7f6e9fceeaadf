package game

import (
	"context"
	"fmt"
	"strings"

	"wordgame-service/domain"

	"go.uber.org/zap"
)

type CreateRoomInput struct {
	Name       string
	Mode       domain.Mode
	Capacity   int
	Password   string
	Book       string
	Difficulty domain.Difficulty
}

func (m *Manager) capacityFor(mode domain.Mode, requested int) (int, error) {
	switch mode {
	case domain.ModeBattle:
		if requested != 0 && requested != domain.BattleCapacity {
			return 0, fmt.Errorf("%w: battle rooms hold exactly %d players", domain.ErrInvalidInput, domain.BattleCapacity)
		}
		return domain.BattleCapacity, nil
	case domain.ModeSurvival:
		if requested == 0 {
			requested = m.opts.SurvivalCapacity
		}
		if requested < domain.SurvivalMinCapacity || requested > domain.SurvivalMaxCapacity {
			return 0, fmt.Errorf("%w: survival capacity must be between %d and %d",
				domain.ErrInvalidInput, domain.SurvivalMinCapacity, domain.SurvivalMaxCapacity)
		}
		return requested, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, mode)
}

// CreateRoom inserts a waiting room hosted by the caller.
func (m *Manager) CreateRoom(ctx context.Context, s domain.Session, in CreateRoomInput) (*domain.Room, error) {
	if !s.Valid() {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: room name is required", domain.ErrInvalidInput)
	}
	capacity, err := m.capacityFor(in.Mode, in.Capacity)
	if err != nil {
		return nil, err
	}

	book := strings.TrimSpace(in.Book)
	if book == "" {
		book = m.opts.DefaultBook
	}
	academy := s.AcademyID
	if academy == "" {
		academy = m.opts.DefaultAcademy
	}

	var hash string
	if in.Password != "" {
		hash, err = m.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash room password: %w", err)
		}
	}

	now := m.now()
	room := &domain.Room{
		Name:         name,
		Mode:         in.Mode,
		Status:       domain.StatusWaiting,
		HostID:       s.PlayerID,
		HostName:     s.DisplayName,
		Capacity:     capacity,
		Book:         book,
		AcademyID:    academy,
		PasswordHash: hash,
		Roster: domain.Roster{
			s.PlayerID: {ID: s.PlayerID, DisplayName: s.DisplayName, Ready: true, JoinedAt: now},
		},
		CreatedAt: now,
	}

	switch in.Mode {
	case domain.ModeBattle:
		difficulty := in.Difficulty
		if difficulty == "" {
			difficulty = domain.DifficultyNormal
		}
		if !difficulty.Valid() {
			return nil, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidInput, difficulty)
		}
		room.Battle = &domain.BattleState{Difficulty: difficulty}
	case domain.ModeSurvival:
		room.Survival = &domain.SurvivalState{
			Vitals: map[string]*domain.Vitals{s.PlayerID: domain.NewVitals()},
		}
	}

	created, err := m.store.Insert(ctx, room)
	if err != nil {
		return nil, err
	}
	zap.L().Info("Room created",
		zap.String("room_id", created.ID),
		zap.String("mode", string(created.Mode)),
		zap.String("host_id", created.HostID))
	m.dispatch(ctx, created, []domain.GameEventType{domain.GameEventRoomCreated})
	return created, nil
}

// ListOpenRooms returns waiting and playing rooms of a mode, oldest first.
func (m *Manager) ListOpenRooms(ctx context.Context, mode domain.Mode) ([]*domain.Room, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, mode)
	}
	return m.store.List(ctx, domain.OpenRooms(mode))
}

func (m *Manager) GetRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	return m.store.Get(ctx, roomID)
}

// DeleteRoom removes the room and everything the engine keeps for it.
// Deleting a missing room is not an error.
func (m *Manager) DeleteRoom(ctx context.Context, roomID string) error {
	unlock := m.lockRoom(roomID)
	room, err := m.store.Get(ctx, roomID)
	if err != nil {
		unlock()
		if isGone(err) {
			m.forgetLock(roomID)
			return nil
		}
		return err
	}
	if err := m.store.Delete(ctx, roomID); err != nil {
		unlock()
		return err
	}
	m.stopLoop(roomID)
	m.dropBoards(roomID)
	unlock()
	m.forgetLock(roomID)

	zap.L().Info("Room deleted", zap.String("room_id", roomID))
	m.dispatch(ctx, room, []domain.GameEventType{domain.GameEventRoomDeleted})
	return nil
}

// ReapHostedRooms deletes every room hosted by hostID and reports how many
// were removed.
func (m *Manager) ReapHostedRooms(ctx context.Context, hostID string) (int, error) {
	if hostID == "" {
		return 0, domain.ErrUnauthorized
	}
	rooms, err := m.store.List(ctx, domain.RoomFilter{HostID: hostID})
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, room := range rooms {
		if err := m.DeleteRoom(ctx, room.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
