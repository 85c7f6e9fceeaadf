package domain

import "time"

type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// RoomEvent is a change notification. Room holds the full record after the
// change; for deletes it holds the last known record when the store has one.
type RoomEvent struct {
	Type   EventType `json:"type"`
	RoomID string    `json:"room_id"`
	Mode   Mode      `json:"mode"`
	Room   *Room     `json:"room,omitempty"`
}

// RoomFilter selects rooms for List. Subscribe honours only ID and Mode so
// feeds still see records that leave a status set.
type RoomFilter struct {
	ID       string
	Mode     Mode
	HostID   string
	Statuses []Status
}

func (f RoomFilter) Match(r *Room) bool {
	if f.ID != "" && r.ID != f.ID {
		return false
	}
	if f.Mode != "" && r.Mode != f.Mode {
		return false
	}
	if f.HostID != "" && r.HostID != f.HostID {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if r.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// MatchEvent applies the subscription part of the filter.
func (f RoomFilter) MatchEvent(ev RoomEvent) bool {
	if f.ID != "" && ev.RoomID != f.ID {
		return false
	}
	if f.Mode != "" && ev.Mode != f.Mode {
		return false
	}
	return true
}

// OpenRooms is the lobby filter for a mode.
func OpenRooms(mode Mode) RoomFilter {
	return RoomFilter{Mode: mode, Statuses: []Status{StatusWaiting, StatusPlaying}}
}

// RoomPatch replaces every non-nil top-level field wholesale.
type RoomPatch struct {
	Status     *Status
	Roster     Roster
	WinnerID   *string
	Battle     *BattleState
	Survival   *SurvivalState
	StartedAt  *time.Time
	FinishedAt *time.Time
}

func (p RoomPatch) Empty() bool {
	return p.Status == nil && p.Roster == nil && p.WinnerID == nil &&
		p.Battle == nil && p.Survival == nil && p.StartedAt == nil && p.FinishedAt == nil
}

// Apply writes the patch onto r. Version and UpdatedAt belong to the store.
func (p RoomPatch) Apply(r *Room) {
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Roster != nil {
		r.Roster = p.Roster.Clone()
	}
	if p.WinnerID != nil {
		r.WinnerID = *p.WinnerID
	}
	if p.Battle != nil {
		r.Battle = p.Battle.Clone()
	}
	if p.Survival != nil {
		r.Survival = p.Survival.Clone()
	}
	if p.StartedAt != nil {
		t := *p.StartedAt
		r.StartedAt = &t
	}
	if p.FinishedAt != nil {
		t := *p.FinishedAt
		r.FinishedAt = &t
	}
}

// Subscription delivers RoomEvents until Close is called.
type Subscription interface {
	Events() <-chan RoomEvent
	Close() error
}

type GameEventType string

const (
	GameEventRoomCreated  GameEventType = "room_created"
	GameEventRoomDeleted  GameEventType = "room_deleted"
	GameEventGameStarted  GameEventType = "game_started"
	GameEventGameFinished GameEventType = "game_finished"
)

// GameEvent is published to the event stream for downstream statistics.
type GameEvent struct {
	Type     GameEventType  `json:"type"`
	RoomID   string         `json:"room_id"`
	Mode     Mode           `json:"mode"`
	HostID   string         `json:"host_id,omitempty"`
	WinnerID string         `json:"winner_id,omitempty"`
	Scores   map[string]int `json:"scores,omitempty"`
	At       time.Time      `json:"at"`
}
