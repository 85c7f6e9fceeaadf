package domain

import (
	"sort"
	"time"
)

type Mode string

const (
	ModeBattle   Mode = "battle"
	ModeSurvival Mode = "survival"
)

func (m Mode) Valid() bool {
	return m == ModeBattle || m == ModeSurvival
}

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// rank, status geçişlerinin yalnızca ileri yönde olmasını kontrol etmek için kullanılır.
func (s Status) rank() int {
	switch s {
	case StatusWaiting:
		return 0
	case StatusPlaying:
		return 1
	case StatusFinished:
		return 2
	}
	return -1
}

// CanAdvanceTo reports whether moving from s to next keeps the status monotonic.
func (s Status) CanAdvanceTo(next Status) bool {
	return next.rank() >= s.rank() && next.rank() >= 0
}

// Open rooms are the ones listed in the lobby.
func (s Status) Open() bool {
	return s == StatusWaiting || s == StatusPlaying
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyNormal || d == DifficultyHard
}

type Effect string

const (
	EffectNone  Effect = ""
	EffectFog   Effect = "fog"
	EffectSpeed Effect = "speed"
	EffectFlash Effect = "flash"
)

var AttackEffects = []Effect{EffectFog, EffectSpeed, EffectFlash}

const (
	BattleCapacity           = 2
	SurvivalMinCapacity      = 2
	SurvivalMaxCapacity      = 10
	MaxHealth                = 100
	MaxGauge                 = 100
	CorrectAnswerPoints      = 100
	PassPenalty              = 50
	MatchPoints              = 100
	MatchGauge               = 20
	PassAllowanceNumerator   = 1
	PassAllowanceDenominator = 5
)

// Prompt is a single vocabulary question. Term is shown to the player, Answer is accepted.
type Prompt struct {
	ID     string `json:"id"`
	Term   string `json:"term"`
	Answer string `json:"answer"`
}

type PlayerState struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Ready       bool      `json:"ready"`
	Score       int       `json:"score"`
	JoinedAt    time.Time `json:"joined_at"`
}

type Roster map[string]*PlayerState

// IDs returns roster keys in ascending order.
func (r Roster) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	for id, p := range r {
		cp := *p
		out[id] = &cp
	}
	return out
}

type BattleState struct {
	Difficulty Difficulty     `json:"difficulty"`
	Prompts    []Prompt       `json:"prompts,omitempty"`
	Cursor     int            `json:"cursor"`
	LastActor  string         `json:"last_actor,omitempty"`
	PassesUsed map[string]int `json:"passes_used,omitempty"`
	DeadlineAt *time.Time     `json:"deadline_at,omitempty"`
}

// PassAllowance is floor(20% of the prompt count).
func (b *BattleState) PassAllowance() int {
	return len(b.Prompts) * PassAllowanceNumerator / PassAllowanceDenominator
}

// Exhausted reports whether every prompt has been consumed.
func (b *BattleState) Exhausted() bool {
	return b.Cursor >= len(b.Prompts)
}

// Current returns the prompt under the cursor.
func (b *BattleState) Current() (Prompt, bool) {
	if b.Cursor < 0 || b.Cursor >= len(b.Prompts) {
		return Prompt{}, false
	}
	return b.Prompts[b.Cursor], true
}

func (b *BattleState) Clone() *BattleState {
	if b == nil {
		return nil
	}
	out := *b
	out.Prompts = append([]Prompt(nil), b.Prompts...)
	if b.PassesUsed != nil {
		out.PassesUsed = make(map[string]int, len(b.PassesUsed))
		for k, v := range b.PassesUsed {
			out.PassesUsed[k] = v
		}
	}
	if b.DeadlineAt != nil {
		t := *b.DeadlineAt
		out.DeadlineAt = &t
	}
	return &out
}

type Vitals struct {
	Health        int        `json:"health"`
	Alive         bool       `json:"alive"`
	Gauge         int        `json:"gauge"`
	PendingEffect Effect     `json:"pending_effect,omitempty"`
	EffectUntil   *time.Time `json:"effect_until,omitempty"`
}

func NewVitals() *Vitals {
	return &Vitals{Health: MaxHealth, Alive: true}
}

type SurvivalState struct {
	Prompts      []Prompt           `json:"prompts,omitempty"`
	Participants int                `json:"participants"`
	Vitals       map[string]*Vitals `json:"vitals"`
}

// AliveIDs returns the ids of players still standing, ascending.
func (s *SurvivalState) AliveIDs() []string {
	ids := make([]string, 0, len(s.Vitals))
	for id, v := range s.Vitals {
		if v.Alive {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (s *SurvivalState) Clone() *SurvivalState {
	if s == nil {
		return nil
	}
	out := *s
	out.Prompts = append([]Prompt(nil), s.Prompts...)
	if s.Vitals != nil {
		out.Vitals = make(map[string]*Vitals, len(s.Vitals))
		for id, v := range s.Vitals {
			cp := *v
			if v.EffectUntil != nil {
				t := *v.EffectUntil
				cp.EffectUntil = &t
			}
			out.Vitals[id] = &cp
		}
	}
	return &out
}

// Room is the shared record. Exactly one of Battle or Survival is set, matching Mode.
type Room struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Mode         Mode           `json:"mode"`
	Status       Status         `json:"status"`
	HostID       string         `json:"host_id"`
	HostName     string         `json:"host_name"`
	Capacity     int            `json:"capacity"`
	Book         string         `json:"book"`
	AcademyID    string         `json:"academy_id"`
	PasswordHash string         `json:"password_hash,omitempty"`
	HasPassword  bool           `json:"has_password"`
	Roster       Roster         `json:"roster"`
	WinnerID     string         `json:"winner_id,omitempty"`
	Battle       *BattleState   `json:"battle,omitempty"`
	Survival     *SurvivalState `json:"survival,omitempty"`
	Version      int64          `json:"version"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
}

func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	out := *r
	out.Roster = r.Roster.Clone()
	out.Battle = r.Battle.Clone()
	out.Survival = r.Survival.Clone()
	if r.StartedAt != nil {
		t := *r.StartedAt
		out.StartedAt = &t
	}
	if r.FinishedAt != nil {
		t := *r.FinishedAt
		out.FinishedAt = &t
	}
	return &out
}

// Public is the view handed to clients. The password hash never leaves the
// server, and answers stay hidden until their prompt is resolved or the game ends.
func (r *Room) Public() *Room {
	out := r.Clone()
	out.HasPassword = r.PasswordHash != ""
	out.PasswordHash = ""
	if out.Status == StatusFinished {
		return out
	}
	if out.Battle != nil {
		for i := out.Battle.Cursor; i < len(out.Battle.Prompts); i++ {
			out.Battle.Prompts[i].Answer = ""
		}
	}
	if out.Survival != nil {
		for i := range out.Survival.Prompts {
			out.Survival.Prompts[i].Answer = ""
		}
	}
	return out
}

// PlayerCount is the current roster size as shown in the lobby.
func (r *Room) PlayerCount() int {
	return len(r.Roster)
}

func (r *Room) IsMember(playerID string) bool {
	_, ok := r.Roster[playerID]
	return ok
}

// Scores returns playerID -> score for every roster entry.
func (r *Room) Scores() map[string]int {
	out := make(map[string]int, len(r.Roster))
	for id, p := range r.Roster {
		out[id] = p.Score
	}
	return out
}
