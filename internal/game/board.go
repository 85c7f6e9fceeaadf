package game

import (
	"math/rand"
	"time"

	"wordgame-service/domain"
)

// BoardConfig describes the falling-word field of a survival player. Positions
// are percentages of the field; speeds are percent per second.
type BoardConfig struct {
	SpawnInterval   time.Duration
	BaseSpeed       float64
	SpeedJitter     float64
	SpawnY          float64
	MinX            float64
	MaxX            float64
	DangerLine      float64
	Damage          int
	DissolveAfter   time.Duration
	SpeedMultiplier float64
}

func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		SpawnInterval:   3 * time.Second,
		BaseSpeed:       0.9,
		SpeedJitter:     1.2,
		SpawnY:          10,
		MinX:            15,
		MaxX:            85,
		DangerLine:      75,
		Damage:          10,
		DissolveAfter:   500 * time.Millisecond,
		SpeedMultiplier: 2.5,
	}
}

type FallingPrompt struct {
	ID         int64   `json:"id"`
	PromptID   string  `json:"prompt_id"`
	Term       string  `json:"term"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Speed      float64 `json:"speed"`
	Dissolving bool    `json:"dissolving"`

	answer domain.Prompt
	hitAt  time.Time
}

// BoardSnapshot is what a survival client renders.
type BoardSnapshot struct {
	PlayerID    string          `json:"player_id"`
	Falling     []FallingPrompt `json:"falling"`
	Effect      domain.Effect   `json:"effect,omitempty"`
	EffectUntil *time.Time      `json:"effect_until,omitempty"`
}

// Board is a single player's falling-word field. It is advanced only by Tick,
// so tests drive it with synthetic time. Not safe for concurrent use; Manager
// touches boards under the room lock.
type Board struct {
	cfg     BoardConfig
	prompts []domain.Prompt
	rng     *rand.Rand

	falling   []*FallingPrompt
	nextID    int64
	lastTick  time.Time
	lastSpawn time.Time

	effect      domain.Effect
	effectUntil time.Time
}

func NewBoard(cfg BoardConfig, prompts []domain.Prompt, rng *rand.Rand) *Board {
	return &Board{
		cfg:     cfg,
		prompts: prompts,
		rng:     rng,
	}
}

// Clone copies the board so a tick can be computed without touching the
// original. The random source is shared.
func (b *Board) Clone() *Board {
	out := *b
	out.falling = make([]*FallingPrompt, len(b.falling))
	for i, fp := range b.falling {
		c := *fp
		out.falling[i] = &c
	}
	return &out
}

func (b *Board) multiplier(now time.Time) float64 {
	if b.effect == domain.EffectSpeed && now.Before(b.effectUntil) {
		return b.cfg.SpeedMultiplier
	}
	return 1
}

// Tick advances the board to now and returns the damage taken since the
// previous tick.
func (b *Board) Tick(now time.Time) int {
	if b.lastTick.IsZero() {
		b.lastTick = now
		b.lastSpawn = now
		return 0
	}
	dt := now.Sub(b.lastTick).Seconds()
	if dt < 0 {
		return 0
	}
	b.lastTick = now
	mul := b.multiplier(now)

	damage := 0
	kept := b.falling[:0]
	for _, fp := range b.falling {
		if fp.Dissolving {
			if now.Sub(fp.hitAt) < b.cfg.DissolveAfter {
				kept = append(kept, fp)
			}
			continue
		}
		fp.Y += fp.Speed * mul * dt
		if fp.Y > b.cfg.DangerLine {
			damage += b.cfg.Damage
			fp.Dissolving = true
			fp.hitAt = now
		}
		kept = append(kept, fp)
	}
	b.falling = kept

	interval := time.Duration(float64(b.cfg.SpawnInterval) / mul)
	if len(b.prompts) > 0 && now.Sub(b.lastSpawn) >= interval {
		b.spawn()
		b.lastSpawn = now
	}
	if !b.effectUntil.IsZero() && !now.Before(b.effectUntil) {
		b.effect = domain.EffectNone
		b.effectUntil = time.Time{}
	}
	return damage
}

func (b *Board) spawn() {
	p := b.prompts[b.rng.Intn(len(b.prompts))]
	b.nextID++
	b.falling = append(b.falling, &FallingPrompt{
		ID:       b.nextID,
		PromptID: p.ID,
		Term:     p.Term,
		X:        b.cfg.MinX + b.rng.Float64()*(b.cfg.MaxX-b.cfg.MinX),
		Y:        b.cfg.SpawnY,
		Speed:    b.cfg.BaseSpeed + b.rng.Float64()*b.cfg.SpeedJitter,
		answer:   p,
	})
}

// Match removes the live prompt closest to the danger line whose answer
// judges correct against input.
func (b *Board) Match(input string) (FallingPrompt, bool) {
	best := -1
	for i, fp := range b.falling {
		if fp.Dissolving || Judge(fp.answer, input) != VerdictCorrect {
			continue
		}
		if best < 0 || fp.Y > b.falling[best].Y {
			best = i
		}
	}
	if best < 0 {
		return FallingPrompt{}, false
	}
	hit := *b.falling[best]
	b.falling = append(b.falling[:best], b.falling[best+1:]...)
	return hit, true
}

// ApplyEffect puts an attack effect on the board until the given time.
func (b *Board) ApplyEffect(effect domain.Effect, until time.Time) {
	b.effect = effect
	b.effectUntil = until
}

func (b *Board) Snapshot(playerID string) BoardSnapshot {
	out := BoardSnapshot{PlayerID: playerID, Falling: make([]FallingPrompt, 0, len(b.falling))}
	for _, fp := range b.falling {
		out.Falling = append(out.Falling, *fp)
	}
	if b.effect != domain.EffectNone {
		until := b.effectUntil
		out.Effect = b.effect
		out.EffectUntil = &until
	}
	return out
}
