package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrTransient    = errors.New("temporarily unavailable")
)

// Oda ve oyun kurallarına özgü hatalar; errors.Is ile üst kategoriye eşlenir.
var (
	ErrBadPassword          = fmt.Errorf("%w: wrong room password", ErrUnauthorized)
	ErrCapacity             = fmt.Errorf("%w: room is full", ErrConflict)
	ErrNotJoinable          = fmt.Errorf("%w: room is not accepting players", ErrConflict)
	ErrNotPlaying           = fmt.Errorf("%w: game is not in progress", ErrConflict)
	ErrNotEnoughPlayers     = fmt.Errorf("%w: at least two players are required", ErrConflict)
	ErrPassLimit            = fmt.Errorf("%w: pass limit reached", ErrConflict)
	ErrGaugeNotFull         = fmt.Errorf("%w: attack gauge is not full", ErrConflict)
	ErrEliminated           = fmt.Errorf("%w: player is eliminated", ErrConflict)
	ErrStalePrompt          = fmt.Errorf("%w: prompt already resolved", ErrConflict)
	ErrNoTarget             = fmt.Errorf("%w: no opponent left to attack", ErrConflict)
	ErrNoPrompts            = fmt.Errorf("%w: no words available for this book", ErrInvalidInput)
	ErrConfirmationRequired = fmt.Errorf("%w: pass must be confirmed", ErrInvalidInput)
	ErrWrongMode            = fmt.Errorf("%w: operation does not apply to this game mode", ErrInvalidInput)
	ErrNotMember            = fmt.Errorf("%w: player is not in this room", ErrForbidden)
	ErrSessionNotFound      = fmt.Errorf("%w: session not found", ErrUnauthorized)
)
