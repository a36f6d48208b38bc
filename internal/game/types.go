// internal/game/types.go
//
// Core type definitions for the number-guessing engine.
// Defines:
//   - Difficulty: named inclusive range [1, Max] for the secret number.
//   - Result: classification of a single guess (high/low/correct).
//   - Outcome: round state (playing/won/lost).
//   - GuessRecord: one entry of the append-only guess history.
//   - Session: state for a single in-progress or finished round.

package game

import (
	"errors"
	"strings"
)

// MaxAttempts is the number of guesses a player gets per round.
const MaxAttempts = 10

// ErrUnknownDifficulty is returned by ParseDifficulty for names outside easy/medium/hard.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects the inclusive range the secret number is drawn from.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty is used on first load.
const DefaultDifficulty = DifficultyMedium

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Min is the lower bound of every range.
func (d Difficulty) Min() int { return 1 }

// Max returns the upper bound of the range, or 0 for an unknown difficulty.
func (d Difficulty) Max() int {
	switch d {
	case DifficultyEasy:
		return 50
	case DifficultyMedium:
		return 100
	case DifficultyHard:
		return 500
	default:
		return 0
	}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool { return d.Max() > 0 }

// ParseDifficulty normalises s and maps it to a Difficulty.
// An empty string yields DefaultDifficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultDifficulty, nil
	}
	d := Difficulty(s)
	if !d.Valid() {
		return "", ErrUnknownDifficulty
	}
	return d, nil
}

// Result is the evaluation of a single guess against the secret.
type Result string

const (
	ResultHigh    Result = "high"
	ResultLow     Result = "low"
	ResultCorrect Result = "correct"
)

// Outcome is the coarse state of a round.
type Outcome string

const (
	OutcomePlaying Outcome = "playing"
	OutcomeWon     Outcome = "won"
	OutcomeLost    Outcome = "lost"
)

// GuessRecord is one accepted guess and how it was classified.
type GuessRecord struct {
	Value  int    `json:"value"`
	Result Result `json:"result"`
}

// Session holds the state of a single round.
// Sessions are replaced wholesale between rounds, never reset in place.
type Session struct {
	ID          string        // Unique round identifier (UUID).
	Difficulty  Difficulty    // Range the secret was drawn from.
	Secret      int           // The number to guess; fixed after creation.
	Attempts    int           // Accepted guesses so far (0..MaxAttempts).
	MaxAttempts int           // Guess budget for the round.
	Guesses     []GuessRecord // Accepted guesses in submission order.
	Outcome     Outcome       // playing until won or lost.
}

// Rand is the random source a Session draws its secret from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}
