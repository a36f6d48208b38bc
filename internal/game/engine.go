// internal/game/engine.go
//
// Core game engine for a single number-guessing round.
// Responsibilities:
//   - Create new sessions with a secret drawn uniformly from the difficulty range.
//   - Validate and apply guesses (range check, round still in play).
//   - Classify guesses as high/low/correct.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Rejected guesses are silent no-ops; callers get accepted=false and the
//     session is left untouched.
//   - The random source is injected so tests can seed it.
package game

import (
	"github.com/google/uuid"
)

// NewSession starts a round: the secret is drawn uniformly from
// [1, d.Max()], attempts are zero and no guesses have been made.
// An invalid difficulty falls back to DefaultDifficulty.
func NewSession(d Difficulty, rng Rand) *Session {
	if !d.Valid() {
		d = DefaultDifficulty
	}
	return &Session{
		ID:          uuid.NewString(),
		Difficulty:  d,
		Secret:      d.Min() + rng.IntN(d.Max()-d.Min()+1),
		MaxAttempts: MaxAttempts,
		Guesses:     []GuessRecord{},
		Outcome:     OutcomePlaying,
	}
}

// SubmitGuess applies a guess and reports whether it was accepted.
//
// Rejections (no state change):
//   - The round is already won or lost.
//   - v lies outside [1, Difficulty.Max()].
//
// State transitions on acceptance:
//   - Correct → OutcomeWon.
//   - Wrong and attempts reached MaxAttempts → OutcomeLost.
//   - Otherwise the round keeps playing.
func (s *Session) SubmitGuess(v int) (GuessRecord, bool) {
	if s.Outcome != OutcomePlaying || !s.InRange(v) {
		return GuessRecord{}, false
	}

	s.Attempts++
	rec := GuessRecord{Value: v, Result: Classify(v, s.Secret)}
	s.Guesses = append(s.Guesses, rec)

	switch {
	case rec.Result == ResultCorrect:
		s.Outcome = OutcomeWon
	case s.Attempts >= s.MaxAttempts:
		s.Outcome = OutcomeLost
	}
	return rec, true
}

// Classify compares a guess against the secret.
func Classify(v, secret int) Result {
	switch {
	case v == secret:
		return ResultCorrect
	case v > secret:
		return ResultHigh
	default:
		return ResultLow
	}
}

// InRange reports whether v is a legal guess for this session's difficulty.
func (s *Session) InRange(v int) bool {
	return v >= s.Difficulty.Min() && v <= s.Difficulty.Max()
}

// Remaining is the guess budget still available.
func (s *Session) Remaining() int { return s.MaxAttempts - s.Attempts }

// Over reports whether the round has been decided.
func (s *Session) Over() bool { return s.Outcome != OutcomePlaying }

// LastGuess returns the most recent accepted guess, if any.
func (s *Session) LastGuess() (GuessRecord, bool) {
	if len(s.Guesses) == 0 {
		return GuessRecord{}, false
	}
	return s.Guesses[len(s.Guesses)-1], true
}

// History returns a copy of the guess list, safe to hand to renderers.
func (s *Session) History() []GuessRecord {
	out := make([]GuessRecord, len(s.Guesses))
	copy(out, s.Guesses)
	return out
}
