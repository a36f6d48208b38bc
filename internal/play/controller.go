// internal/play/controller.go
//
// Controller is what the presentation layer talks to. It owns one player's
// current round, the feedback shown for the last guess, and the sound engine.
//
// Operations:
//   - StartSession:     new round on a difficulty (initial load, play again).
//   - ChangeDifficulty: new round on another difficulty; refused mid-round.
//   - SubmitGuess:      apply a guess, pick feedback and play its cue.
//   - ToggleMute:       flip mute; always cancels the siren.
//   - Snapshot:         read-only render state.
//   - Close:            teardown; releases the siren and the audio output.
//
// Every method runs under one mutex so each transition is atomic.

package play

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/mysterynumber/internal/feedback"
	"github.com/robalobadob/mysterynumber/internal/game"
	"github.com/robalobadob/mysterynumber/internal/sound"
)

// ErrRoundInProgress is returned when the difficulty is changed after the
// first guess of a round that is still being played.
var ErrRoundInProgress = errors.New("round in progress")

// Options configures a Controller.
type Options struct {
	Difficulty    game.Difficulty   // first round; DefaultDifficulty when empty
	Rand          game.Rand         // required; owned by the Controller from now on
	Catalog       *feedback.Catalog // required
	Muted         bool
	SirenInterval time.Duration
	Logger        *zerolog.Logger
}

// Controller drives one player's game.
type Controller struct {
	mu      sync.Mutex
	rng     game.Rand
	catalog *feedback.Catalog
	out     *sound.Broadcaster
	sound   *sound.Engine
	session *game.Session
	last    *Feedback
	cue     sound.Cue
	taunt   string
	log     zerolog.Logger
}

// New builds a Controller and starts its first round.
func New(opts Options) *Controller {
	c := &Controller{
		rng:     opts.Rand,
		catalog: opts.Catalog,
		out:     sound.NewBroadcaster(32),
		log:     zerolog.Nop(),
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	c.sound = sound.NewEngine(func() (sound.Output, error) { return c.out, nil }, sound.Options{
		Muted:         opts.Muted,
		SirenInterval: opts.SirenInterval,
		Logger:        &c.log,
	})

	d := opts.Difficulty
	if d == "" {
		d = game.DefaultDifficulty
	}
	c.startLocked(d)
	return c
}

// StartSession discards the current round and starts a fresh one on d.
func (c *Controller) StartSession(d game.Difficulty) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked(d)
	return c.snapshotLocked()
}

// PlayAgain starts a fresh round on the current difficulty.
func (c *Controller) PlayAgain() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked(c.session.Difficulty)
	return c.snapshotLocked()
}

// ChangeDifficulty starts a fresh round on d unless the current round has
// guesses and is still being played.
func (c *Controller) ChangeDifficulty(d game.Difficulty) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !d.Valid() {
		return c.snapshotLocked(), game.ErrUnknownDifficulty
	}
	if !c.canChangeDifficultyLocked() {
		return c.snapshotLocked(), ErrRoundInProgress
	}
	c.startLocked(d)
	return c.snapshotLocked(), nil
}

// SubmitGuess applies v to the current round. The bool reports whether the
// guess was accepted; rejected guesses change nothing and play nothing.
// v is checked against the range of the round in force when the lock is
// taken, so callers need not check it first.
func (c *Controller) SubmitGuess(v int) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.session.SubmitGuess(v)
	if !ok {
		return c.snapshotLocked(), false
	}

	fb := &Feedback{Value: rec.Value, Result: rec.Result}
	remaining := c.session.Remaining()
	if rec.Result != game.ResultCorrect {
		fb.Message = c.catalog.Message(c.rng, feedback.PhaseFor(remaining), rec.Result)
	}
	c.last = fb

	switch c.session.Outcome {
	case game.OutcomeWon:
		c.cue = sound.CueVictory
		c.log.Debug().Str("session", c.session.ID).Int("attempts", c.session.Attempts).Msg("round won")
	case game.OutcomeLost:
		c.cue = sound.CueDefeat
		c.taunt = c.catalog.Defeat(c.rng)
		c.log.Debug().Str("session", c.session.ID).Int("secret", c.session.Secret).Msg("round lost")
	default:
		c.cue, _ = feedback.CueFor(remaining)
	}
	c.sound.Play(c.cue)

	return c.snapshotLocked(), true
}

// ToggleMute flips the mute flag and returns the new state.
func (c *Controller) ToggleMute() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sound.ToggleMute()
	return c.snapshotLocked()
}

// SetMuted sets the mute flag; the siren is cancelled either way.
func (c *Controller) SetMuted(m bool) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sound.SetMuted(m)
	return c.snapshotLocked()
}

// Snapshot returns the current render state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe streams the audio cue events produced for this player.
func (c *Controller) Subscribe() (<-chan sound.Event, func()) {
	return c.out.Subscribe()
}

// Close stops the siren and closes the audio output and all subscriptions.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.sound.Close()
	if cerr := c.out.Close(); err == nil {
		err = cerr
	}
	return err
}

func (c *Controller) startLocked(d game.Difficulty) {
	c.sound.StopSiren()
	c.session = game.NewSession(d, c.rng)
	c.last = nil
	c.cue = sound.CueNone
	c.taunt = ""
	c.log.Debug().Str("session", c.session.ID).Str("difficulty", string(c.session.Difficulty)).Msg("round started")
}

func (c *Controller) canChangeDifficultyLocked() bool {
	return c.session.Attempts == 0 || c.session.Over()
}
