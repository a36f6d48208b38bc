// internal/sound/engine.go
//
// Engine turns cues into events on a single audio output.
// Responsibilities:
//   - Open the output lazily on the first audible cue and reuse it.
//   - Honour the mute flag before producing anything.
//   - Own the looping siren handle and release it on every terminal cue,
//     mute change and Close.
//
// Output errors are logged and swallowed; gameplay never waits on audio.

package sound

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrClosed is returned by outputs used after Close.
var ErrClosed = errors.New("sound: output closed")

// Output is an audio-output context. Implementations must be safe for
// concurrent use: the siren goroutine plays on it alongside the engine.
type Output interface {
	Play(ev Event) error
	Close() error
}

// OutputFactory opens the output. Called at most once per Engine.
type OutputFactory func() (Output, error)

// Options configures an Engine.
type Options struct {
	Muted         bool
	SirenInterval time.Duration   // defaults to DefaultSirenInterval
	Logger        *zerolog.Logger // defaults to a no-op logger
}

// Engine plays cues for one player.
type Engine struct {
	mu       sync.Mutex
	open     OutputFactory
	out      Output
	muted    bool
	closed   bool
	siren    *Siren
	interval time.Duration
	log      zerolog.Logger
}

// NewEngine constructs an Engine. No output is opened until a cue plays.
func NewEngine(open OutputFactory, opts Options) *Engine {
	e := &Engine{
		open:     open,
		muted:    opts.Muted,
		interval: opts.SirenInterval,
		log:      zerolog.Nop(),
	}
	if e.interval <= 0 {
		e.interval = DefaultSirenInterval
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	return e
}

// Play produces cue c.
//
//   - Victory and defeat cancel a running siren first, even when muted.
//   - Nothing is produced while muted or after Close.
//   - Siren starts the loop; a second siren while one runs is ignored.
func (e *Engine) Play(c Cue) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || c == CueNone {
		return
	}
	if c == CueVictory || c == CueDefeat {
		e.stopSirenLocked()
	}
	if e.muted {
		return
	}

	out, err := e.outputLocked()
	if err != nil {
		e.log.Debug().Err(err).Str("cue", string(c)).Msg("open audio output")
		return
	}
	if c == CueSiren {
		if e.siren == nil {
			e.siren = startSiren(out, e.interval, e.log)
		}
		return
	}
	if err := out.Play(NewEvent(c)); err != nil {
		e.log.Debug().Err(err).Str("cue", string(c)).Msg("play cue")
	}
}

// StopSiren cancels the looping siren if one is running.
func (e *Engine) StopSiren() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopSirenLocked()
}

// SirenActive reports whether the siren loop is running.
func (e *Engine) SirenActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.siren != nil
}

// Muted reports the current mute flag.
func (e *Engine) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// SetMuted sets the mute flag. Any running siren is cancelled either way.
func (e *Engine) SetMuted(m bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = m
	e.stopSirenLocked()
}

// ToggleMute flips the mute flag, cancels the siren and returns the new flag.
func (e *Engine) ToggleMute() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = !e.muted
	e.stopSirenLocked()
	return e.muted
}

// Close stops the siren and closes the output. Further cues are dropped.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.stopSirenLocked()
	if e.out == nil {
		return nil
	}
	err := e.out.Close()
	e.out = nil
	return err
}

func (e *Engine) outputLocked() (Output, error) {
	if e.out != nil {
		return e.out, nil
	}
	out, err := e.open()
	if err != nil {
		return nil, err
	}
	e.out = out
	return out, nil
}

func (e *Engine) stopSirenLocked() {
	if e.siren == nil {
		return
	}
	e.siren.Stop()
	e.siren = nil
}
