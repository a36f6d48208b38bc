package sound

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is an in-memory Output that remembers every event.
type recorder struct {
	mu     sync.Mutex
	events []Event
	closed int
	fail   error
}

func (r *recorder) Play(ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

func (r *recorder) cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cue, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Cue)
	}
	return out
}

func (r *recorder) count(c Cue) int {
	n := 0
	for _, got := range r.cues() {
		if got == c {
			n++
		}
	}
	return n
}

func newTestEngine(t *testing.T, muted bool) (*Engine, *recorder, *int) {
	t.Helper()
	rec := &recorder{}
	opened := 0
	e := NewEngine(func() (Output, error) {
		opened++
		return rec, nil
	}, Options{Muted: muted, SirenInterval: 5 * time.Millisecond})
	t.Cleanup(func() { _ = e.Close() })
	return e, rec, &opened
}

func TestEngine_OpensOutputLazilyOnce(t *testing.T) {
	e, rec, opened := newTestEngine(t, false)
	assert.Equal(t, 0, *opened)

	e.Play(CueSoftTone)
	e.Play(CueDoubleBeep)
	e.Play(CueAlarm)

	assert.Equal(t, 1, *opened)
	assert.Equal(t, []Cue{CueSoftTone, CueDoubleBeep, CueAlarm}, rec.cues())
}

func TestEngine_MutedProducesNothing(t *testing.T) {
	e, rec, opened := newTestEngine(t, true)

	for _, c := range []Cue{CueSoftTone, CueSiren, CueVictory, CueDefeat} {
		e.Play(c)
	}
	assert.Equal(t, 0, *opened)
	assert.Empty(t, rec.cues())
	assert.False(t, e.SirenActive())
}

func TestEngine_SirenLoopsUntilVictory(t *testing.T) {
	e, rec, _ := newTestEngine(t, false)

	e.Play(CueSiren)
	require.True(t, e.SirenActive())
	require.Eventually(t, func() bool { return rec.count(CueSiren) >= 3 }, time.Second, time.Millisecond)

	e.Play(CueVictory)
	assert.False(t, e.SirenActive())

	sweeps := rec.count(CueSiren)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, sweeps, rec.count(CueSiren), "siren kept playing after victory")
	assert.Equal(t, 1, rec.count(CueVictory))
}

func TestEngine_DefeatStopsSiren(t *testing.T) {
	e, rec, _ := newTestEngine(t, false)
	e.Play(CueSiren)
	e.Play(CueDefeat)

	assert.False(t, e.SirenActive())
	assert.Equal(t, 1, rec.count(CueDefeat))
}

func TestEngine_SecondSirenIgnored(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	e.Play(CueSiren)
	first := e.siren
	e.Play(CueSiren)
	assert.Same(t, first, e.siren)
}

func TestEngine_MuteToggleCancelsSiren(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	e.Play(CueSiren)
	require.True(t, e.SirenActive())

	assert.True(t, e.ToggleMute())
	assert.False(t, e.SirenActive())

	// unmuting does not restart the loop
	assert.False(t, e.ToggleMute())
	assert.False(t, e.SirenActive())
}

func TestEngine_SetMutedCancelsSiren(t *testing.T) {
	e, _, _ := newTestEngine(t, false)
	e.Play(CueSiren)
	e.SetMuted(false)
	assert.False(t, e.SirenActive())
	assert.False(t, e.Muted())
}

func TestEngine_VictoryWhileMutedStillCancelsSiren(t *testing.T) {
	e, rec, _ := newTestEngine(t, false)
	e.Play(CueSiren)

	// mute directly without going through SetMuted to leave the siren running
	e.mu.Lock()
	e.muted = true
	e.mu.Unlock()
	require.True(t, e.SirenActive())

	e.Play(CueVictory)
	assert.False(t, e.SirenActive())
	assert.Equal(t, 0, rec.count(CueVictory))
}

func TestEngine_CloseReleasesEverything(t *testing.T) {
	e, rec, _ := newTestEngine(t, false)
	e.Play(CueSiren)

	require.NoError(t, e.Close())
	assert.False(t, e.SirenActive())
	assert.Equal(t, 1, rec.closed)

	require.NoError(t, e.Close())
	assert.Equal(t, 1, rec.closed, "output closed twice")

	before := len(rec.cues())
	e.Play(CueSoftTone)
	assert.Len(t, rec.cues(), before)
}

func TestEngine_CloseWithoutOutput(t *testing.T) {
	e, rec, opened := newTestEngine(t, false)
	require.NoError(t, e.Close())
	assert.Equal(t, 0, *opened)
	assert.Equal(t, 0, rec.closed)
}

func TestEngine_OutputFailuresAreSwallowed(t *testing.T) {
	e := NewEngine(func() (Output, error) {
		return nil, errors.New("no audio device")
	}, Options{})
	defer e.Close()

	assert.NotPanics(t, func() {
		e.Play(CueSoftTone)
		e.Play(CueSiren)
	})
	assert.False(t, e.SirenActive())

	rec := &recorder{fail: errors.New("device lost")}
	e2 := NewEngine(func() (Output, error) { return rec, nil }, Options{})
	defer e2.Close()
	assert.NotPanics(t, func() { e2.Play(CueAlarm) })
}

func TestSiren_StopIsIdempotent(t *testing.T) {
	rec := &recorder{}
	s := startSiren(rec, time.Millisecond, NewEngine(nil, Options{}).log)
	s.Stop()
	s.Stop()
	assert.GreaterOrEqual(t, rec.count(CueSiren), 1)
}

func TestTones(t *testing.T) {
	for _, c := range []Cue{CueSoftTone, CueDoubleBeep, CueAlarm, CueSiren, CueVictory, CueDefeat} {
		assert.NotEmpty(t, Tones(c), c)
	}
	assert.Nil(t, Tones(Cue("kazoo")))

	v := Tones(CueVictory)
	v[0].Freq = 1
	assert.Equal(t, 523.0, Tones(CueVictory)[0].Freq, "Tones must return a copy")
	assert.Len(t, Tones(CueDoubleBeep), 2)
	assert.Len(t, Tones(CueAlarm), 4)
}
