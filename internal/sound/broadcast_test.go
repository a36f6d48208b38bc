package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_FanOut(t *testing.T) {
	b := NewBroadcaster(4)
	a, cancelA := b.Subscribe()
	c, cancelC := b.Subscribe()
	defer cancelA()
	defer cancelC()

	require.NoError(t, b.Play(NewEvent(CueAlarm)))
	assert.Equal(t, CueAlarm, (<-a).Cue)
	assert.Equal(t, CueAlarm, (<-c).Cue)
}

func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroadcaster(1)
	ch, cancel := b.Subscribe()
	defer cancel()

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Play(NewEvent(CueSoftTone)))
	}
	assert.Len(t, ch, 1)
}

func TestBroadcaster_Cancel(t *testing.T) {
	b := NewBroadcaster(1)
	ch, cancel := b.Subscribe()
	assert.Equal(t, 1, b.Subscribers())

	cancel()
	cancel()
	assert.Equal(t, 0, b.Subscribers())
	_, open := <-ch
	assert.False(t, open)
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster(1)
	ch, cancel := b.Subscribe()

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	_, open := <-ch
	assert.False(t, open)
	cancel()

	assert.ErrorIs(t, b.Play(NewEvent(CueSoftTone)), ErrClosed)

	late, _ := b.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestBroadcaster_AsEngineOutput(t *testing.T) {
	b := NewBroadcaster(8)
	ch, cancel := b.Subscribe()
	defer cancel()

	e := NewEngine(func() (Output, error) { return b, nil }, Options{})
	e.Play(CueDoubleBeep)
	ev := <-ch
	assert.Equal(t, CueDoubleBeep, ev.Cue)
	assert.Len(t, ev.Tones, 2)

	require.NoError(t, e.Close())
	_, open := <-ch
	assert.False(t, open, "closing the engine closes its output")
}
