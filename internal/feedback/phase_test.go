package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/mysterynumber/internal/sound"
)

func TestPhaseFor(t *testing.T) {
	want := map[int]Phase{
		10: PhaseNormal,
		9:  PhaseNormal,
		8:  PhaseNormal,
		7:  PhaseIrritating,
		4:  PhaseIrritating,
		3:  PhaseAngry,
		2:  PhaseAngry,
		1:  PhaseCritical,
		0:  PhaseCritical,
	}
	for remaining, p := range want {
		assert.Equal(t, p, PhaseFor(remaining), "remaining=%d", remaining)
	}
}

func TestCueFor(t *testing.T) {
	cases := []struct {
		remaining int
		cue       sound.Cue
		ok        bool
	}{
		{9, sound.CueSoftTone, true},
		{8, sound.CueSoftTone, true},
		{7, sound.CueDoubleBeep, true},
		{4, sound.CueDoubleBeep, true},
		{3, sound.CueAlarm, true},
		{2, sound.CueAlarm, true},
		{1, sound.CueSiren, true},
		{0, sound.CueNone, false},
	}
	for _, tc := range cases {
		cue, ok := CueFor(tc.remaining)
		assert.Equal(t, tc.cue, cue, "remaining=%d", tc.remaining)
		assert.Equal(t, tc.ok, ok, "remaining=%d", tc.remaining)
	}
}

func TestPhaseLabelAndSeverity(t *testing.T) {
	for i, p := range Phases {
		assert.NotEmpty(t, p.Label(), p)
		assert.Equal(t, i, p.Severity(), p)
	}
	assert.Empty(t, Phase("bored").Label())
}
