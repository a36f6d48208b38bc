// internal/feedback/phase.go
//
// Tiered feedback policy.
// The remaining guess budget maps to an emotion phase, and the phase picks
// the message tone, the visual severity and the audio cue tier.
//
//   remaining ≥ 8   normal      soft tone
//   4 ≤ r ≤ 7       irritating  double beep
//   2 ≤ r ≤ 3       angry       alarm
//   r ≤ 1           critical    siren (only when exactly 1 remains)

package feedback

import (
	"github.com/robalobadob/mysterynumber/internal/sound"
)

// Phase is the urgency tier derived from the remaining attempts.
type Phase string

const (
	PhaseNormal     Phase = "normal"
	PhaseIrritating Phase = "irritating"
	PhaseAngry      Phase = "angry"
	PhaseCritical   Phase = "critical"
)

// Phases lists every phase from calmest to most urgent.
var Phases = []Phase{PhaseNormal, PhaseIrritating, PhaseAngry, PhaseCritical}

// PhaseFor maps a remaining-attempts count to its phase.
func PhaseFor(remaining int) Phase {
	switch {
	case remaining >= 8:
		return PhaseNormal
	case remaining >= 4:
		return PhaseIrritating
	case remaining >= 2:
		return PhaseAngry
	default:
		return PhaseCritical
	}
}

// Label is the status banner shown beside the attempts counter.
func (p Phase) Label() string {
	switch p {
	case PhaseNormal:
		return "You're doing great!"
	case PhaseIrritating:
		return "Getting tense..."
	case PhaseAngry:
		return "DANGER ZONE!"
	case PhaseCritical:
		return "FINAL CHANCE!"
	default:
		return ""
	}
}

// Severity ranks the phase 0..3 for visual treatment.
func (p Phase) Severity() int {
	switch p {
	case PhaseIrritating:
		return 1
	case PhaseAngry:
		return 2
	case PhaseCritical:
		return 3
	default:
		return 0
	}
}

// CueFor returns the audio tier for a wrong guess that leaves remaining
// attempts. With nothing remaining the round is over and no tier cue applies.
func CueFor(remaining int) (sound.Cue, bool) {
	switch {
	case remaining >= 8:
		return sound.CueSoftTone, true
	case remaining >= 4:
		return sound.CueDoubleBeep, true
	case remaining >= 2:
		return sound.CueAlarm, true
	case remaining == 1:
		return sound.CueSiren, true
	default:
		return sound.CueNone, false
	}
}
