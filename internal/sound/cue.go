// internal/sound/cue.go
//
// Audio cue catalogue.
// A Cue names what should be heard; Tones lists the oscillator notes that
// make it up. Renderers (the browser page) turn each Tone into one
// oscillator scheduled at OffsetMs.

package sound

import "time"

// Cue identifies one audio effect.
type Cue string

const (
	CueNone       Cue = ""
	CueSoftTone   Cue = "soft_tone"
	CueDoubleBeep Cue = "double_beep"
	CueAlarm      Cue = "alarm"
	CueSiren      Cue = "siren"
	CueVictory    Cue = "victory"
	CueDefeat     Cue = "defeat"
)

// Wave is the oscillator shape.
type Wave string

const (
	WaveSine     Wave = "sine"
	WaveSquare   Wave = "square"
	WaveSawtooth Wave = "sawtooth"
)

// Tone is a single note. EndFreq, when non-zero, is the frequency the note
// glides to over its duration.
type Tone struct {
	OffsetMs   int     `json:"offsetMs"`
	DurationMs int     `json:"durationMs"`
	Freq       float64 `json:"freq"`
	EndFreq    float64 `json:"endFreq,omitempty"`
	Volume     float64 `json:"volume"`
	Wave       Wave    `json:"wave"`
}

// Event is what an Output receives: one cue and its tones.
type Event struct {
	Cue   Cue       `json:"cue"`
	Tones []Tone    `json:"tones"`
	At    time.Time `json:"at"`
}

var patterns = map[Cue][]Tone{
	CueSoftTone: {
		{OffsetMs: 0, DurationMs: 150, Freq: 440, Volume: 0.3, Wave: WaveSine},
	},
	CueDoubleBeep: {
		{OffsetMs: 0, DurationMs: 200, Freq: 600, Volume: 0.5, Wave: WaveSquare},
		{OffsetMs: 150, DurationMs: 200, Freq: 500, Volume: 0.5, Wave: WaveSquare},
	},
	CueAlarm: {
		{OffsetMs: 0, DurationMs: 100, Freq: 800, Volume: 0.7, Wave: WaveSawtooth},
		{OffsetMs: 100, DurationMs: 100, Freq: 600, Volume: 0.7, Wave: WaveSawtooth},
		{OffsetMs: 200, DurationMs: 100, Freq: 800, Volume: 0.7, Wave: WaveSawtooth},
		{OffsetMs: 300, DurationMs: 100, Freq: 600, Volume: 0.7, Wave: WaveSawtooth},
	},
	// one sweep of the loop; the Siren re-emits it every interval
	CueSiren: {
		{OffsetMs: 0, DurationMs: 500, Freq: 400, EndFreq: 800, Volume: 0.9, Wave: WaveSawtooth},
		{OffsetMs: 500, DurationMs: 500, Freq: 800, EndFreq: 400, Volume: 0.9, Wave: WaveSawtooth},
	},
	// C5 E5 G5 C6 arpeggio, then a C major chord
	CueVictory: {
		{OffsetMs: 0, DurationMs: 300, Freq: 523, Volume: 0.6, Wave: WaveSine},
		{OffsetMs: 150, DurationMs: 300, Freq: 659, Volume: 0.6, Wave: WaveSine},
		{OffsetMs: 300, DurationMs: 300, Freq: 784, Volume: 0.6, Wave: WaveSine},
		{OffsetMs: 450, DurationMs: 300, Freq: 1047, Volume: 0.6, Wave: WaveSine},
		{OffsetMs: 600, DurationMs: 800, Freq: 523, Volume: 0.4, Wave: WaveSine},
		{OffsetMs: 600, DurationMs: 800, Freq: 659, Volume: 0.4, Wave: WaveSine},
		{OffsetMs: 600, DurationMs: 800, Freq: 784, Volume: 0.4, Wave: WaveSine},
	},
	CueDefeat: {
		{OffsetMs: 0, DurationMs: 1500, Freq: 300, EndFreq: 100, Volume: 0.5, Wave: WaveSawtooth},
	},
}

// Tones returns a copy of the notes for c (nil for unknown cues).
func Tones(c Cue) []Tone {
	p, ok := patterns[c]
	if !ok {
		return nil
	}
	out := make([]Tone, len(p))
	copy(out, p)
	return out
}

// NewEvent builds the event for c stamped with the current time.
func NewEvent(c Cue) Event {
	return Event{Cue: c, Tones: Tones(c), At: time.Now()}
}
