package play

import (
	"github.com/robalobadob/mysterynumber/internal/feedback"
	"github.com/robalobadob/mysterynumber/internal/game"
	"github.com/robalobadob/mysterynumber/internal/sound"
)

// Feedback describes the most recent accepted guess.
type Feedback struct {
	Value   int         `json:"value"`
	Result  game.Result `json:"result"`
	Message string      `json:"message,omitempty"`
}

// Snapshot is the read-only state a renderer needs.
type Snapshot struct {
	SessionID   string             `json:"sessionId"`
	Difficulty  game.Difficulty    `json:"difficulty"`
	Min         int                `json:"min"`
	Max         int                `json:"max"`
	Attempts    int                `json:"attempts"`
	MaxAttempts int                `json:"maxAttempts"`
	Remaining   int                `json:"remaining"`
	Guesses     []game.GuessRecord `json:"guesses"`
	Outcome     game.Outcome       `json:"outcome"`

	Phase      feedback.Phase `json:"phase"`
	PhaseLabel string         `json:"phaseLabel"`
	Severity   int            `json:"severity"`
	Last       *Feedback      `json:"last,omitempty"`

	Cue         sound.Cue `json:"cue,omitempty"`
	SirenActive bool      `json:"sirenActive"`
	Muted       bool      `json:"muted"`

	CanChangeDifficulty bool              `json:"canChangeDifficulty"`
	Rank                *game.RankDetails `json:"rank,omitempty"`
	Taunt               string            `json:"taunt,omitempty"`
	Secret              *int              `json:"secret,omitempty"` // only once the round is over
}

func (c *Controller) snapshotLocked() Snapshot {
	s := c.session
	phase := feedback.PhaseFor(s.Remaining())
	snap := Snapshot{
		SessionID:   s.ID,
		Difficulty:  s.Difficulty,
		Min:         s.Difficulty.Min(),
		Max:         s.Difficulty.Max(),
		Attempts:    s.Attempts,
		MaxAttempts: s.MaxAttempts,
		Remaining:   s.Remaining(),
		Guesses:     s.History(),
		Outcome:     s.Outcome,

		Phase:      phase,
		PhaseLabel: phase.Label(),
		Severity:   phase.Severity(),

		Cue:         c.cue,
		SirenActive: c.sound.SirenActive(),
		Muted:       c.sound.Muted(),

		CanChangeDifficulty: c.canChangeDifficultyLocked(),
	}
	if c.last != nil {
		fb := *c.last
		snap.Last = &fb
	}

	switch s.Outcome {
	case game.OutcomeWon:
		rank := game.RankFor(s.Attempts, s.MaxAttempts).Details()
		snap.Rank = &rank
	case game.OutcomeLost:
		snap.Taunt = c.taunt
	}
	if s.Over() {
		secret := s.Secret
		snap.Secret = &secret
	}
	return snap
}
