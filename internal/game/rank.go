package game

// Rank is the cosmetic title awarded on a win.
type Rank string

const (
	RankLegendary Rank = "legendary"
	RankMaster    Rank = "master"
	RankSurvivor  Rank = "survivor"
	RankClutch    Rank = "clutch"
)

// RankDetails is the display text for a rank.
type RankDetails struct {
	Rank     Rank   `json:"rank"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Message  string `json:"message"`
}

var rankText = map[Rank]RankDetails{
	RankClutch: {
		Rank:     RankClutch,
		Title:    "CLUTCH MASTER!",
		Subtitle: "YOU ACTUALLY DID IT!",
		Message:  "Against all odds, you pulled through!",
	},
	RankSurvivor: {
		Rank:     RankSurvivor,
		Title:    "SURVIVOR!",
		Subtitle: "Not bad… you survived.",
		Message:  "You kept your cool under pressure!",
	},
	RankLegendary: {
		Rank:     RankLegendary,
		Title:    "LEGENDARY!",
		Subtitle: "IMPOSSIBLE! First try?!",
		Message:  "Are you cheating or just a genius?",
	},
	RankMaster: {
		Rank:     RankMaster,
		Title:    "NUMBER MASTER!",
		Subtitle: "You crushed it!",
		Message:  "Speed and precision combined!",
	},
}

// RankFor classifies a win by how much of the budget was left.
//
// Order matters: the clutch (1..3 left) and survivor (4..7 left) bands are
// checked first, then a first-guess win is legendary. Everything else is
// master, including a win on the very last attempt with nothing left.
func RankFor(attempts, maxAttempts int) Rank {
	remaining := maxAttempts - attempts
	switch {
	case remaining >= 1 && remaining <= 3:
		return RankClutch
	case remaining >= 4 && remaining <= 7:
		return RankSurvivor
	case attempts == 1:
		return RankLegendary
	default:
		return RankMaster
	}
}

// Details returns the display text for r.
func (r Rank) Details() RankDetails { return rankText[r] }
