package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankFor(t *testing.T) {
	cases := []struct {
		attempts int
		want     Rank
	}{
		{1, RankLegendary},
		{2, RankMaster},
		{3, RankSurvivor},
		{4, RankSurvivor},
		{6, RankSurvivor},
		{7, RankClutch},
		{9, RankClutch},
		{10, RankMaster},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RankFor(tc.attempts, MaxAttempts), "attempts=%d", tc.attempts)
	}
}

func TestRankFor_LastAttemptWinIsMaster(t *testing.T) {
	// nothing left is outside both the clutch and survivor bands
	assert.Equal(t, RankMaster, RankFor(MaxAttempts, MaxAttempts))
	assert.Equal(t, RankClutch, RankFor(MaxAttempts-1, MaxAttempts))
}

func TestRankFor_LegendaryBeatsMaster(t *testing.T) {
	// remaining 9 would otherwise fall into the master band
	assert.Equal(t, RankLegendary, RankFor(1, 10))
	assert.Equal(t, RankMaster, RankFor(2, 10))
}

func TestRankDetails(t *testing.T) {
	for _, r := range []Rank{RankLegendary, RankMaster, RankSurvivor, RankClutch} {
		d := r.Details()
		assert.Equal(t, r, d.Rank)
		assert.NotEmpty(t, d.Title)
		assert.NotEmpty(t, d.Subtitle)
		assert.NotEmpty(t, d.Message)
	}
}
