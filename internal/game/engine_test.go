package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// fixedRand always returns n-1 so the secret lands on n.
type fixedRand int

func (f fixedRand) IntN(int) int { return int(f) - 1 }

func TestNewSession_SecretWithinRange(t *testing.T) {
	rng := seeded(7)
	for _, d := range Difficulties {
		for i := 0; i < 2000; i++ {
			s := NewSession(d, rng)
			require.GreaterOrEqual(t, s.Secret, 1, d)
			require.LessOrEqual(t, s.Secret, d.Max(), d)
		}
	}
}

func TestNewSession_FreshState(t *testing.T) {
	s := NewSession(DifficultyHard, seeded(1))

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, DifficultyHard, s.Difficulty)
	assert.Equal(t, 0, s.Attempts)
	assert.Equal(t, MaxAttempts, s.MaxAttempts)
	assert.Empty(t, s.Guesses)
	assert.Equal(t, OutcomePlaying, s.Outcome)
	assert.Equal(t, MaxAttempts, s.Remaining())
}

func TestNewSession_UniqueIDs(t *testing.T) {
	a := NewSession(DifficultyEasy, seeded(1))
	b := NewSession(DifficultyEasy, seeded(1))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewSession_InvalidDifficultyFallsBack(t *testing.T) {
	s := NewSession(Difficulty("nightmare"), seeded(3))
	assert.Equal(t, DefaultDifficulty, s.Difficulty)
}

func TestSubmitGuess_CorrectWins(t *testing.T) {
	s := NewSession(DifficultyMedium, seeded(11))

	rec, ok := s.SubmitGuess(s.Secret)
	require.True(t, ok)
	assert.Equal(t, ResultCorrect, rec.Result)
	assert.Equal(t, OutcomeWon, s.Outcome)
	assert.Equal(t, 1, s.Attempts)
}

func TestSubmitGuess_Direction(t *testing.T) {
	s := NewSession(DifficultyMedium, fixedRand(42))
	require.Equal(t, 42, s.Secret)

	rec, ok := s.SubmitGuess(50)
	require.True(t, ok)
	assert.Equal(t, ResultHigh, rec.Result)

	rec, ok = s.SubmitGuess(41)
	require.True(t, ok)
	assert.Equal(t, ResultLow, rec.Result)
}

func TestClassify(t *testing.T) {
	for v := 1; v <= 100; v++ {
		got := Classify(v, 42)
		switch {
		case v == 42:
			assert.Equal(t, ResultCorrect, got)
		case v > 42:
			assert.Equal(t, ResultHigh, got, v)
		default:
			assert.Equal(t, ResultLow, got, v)
		}
	}
}

func TestSubmitGuess_OutOfRangeIsNoop(t *testing.T) {
	s := NewSession(DifficultyEasy, seeded(5))

	for _, v := range []int{0, -3, 51, 1000} {
		_, ok := s.SubmitGuess(v)
		assert.False(t, ok, v)
	}
	assert.Equal(t, 0, s.Attempts)
	assert.Empty(t, s.Guesses)
	assert.Equal(t, OutcomePlaying, s.Outcome)

	_, ok := s.SubmitGuess(50)
	assert.True(t, ok, "upper bound is inclusive")
}

func TestSubmitGuess_WinOnTenthAttempt(t *testing.T) {
	s := NewSession(DifficultyMedium, fixedRand(42))
	wrong := []int{50, 1, 99, 2, 98, 3, 97, 4, 96}
	for _, v := range wrong {
		_, ok := s.SubmitGuess(v)
		require.True(t, ok)
		require.Equal(t, OutcomePlaying, s.Outcome)
	}
	assert.Equal(t, ResultHigh, s.Guesses[0].Result)
	assert.Equal(t, ResultLow, s.Guesses[1].Result)

	rec, ok := s.SubmitGuess(42)
	require.True(t, ok)
	assert.Equal(t, OutcomeWon, s.Outcome)
	assert.Len(t, s.Guesses, 10)
	assert.Equal(t, GuessRecord{Value: 42, Result: ResultCorrect}, rec)
	assert.Equal(t, rec, s.Guesses[9])
}

func TestSubmitGuess_TenWrongLoses(t *testing.T) {
	s := NewSession(DifficultyMedium, fixedRand(42))
	for i := 1; i <= MaxAttempts; i++ {
		_, ok := s.SubmitGuess(i)
		require.True(t, ok)
		if i < MaxAttempts {
			require.Equal(t, OutcomePlaying, s.Outcome, "lost too early at attempt %d", i)
		}
	}
	assert.Equal(t, OutcomeLost, s.Outcome)
	assert.Equal(t, 0, s.Remaining())
}

func TestSubmitGuess_FinishedRoundIgnoresGuesses(t *testing.T) {
	won := NewSession(DifficultyEasy, fixedRand(10))
	won.SubmitGuess(10)

	lost := NewSession(DifficultyEasy, fixedRand(10))
	for i := 0; i < MaxAttempts; i++ {
		lost.SubmitGuess(1)
	}

	for _, s := range []*Session{won, lost} {
		before := s.History()
		attempts, outcome := s.Attempts, s.Outcome

		_, ok := s.SubmitGuess(s.Secret)
		assert.False(t, ok)
		assert.Equal(t, attempts, s.Attempts)
		assert.Equal(t, outcome, s.Outcome)
		assert.Equal(t, before, s.Guesses)
	}
}

func TestSubmitGuess_AttemptsMonotonicAndBounded(t *testing.T) {
	rng := seeded(99)
	for round := 0; round < 200; round++ {
		s := NewSession(DifficultyHard, rng)
		prev := 0
		for i := 0; i < 25; i++ {
			s.SubmitGuess(rng.IntN(520))
			require.GreaterOrEqual(t, s.Attempts, prev)
			require.LessOrEqual(t, s.Attempts, MaxAttempts)
			prev = s.Attempts
		}
	}
}

func TestSubmitGuess_SecretNeverChanges(t *testing.T) {
	s := NewSession(DifficultyHard, seeded(4))
	secret := s.Secret
	for i := 1; i <= 20; i++ {
		s.SubmitGuess(i * 20)
	}
	assert.Equal(t, secret, s.Secret)
}

func TestLastGuessAndHistory(t *testing.T) {
	s := NewSession(DifficultyEasy, fixedRand(25))
	_, ok := s.LastGuess()
	assert.False(t, ok)

	s.SubmitGuess(30)
	last, ok := s.LastGuess()
	require.True(t, ok)
	assert.Equal(t, 30, last.Value)

	h := s.History()
	h[0].Value = 1
	assert.Equal(t, 30, s.Guesses[0].Value, "History must return a copy")
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	d, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, d)

	_, err = ParseDifficulty("insane")
	assert.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestDifficultyRanges(t *testing.T) {
	assert.Equal(t, 50, DifficultyEasy.Max())
	assert.Equal(t, 100, DifficultyMedium.Max())
	assert.Equal(t, 500, DifficultyHard.Max())
	assert.Equal(t, 0, Difficulty("x").Max())
}
