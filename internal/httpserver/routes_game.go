// internal/httpserver/routes_game.go
//
// Game routes. Each handler resolves the caller's controller and returns its
// snapshot:
//   - GET  /game            → current snapshot (creates a round on first load)
//   - POST /game/new        → play again, optionally on another difficulty
//   - POST /game/difficulty → switch difficulty; 409 once a round has guesses
//   - POST /game/guess      → submit a guess; bad input is {"accepted":false}
//   - POST /game/reset      → drop the live controller and start over on defaults

package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/robalobadob/mysterynumber/internal/game"
	"github.com/robalobadob/mysterynumber/internal/play"
	"github.com/robalobadob/mysterynumber/internal/store"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleSnapshot)
		r.Post("/new", s.handleNewGame)
		r.Post("/difficulty", s.handleDifficulty)
		r.Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
	})
}

// difficultyReq is the payload for /game/new and /game/difficulty.
type difficultyReq struct {
	Difficulty string `json:"difficulty"`
}

// guessReq carries a number or a digit string.
type guessReq struct {
	Value json.RawMessage `json:"value"`
}

type guessRes struct {
	Accepted bool          `json:"accepted"`
	State    play.Snapshot `json:"state"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctrl, err := s.controller(r.Context(), playerID(r.Context()))
	if err != nil {
		s.controllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// handleNewGame starts a fresh round. Without a difficulty the current one is kept.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "game.new")
	defer span.End()

	var req difficultyReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ctrl, err := s.controller(ctx, playerID(ctx))
	if err != nil {
		s.controllerError(w, err)
		return
	}

	var snap play.Snapshot
	if strings.TrimSpace(req.Difficulty) == "" {
		snap = ctrl.PlayAgain()
	} else {
		d, err := game.ParseDifficulty(req.Difficulty)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			writeError(w, http.StatusBadRequest, "unknown_difficulty")
			return
		}
		snap = ctrl.StartSession(d)
	}
	span.SetAttributes(
		attribute.String("game.session", snap.SessionID),
		attribute.String("game.difficulty", string(snap.Difficulty)),
	)
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "game.difficulty")
	defer span.End()

	var req difficultyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	d, err := game.ParseDifficulty(req.Difficulty)
	if err != nil || strings.TrimSpace(req.Difficulty) == "" {
		writeError(w, http.StatusBadRequest, "unknown_difficulty")
		return
	}
	ctrl, err := s.controller(ctx, playerID(ctx))
	if err != nil {
		s.controllerError(w, err)
		return
	}

	snap, err := ctrl.ChangeDifficulty(d)
	span.SetAttributes(attribute.String("game.difficulty", string(d)))
	switch {
	case errors.Is(err, play.ErrRoundInProgress):
		span.SetStatus(codes.Error, err.Error())
		writeError(w, http.StatusConflict, "round_in_progress")
	case errors.Is(err, game.ErrUnknownDifficulty):
		writeError(w, http.StatusBadRequest, "unknown_difficulty")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "difficulty_failed")
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}

// handleGuess rejects anything that is not an integer here. The range check
// happens inside SubmitGuess, under the same lock that applies the guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "game.guess")
	defer span.End()

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ctrl, err := s.controller(ctx, playerID(ctx))
	if err != nil {
		s.controllerError(w, err)
		return
	}

	var (
		snap     play.Snapshot
		accepted bool
	)
	if v, ok := parseGuess(req.Value); ok {
		snap, accepted = ctrl.SubmitGuess(v)
	} else {
		snap = ctrl.Snapshot()
	}

	span.SetAttributes(
		attribute.Bool("game.accepted", accepted),
		attribute.Int("game.attempts", snap.Attempts),
		attribute.String("game.outcome", string(snap.Outcome)),
		attribute.String("game.phase", string(snap.Phase)),
	)
	writeJSON(w, http.StatusOK, guessRes{Accepted: accepted, State: snap})
}

// handleReset closes the player's controller, which stops its siren and ends
// any open event stream, then builds a new one. Difficulty goes back to the
// default; the persisted mute flag is reloaded.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "game.reset")
	defer span.End()

	id := playerID(ctx)
	if err := s.opts.Store.Delete(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		s.log.Warn().Err(err).Str("player", id).Msg("close controller on reset")
	}
	ctrl, err := s.controller(ctx, id)
	if err != nil {
		s.controllerError(w, err)
		return
	}
	snap := ctrl.Snapshot()
	span.SetAttributes(attribute.String("game.session", snap.SessionID))
	writeJSON(w, http.StatusOK, snap)
}

// parseGuess accepts a JSON integer or a string of decimal digits
// (surrounding spaces allowed). Anything else is not a guess.
func parseGuess(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	if raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false
		}
		str = strings.TrimSpace(str)
		if str == "" {
			return 0, false
		}
		for _, c := range str {
			if c < '0' || c > '9' {
				return 0, false
			}
		}
		v, err := strconv.Atoi(str)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// decodeOptional decodes a JSON body into v; an empty body leaves v untouched.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) controllerError(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("resolve controller")
	writeError(w, http.StatusServiceUnavailable, "unavailable")
}
