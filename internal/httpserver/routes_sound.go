// internal/httpserver/routes_sound.go
//
// Sound routes.
//   - POST /sound/mute   → set or toggle the mute flag; persisted per player
//   - GET  /sound/stream → server-sent events, one "cue" event per audio cue
//
// The browser renders each cue's tones with Web Audio. Muting cancels the
// siren, so a muted player's stream goes quiet immediately.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

const streamHeartbeat = 15 * time.Second

// muteReq leaves Muted nil to mean "toggle".
type muteReq struct {
	Muted *bool `json:"muted"`
}

type muteRes struct {
	Muted bool `json:"muted"`
}

// mountSound registers the /sound routes that fit the request timeout.
func (s *Server) mountSound(r chi.Router) {
	r.Post("/sound/mute", s.handleMute)
}

func (s *Server) handleMute(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "sound.mute")
	defer span.End()

	var req muteReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	id := playerID(ctx)
	ctrl, err := s.controller(ctx, id)
	if err != nil {
		s.controllerError(w, err)
		return
	}

	var muted bool
	if req.Muted == nil {
		muted = ctrl.ToggleMute().Muted
	} else {
		muted = ctrl.SetMuted(*req.Muted).Muted
	}
	s.saveMuted(ctx, id, muted)

	span.SetAttributes(attribute.Bool("sound.muted", muted))
	writeJSON(w, http.StatusOK, muteRes{Muted: muted})
}

// handleStream relays the player's cue events until the client disconnects
// or the controller is closed.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		writeError(w, http.StatusInternalServerError, "streaming_unsupported")
		return
	}
	ctx := r.Context()
	ctrl, err := s.controller(ctx, playerID(ctx))
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		s.controllerError(w, err)
		return
	}

	events, cancel := ctrl.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.log.Warn().Err(err).Str("cue", string(ev.Cue)).Msg("encode cue event")
				continue
			}
			if _, err := fmt.Fprintf(w, "event: cue\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
