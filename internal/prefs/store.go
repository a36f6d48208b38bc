// Package prefs persists the per-player mute flag, the only state that
// survives a restart.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Store reads and writes player_prefs rows.
type Store struct{ db *sql.DB }

// NewStore wraps an open database that has the player_prefs migration applied.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Muted returns the stored flag for playerID. Unknown players are unmuted.
func (s *Store) Muted(ctx context.Context, playerID string) (bool, error) {
	var muted bool
	err := s.db.QueryRowContext(ctx,
		`SELECT muted FROM player_prefs WHERE player_id=?`, playerID,
	).Scan(&muted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return muted, err
}

// SetMuted upserts the flag for playerID.
func (s *Store) SetMuted(ctx context.Context, playerID string, muted bool) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO player_prefs (player_id, muted, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET muted=excluded.muted, updated_at=excluded.updated_at`,
		playerID, muted, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
