// internal/httpserver/player.go
//
// Player identity. Every browser gets a stable player ID carried in the
// mn_player cookie as an HS256 JWT (sub = player UUID). A missing, expired or
// tampered token is replaced with a fresh identity.

package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	playerCookieName = "mn_player"
	playerCookieTTL  = 180 * 24 * time.Hour
)

// ctxPlayerKey is the context key type for the player ID.
type ctxPlayerKey struct{}

// playerID returns the ID placed in the context by withPlayer.
func playerID(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// withPlayer resolves the player cookie (issuing one when needed) and stores
// the player ID in the request context.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.parsePlayerCookie(r)
		if id == "" {
			id = uuid.NewString()
			tok, err := s.signPlayer(id, time.Now())
			if err != nil {
				s.log.Error().Err(err).Msg("sign player token")
				writeError(w, http.StatusInternalServerError, "sign_failed")
				return
			}
			s.setPlayerCookie(w, tok)
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// signPlayer creates the HS256 token for id.
func (s *Server) signPlayer(id string, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(playerCookieTTL)),
	})
	return t.SignedString([]byte(s.opts.PlayerSecret))
}

// parsePlayerCookie returns the verified player ID, or "" when the cookie is
// absent or invalid.
func (s *Server) parsePlayerCookie(r *http.Request) string {
	c, err := r.Cookie(playerCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.PlayerSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return ""
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return ""
	}
	return claims.Subject
}

// setPlayerCookie writes the identity cookie with the configured security attributes.
func (s *Server) setPlayerCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(playerCookieTTL),
	})
}
