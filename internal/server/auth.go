package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for missing, malformed, expired or forged tokens.
var ErrInvalidToken = errors.New("invalid session token")

const sessionHeader = "X-Session-Token"

// tokenAuth issues and checks HS256 session tokens whose subject is the
// player id.
type tokenAuth struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenAuth(secret string, ttl time.Duration) *tokenAuth {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &tokenAuth{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a session token for playerID.
func (a *tokenAuth) Issue(playerID string) (string, error) {
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   playerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	})
	return token.SignedString(a.secret)
}

// Parse returns the player id of a valid token.
func (a *tokenAuth) Parse(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", ErrInvalidToken
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// tokenFromRequest reads the session header, then a bearer token, then the
// token query parameter (browsers cannot set headers on WebSocket upgrades).
func tokenFromRequest(r *http.Request) string {
	if t := r.Header.Get(sessionHeader); t != "" {
		return t
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

type contextKey string

var playerCtxKey = contextKey("player")

// requireAuth rejects requests without a valid token for an existing player.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID, err := s.authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		ctx := context.WithValue(r.Context(), playerCtxKey, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) authenticate(r *http.Request) (string, error) {
	playerID, err := s.auth.Parse(tokenFromRequest(r))
	if err != nil {
		return "", err
	}
	// Ensure player still exists
	if err := s.db.TouchPlayer(playerID); err != nil {
		return "", ErrInvalidToken
	}
	return playerID, nil
}

// currentPlayer returns the id set by requireAuth.
func currentPlayer(r *http.Request) string {
	id, _ := r.Context().Value(playerCtxKey).(string)
	return id
}
