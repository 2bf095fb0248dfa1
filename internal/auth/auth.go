// Package auth resolves bearer tokens to seats. Each seat has one
// configured token; comparison is constant-time so a token cannot be
// guessed byte by byte.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/Hsooooo/ai-headsup-holdem/internal/game"
)

var (
	// ErrMissingToken indicates no token was presented.
	ErrMissingToken = errors.New("auth: missing token")

	// ErrInvalidToken indicates the token matches neither seat.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Resolver maps tokens to seats.
type Resolver interface {
	Resolve(token string) (game.Seat, error)
}

// StaticResolver holds the two configured seat tokens.
type StaticResolver struct {
	tokenA string
	tokenB string
}

// NewStaticResolver creates a resolver for the given seat tokens. Empty
// tokens never match.
func NewStaticResolver(tokenA, tokenB string) *StaticResolver {
	return &StaticResolver{tokenA: tokenA, tokenB: tokenB}
}

// Resolve returns the seat whose token matches.
func (r *StaticResolver) Resolve(token string) (game.Seat, error) {
	if token == "" {
		return 0, ErrMissingToken
	}
	if equal(token, r.tokenA) {
		return game.SeatA, nil
	}
	if equal(token, r.tokenB) {
		return game.SeatB, nil
	}
	return 0, ErrInvalidToken
}

func equal(got, want string) bool {
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// TokenFromRequest extracts a bearer token from the Authorization header,
// falling back to the token query parameter for WebSocket handshakes.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	return r.URL.Query().Get("token")
}
