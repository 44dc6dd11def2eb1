// Package registry holds the two process-wide shared-mutable maps:
// live games by token, and pending uploads by one-shot handle. Both
// are guarded by short-critical-section mutexes rather than actors.
package registry

import (
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/jacobtread/quizler/internal/actor"
	"github.com/rs/zerolog"
)

const (
	tokenAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenLength     = 5
	maxCollisionTry = 16
)

// SpawnGame creates the Game actor for a freshly allocated token and
// returns its PID.
type SpawnGame func(token string) *actor.PID

// GameRegistry maps short public tokens to live Game actors.
type GameRegistry struct {
	log zerolog.Logger

	mu     sync.Mutex
	tokens map[string]*actor.PID
}

// NewGameRegistry builds an empty registry.
func NewGameRegistry(log zerolog.Logger) *GameRegistry {
	return &GameRegistry{
		log:    log.With().Str("component", "game-registry").Logger(),
		tokens: make(map[string]*actor.PID),
	}
}

// Create allocates a fresh token, invokes spawn to produce the Game
// actor under it, and registers the mapping. Fails with an error after
// maxCollisionTry consecutive collisions (the caller maps this to its
// own Unexpected error kind).
func (r *GameRegistry) Create(spawn SpawnGame) (string, *actor.PID, error) {
	r.mu.Lock()
	var token string
	ok := false
	for attempt := 0; attempt < maxCollisionTry; attempt++ {
		candidate, err := randomToken()
		if err != nil {
			r.mu.Unlock()
			return "", nil, fmt.Errorf("registry: generating token: %w", err)
		}
		if _, exists := r.tokens[candidate]; !exists {
			token = candidate
			ok = true
			break
		}
	}
	if !ok {
		r.mu.Unlock()
		return "", nil, fmt.Errorf("registry: exhausted %d token allocation attempts", maxCollisionTry)
	}
	// Reserve the token before releasing the lock and spawning, so a
	// concurrent Create can never pick the same token.
	r.tokens[token] = nil
	r.mu.Unlock()

	pid := spawn(token)

	r.mu.Lock()
	r.tokens[token] = pid
	r.mu.Unlock()

	r.log.Info().Str("token", token).Msg("game registered")
	return token, pid, nil
}

// Lookup returns the PID registered for token, if any.
func (r *GameRegistry) Lookup(token string) (*actor.PID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pid, ok := r.tokens[token]
	return pid, ok && pid != nil
}

// Remove is idempotent; called by a Game actor on its own termination.
func (r *GameRegistry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	r.log.Info().Str("token", token).Msg("game removed")
}

func randomToken() (string, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, tokenLength)
	for i, b := range buf {
		out[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(out), nil
}
