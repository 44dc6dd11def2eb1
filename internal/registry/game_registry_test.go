package registry

import (
	"sync"
	"testing"

	"github.com/jacobtread/quizler/internal/actor"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnStub(token string) *actor.PID {
	return &actor.PID{ID: "game-" + token}
}

func TestCreateRegistersLookupableToken(t *testing.T) {
	r := NewGameRegistry(zerolog.Nop())

	token, pid, err := r.Create(spawnStub)
	require.NoError(t, err)
	require.Len(t, token, tokenLength)

	got, ok := r.Lookup(token)
	require.True(t, ok)
	assert.Equal(t, pid, got)
}

func TestRemoveIsIdempotent(t *testing.T) {
	r := NewGameRegistry(zerolog.Nop())
	token, _, err := r.Create(spawnStub)
	require.NoError(t, err)

	r.Remove(token)
	r.Remove(token)
	_, ok := r.Lookup(token)
	assert.False(t, ok)
}

func TestConcurrentCreateYieldsDistinctTokens(t *testing.T) {
	r := NewGameRegistry(zerolog.Nop())

	const n = 50
	tokens := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, _, err := r.Create(spawnStub)
			require.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, tok := range tokens {
		assert.False(t, seen[tok], "duplicate token %s", tok)
		seen[tok] = true
	}
}
