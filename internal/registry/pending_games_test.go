package registry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jacobtread/quizler/internal/quiz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeIsSingleConsumer(t *testing.T) {
	p := NewPendingGames(zerolog.Nop(), time.Minute)
	defer p.Close()

	handle := p.Put(quiz.Config{Name: "demo"}, nil)

	pg, ok := p.Take(handle)
	require.True(t, ok)
	assert.Equal(t, "demo", pg.Config.Name)

	_, ok = p.Take(handle)
	assert.False(t, ok)
}

func TestTakeUnknownHandleFails(t *testing.T) {
	p := NewPendingGames(zerolog.Nop(), time.Minute)
	defer p.Close()

	_, ok := p.Take(uuid.New())
	assert.False(t, ok)
}

func TestJanitorEvictsExpiredEntries(t *testing.T) {
	p := NewPendingGames(zerolog.Nop(), 20*time.Millisecond)
	defer p.Close()

	handle := p.Put(quiz.Config{Name: "stale"}, nil)

	require.Eventually(t, func() bool {
		_, ok := p.Take(handle)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
