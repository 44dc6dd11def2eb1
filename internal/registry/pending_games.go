package registry

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jacobtread/quizler/internal/quiz"
	"github.com/rs/zerolog"
)

// DefaultPendingGameTTL is how long an un-consumed upload survives
// before the janitor releases it.
const DefaultPendingGameTTL = 10 * time.Minute

// Image is one uploaded image blob plus the content-type recorded at
// upload time.
type Image struct {
	Bytes       []byte
	ContentType string
}

// PendingGame is a validated config plus its images, waiting for the
// first Initialize to consume it.
type PendingGame struct {
	Config    quiz.Config
	Images    map[string]Image // keyed by image UUID
	createdAt time.Time
}

// PendingGames is the single-consumer handle→upload map.
type PendingGames struct {
	log zerolog.Logger
	ttl time.Duration

	mu      sync.Mutex
	entries map[uuid.UUID]*PendingGame

	stop chan struct{}
}

// NewPendingGames starts a registry with a background janitor that
// sweeps entries older than ttl.
func NewPendingGames(log zerolog.Logger, ttl time.Duration) *PendingGames {
	if ttl <= 0 {
		ttl = DefaultPendingGameTTL
	}
	p := &PendingGames{
		log:     log.With().Str("component", "pending-games").Logger(),
		ttl:     ttl,
		entries: make(map[uuid.UUID]*PendingGame),
		stop:    make(chan struct{}),
	}
	go p.janitor()
	return p
}

// Put stores a validated upload and returns its one-shot handle.
func (p *PendingGames) Put(cfg quiz.Config, images map[string]Image) uuid.UUID {
	handle := uuid.New()
	p.mu.Lock()
	p.entries[handle] = &PendingGame{Config: cfg, Images: images, createdAt: time.Now()}
	p.mu.Unlock()
	return handle
}

// Take atomically removes and returns the pending game for handle.
// The second return is false if the handle is unknown or already
// consumed, matching InvalidToken at the caller.
func (p *PendingGames) Take(handle uuid.UUID) (*PendingGame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pg, ok := p.entries[handle]
	if !ok {
		return nil, false
	}
	delete(p.entries, handle)
	return pg, true
}

// Close stops the background janitor.
func (p *PendingGames) Close() {
	close(p.stop)
}

func (p *PendingGames) janitor() {
	ticker := time.NewTicker(p.ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.sweep()
		}
	}
}

func (p *PendingGames) sweep() {
	cutoff := time.Now().Add(-p.ttl)
	p.mu.Lock()
	defer p.mu.Unlock()
	for handle, pg := range p.entries {
		if pg.createdAt.Before(cutoff) {
			delete(p.entries, handle)
			p.log.Info().Str("handle", handle.String()).Msg("pending game evicted after TTL")
		}
	}
}
