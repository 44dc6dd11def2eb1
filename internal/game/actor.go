// Package game implements the per-game actor: the state machine,
// player roster, timers, and scoring that drive a single quiz match.
// One actor owns all game state, and phase transitions are driven
// synchronously by host actions or asynchronously by a self-addressed
// timer message, so nothing here needs a mutex.
package game

import (
	"fmt"

	"github.com/jacobtread/quizler/internal/actor"
	"github.com/jacobtread/quizler/internal/namefilter"
	"github.com/jacobtread/quizler/internal/quiz"
	"github.com/jacobtread/quizler/internal/registry"
	"github.com/jacobtread/quizler/internal/timer"
	"github.com/rs/zerolog"
)

// timerElapsed is a self-addressed message an Actor delivers when its
// armed Timer completes (naturally or via Skip). generation discards
// stale completions from a timer that a synchronous transition has
// already superseded.
type timerElapsed struct {
	generation int
}

// Actor is the per-game actor. Every field is touched only from
// Receive, so none of it needs a mutex.
type Actor struct {
	log    zerolog.Logger
	engine *actor.Engine
	self   *actor.PID
	filter *namefilter.Filter

	token    string
	cfg      quiz.Config
	images   map[string]registry.Image
	timings  Timings
	onRemove func(token string)

	hostID      int64
	hostSession SessionRef

	players map[int64]*Player
	order   []int64

	phase    Phase
	cursor   int
	tmr      *timer.Timer
	timerGen int
}

// Config bundles everything NewActor needs beyond the quiz itself.
type Config struct {
	Token       string
	Quiz        quiz.Config
	Images      map[string]registry.Image
	HostID      int64
	HostSession SessionRef
	Timings     Timings
	Clock       timer.Clock
	Filter      *namefilter.Filter
	OnRemove    func(token string)
	Log         zerolog.Logger
}

// NewProducer returns an actor.Producer that builds a Game Actor.
func NewProducer(cfg Config) actor.Producer {
	return func() actor.Actor {
		clock := cfg.Clock
		if clock == nil {
			clock = timer.Real
		}
		return &Actor{
			log:         cfg.Log.With().Str("component", "game").Str("token", cfg.Token).Logger(),
			filter:      cfg.Filter,
			token:       cfg.Token,
			cfg:         cfg.Quiz,
			images:      cfg.Images,
			timings:     cfg.Timings,
			onRemove:    cfg.OnRemove,
			hostID:      cfg.HostID,
			hostSession: cfg.HostSession,
			players:     make(map[int64]*Player),
			phase:       PhaseLobby,
			tmr:         timer.New(clock),
		}
	}
}

func (a *Actor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case actor.Started:
		a.engine = ctx.Engine()
		a.self = ctx.Self()
		a.log.Info().Msg("game started")

	case actor.Stopping:
		a.cancelTimer()
		if a.onRemove != nil {
			a.onRemove(a.token)
		}

	case actor.Stopped:

	case JoinRequest:
		ctx.Reply(a.handleJoin(msg))

	case ReadyRequest:
		ctx.Reply(a.handleReady(msg))

	case AnswerRequest:
		ctx.Reply(a.handleAnswer(msg))

	case HostActionRequest:
		ctx.Reply(a.handleHostAction(msg))

	case KickRequest:
		ctx.Reply(a.handleKick(msg, ReasonHostAction))

	case SessionDisconnected:
		a.handleDisconnected(msg)

	case ImageRequest:
		ctx.Reply(a.handleImageRequest(msg))

	case timerElapsed:
		a.handleTimerElapsed(msg)

	default:
		a.log.Warn().Str("msg_type", fmt.Sprintf("%T", msg)).Msg("unhandled message")
	}
}
