// Package session implements the per-connection actor: it owns one
// WebSocket, decodes inbound wire frames, routes them to the global
// Initialize/Connect flow or to the bound Game via Ask, and forwards
// the Game's events back over the socket.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jacobtread/quizler/internal/actor"
	"github.com/jacobtread/quizler/internal/game"
	"github.com/jacobtread/quizler/internal/quiz"
	"github.com/jacobtread/quizler/internal/registry"
	"github.com/jacobtread/quizler/internal/wire"
	"github.com/rs/zerolog"
)

const askTimeout = 2 * time.Second

// Spawner constructs a Game actor for a freshly taken pending game and
// returns its token and PID; supplied by the httpapi layer so Session
// never imports the registries directly.
type Spawner interface {
	// TakePending consumes a pending upload handle exactly once.
	TakePending(handle string) (*registry.PendingGame, bool)
	// CreateGame registers a new Game actor as host and returns its token.
	CreateGame(cfg quiz.Config, images map[string]registry.Image, hostID int64, hostSession game.SessionRef) (string, *actor.PID, error)
	// LookupGame resolves an existing token to its Game actor.
	LookupGame(token string) (*actor.PID, bool)
}

// Actor is the per-connection actor. It implements game.SessionRef so
// the bound Game can deliver events straight to it.
type Actor struct {
	log    zerolog.Logger
	engine *actor.Engine
	self   *actor.PID

	conn    *websocket.Conn
	spawner Spawner

	id int64

	writeMu sync.Mutex

	gamePID *actor.PID
	token   string

	stopRead   chan struct{}
	readExited chan struct{}
	closeOnce  sync.Once
	done       chan struct{}
}

// Config carries what's needed to spawn a Session actor for one
// upgraded connection.
type Config struct {
	ID      int64
	Conn    *websocket.Conn
	Spawner Spawner
	Log     zerolog.Logger
	Done    chan struct{}
}

func NewProducer(cfg Config) actor.Producer {
	return func() actor.Actor {
		return &Actor{
			log:        cfg.Log.With().Int64("session_id", cfg.ID).Logger(),
			conn:       cfg.Conn,
			spawner:    cfg.Spawner,
			id:         cfg.ID,
			stopRead:   make(chan struct{}),
			readExited: make(chan struct{}),
			done:       cfg.Done,
		}
	}
}

// ID implements game.SessionRef.
func (a *Actor) ID() int64 { return a.id }

// Deliver implements game.SessionRef: writes one event frame.
func (a *Actor) Deliver(event game.Event) {
	data, err := wire.MarshalEvent(event)
	if err != nil {
		a.log.Error().Err(err).Str("event", string(event.Type)).Msg("failed to marshal event")
		return
	}
	if err := a.writeRaw(data); err != nil {
		a.log.Debug().Err(err).Msg("event delivery failed, disconnecting")
		a.notifyGameDisconnected(true)
	}
}

func (a *Actor) writeRaw(data []byte) error {
	a.writeMu.Lock()
	defer a.writeMu.Unlock()
	return a.conn.WriteMessage(websocket.TextMessage, data)
}

// inboundFrame wraps a raw frame read off the socket, forwarded to the
// actor's own mailbox so all socket I/O side-effects happen on the
// actor's single goroutine.
type inboundFrame struct {
	data []byte
}

type readError struct{ err error }

func (a *Actor) Receive(ctx actor.Context) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("panic in session Receive")
		}
	}()

	switch msg := ctx.Message().(type) {
	case actor.Started:
		a.engine = ctx.Engine()
		a.self = ctx.Self()
		go a.readLoop()

	case inboundFrame:
		a.handleFrame(msg.data)

	case readError:
		a.notifyGameDisconnected(!errors.Is(msg.err, errCleanClose))
		if a.engine != nil && a.self != nil {
			a.engine.Stop(a.self)
		}

	case actor.Stopping:
		a.log.Debug().Str("token", a.token).Msg("session stopping")
		a.signalReadLoopStop()

	case actor.Stopped:
		a.closeOnce.Do(func() {
			if a.done != nil {
				close(a.done)
			}
		})

	default:
		a.log.Warn().Str("msg_type", fmt.Sprintf("%T", msg)).Msg("unhandled message")
	}
}

var errCleanClose = errors.New("session: clean close")

// readLoop blocks on the socket and forwards every frame (or the
// terminal error) back to the actor's own mailbox, so all socket
// side effects are handled on the actor's single goroutine instead of
// racing the reader against Receive.
func (a *Actor) readLoop() {
	defer close(a.readExited)
	for {
		select {
		case <-a.stopRead:
			return
		default:
		}
		_, data, err := a.conn.ReadMessage()
		if err != nil {
			cause := err
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				cause = errCleanClose
			}
			a.engine.Send(a.self, readError{err: cause}, a.self)
			return
		}
		a.engine.Send(a.self, inboundFrame{data: data}, a.self)
	}
}

func (a *Actor) signalReadLoopStop() {
	select {
	case <-a.stopRead:
	default:
		close(a.stopRead)
	}
	_ = a.conn.Close()
	select {
	case <-a.readExited:
	case <-time.After(2 * time.Second):
		a.log.Warn().Msg("timed out waiting for read loop to exit")
	}
}

func (a *Actor) notifyGameDisconnected(abrupt bool) {
	if a.gamePID == nil || a.engine == nil {
		return
	}
	a.engine.Send(a.gamePID, game.SessionDisconnected{SessionID: a.id, Abrupt: abrupt}, a.self)
}

func (a *Actor) handleFrame(data []byte) {
	frame, err := wire.DecodeInbound(data)
	if err != nil {
		// A malformed frame is dropped; a MalformedMessage error is
		// only sent back if a rid can still be recovered from it.
		if rid, ok := wire.RecoverRid(data); ok {
			a.writeErrorMaybe(&rid, game.ErrMalformedMessage)
		}
		return
	}

	if a.gamePID == nil {
		a.handleUnbound(frame)
		return
	}
	a.handleBound(frame)
}

func (a *Actor) handleUnbound(frame *wire.InboundFrame) {
	switch frame.Ty {
	case wire.ReqInitialize:
		a.handleInitialize(frame)
	case wire.ReqConnect:
		a.handleConnect(frame)
	default:
		a.writeErrorMaybe(frame.Rid, game.ErrUnexpectedMessage)
	}
}

func (a *Actor) handleInitialize(frame *wire.InboundFrame) {
	pending, found := a.spawner.TakePending(frame.UUID)
	if !found {
		a.writeErrorMaybe(frame.Rid, game.ErrInvalidToken)
		return
	}
	token, pid, err := a.spawner.CreateGame(pending.Config, pending.Images, a.id, a)
	if err != nil {
		a.writeErrorMaybe(frame.Rid, game.ErrUnexpected)
		return
	}
	a.gamePID = pid
	a.token = token

	cfg := pending.Config
	a.writeResponse(wire.OutboundResponse{Ty: wire.RespJoined, Rid: frame.Rid, ID: a.id, Token: token, Config: &cfg})
}

func (a *Actor) handleConnect(frame *wire.InboundFrame) {
	pid, found := a.spawner.LookupGame(frame.Token)
	if !found {
		a.writeErrorMaybe(frame.Rid, game.ErrInvalidToken)
		return
	}
	a.gamePID = pid
	a.token = frame.Token
	a.writeResponse(wire.OutboundResponse{Ty: wire.RespOk, Rid: frame.Rid})
}

func (a *Actor) handleBound(frame *wire.InboundFrame) {
	var (
		reply interface{}
		err   error
	)
	switch frame.Ty {
	case wire.ReqJoin:
		reply, err = a.engine.Ask(a.gamePID, game.JoinRequest{SessionID: a.id, Session: a, Name: frame.Name}, askTimeout)
	case wire.ReqReady:
		reply, err = a.engine.Ask(a.gamePID, game.ReadyRequest{SessionID: a.id}, askTimeout)
	case wire.ReqHostAction:
		reply, err = a.engine.Ask(a.gamePID, game.HostActionRequest{SessionID: a.id, Action: frame.Action}, askTimeout)
	case wire.ReqAnswer:
		answer, decodeErr := frame.DecodeAnswer()
		if decodeErr != nil {
			a.writeErrorMaybe(frame.Rid, game.ErrInvalidAnswer)
			return
		}
		reply, err = a.engine.Ask(a.gamePID, game.AnswerRequest{SessionID: a.id, Answer: answer}, askTimeout)
	case wire.ReqKick:
		reply, err = a.engine.Ask(a.gamePID, game.KickRequest{SessionID: a.id, Target: frame.ID}, askTimeout)
	default:
		a.writeErrorMaybe(frame.Rid, game.ErrUnexpectedMessage)
		return
	}

	if err != nil {
		a.log.Debug().Err(err).Msg("ask to game failed")
		a.writeErrorMaybe(frame.Rid, game.ErrUnexpected)
		return
	}
	a.writeResponse(wire.FromReply(frame.Rid, reply.(game.Reply)))
}

func (a *Actor) writeErrorMaybe(rid *int64, kind game.ErrorKind) {
	a.writeResponse(wire.ErrorResponse(rid, kind))
}

func (a *Actor) writeResponse(resp wire.OutboundResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to marshal response")
		return
	}
	if err := a.writeRaw(data); err != nil {
		a.log.Debug().Err(err).Msg("response write failed, disconnecting")
		a.notifyGameDisconnected(true)
	}
}
