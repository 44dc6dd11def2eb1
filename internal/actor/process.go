package actor

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const defaultMailboxSize = 1024

// process is the running instance of an actor: its mailbox and the
// goroutine driving Receive calls one message at a time.
type process struct {
	engine  *Engine
	pid     *PID
	actor   Actor
	props   *Props
	log     zerolog.Logger
	mailbox chan *envelope
	stopCh  chan struct{}
	stopped atomic.Bool
}

func newProcess(engine *Engine, pid *PID, props *Props) *process {
	return &process{
		engine:  engine,
		pid:     pid,
		props:   props,
		log:     engine.log.With().Str("pid", pid.ID).Logger(),
		mailbox: make(chan *envelope, defaultMailboxSize),
		stopCh:  make(chan struct{}),
	}
}

func (p *process) send(e *envelope) {
	_, isStopping := e.message.(Stopping)
	_, isStopped := e.message.(Stopped)
	if p.stopped.Load() && !isStopping && !isStopped {
		return
	}
	select {
	case p.mailbox <- e:
	default:
		p.log.Warn().Str("msg_type", typeName(e.message)).Msg("mailbox full, dropping message")
	}
}

func (p *process) run() {
	var stoppingInvoked bool

	defer func() {
		p.stopped.Store(true)
		defer func() {
			if r := recover(); r != nil {
				p.log.Error().Interface("panic", r).Msg("panic during final cleanup")
			}
			p.engine.remove(p.pid)
		}()
		if p.actor != nil {
			p.invoke(Stopped{}, nil, "", nil)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("actor panicked")
			if p.stopped.CompareAndSwap(false, true) {
				closeOnce(p.stopCh)
				if p.actor != nil && !stoppingInvoked {
					p.invoke(Stopping{}, nil, "", nil)
					stoppingInvoked = true
				}
			}
		}
	}()

	p.actor = p.props.Produce()
	if p.actor == nil {
		panic("actor: producer returned nil actor")
	}
	p.invoke(Started{}, nil, "", nil)

	for {
		select {
		case <-p.stopCh:
			if p.stopped.CompareAndSwap(false, true) && !stoppingInvoked {
				p.invoke(Stopping{}, nil, "", nil)
				stoppingInvoked = true
			}
			return

		case e, ok := <-p.mailbox:
			if !ok {
				return
			}
			switch msg := e.message.(type) {
			case Stopping:
				if p.stopped.CompareAndSwap(false, true) {
					if !stoppingInvoked {
						p.invoke(msg, e.sender, e.requestID, e.reply)
						stoppingInvoked = true
					}
					closeOnce(p.stopCh)
				}
			default:
				if p.stopped.Load() {
					continue
				}
				p.invoke(e.message, e.sender, e.requestID, e.reply)
			}
		}
	}
}

func (p *process) invoke(msg interface{}, sender *PID, requestID string, reply chan<- interface{}) {
	ctx := &context{
		engine:    p.engine,
		self:      p.pid,
		sender:    sender,
		message:   msg,
		requestID: requestID,
		replyCh:   reply,
	}
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Str("msg_type", typeName(msg)).Str("stack", string(debug.Stack())).Msg("panic in Receive")
			if p.stopped.CompareAndSwap(false, true) {
				closeOnce(p.stopCh)
			}
		}
	}()
	p.actor.Receive(ctx)
}

func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}
