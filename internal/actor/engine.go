package actor

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ErrTimeout is returned by Ask when no reply arrives within the given
// timeout.
var ErrTimeout = errors.New("actor: ask timed out")

// Engine owns the set of live actors and dispatches messages to them.
type Engine struct {
	log zerolog.Logger

	pidCounter uint64
	mu         sync.RWMutex
	actors     map[string]*process
	stopping   atomic.Bool
}

// NewEngine creates an actor engine that logs through the given logger.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log:    log.With().Str("component", "actor-engine").Logger(),
		actors: make(map[string]*process),
	}
}

func (e *Engine) nextPID() *PID {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return &PID{ID: fmt.Sprintf("actor-%d", id)}
}

// Spawn starts a new actor and returns its PID. Returns nil if the
// engine is shutting down.
func (e *Engine) Spawn(props *Props) *PID {
	if e.stopping.Load() {
		e.log.Warn().Msg("spawn rejected, engine is stopping")
		return nil
	}

	pid := e.nextPID()
	proc := newProcess(e, pid, props)

	e.mu.Lock()
	e.actors[pid.ID] = proc
	e.mu.Unlock()

	go proc.run()
	e.Send(pid, Started{}, nil)

	return pid
}

// Send delivers message to pid without waiting for a reply. sender may
// be nil when the caller is not itself an actor.
func (e *Engine) Send(pid *PID, message interface{}, sender *PID) {
	if pid == nil || e.stopping.Load() {
		return
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		e.log.Debug().Str("pid", pid.ID).Str("msg_type", typeName(message)).Msg("dead letter: actor not found")
		return
	}
	proc.send(&envelope{sender: sender, message: message})
}

// Ask delivers message to pid and blocks until the actor calls
// ctx.Reply, or timeout elapses (returning ErrTimeout).
func (e *Engine) Ask(pid *PID, message interface{}, timeout time.Duration) (interface{}, error) {
	if pid == nil {
		return nil, fmt.Errorf("actor: ask to nil pid")
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("actor: %s not found", pid.ID)
	}

	reply := make(chan interface{}, 1)
	proc.send(&envelope{message: message, requestID: e.nextRequestID(), reply: reply})

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case resp := <-reply:
		return resp, nil
	case <-timer.C:
		return nil, ErrTimeout
	}
}

func (e *Engine) nextRequestID() string {
	id := atomic.AddUint64(&e.pidCounter, 1)
	return fmt.Sprintf("req-%d", id)
}

// Stop asks the actor to finish current work and shut down.
func (e *Engine) Stop(pid *PID) {
	if pid == nil {
		return
	}
	e.mu.RLock()
	proc, ok := e.actors[pid.ID]
	e.mu.RUnlock()
	if ok {
		proc.send(&envelope{message: Stopping{}})
	}
}

func (e *Engine) remove(pid *PID) {
	e.mu.Lock()
	delete(e.actors, pid.ID)
	e.mu.Unlock()
}

// Shutdown stops every live actor and waits up to timeout for them to
// finish.
func (e *Engine) Shutdown(timeout time.Duration) {
	if !e.stopping.CompareAndSwap(false, true) {
		return
	}
	e.log.Info().Msg("engine shutdown initiated")

	e.mu.RLock()
	pids := make([]*PID, 0, len(e.actors))
	for _, proc := range e.actors {
		pids = append(pids, proc.pid)
	}
	e.mu.RUnlock()

	for _, pid := range pids {
		e.Stop(pid)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		e.mu.RLock()
		remaining := len(e.actors)
		e.mu.RUnlock()
		if remaining == 0 {
			break
		}
		time.Sleep(25 * time.Millisecond)
	}

	e.mu.Lock()
	if len(e.actors) > 0 {
		e.log.Warn().Int("remaining", len(e.actors)).Msg("shutdown timeout, forcing actor removal")
		e.actors = make(map[string]*process)
	}
	e.mu.Unlock()

	e.log.Info().Msg("engine shutdown complete")
}
