package game

import (
	"time"

	"github.com/jacobtread/quizler/internal/quiz"
)

// armTimer invalidates any previous timer completion (by bumping the
// generation every stale message is checked against), starts a fresh
// Timer for total, and arranges for its completion to be delivered
// back to this actor as a timerElapsed message: a goroutine blocks on
// the timer's done channel and forwards completion to the actor's own
// mailbox, so the transition still runs on the actor's single
// goroutine.
func (a *Actor) armTimer(total time.Duration) {
	a.timerGen++
	gen := a.timerGen

	done := a.tmr.Start(total)
	self, engine := a.self, a.engine
	go func() {
		<-done
		engine.Send(self, timerElapsed{generation: gen}, self)
	}()
}

// cancelTimer discards the current timer without letting its
// eventual completion (if any) drive a transition.
func (a *Actor) cancelTimer() {
	a.timerGen++
	a.tmr.Cancel()
}

// skipTimer forces the current timer to its end immediately. The
// generation bump still invalidates the forwarding goroutine's
// eventual timerElapsed, since the caller advances the phase itself
// right away rather than waiting for that message.
func (a *Actor) skipTimer() {
	a.timerGen++
	a.tmr.Skip()
}

func (a *Actor) setPhase(p Phase) {
	a.phase = p
	a.broadcastAll(Event{Type: EventGameState, Payload: GameStatePayload{State: p}})
}

func (a *Actor) syncTime(total time.Duration) {
	a.broadcastAll(Event{Type: EventTimeSync, Payload: TimeSyncPayload{
		TotalMs:   total.Milliseconds(),
		ElapsedMs: 0,
	}})
}

func (a *Actor) enterLobby() {
	a.cancelTimer()
	for _, p := range a.players {
		p.Score = 0
		p.ready = false
		p.answered = false
	}
	a.cursor = 0
	a.setPhase(PhaseLobby)
}

func (a *Actor) enterStarting() {
	a.setPhase(PhaseStarting)
	a.armTimer(a.timings.Start)
	a.syncTime(a.timings.Start)
}

// enterQuestionAndReady sets the active question to cursor, resets
// per-question player state, broadcasts Question, and opens the ready
// barrier.
func (a *Actor) enterQuestionAndReady(cursor int) {
	a.cursor = cursor
	for _, p := range a.players {
		p.ready = false
		p.answered = false
		p.answer = zeroAnswer
	}
	a.broadcastAll(Event{Type: EventQuestion, Payload: QuestionPayload{Question: a.currentQuestion()}})

	a.setPhase(PhaseAwaitingReady)
	a.armTimer(a.timings.Ready)
	a.syncTime(a.timings.Ready)
}

func (a *Actor) enterAwaitingAnswers() {
	q := a.currentQuestion()
	total := time.Duration(q.AnswerTimeMs) * time.Millisecond

	a.setPhase(PhaseAwaitingAnswers)
	a.armTimer(total)
	a.syncTime(total)
}

func (a *Actor) enterMarked() {
	a.setPhase(PhaseMarked)

	q := a.currentQuestion()
	totalMs := q.AnswerTimeMs
	scores := make(map[int64]int, len(a.players))
	for _, p := range a.players {
		score := markPlayer(q, p, totalMs)
		p.Score += score.Value
		scores[p.ID] = p.Score
		if ref := p.session; ref != nil {
			ref.Deliver(Event{Type: EventScore, Payload: ScorePayload{Score: score}})
		}
	}
	a.broadcastAll(Event{Type: EventScores, Payload: ScoresPayload{Scores: scores}})

	a.armTimer(a.timings.Wait)
	a.syncTime(a.timings.Wait)
}

func (a *Actor) enterFinished() {
	a.cancelTimer()
	a.setPhase(PhaseFinished)
}

// advanceAfterMarked is Marked's natural-elapse / Next transition:
// either the next question or Finished.
func (a *Actor) advanceAfterMarked() {
	if a.cursor+1 < len(a.cfg.Questions) {
		a.enterQuestionAndReady(a.cursor + 1)
		return
	}
	a.enterFinished()
}

func (a *Actor) currentQuestion() quiz.Question {
	return a.cfg.Questions[a.cursor]
}

func (a *Actor) handleTimerElapsed(msg timerElapsed) {
	if msg.generation != a.timerGen {
		return // superseded by a synchronous transition
	}
	a.forceAdvance()
}

// forceAdvance performs the natural-elapse transition for the current
// phase immediately; used both by a genuine timer completion and by a
// host Skip, which must take effect synchronously so the Skip
// response is observed only after the resulting events.
func (a *Actor) forceAdvance() {
	switch a.phase {
	case PhaseStarting:
		a.enterQuestionAndReady(0)
	case PhaseAwaitingReady:
		a.enterAwaitingAnswers()
	case PhaseAwaitingAnswers:
		a.enterMarked()
	case PhaseMarked:
		a.advanceAfterMarked()
	default:
		// Lobby/Finished never arm a timer.
	}
}

// terminate ends the game because the host (id a.hostID) is gone: it
// tells every remaining player Kicked{id: hostID, reason}, then stops
// the actor. excludeHost is true when the host itself triggered this
// (it already knows it is leaving and should not be told again).
func (a *Actor) terminate(reason KickReason, excludeHost bool) {
	a.cancelTimer()
	event := Event{Type: EventKicked, Payload: KickedPayload{ID: a.hostID, Reason: reason}}
	for _, id := range a.order {
		if p := a.players[id]; p != nil && p.session != nil {
			p.session.Deliver(event)
		}
	}
	if !excludeHost && a.hostSession != nil {
		a.hostSession.Deliver(event)
	}
	if a.engine != nil && a.self != nil {
		a.engine.Stop(a.self)
	}
}

func (a *Actor) broadcastAll(event Event) {
	for _, id := range a.order {
		if p := a.players[id]; p != nil && p.session != nil {
			p.session.Deliver(event)
		}
	}
	if a.hostSession != nil {
		a.hostSession.Deliver(event)
	}
}

func (a *Actor) broadcastAllExcept(exceptID int64, event Event) {
	for _, id := range a.order {
		if id == exceptID {
			continue
		}
		if p := a.players[id]; p != nil && p.session != nil {
			p.session.Deliver(event)
		}
	}
	if exceptID != a.hostID && a.hostSession != nil {
		a.hostSession.Deliver(event)
	}
}

var zeroAnswer quiz.Answer
