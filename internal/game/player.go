package game

import "github.com/jacobtread/quizler/internal/quiz"

// Player is one joined, non-host participant. id is the owning
// session's id.
type Player struct {
	ID    int64
	Name  string
	Score int

	ready     bool
	answered  bool
	answer    quiz.Answer
	answerTMs int // submission time relative to AwaitingAnswers start, ms

	session SessionRef
}
