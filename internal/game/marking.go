package game

import "github.com/jacobtread/quizler/internal/quiz"

// markPlayer applies the scoring function to a player's recorded
// answer for the active question.
func markPlayer(q quiz.Question, p *Player, totalMs int) quiz.Score {
	return quiz.Mark(q, p.answer, p.answered, p.answerTMs, totalMs)
}
