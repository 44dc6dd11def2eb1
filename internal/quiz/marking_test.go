package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseQuestion(kind QuestionKind) Question {
	return Question{
		Kind:           kind,
		Text:           "q",
		AnswerTimeMs:   10000,
		BonusScoreTime: 3000,
		Scoring:        Scoring{MinScore: 10, MaxScore: 100, BonusScore: 50},
	}
}

func TestMarkSingleCorrectWithinBonusWindow(t *testing.T) {
	q := baseQuestion(KindSingle)
	q.Single = &SingleData{Answers: []SingleAnswer{
		{ID: 0, Value: "A", Correct: true},
		{ID: 1, Value: "B"},
	}}
	a := Answer{Kind: AnswerSingle, SingleAnswer: 0}

	score := Mark(q, a, true, 1000, q.AnswerTimeMs)
	assert.Equal(t, ScoreCorrect, score.Kind)
	assert.Equal(t, scoreValue(q, 1000, q.AnswerTimeMs, true), score.Value)
	assert.Greater(t, score.Value, q.Scoring.MaxScore)
}

func TestMarkSingleIncorrect(t *testing.T) {
	q := baseQuestion(KindSingle)
	q.Single = &SingleData{Answers: []SingleAnswer{{ID: 0, Correct: true}, {ID: 1}}}
	score := Mark(q, Answer{Kind: AnswerSingle, SingleAnswer: 1}, true, 1000, q.AnswerTimeMs)
	assert.Equal(t, Incorrect(), score)
}

func TestMarkMultiplePartial(t *testing.T) {
	q := baseQuestion(KindMultiple)
	q.Multiple = &MultipleData{Answers: []MultipleAnswer{
		{ID: 0, Correct: true}, {ID: 1, Correct: true}, {ID: 2, Correct: true}, {ID: 3},
	}}
	score := Mark(q, Answer{Kind: AnswerMultiple, MultipleAnswers: []int{0, 1}}, true, q.AnswerTimeMs, q.AnswerTimeMs)
	assert.Equal(t, ScorePartial, score.Kind)
	assert.Equal(t, 2, score.Count)
	assert.Equal(t, 3, score.Total)
}

func TestMarkMultipleEmptySetIncorrect(t *testing.T) {
	q := baseQuestion(KindMultiple)
	q.Multiple = &MultipleData{Answers: []MultipleAnswer{{ID: 0, Correct: true}}}
	score := Mark(q, Answer{Kind: AnswerMultiple, MultipleAnswers: []int{}}, true, 0, q.AnswerTimeMs)
	assert.Equal(t, Incorrect(), score)
}

func TestMarkMultipleWrongPickIncorrect(t *testing.T) {
	q := baseQuestion(KindMultiple)
	q.Multiple = &MultipleData{Answers: []MultipleAnswer{{ID: 0, Correct: true}, {ID: 1}}}
	score := Mark(q, Answer{Kind: AnswerMultiple, MultipleAnswers: []int{0, 1}}, true, 0, q.AnswerTimeMs)
	assert.Equal(t, Incorrect(), score)
}

func TestMarkMultipleExactSetCorrect(t *testing.T) {
	q := baseQuestion(KindMultiple)
	q.Multiple = &MultipleData{Answers: []MultipleAnswer{{ID: 0, Correct: true}, {ID: 1, Correct: true}}}
	score := Mark(q, Answer{Kind: AnswerMultiple, MultipleAnswers: []int{0, 1}}, true, 0, q.AnswerTimeMs)
	assert.Equal(t, ScoreCorrect, score.Kind)
}

func TestMarkTrueFalse(t *testing.T) {
	q := baseQuestion(KindTrueFalse)
	q.TrueFalse = &TrueFalseData{Answer: true}
	assert.Equal(t, ScoreCorrect, Mark(q, Answer{Kind: AnswerTrueFalse, BoolAnswer: true}, true, 0, q.AnswerTimeMs).Kind)
	assert.Equal(t, ScoreIncorrect, Mark(q, Answer{Kind: AnswerTrueFalse, BoolAnswer: false}, true, 0, q.AnswerTimeMs).Kind)
}

func TestMarkTyperIgnoreCase(t *testing.T) {
	q := baseQuestion(KindTyper)
	q.Typer = &TyperData{Answers: []string{"Paris"}, IgnoreCase: true}
	score := Mark(q, Answer{Kind: AnswerTyper, TextAnswer: " paris\n"}, true, 0, q.AnswerTimeMs)
	assert.Equal(t, ScoreCorrect, score.Kind)

	q.Typer.IgnoreCase = false
	score = Mark(q, Answer{Kind: AnswerTyper, TextAnswer: " paris\n"}, true, 0, q.AnswerTimeMs)
	assert.Equal(t, ScoreIncorrect, score.Kind)
}

func TestMarkNoAnswerIsIncorrect(t *testing.T) {
	q := baseQuestion(KindTrueFalse)
	q.TrueFalse = &TrueFalseData{Answer: true}
	assert.Equal(t, Incorrect(), Mark(q, Answer{}, false, 0, q.AnswerTimeMs))
}

func TestMarkMismatchedAnswerKindIsIncorrect(t *testing.T) {
	q := baseQuestion(KindTrueFalse)
	q.TrueFalse = &TrueFalseData{Answer: true}
	score := Mark(q, Answer{Kind: AnswerSingle, SingleAnswer: 0}, true, 0, q.AnswerTimeMs)
	assert.Equal(t, Incorrect(), score)
}
