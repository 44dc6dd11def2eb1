package quiz

import (
	"encoding/json"
	"fmt"
)

// AnswerKind discriminates the four answer shapes a client may submit.
type AnswerKind string

const (
	AnswerSingle    AnswerKind = "Single"
	AnswerMultiple  AnswerKind = "Multiple"
	AnswerTrueFalse AnswerKind = "TrueFalse"
	AnswerTyper     AnswerKind = "Typer"
)

// Answer is what a player submitted for the active question.
type Answer struct {
	Kind AnswerKind `json:"kind"`

	SingleAnswer    int    `json:"answer,omitempty"`
	MultipleAnswers []int  `json:"answers,omitempty"`
	BoolAnswer      bool   `json:"bool_answer,omitempty"`
	TextAnswer      string `json:"text_answer,omitempty"`
}

func (a Answer) MarshalJSON() ([]byte, error) {
	type alias Answer
	return json.Marshal(alias(a))
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	type alias Answer
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Answer(v)
	switch a.Kind {
	case AnswerSingle, AnswerMultiple, AnswerTrueFalse, AnswerTyper:
		return nil
	default:
		return fmt.Errorf("quiz: unknown answer kind %q", a.Kind)
	}
}

// Matches reports whether the answer's tag matches the question it is
// being submitted against.
func (a Answer) Matches(q Question) bool {
	switch q.Kind {
	case KindSingle:
		return a.Kind == AnswerSingle
	case KindMultiple:
		return a.Kind == AnswerMultiple
	case KindTrueFalse:
		return a.Kind == AnswerTrueFalse
	case KindTyper:
		return a.Kind == AnswerTyper
	default:
		return false
	}
}
