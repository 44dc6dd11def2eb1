package quiz

import (
	"encoding/json"
	"fmt"
)

// QuestionKind discriminates the four question shapes.
type QuestionKind string

const (
	KindSingle    QuestionKind = "Single"
	KindMultiple  QuestionKind = "Multiple"
	KindTrueFalse QuestionKind = "TrueFalse"
	KindTyper     QuestionKind = "Typer"
)

// ImageRef points at an uploaded image by UUID; Fit mirrors the
// client's CSS object-fit keyword and is opaque to the server.
type ImageRef struct {
	UUID string `json:"uuid"`
	Fit  string `json:"fit,omitempty"`
}

// Scoring bounds the value a correct/partial answer can earn.
type Scoring struct {
	MinScore   int `json:"min_score"`
	MaxScore   int `json:"max_score"`
	BonusScore int `json:"bonus_score"`
}

// SingleAnswer is one option of a Single question.
type SingleAnswer struct {
	ID      int    `json:"id"`
	Value   string `json:"value"`
	Correct bool   `json:"correct"`
}

// MultipleAnswer is one option of a Multiple question.
type MultipleAnswer struct {
	ID      int    `json:"id"`
	Value   string `json:"value"`
	Correct bool   `json:"correct"`
}

// Question is a tagged variant: exactly one of the embedded *Data
// fields is populated, selected by Kind.
type Question struct {
	Kind QuestionKind `json:"kind"`

	Text           string    `json:"text"`
	Image          *ImageRef `json:"image,omitempty"`
	AnswerTimeMs   int       `json:"answer_time"`
	BonusScoreTime int       `json:"bonus_score_time"`
	Scoring        Scoring   `json:"scoring"`

	Single    *SingleData    `json:"single,omitempty"`
	Multiple  *MultipleData  `json:"multiple,omitempty"`
	TrueFalse *TrueFalseData `json:"true_false,omitempty"`
	Typer     *TyperData     `json:"typer,omitempty"`
}

type SingleData struct {
	Answers []SingleAnswer `json:"answers"`
}

type MultipleData struct {
	Answers        []MultipleAnswer `json:"answers"`
	CorrectAnswers int              `json:"correct_answers"`
}

type TrueFalseData struct {
	Answer bool `json:"answer"`
}

type TyperData struct {
	Answers    []string `json:"answers"`
	IgnoreCase bool     `json:"ignore_case"`
}

// questionWire is the JSON-on-the-wire shape; Question's custom
// marshalling keeps the Go-side struct exhaustive-switchable on Kind
// while emitting/accepting a flat object the client can discriminate
// on "kind" alone.
func (q Question) MarshalJSON() ([]byte, error) {
	type alias Question
	return json.Marshal(alias(q))
}

func (q *Question) UnmarshalJSON(data []byte) error {
	type alias Question
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*q = Question(a)
	switch q.Kind {
	case KindSingle:
		if q.Single == nil {
			return fmt.Errorf("quiz: Single question missing single data")
		}
	case KindMultiple:
		if q.Multiple == nil {
			return fmt.Errorf("quiz: Multiple question missing multiple data")
		}
	case KindTrueFalse:
		if q.TrueFalse == nil {
			return fmt.Errorf("quiz: TrueFalse question missing true_false data")
		}
	case KindTyper:
		if q.Typer == nil {
			return fmt.Errorf("quiz: Typer question missing typer data")
		}
	default:
		return fmt.Errorf("quiz: unknown question kind %q", q.Kind)
	}
	return nil
}
