// Package quiz holds the immutable quiz data model: the uploaded
// configuration, its questions, and the tagged answer/score variants
// the marking function operates over.
package quiz

// Filtering selects how strictly player names are checked against the
// name filter's blocklist.
type Filtering string

const (
	FilterNone   Filtering = "None"
	FilterLow    Filtering = "Low"
	FilterMedium Filtering = "Medium"
	FilterHigh   Filtering = "High"
)

// Config is the quiz specification uploaded by a host: immutable for
// the lifetime of any game created from it.
type Config struct {
	Name       string     `json:"name"`
	Text       string     `json:"text"`
	MaxPlayers int        `json:"max_players"`
	Filtering  Filtering  `json:"filtering"`
	Questions  []Question `json:"questions"`
}

const (
	MinNameLen = 1
	MaxNameLen = 30

	MinPlayers = 1
	MaxPlayers = 50

	MinQuestions = 1
	MaxQuestions = 50

	MaxTextLen = 400

	MinAnswerTimeMs = 1000
	MaxAnswerTimeMs = 1_800_000

	MinScoreBound = 0
	MaxScoreBound = 10_000
)
