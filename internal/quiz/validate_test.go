package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Name:       "demo",
		Text:       "demo quiz",
		MaxPlayers: 10,
		Filtering:  FilterLow,
		Questions: []Question{{
			Kind:           KindTrueFalse,
			Text:           "is this a test",
			AnswerTimeMs:   5000,
			BonusScoreTime: 2000,
			Scoring:        Scoring{MinScore: 0, MaxScore: 100, BonusScore: 20},
			TrueFalse:      &TrueFalseData{Answer: true},
		}},
	}
}

func TestValidConfigPasses(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestMaxPlayersOutOfRange(t *testing.T) {
	c := validConfig()
	c.MaxPlayers = 0
	assert.Error(t, c.Validate())
	c.MaxPlayers = 51
	assert.Error(t, c.Validate())
}

func TestScoringBoundsRejected(t *testing.T) {
	c := validConfig()
	c.Questions[0].Scoring = Scoring{MinScore: 50, MaxScore: 10}
	assert.Error(t, c.Validate())
}

func TestUnknownQuestionKindRejected(t *testing.T) {
	c := validConfig()
	c.Questions[0].Kind = "Bogus"
	assert.Error(t, c.Validate())
}

func TestQuestionCountBounds(t *testing.T) {
	c := validConfig()
	c.Questions = nil
	assert.Error(t, c.Validate())
}
