package namefilter

import (
	"strings"
	"testing"

	"github.com/jacobtread/quizler/internal/quiz"
	"github.com/stretchr/testify/assert"
)

func TestLengthBounds(t *testing.T) {
	f := New()
	assert.True(t, f.Check(quiz.FilterNone, "a"))
	assert.True(t, f.Check(quiz.FilterNone, strings.Repeat("a", 30)))
	assert.False(t, f.Check(quiz.FilterNone, ""))
	assert.False(t, f.Check(quiz.FilterNone, strings.Repeat("a", 31)))
}

func TestNoneAcceptsBlockedWords(t *testing.T) {
	f := New()
	assert.True(t, f.Check(quiz.FilterNone, "idiot"))
}

func TestHighRejectsLowSeverityWords(t *testing.T) {
	f := New()
	assert.False(t, f.Check(quiz.FilterHigh, "idiot"))
	assert.False(t, f.Check(quiz.FilterLow, "nazi"))
}

func TestLowOnlyRejectsHighSeverityWords(t *testing.T) {
	f := New()
	assert.True(t, f.Check(quiz.FilterLow, "idiot"))
	assert.False(t, f.Check(quiz.FilterLow, "nazi"))
}

func TestCleanNamePasses(t *testing.T) {
	f := New()
	assert.True(t, f.Check(quiz.FilterHigh, "PlayerOne"))
}
