// Package namefilter validates player names against a severity-graded
// blocklist loaded once at process start.
package namefilter

import (
	"strings"

	"github.com/jacobtread/quizler/internal/quiz"
)

const (
	MinLen = 1
	MaxLen = 30
)

// severity of a blocklisted word; a filtering level rejects a name if
// any contained word's severity is at or above the level's threshold.
type severity int

const (
	sevLow severity = iota
	sevMedium
	sevHigh
)

var levelThreshold = map[quiz.Filtering]severity{
	quiz.FilterLow:    sevHigh,
	quiz.FilterMedium: sevMedium,
	quiz.FilterHigh:   sevLow,
}

// Filter checks candidate names against the embedded blocklist.
type Filter struct {
	words map[string]severity
}

// New builds a Filter from the embedded blocklist.
func New() *Filter {
	f := &Filter{words: make(map[string]severity, len(blocklist))}
	for word, sev := range blocklist {
		f.words[strings.ToLower(word)] = sev
	}
	return f
}

// Check reports whether name is acceptable at the given filtering
// level: length must be within [MinLen,MaxLen], and (unless level is
// None) no word in name may meet or exceed the level's severity
// threshold. Uniqueness within a game is the caller's responsibility.
func (f *Filter) Check(level quiz.Filtering, name string) bool {
	if len(name) < MinLen || len(name) > MaxLen {
		return false
	}
	if level == quiz.FilterNone {
		return true
	}
	threshold, ok := levelThreshold[level]
	if !ok {
		threshold = sevHigh
	}

	lower := strings.ToLower(name)
	for word, sev := range f.words {
		if sev < threshold {
			continue
		}
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}
