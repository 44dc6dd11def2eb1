package quiz

import "strings"

// Mark computes the Score for a submitted answer (or none) against a
// question, given how far into the answer window it arrived. hasAnswer
// is false for players who never submitted; t and the rest are then
// irrelevant and the result is always Incorrect.
//
// t and totalMs are both milliseconds relative to the start of
// AwaitingAnswers; t is clamped by the caller to [0, totalMs] before
// this is called (submissions at exactly totalMs are accepted).
func Mark(q Question, answer Answer, hasAnswer bool, t, totalMs int) Score {
	if !hasAnswer {
		return Incorrect()
	}
	if !answer.Matches(q) {
		return Incorrect()
	}

	switch q.Kind {
	case KindSingle:
		return markSingle(q, answer, t, totalMs)
	case KindMultiple:
		return markMultiple(q, answer, t, totalMs)
	case KindTrueFalse:
		return markTrueFalse(q, answer, t, totalMs)
	case KindTyper:
		return markTyper(q, answer, t, totalMs)
	default:
		return Incorrect()
	}
}

func markSingle(q Question, a Answer, t, totalMs int) Score {
	correct := false
	for _, opt := range q.Single.Answers {
		if opt.ID == a.SingleAnswer && opt.Correct {
			correct = true
			break
		}
	}
	if !correct {
		return Incorrect()
	}
	return Score{Kind: ScoreCorrect, Value: scoreValue(q, t, totalMs, true)}
}

func markMultiple(q Question, a Answer, t, totalMs int) Score {
	correctSet := map[int]bool{}
	for _, opt := range q.Multiple.Answers {
		if opt.Correct {
			correctSet[opt.ID] = true
		}
	}
	picked := map[int]bool{}
	for _, id := range a.MultipleAnswers {
		picked[id] = true
	}

	k := len(correctSet)
	c := 0
	w := 0
	for id := range picked {
		if correctSet[id] {
			c++
		} else {
			w++
		}
	}

	switch {
	case w > 0 || c == 0:
		return Incorrect()
	case c == k:
		return Score{Kind: ScoreCorrect, Value: scoreValue(q, t, totalMs, true)}
	default:
		base := scoreValue(q, t, totalMs, false)
		value := int(roundHalfUp(float64(base) * float64(c) / float64(k)))
		return Score{Kind: ScorePartial, Count: c, Total: k, Value: value}
	}
}

func markTrueFalse(q Question, a Answer, t, totalMs int) Score {
	if a.BoolAnswer != q.TrueFalse.Answer {
		return Incorrect()
	}
	return Score{Kind: ScoreCorrect, Value: scoreValue(q, t, totalMs, true)}
}

func markTyper(q Question, a Answer, t, totalMs int) Score {
	submitted := strings.TrimSpace(a.TextAnswer)
	for _, candidate := range q.Typer.Answers {
		candidate = strings.TrimSpace(candidate)
		if q.Typer.IgnoreCase {
			if strings.EqualFold(submitted, candidate) {
				return Score{Kind: ScoreCorrect, Value: scoreValue(q, t, totalMs, true)}
			}
		} else if submitted == candidate {
			return Score{Kind: ScoreCorrect, Value: scoreValue(q, t, totalMs, true)}
		}
	}
	return Incorrect()
}

// scoreValue implements the lerp from max_score down to min_score over
// the answer window, clamped, plus the bonus if submitted inside the
// bonus window. withBonus is false for the base used by Partial, which
// never receives the bonus.
func scoreValue(q Question, t, totalMs int, withBonus bool) int {
	s := q.Scoring
	if totalMs <= 0 {
		totalMs = 1
	}
	frac := float64(t) / float64(totalMs)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	base := lerp(float64(s.MaxScore), float64(s.MinScore), frac)
	value := int(roundHalfUp(base))
	if value < s.MinScore {
		value = s.MinScore
	}
	if value > s.MaxScore {
		value = s.MaxScore
	}
	if withBonus && t <= q.BonusScoreTime {
		value += s.BonusScore
	}
	return value
}

func lerp(from, to, frac float64) float64 {
	return from + (to-from)*frac
}

func roundHalfUp(v float64) float64 {
	if v < 0 {
		return -roundHalfUp(-v)
	}
	return float64(int64(v + 0.5))
}
