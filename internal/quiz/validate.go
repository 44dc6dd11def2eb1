package quiz

import "fmt"

// Validate checks Config against every field's bound. It is the
// single schema gate shared by the multipart upload handler and any
// future direct-JSON entry point.
func (c Config) Validate() error {
	if c.MaxPlayers < MinPlayers || c.MaxPlayers > MaxPlayers {
		return fmt.Errorf("quiz: max_players %d out of range [%d,%d]", c.MaxPlayers, MinPlayers, MaxPlayers)
	}
	switch c.Filtering {
	case FilterNone, FilterLow, FilterMedium, FilterHigh:
	default:
		return fmt.Errorf("quiz: unknown filtering level %q", c.Filtering)
	}
	if len(c.Questions) < MinQuestions || len(c.Questions) > MaxQuestions {
		return fmt.Errorf("quiz: question count %d out of range [%d,%d]", len(c.Questions), MinQuestions, MaxQuestions)
	}
	for i, q := range c.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("quiz: question %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks the common fields plus the per-kind shape.
func (q Question) Validate() error {
	if q.Text == "" || len(q.Text) > MaxTextLen {
		return fmt.Errorf("text length out of range [1,%d]", MaxTextLen)
	}
	if q.AnswerTimeMs < MinAnswerTimeMs || q.AnswerTimeMs > MaxAnswerTimeMs {
		return fmt.Errorf("answer_time out of range [%d,%d]", MinAnswerTimeMs, MaxAnswerTimeMs)
	}
	if q.BonusScoreTime < MinAnswerTimeMs || q.BonusScoreTime > MaxAnswerTimeMs {
		return fmt.Errorf("bonus_score_time out of range [%d,%d]", MinAnswerTimeMs, MaxAnswerTimeMs)
	}
	if err := q.Scoring.Validate(); err != nil {
		return err
	}

	switch q.Kind {
	case KindSingle:
		if q.Single == nil || len(q.Single.Answers) == 0 {
			return fmt.Errorf("Single question requires at least one answer")
		}
	case KindMultiple:
		if q.Multiple == nil || len(q.Multiple.Answers) == 0 {
			return fmt.Errorf("Multiple question requires at least one answer")
		}
	case KindTrueFalse:
		if q.TrueFalse == nil {
			return fmt.Errorf("TrueFalse question requires data")
		}
	case KindTyper:
		if q.Typer == nil || len(q.Typer.Answers) == 0 {
			return fmt.Errorf("Typer question requires at least one accepted answer")
		}
	default:
		return fmt.Errorf("unknown question kind %q", q.Kind)
	}
	return nil
}

// Validate checks the scoring bounds.
func (s Scoring) Validate() error {
	if s.MinScore < MinScoreBound || s.MinScore > s.MaxScore || s.MaxScore > MaxScoreBound {
		return fmt.Errorf("scoring: require 0 <= min_score(%d) <= max_score(%d) <= %d", s.MinScore, s.MaxScore, MaxScoreBound)
	}
	if s.BonusScore < MinScoreBound || s.BonusScore > MaxScoreBound {
		return fmt.Errorf("scoring: bonus_score %d out of range [0,%d]", s.BonusScore, MaxScoreBound)
	}
	return nil
}
