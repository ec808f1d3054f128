// Package catalog defines the ordered interview question list and rubric metadata.
package catalog

import (
	"fmt"
	"strings"
)

// Kind discriminates how a question accepts its answer.
type Kind string

const (
	KindFreeText Kind = "free_text"
	KindChoice   Kind = "choice"
)

// Option is one choice-button answer with its transport token and fixed score.
type Option struct {
	Token string
	Label string
	Score int
}

// Question is one immutable catalog entry. Index is its zero-based catalog
// position and doubles as the session field key suffix.
type Question struct {
	Index   int
	Prompt  string
	Kind    Kind
	Options []Option
	Rubric  string
	Notice  string
}

// Scored reports whether answers to this question carry a score.
func (q Question) Scored() bool {
	return q.Kind == KindChoice || strings.TrimSpace(q.Rubric) != ""
}

// maxScore is the highest score any single answer can earn.
func (q Question) maxScore() int {
	switch q.Kind {
	case KindChoice:
		best := 0
		for _, opt := range q.Options {
			if opt.Score > best {
				best = opt.Score
			}
		}
		return best
	default:
		if strings.TrimSpace(q.Rubric) != "" {
			return RubricScoreHigh
		}
		return 0
	}
}

// Option looks up a choice option by its transport token.
func (q Question) Option(token string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.Token == token {
			return opt, true
		}
	}
	return Option{}, false
}

// Rubric scores form a fixed three-point scale.
const (
	RubricScoreLow  = 0
	RubricScoreMid  = 5
	RubricScoreHigh = 10
)

// ValidScore reports whether n is on the rubric scale.
func ValidScore(n int) bool {
	return n == RubricScoreLow || n == RubricScoreMid || n == RubricScoreHigh
}

// Catalog is the fixed, ordered question list consulted by the engine.
type Catalog struct {
	questions []Question
}

// New validates question ordering and option wiring and builds a catalog.
func New(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one question")
	}
	tokens := make(map[string]int)
	for i, q := range questions {
		if q.Index != i {
			return nil, fmt.Errorf("question %d: index %d does not match catalog position", i, q.Index)
		}
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, fmt.Errorf("question %d: prompt must not be empty", i)
		}
		switch q.Kind {
		case KindFreeText:
			if len(q.Options) > 0 {
				return nil, fmt.Errorf("question %d: free_text questions must not declare options", i)
			}
		case KindChoice:
			if len(q.Options) < 2 {
				return nil, fmt.Errorf("question %d: choice questions need at least two options", i)
			}
			for _, opt := range q.Options {
				if strings.TrimSpace(opt.Token) == "" {
					return nil, fmt.Errorf("question %d: option token must not be empty", i)
				}
				if prev, dup := tokens[opt.Token]; dup {
					return nil, fmt.Errorf("question %d: option token %q already used by question %d", i, opt.Token, prev)
				}
				if !ValidScore(opt.Score) {
					return nil, fmt.Errorf("question %d: option %q score %d is not on the 0/5/10 scale", i, opt.Token, opt.Score)
				}
				tokens[opt.Token] = i
			}
		default:
			return nil, fmt.Errorf("question %d: unknown kind %q", i, q.Kind)
		}
	}
	return &Catalog{questions: questions}, nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Question returns the question at index, if present.
func (c *Catalog) Question(index int) (Question, bool) {
	if index < 0 || index >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[index], true
}

// Questions returns the full ordered list.
func (c *Catalog) Questions() []Question {
	return c.questions
}

// FindOption resolves a choice token to its owning question and option.
func (c *Catalog) FindOption(token string) (Question, Option, bool) {
	for _, q := range c.questions {
		if q.Kind != KindChoice {
			continue
		}
		if opt, ok := q.Option(token); ok {
			return q, opt, true
		}
	}
	return Question{}, Option{}, false
}

// MaxScore is the highest total a fully answered session can earn.
func (c *Catalog) MaxScore() int {
	total := 0
	for _, q := range c.questions {
		total += q.maxScore()
	}
	return total
}
