// Package score maps free-text answers onto the fixed 0/5/10 rubric scale.
package score

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/rbright/canvass/internal/catalog"
)

// Scorer is the external rubric-scoring collaborator. It returns the raw
// integer verdict for an answer against a rubric.
type Scorer interface {
	ScoreText(ctx context.Context, question, rubric, answer string) (int, error)
}

// ScoreFunc adapts a function to the Scorer interface.
type ScoreFunc func(ctx context.Context, question, rubric, answer string) (int, error)

func (f ScoreFunc) ScoreText(ctx context.Context, question, rubric, answer string) (int, error) {
	return f(ctx, question, rubric, answer)
}

// Adapter applies scoring policy around the collaborator: questions without
// a rubric are never sent out, and failed or off-scale verdicts degrade to
// the lowest score when fail-closed is enabled, or to unscored otherwise.
type Adapter struct {
	scorer     Scorer
	failClosed bool
	logger     *slog.Logger
}

// NewAdapter builds a scoring adapter. failClosed selects the degradation
// policy for oracle failures; the product default is true.
func NewAdapter(scorer Scorer, failClosed bool, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{scorer: scorer, failClosed: failClosed, logger: logger}
}

// Score returns the rubric score for an answer, or nil for unscored.
func (a *Adapter) Score(ctx context.Context, q catalog.Question, answer string) *int {
	if strings.TrimSpace(q.Rubric) == "" {
		return nil
	}
	if a.scorer == nil {
		return a.degrade(q.Index, "no scorer configured")
	}

	verdict, err := a.scorer.ScoreText(ctx, q.Prompt, q.Rubric, answer)
	if err != nil {
		a.logger.Warn("scoring call failed", "question", q.Index, "error", err.Error())
		return a.degrade(q.Index, "call failed")
	}
	if !catalog.ValidScore(verdict) {
		a.logger.Warn("scoring verdict off scale", "question", q.Index, "verdict", verdict)
		return a.degrade(q.Index, "verdict off scale")
	}
	return store(verdict)
}

// degrade applies the configured failure policy.
func (a *Adapter) degrade(index int, reason string) *int {
	if a.failClosed {
		a.logger.Info("scoring degraded to lowest score", "question", index, "reason", reason)
		return store(catalog.RubricScoreLow)
	}
	a.logger.Info("scoring degraded to unscored", "question", index, "reason", reason)
	return nil
}

func store(n int) *int {
	return &n
}
