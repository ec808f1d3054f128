// Package report compiles a scored interview summary from session state.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rbright/canvass/internal/catalog"
	"github.com/rbright/canvass/internal/store"
)

// ErrNoData indicates a session with no recorded answers.
var ErrNoData = errors.New("no data recorded yet")

const unknownName = "Unknown"

// Line is one answered question in catalog order.
type Line struct {
	QuestionIndex int
	Question      string
	Answer        string
	RemoteRef     string
	// Score is nil for unscored answers. Unscored contributes nothing to
	// the total but still appears in the listing.
	Score *int
}

// Report is the structured aggregation result. Transport-specific
// formatting belongs to the delivery collaborator.
type Report struct {
	SessionID   string
	SubjectName string
	TotalScore  int
	MaxScore    int
	GeneratedAt time.Time
	Lines       []Line
}

// Subject renders the delivery subject line.
func (r Report) Subject() string {
	return fmt.Sprintf("%s %d (%s)", r.SubjectName, r.TotalScore, r.GeneratedAt.Format("02-01-2006 15:04:05"))
}

// Render produces a plain-text body: each question, its answer, its score
// or audio reference, then the total.
func (r Report) Render() string {
	var b strings.Builder
	b.WriteString("Recorded Data:\n\n")
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "Question: %s\n", line.Question)
		fmt.Fprintf(&b, "Answer: %s\n", line.Answer)
		if line.RemoteRef != "" {
			fmt.Fprintf(&b, "Audio: %s\n", line.RemoteRef)
		}
		if line.Score != nil {
			fmt.Fprintf(&b, "Score: %d\n", *line.Score)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total Score: %d/%d\n", r.TotalScore, r.MaxScore)
	return b.String()
}

// Aggregator reads full session records and folds them into reports.
type Aggregator struct {
	catalog *catalog.Catalog
	store   store.Store
	now     func() time.Time
}

// NewAggregator constructs a report aggregator.
func NewAggregator(cat *catalog.Catalog, st store.Store) *Aggregator {
	return &Aggregator{catalog: cat, store: st, now: time.Now}
}

// Build walks the catalog in order, folding populated answers into lines
// and summing defined scores. The first question's answer names the
// subject. An empty session yields ErrNoData.
func (a *Aggregator) Build(ctx context.Context, sessionID string) (Report, error) {
	answers, err := a.store.Answers(ctx, sessionID)
	if err != nil {
		return Report{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if len(answers) == 0 {
		return Report{}, fmt.Errorf("session %s: %w", sessionID, ErrNoData)
	}

	r := Report{
		SessionID:   sessionID,
		SubjectName: unknownName,
		MaxScore:    a.catalog.MaxScore(),
		GeneratedAt: a.now(),
	}

	for _, q := range a.catalog.Questions() {
		answer, ok := answers[q.Index]
		if !ok {
			continue
		}
		if q.Index == 0 && strings.TrimSpace(answer.Text) != "" {
			r.SubjectName = answer.Text
		}
		if answer.Score != nil {
			r.TotalScore += *answer.Score
		}
		r.Lines = append(r.Lines, Line{
			QuestionIndex: q.Index,
			Question:      q.Prompt,
			Answer:        answer.Text,
			RemoteRef:     answer.RemoteRef,
			Score:         answer.Score,
		})
	}
	return r, nil
}
