package score

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbright/canvass/internal/catalog"
)

func rubricQuestion() catalog.Question {
	return catalog.Question{
		Index:  7,
		Prompt: "Describe your first session.",
		Kind:   catalog.KindFreeText,
		Rubric: "Award 10 points for rapport, 5 for play, 0 otherwise.",
	}
}

func TestScoreSkipsQuestionsWithoutRubric(t *testing.T) {
	var calls atomic.Int32
	adapter := NewAdapter(ScoreFunc(func(context.Context, string, string, string) (int, error) {
		calls.Add(1)
		return 10, nil
	}), true, nil)

	got := adapter.Score(context.Background(), catalog.Question{Index: 0, Prompt: "Name?", Kind: catalog.KindFreeText}, "Alice")
	assert.Nil(t, got)
	assert.Zero(t, calls.Load(), "no external call for unscored questions")
}

func TestScoreReturnsVerdict(t *testing.T) {
	adapter := NewAdapter(ScoreFunc(func(_ context.Context, question, rubric, answer string) (int, error) {
		require.Contains(t, question, "first session")
		require.Contains(t, rubric, "rapport")
		require.Equal(t, "I would build rapport through play.", answer)
		return 10, nil
	}), true, nil)

	got := adapter.Score(context.Background(), rubricQuestion(), "I would build rapport through play.")
	require.NotNil(t, got)
	assert.Equal(t, 10, *got)
}

func TestScoreFailClosedDegradesToZero(t *testing.T) {
	adapter := NewAdapter(ScoreFunc(func(context.Context, string, string, string) (int, error) {
		return 0, errors.New("upstream unavailable")
	}), true, nil)

	got := adapter.Score(context.Background(), rubricQuestion(), "anything")
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}

func TestScoreFailOpenDegradesToUnscored(t *testing.T) {
	adapter := NewAdapter(ScoreFunc(func(context.Context, string, string, string) (int, error) {
		return 0, errors.New("upstream unavailable")
	}), false, nil)

	assert.Nil(t, adapter.Score(context.Background(), rubricQuestion(), "anything"))
}

func TestScoreOffScaleVerdictDegrades(t *testing.T) {
	adapter := NewAdapter(ScoreFunc(func(context.Context, string, string, string) (int, error) {
		return 7, nil
	}), true, nil)

	got := adapter.Score(context.Background(), rubricQuestion(), "anything")
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}

func TestScoreWithoutScorerDegrades(t *testing.T) {
	adapter := NewAdapter(nil, true, nil)

	got := adapter.Score(context.Background(), rubricQuestion(), "anything")
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}
