package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()
	require.Equal(t, 13, c.Len())

	for i, q := range c.Questions() {
		require.Equal(t, i, q.Index)
		require.NotEmpty(t, q.Prompt)
	}

	q3, ok := c.Question(3)
	require.True(t, ok)
	require.Equal(t, KindChoice, q3.Kind)
	require.Len(t, q3.Options, 2)

	q5, ok := c.Question(5)
	require.True(t, ok)
	require.Equal(t, KindChoice, q5.Kind)

	for _, i := range []int{7, 8, 9} {
		q, ok := c.Question(i)
		require.True(t, ok)
		require.True(t, q.Scored(), "question %d should carry a rubric", i)
	}
}

func TestDefaultCatalogMaxScore(t *testing.T) {
	// Two choice questions plus three rubric questions, 10 points each.
	require.Equal(t, 50, Default().MaxScore())
}

func TestQuestionOutOfRange(t *testing.T) {
	c := Default()
	_, ok := c.Question(-1)
	require.False(t, ok)
	_, ok = c.Question(c.Len())
	require.False(t, ok)
}

func TestFindOptionResolvesToken(t *testing.T) {
	c := Default()

	q, opt, ok := c.FindOption("5_yes")
	require.True(t, ok)
	require.Equal(t, 5, q.Index)
	require.Equal(t, "Yes", opt.Label)
	require.Equal(t, RubricScoreHigh, opt.Score)

	_, _, ok = c.FindOption("nope")
	require.False(t, ok)
}

func TestNewRejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name      string
		questions []Question
	}{
		{"empty", nil},
		{"index gap", []Question{{Index: 1, Prompt: "q", Kind: KindFreeText}}},
		{"blank prompt", []Question{{Index: 0, Prompt: "  ", Kind: KindFreeText}}},
		{"unknown kind", []Question{{Index: 0, Prompt: "q", Kind: Kind("audio")}}},
		{"choice without options", []Question{{Index: 0, Prompt: "q", Kind: KindChoice}}},
		{"free text with options", []Question{{
			Index: 0, Prompt: "q", Kind: KindFreeText,
			Options: []Option{{Token: "a", Label: "A"}, {Token: "b", Label: "B"}},
		}}},
		{"off-scale option score", []Question{{
			Index: 0, Prompt: "q", Kind: KindChoice,
			Options: []Option{{Token: "a", Label: "A", Score: 7}, {Token: "b", Label: "B"}},
		}}},
		{"duplicate tokens", []Question{
			{Index: 0, Prompt: "q", Kind: KindChoice, Options: []Option{{Token: "a", Label: "A"}, {Token: "b", Label: "B"}}},
			{Index: 1, Prompt: "r", Kind: KindChoice, Options: []Option{{Token: "a", Label: "A"}, {Token: "c", Label: "C"}}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.questions)
			require.Error(t, err)
		})
	}
}

func TestParseCatalogYAML(t *testing.T) {
	content := []byte(`
questions:
  - prompt: "What is your name?"
  - prompt: "Do you have prior experience?"
    kind: choice
    options:
      - token: "1_yes"
        label: "Yes"
        score: 10
      - token: "1_no"
        label: "No"
        score: 0
  - prompt: "Describe your approach."
    rubric: "Award 10 points for detail, 5 for partial, 0 otherwise."
`)

	c, err := Parse(content)
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())
	require.Equal(t, 20, c.MaxScore())

	q0, _ := c.Question(0)
	require.Equal(t, KindFreeText, q0.Kind)

	q1, _ := c.Question(1)
	require.Equal(t, KindChoice, q1.Kind)
	opt, ok := q1.Option("1_yes")
	require.True(t, ok)
	require.Equal(t, 10, opt.Score)
}

func TestParseCatalogRejectsInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("questions: [unclosed"))
	require.Error(t, err)
}
