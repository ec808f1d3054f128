// Package engine drives the interview conversation: it derives the current
// question from session state, validates answer kinds, records results, and
// decides the next prompt.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rbright/canvass/internal/catalog"
	"github.com/rbright/canvass/internal/store"
	"github.com/rbright/canvass/internal/transport"
)

// ErrUnknownToken indicates a choice token no catalog question declares.
var ErrUnknownToken = errors.New("unknown choice token")

// Scorer is the engine-facing scoring contract. A nil score means unscored.
type Scorer interface {
	Score(ctx context.Context, q catalog.Question, answer string) *int
}

// Engine coordinates the catalog, session store, and scoring adapter.
type Engine struct {
	catalog *catalog.Catalog
	store   store.Store
	scorer  Scorer
	logger  *slog.Logger
}

// New constructs a conversation engine.
func New(cat *catalog.Catalog, st store.Store, scorer Scorer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{catalog: cat, store: st, scorer: scorer, logger: logger}
}

// Catalog exposes the engine's question list to collaborating components.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// CurrentIndex is the number of recorded answers: sessions answer questions
// as a strict prefix of the catalog under single-writer access.
func (e *Engine) CurrentIndex(ctx context.Context, sessionID string) (int, error) {
	answers, err := e.store.Answers(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return len(answers), nil
}

// SubmitText handles a free-text answer for the current question.
// Text sent to a choice question never mutates state; the same question is
// re-presented with button instructions.
func (e *Engine) SubmitText(ctx context.Context, sessionID, text string) (transport.Reply, error) {
	index, err := e.CurrentIndex(ctx, sessionID)
	if err != nil {
		return transport.Reply{}, err
	}

	q, ok := e.catalog.Question(index)
	if !ok {
		return allAnsweredReply(), nil
	}
	if q.Kind == catalog.KindChoice {
		return withNotice(q, transport.Reply{
			Messages:    []string{MsgUseButtons, q.Prompt},
			PromptIndex: index,
		}), nil
	}

	answer := store.Answer{Text: text}
	if e.scorer != nil {
		answer.Score = e.scorer.Score(ctx, q, text)
	}

	reply, err := e.Record(ctx, sessionID, index, answer)
	if err != nil {
		return transport.Reply{}, err
	}
	return withNotice(q, reply), nil
}

// SubmitChoice handles a button selection. Choice answers address their
// question by absolute catalog index resolved from the token, so a stale
// button press overwrites its own question rather than the current one.
func (e *Engine) SubmitChoice(ctx context.Context, sessionID, token string) (transport.Reply, error) {
	q, opt, ok := e.catalog.FindOption(token)
	if !ok {
		return transport.Reply{
			Messages:    []string{MsgInvalidOption},
			PromptIndex: transport.NoPrompt,
		}, fmt.Errorf("session %s: %w: %q", sessionID, ErrUnknownToken, token)
	}

	scored := opt.Score
	return e.Record(ctx, sessionID, q.Index, store.Answer{
		Text:  opt.Label,
		Score: &scored,
	})
}

// PrepareAudio validates that the current question accepts a spoken answer
// and returns the target question for pipeline job creation. accepted is
// false when the reply is a rejection and no job must be enqueued.
func (e *Engine) PrepareAudio(ctx context.Context, sessionID string) (catalog.Question, transport.Reply, bool, error) {
	index, err := e.CurrentIndex(ctx, sessionID)
	if err != nil {
		return catalog.Question{}, transport.Reply{}, false, err
	}

	q, ok := e.catalog.Question(index)
	if !ok {
		return catalog.Question{}, allAnsweredReply(), false, nil
	}
	if q.Kind == catalog.KindChoice {
		return catalog.Question{}, withNotice(q, transport.Reply{
			Messages:    []string{MsgUseButtons, q.Prompt},
			PromptIndex: index,
		}), false, nil
	}

	return q, withNotice(q, transport.Reply{
		Messages:    []string{MsgAudioAck},
		PromptIndex: transport.NoPrompt,
	}), true, nil
}

// Record is the shared write-back routine: it stores the answer at the given
// absolute index and builds the follow-up prompt. Both the synchronous text
// path and the media pipeline end here.
func (e *Engine) Record(ctx context.Context, sessionID string, index int, answer store.Answer) (transport.Reply, error) {
	if err := e.store.SetAnswer(ctx, sessionID, index, answer); err != nil {
		return transport.Reply{}, fmt.Errorf("record answer %d for session %s: %w", index, sessionID, err)
	}
	e.logger.Info("answer recorded",
		"session", sessionID,
		"question", index,
		"scored", answer.Score != nil,
		"audio", answer.RemoteRef != "",
	)

	next := index + 1
	nextQ, ok := e.catalog.Question(next)
	if !ok {
		return transport.Reply{
			Messages:    []string{MsgCompleted},
			PromptIndex: transport.NoPrompt,
			Done:        true,
		}, nil
	}
	return transport.Reply{
		Messages:    []string{nextQ.Prompt},
		PromptIndex: next,
	}, nil
}

// Restart clears the session and re-presents question zero.
func (e *Engine) Restart(ctx context.Context, sessionID string) (transport.Reply, error) {
	if err := e.store.Clear(ctx, sessionID); err != nil {
		return transport.Reply{}, fmt.Errorf("restart session %s: %w", sessionID, err)
	}
	e.logger.Info("session restarted", "session", sessionID)

	first, _ := e.catalog.Question(0)
	return transport.Reply{
		Messages:    []string{MsgWelcome, first.Prompt},
		PromptIndex: 0,
	}, nil
}

// RewindOne deletes the most recent answer so it can be re-given. With no
// answers recorded it is a no-op with an explanatory message.
func (e *Engine) RewindOne(ctx context.Context, sessionID string) (transport.Reply, error) {
	index, err := e.CurrentIndex(ctx, sessionID)
	if err != nil {
		return transport.Reply{}, err
	}
	if index == 0 {
		return transport.Reply{
			Messages:    []string{MsgNoPrevious},
			PromptIndex: transport.NoPrompt,
		}, nil
	}

	last := index - 1
	if err := e.store.DeleteAnswer(ctx, sessionID, last); err != nil {
		return transport.Reply{}, fmt.Errorf("rewind session %s: %w", sessionID, err)
	}
	e.logger.Info("answer rewound", "session", sessionID, "question", last)

	q, _ := e.catalog.Question(last)
	return transport.Reply{
		Messages:    []string{q.Prompt},
		PromptIndex: last,
	}, nil
}

// withNotice prepends the question's one-time notice to a reply.
func withNotice(q catalog.Question, reply transport.Reply) transport.Reply {
	if q.Notice == "" {
		return reply
	}
	reply.Messages = append([]string{q.Notice}, reply.Messages...)
	return reply
}

func allAnsweredReply() transport.Reply {
	return transport.Reply{
		Messages:    []string{MsgAllAnswered},
		PromptIndex: transport.NoPrompt,
		Done:        true,
	}
}
