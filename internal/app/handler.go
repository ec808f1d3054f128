package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rbright/canvass/internal/engine"
	"github.com/rbright/canvass/internal/mail"
	"github.com/rbright/canvass/internal/media"
	"github.com/rbright/canvass/internal/report"
	"github.com/rbright/canvass/internal/transport"
)

// Handler-level copy, rendered verbatim by the transport.
const (
	MsgReportSent   = "Data sent successfully!"
	MsgNoData       = "No data recorded yet."
	MsgReportFailed = "Failed to send the report. Please try again later."
	MsgDeliveryOff  = "Report delivery is not configured."
)

// Handler routes inbound transport events to the conversation engine, the
// media pipeline, and report delivery.
type Handler struct {
	engine  *engine.Engine
	runner  *media.Runner
	reports *report.Aggregator
	mailer  mail.Sender
	logger  *slog.Logger
}

// NewHandler wires a dispatcher. mailer may be nil when delivery is
// disabled.
func NewHandler(eng *engine.Engine, runner *media.Runner, reports *report.Aggregator, mailer mail.Sender, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		engine:  eng,
		runner:  runner,
		reports: reports,
		mailer:  mailer,
		logger:  logger,
	}
}

// Handle processes one event and returns the immediate reply. Audio
// events additionally enqueue a pipeline job whose result arrives later
// through the runner's sender.
func (h *Handler) Handle(ctx context.Context, ev transport.Event) (transport.Reply, error) {
	switch ev.Kind {
	case transport.EventRestart:
		return h.engine.Restart(ctx, ev.SessionID)
	case transport.EventText:
		return h.engine.SubmitText(ctx, ev.SessionID, ev.Text)
	case transport.EventAudio:
		return h.handleAudio(ctx, ev)
	case transport.EventChoice:
		return h.handleChoice(ctx, ev)
	default:
		return transport.Reply{}, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}

func (h *Handler) handleChoice(ctx context.Context, ev transport.Event) (transport.Reply, error) {
	switch ev.Token {
	case transport.TokenRestart:
		return h.engine.Restart(ctx, ev.SessionID)
	case transport.TokenRewind:
		return h.engine.RewindOne(ctx, ev.SessionID)
	case transport.TokenSendReport:
		return h.handleReport(ctx, ev.SessionID)
	}

	reply, err := h.engine.SubmitChoice(ctx, ev.SessionID, ev.Token)
	if errors.Is(err, engine.ErrUnknownToken) {
		h.logger.Warn("unknown choice token", "session", ev.SessionID, "token", ev.Token)
		return transport.Reply{
			Messages:    []string{engine.MsgInvalidOption},
			PromptIndex: transport.NoPrompt,
		}, nil
	}
	return reply, err
}

func (h *Handler) handleAudio(ctx context.Context, ev transport.Event) (transport.Reply, error) {
	q, reply, accepted, err := h.engine.PrepareAudio(ctx, ev.SessionID)
	if err != nil || !accepted {
		return reply, err
	}
	if err := h.runner.Enqueue(media.NewJob(ev.SessionID, q.Index, ev.AudioRef)); err != nil {
		return transport.Reply{}, fmt.Errorf("enqueue audio for session %s: %w", ev.SessionID, err)
	}
	return reply, nil
}

func (h *Handler) handleReport(ctx context.Context, sessionID string) (transport.Reply, error) {
	r, err := h.reports.Build(ctx, sessionID)
	if errors.Is(err, report.ErrNoData) {
		return transport.Reply{
			Messages:    []string{MsgNoData},
			PromptIndex: transport.NoPrompt,
		}, nil
	}
	if err != nil {
		return transport.Reply{}, err
	}

	if h.mailer == nil {
		return transport.Reply{
			Messages:    []string{MsgDeliveryOff},
			PromptIndex: transport.NoPrompt,
		}, nil
	}
	if err := h.mailer.Send(ctx, r); err != nil {
		h.logger.Error("report delivery failed", "session", sessionID, "error", err.Error())
		return transport.Reply{
			Messages:    []string{MsgReportFailed},
			PromptIndex: transport.NoPrompt,
		}, nil
	}

	h.logger.Info("report delivered", "session", sessionID, "total_score", r.TotalScore)
	return transport.Reply{
		Messages:    []string{MsgReportSent},
		PromptIndex: transport.NoPrompt,
	}, nil
}
