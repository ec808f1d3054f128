package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rbright/canvass/internal/cli"
	"github.com/rbright/canvass/internal/config"
	"github.com/rbright/canvass/internal/doctor"
	"github.com/rbright/canvass/internal/logging"
	"github.com/rbright/canvass/internal/report"
	"github.com/rbright/canvass/internal/version"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("canvass"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("canvass"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	if parsed.CatalogPath != "" {
		cfgLoaded.Config.CatalogPath = parsed.CatalogPath
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("config warning", "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandServeCheck:
		return r.commandServeCheck(cfgLoaded)
	case cli.CommandDoctor:
		return r.commandDoctor(ctx, cfgLoaded, logger)
	case cli.CommandReport:
		return r.commandReport(ctx, cfgLoaded.Config, parsed.SessionID, logger)
	case cli.CommandRestart:
		return r.commandRestart(ctx, cfgLoaded.Config, parsed.SessionID, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// commandServeCheck validates configuration and catalog without touching
// external systems.
func (r Runner) commandServeCheck(loaded config.Loaded) int {
	cat, err := resolveCatalog(loaded.Config.CatalogPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(r.Stdout, "configuration OK (%d questions, max score %d)\n", cat.Len(), cat.MaxScore())
	return 0
}

func (r Runner) commandDoctor(ctx context.Context, loaded config.Loaded, logger *slog.Logger) int {
	client, sessions, err := newStore(loaded.Config)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = client.Close() }()

	rep := doctor.Run(ctx, loaded, sessions)
	fmt.Fprintln(r.Stdout, rep.String())
	if rep.OK() {
		return 0
	}
	logger.Warn("doctor found failing checks")
	return 1
}

func (r Runner) commandReport(ctx context.Context, cfg config.Config, sessionID string, logger *slog.Logger) int {
	comps, err := NewComponents(cfg, nil, logger)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = comps.Close() }()

	rep, err := comps.Reports.Build(ctx, sessionID)
	if errors.Is(err, report.ErrNoData) {
		fmt.Fprintln(r.Stderr, MsgNoData)
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}

	if comps.Mailer == nil {
		fmt.Fprint(r.Stdout, rep.Render())
		return 0
	}
	if err := comps.Mailer.Send(ctx, rep); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("report delivery failed", "session", sessionID, "error", err.Error())
		return 1
	}
	fmt.Fprintf(r.Stdout, "report sent: %s\n", rep.Subject())
	return 0
}

func (r Runner) commandRestart(ctx context.Context, cfg config.Config, sessionID string, logger *slog.Logger) int {
	client, sessions, err := newStore(cfg)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = client.Close() }()

	if err := sessions.Clear(ctx, sessionID); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	logger.Info("session cleared", "session", sessionID)
	fmt.Fprintf(r.Stdout, "session %s cleared\n", sessionID)
	return 0
}
