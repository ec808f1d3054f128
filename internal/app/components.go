package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rbright/canvass/internal/catalog"
	"github.com/rbright/canvass/internal/config"
	"github.com/rbright/canvass/internal/engine"
	"github.com/rbright/canvass/internal/mail"
	"github.com/rbright/canvass/internal/media"
	"github.com/rbright/canvass/internal/report"
	"github.com/rbright/canvass/internal/score"
	"github.com/rbright/canvass/internal/store"
	"github.com/rbright/canvass/internal/transcode"
	"github.com/rbright/canvass/internal/transcribe"
	"github.com/rbright/canvass/internal/transport"
)

// Components is the fully wired runtime: a transport adapter feeds events
// into Handler and receives asynchronous pipeline replies through the
// sender it supplied.
type Components struct {
	Catalog *catalog.Catalog
	Store   *store.RedisStore
	Engine  *engine.Engine
	Runner  *media.Runner
	Reports *report.Aggregator
	Mailer  mail.Sender
	Handler *Handler

	client *redis.Client
}

// NewComponents builds every collaborator from config. sender receives
// the delayed replies produced by pipeline jobs.
func NewComponents(cfg config.Config, sender transport.Sender, logger *slog.Logger) (*Components, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cat, err := resolveCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	client, sessions, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	var scoreOpts []score.OpenAIOption
	scoreOpts = append(scoreOpts, score.WithModel(cfg.Score.Model))
	if cfg.OpenAI.BaseURL != "" {
		scoreOpts = append(scoreOpts, score.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	scorer := score.NewAdapter(
		score.NewOpenAIScorer(cfg.OpenAI.APIKey, scoreOpts...),
		cfg.Score.FailClosed,
		logger,
	)

	eng := engine.New(cat, sessions, scorer, logger)

	whisperOpts := []transcribe.Option{
		transcribe.WithModel(cfg.Transcribe.Model),
		transcribe.WithLanguage(cfg.Transcribe.Language),
	}
	if cfg.OpenAI.BaseURL != "" {
		whisperOpts = append(whisperOpts, transcribe.WithBaseURL(cfg.OpenAI.BaseURL))
	}

	runner := media.NewRunner(media.RunnerConfig{
		Catalog:     cat,
		Fetcher:     media.NewHTTPFetcher(nil),
		Transcoder:  transcode.NewFFmpeg(cfg.Transcode.FFmpegBin, cfg.Transcode.FFprobeBin),
		Transcriber: transcribe.NewWhisper(cfg.OpenAI.APIKey, whisperOpts...),
		Scorer:      scorer,
		Recorder:    eng,
		Sender:      sender,
		Logger:      logger,
	})

	reports := report.NewAggregator(cat, sessions)

	var mailer mail.Sender
	if cfg.SMTP.Enabled() {
		smtp, err := mail.NewSMTPSender(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Login:    cfg.SMTP.Login,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
			To:       cfg.SMTP.To,
		})
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("configure report delivery: %w", err)
		}
		mailer = smtp
	}

	return &Components{
		Catalog: cat,
		Store:   sessions,
		Engine:  eng,
		Runner:  runner,
		Reports: reports,
		Mailer:  mailer,
		Handler: NewHandler(eng, runner, reports, mailer, logger),
		client:  client,
	}, nil
}

// Close drains in-flight pipeline jobs and releases the store connection.
func (c *Components) Close() error {
	c.Runner.Close()
	return c.client.Close()
}

func resolveCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", path, err)
	}
	return cat, nil
}

func newStore(cfg config.Config) (*redis.Client, *store.RedisStore, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	return client, store.NewRedisStore(client, store.WithPrefix(cfg.Redis.Prefix)), nil
}
