// Package doctor runs runtime readiness diagnostics for config, tools,
// the session store, and the question catalog.
package doctor

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rbright/canvass/internal/catalog"
	"github.com/rbright/canvass/internal/config"
)

const pingTimeout = 3 * time.Second

// Pinger probes session store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes readiness checks for a loaded config. Independent probes
// run concurrently; results keep a stable order.
func Run(ctx context.Context, loaded config.Loaded, store Pinger) Report {
	cfg := loaded.Config
	checks := make([]Check, 6)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		checks[0] = checkStore(gctx, cfg, store)
		return nil
	})
	g.Go(func() error {
		checks[1] = checkBinary(cfg.Transcode.FFmpegBin, "ffmpeg")
		return nil
	})
	g.Go(func() error {
		checks[2] = checkBinary(cfg.Transcode.FFprobeBin, "ffprobe")
		return nil
	})
	g.Go(func() error {
		checks[3] = checkCatalog(cfg.CatalogPath)
		return nil
	})
	_ = g.Wait()

	checks[4] = checkAPIKey(cfg.OpenAI.APIKey)
	checks[5] = checkDelivery(cfg.SMTP)

	return Report{Checks: checks}
}

// checkStore probes the configured redis endpoint with a short timeout.
func checkStore(ctx context.Context, cfg config.Config, store Pinger) Check {
	if store == nil {
		return Check{Name: "redis", Pass: false, Message: "session store is not configured"}
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		return Check{Name: "redis", Pass: false, Message: fmt.Sprintf("ping %s: %v", cfg.Redis.URL, err)}
	}
	return Check{Name: "redis", Pass: true, Message: fmt.Sprintf("connected to %s", cfg.Redis.URL)}
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin, name string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: name, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: name, Pass: true, Message: fmt.Sprintf("found at %s", path)}
}

// checkCatalog loads the configured catalog, or reports on the builtin one.
func checkCatalog(path string) Check {
	if path == "" {
		cat := catalog.Default()
		return Check{Name: "catalog", Pass: true, Message: fmt.Sprintf("builtin catalog with %d questions", cat.Len())}
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return Check{Name: "catalog", Pass: false, Message: fmt.Sprintf("load %q: %v", path, err)}
	}
	return Check{Name: "catalog", Pass: true, Message: fmt.Sprintf("loaded %q with %d questions", path, cat.Len())}
}

func checkAPIKey(key string) Check {
	if key == "" {
		return Check{Name: "openai", Pass: false, Message: "OPENAI_API_KEY is unset"}
	}
	return Check{Name: "openai", Pass: true, Message: "API key is present"}
}

func checkDelivery(cfg config.SMTPConfig) Check {
	if !cfg.Enabled() {
		return Check{Name: "smtp", Pass: false, Message: "SMTP_SERVER is unset; report delivery disabled"}
	}
	return Check{Name: "smtp", Pass: true, Message: fmt.Sprintf("delivery to %d recipient(s) via %s:%d", len(cfg.To), cfg.Host, cfg.Port)}
}
