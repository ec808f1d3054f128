package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Loaded captures resolved config values and non-fatal warnings.
type Loaded struct {
	Config   Config
	Warnings []Warning
}

// Load reads environment overrides on top of defaults and validates the
// result.
func Load() (Loaded, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Loaded, error) {
	cfg := Default()

	setString(&cfg.Redis.URL, getenv("REDIS_URL"))
	setString(&cfg.Redis.Prefix, getenv("REDIS_PREFIX"))
	setString(&cfg.OpenAI.APIKey, getenv("OPENAI_API_KEY"))
	setString(&cfg.OpenAI.BaseURL, getenv("OPENAI_BASE_URL"))
	setString(&cfg.Score.Model, getenv("SCORE_MODEL"))
	setString(&cfg.Transcribe.Model, getenv("TRANSCRIBE_MODEL"))
	setString(&cfg.Transcribe.Language, getenv("TRANSCRIBE_LANGUAGE"))
	setString(&cfg.Transcode.FFmpegBin, getenv("FFMPEG_BIN"))
	setString(&cfg.Transcode.FFprobeBin, getenv("FFPROBE_BIN"))
	setString(&cfg.CatalogPath, getenv("CATALOG_PATH"))

	setString(&cfg.SMTP.Host, getenv("SMTP_SERVER"))
	setString(&cfg.SMTP.Login, getenv("SMTP_LOGIN"))
	setString(&cfg.SMTP.Password, getenv("SMTP_PASSWORD"))
	setString(&cfg.SMTP.From, getenv("FROM_EMAIL"))
	setString(&cfg.SMTP.FromName, getenv("FROM_NAME"))

	if raw := strings.TrimSpace(getenv("SMTP_PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Loaded{}, fmt.Errorf("SMTP_PORT %q is not a number", raw)
		}
		cfg.SMTP.Port = port
	}

	if raw := strings.TrimSpace(getenv("TO_EMAIL")); raw != "" {
		for _, addr := range strings.Split(raw, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				cfg.SMTP.To = append(cfg.SMTP.To, addr)
			}
		}
	}

	if raw := strings.TrimSpace(getenv("SCORE_FAIL_CLOSED")); raw != "" {
		failClosed, err := strconv.ParseBool(raw)
		if err != nil {
			return Loaded{}, fmt.Errorf("SCORE_FAIL_CLOSED %q is not a boolean", raw)
		}
		cfg.Score.FailClosed = failClosed
	}

	warnings, err := Validate(cfg)
	if err != nil {
		return Loaded{}, err
	}

	return Loaded{Config: cfg, Warnings: warnings}, nil
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
