package config

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if strings.TrimSpace(cfg.Redis.URL) == "" {
		return nil, fmt.Errorf("REDIS_URL must not be empty")
	}
	if _, err := redis.ParseURL(cfg.Redis.URL); err != nil {
		return nil, fmt.Errorf("REDIS_URL is not a valid redis URL: %w", err)
	}
	if strings.TrimSpace(cfg.Redis.Prefix) == "" {
		return nil, fmt.Errorf("REDIS_PREFIX must not be empty")
	}
	if strings.TrimSpace(cfg.Score.Model) == "" {
		return nil, fmt.Errorf("SCORE_MODEL must not be empty")
	}
	if strings.TrimSpace(cfg.Transcribe.Model) == "" {
		return nil, fmt.Errorf("TRANSCRIBE_MODEL must not be empty")
	}
	if strings.TrimSpace(cfg.Transcode.FFmpegBin) == "" {
		return nil, fmt.Errorf("FFMPEG_BIN must not be empty")
	}
	if strings.TrimSpace(cfg.Transcode.FFprobeBin) == "" {
		return nil, fmt.Errorf("FFPROBE_BIN must not be empty")
	}

	if cfg.OpenAI.APIKey == "" {
		warnings = append(warnings, Warning{Message: "OPENAI_API_KEY is unset; voice answers will not be transcribed or scored"})
	}

	if cfg.SMTP.Enabled() {
		if cfg.SMTP.Port <= 0 || cfg.SMTP.Port > 65535 {
			return nil, fmt.Errorf("SMTP_PORT %d is out of range", cfg.SMTP.Port)
		}
		if strings.TrimSpace(cfg.SMTP.From) == "" {
			return nil, fmt.Errorf("FROM_EMAIL must not be empty when SMTP_SERVER is set")
		}
		if len(cfg.SMTP.To) == 0 {
			return nil, fmt.Errorf("TO_EMAIL must not be empty when SMTP_SERVER is set")
		}
	} else {
		warnings = append(warnings, Warning{Message: "SMTP_SERVER is unset; report delivery is disabled"})
	}

	return warnings, nil
}
