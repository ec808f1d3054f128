package config

// Default returns the canonical runtime configuration before environment
// overrides are applied.
func Default() Config {
	return Config{
		Redis: RedisConfig{
			URL:    "redis://localhost:6379/0",
			Prefix: "canvass",
		},
		Score: ScoreConfig{
			Model:      "gpt-4o-mini",
			FailClosed: true,
		},
		Transcribe: TranscribeConfig{
			Model:    "whisper-1",
			Language: "en",
		},
		Transcode: TranscodeConfig{
			FFmpegBin:  "ffmpeg",
			FFprobeBin: "ffprobe",
		},
		SMTP: SMTPConfig{
			Port:     587,
			FromName: "Canvass Bot",
		},
	}
}
