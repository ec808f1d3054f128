// Package config resolves, validates, and defaults canvass configuration
// from the process environment.
package config

// Config is the fully materialized runtime configuration used by canvass.
type Config struct {
	Redis      RedisConfig
	OpenAI     OpenAIConfig
	Score      ScoreConfig
	Transcribe TranscribeConfig
	Transcode  TranscodeConfig
	SMTP       SMTPConfig
	// CatalogPath optionally points at a YAML question catalog. Empty
	// selects the builtin catalog.
	CatalogPath string
}

// RedisConfig controls the session store connection.
type RedisConfig struct {
	URL    string
	Prefix string
}

// OpenAIConfig carries shared API credentials for scoring and transcription.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
}

// ScoreConfig controls answer scoring behavior.
type ScoreConfig struct {
	Model string
	// FailClosed records a zero score when the scorer fails or returns
	// an off-scale verdict. When false the answer stays unscored.
	FailClosed bool
}

// TranscribeConfig controls speech-to-text request hints.
type TranscribeConfig struct {
	Model    string
	Language string
}

// TranscodeConfig names the external media tool binaries.
type TranscodeConfig struct {
	FFmpegBin  string
	FFprobeBin string
}

// SMTPConfig controls report delivery. Delivery is disabled when Host
// is empty.
type SMTPConfig struct {
	Host     string
	Port     int
	Login    string
	Password string
	From     string
	FromName string
	To       []string
}

// Enabled reports whether report delivery is configured.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

// Warning is a non-fatal configuration message.
type Warning struct {
	Message string
}
