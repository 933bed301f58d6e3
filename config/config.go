package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	ProviderLibrary     = "library"
	ProviderCaptionsAPI = "captions_api"
)

type Config struct {
	// Server settings
	ServerPort      string        `json:"server_port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	Debug           bool          `json:"debug"`
	Version         string        `json:"version"`

	// Logging
	LogLevel string `json:"log_level"`
	LogDir   string `json:"log_dir"`

	CORS       CORSConfig       `json:"cors"`
	OpenAI     OpenAIConfig     `json:"openai"`
	Transcript TranscriptConfig `json:"transcript"`
	QA         QAConfig         `json:"qa"`
}

type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

type OpenAIConfig struct {
	APIKey       string        `json:"-"`
	BaseURL      string        `json:"base_url"`
	Model        string        `json:"model"`
	MaxTokens    int           `json:"max_tokens"`
	Temperature  float32       `json:"temperature"`
	SystemPrompt string        `json:"system_prompt"`
	Timeout      time.Duration `json:"timeout"`
}

type TranscriptConfig struct {
	Provider      string        `json:"provider"`
	Languages     []string      `json:"languages"`
	YouTubeAPIKey string        `json:"-"`
	CaptionFormat string        `json:"caption_format"`
	Timeout       time.Duration `json:"timeout"`
}

type QAConfig struct {
	DefaultCount        int `json:"default_count"`
	MinCount            int `json:"min_count"`
	MaxCount            int `json:"max_count"`
	ChunkSize           int `json:"chunk_size"`
	MinTranscriptLength int `json:"min_transcript_length"`
}

const defaultSystemPrompt = "You are an educational content generator. Always return valid JSON arrays only."

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// PORT is what most PaaS hosts inject; SERVER_PORT is kept for local runs.
		ServerPort:      getEnv("PORT", getEnv("SERVER_PORT", "5000")),
		ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 2*time.Minute),
		IdleTimeout:     getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		Debug:           getEnvAsBool("DEBUG", false),
		Version:         getEnv("VERSION", "1.0.0"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogDir:   getEnv("LOG_DIR", ""),

		CORS: CORSConfig{
			Enabled:        getEnvAsBool("CORS_ENABLED", true),
			AllowedOrigins: getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsStringSlice(
				"CORS_ALLOWED_METHODS",
				[]string{"GET", "POST", "OPTIONS"},
			),
			AllowedHeaders:   getEnvAsStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
			ExposedHeaders:   getEnvAsStringSlice("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},

		OpenAI: OpenAIConfig{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			BaseURL:      getEnv("OPENAI_BASE_URL", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			MaxTokens:    getEnvAsInt("OPENAI_MAX_TOKENS", 2000),
			Temperature:  getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
			SystemPrompt: getEnv("OPENAI_SYSTEM_PROMPT", defaultSystemPrompt),
			Timeout:      getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},

		Transcript: TranscriptConfig{
			Provider:      getEnv("TRANSCRIPT_PROVIDER", ProviderLibrary),
			Languages:     getEnvAsStringSlice("TRANSCRIPT_LANGUAGES", []string{"en", "bn", "hi"}),
			YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
			CaptionFormat: getEnv("CAPTION_FORMAT", ""),
			Timeout:       getEnvAsDuration("TRANSCRIPT_TIMEOUT", 30*time.Second),
		},

		QA: QAConfig{
			DefaultCount:        getEnvAsInt("QA_DEFAULT_COUNT", 10),
			MinCount:            getEnvAsInt("QA_MIN_COUNT", 1),
			MaxCount:            getEnvAsInt("QA_MAX_COUNT", 50),
			ChunkSize:           getEnvAsInt("QA_CHUNK_SIZE", 3000),
			MinTranscriptLength: getEnvAsInt("QA_MIN_TRANSCRIPT_LENGTH", 100),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return errors.New("server port is required")
	}

	if err := validateTimeouts(c); err != nil {
		return err
	}

	if err := validateServices(c); err != nil {
		return err
	}

	return nil
}

func validateTimeouts(c *Config) error {
	timeouts := []struct {
		value time.Duration
		name  string
	}{
		{c.ReadTimeout, "read timeout"},
		{c.WriteTimeout, "write timeout"},
		{c.IdleTimeout, "idle timeout"},
		{c.ShutdownTimeout, "shutdown timeout"},
		{c.OpenAI.Timeout, "openai timeout"},
		{c.Transcript.Timeout, "transcript timeout"},
	}

	for _, t := range timeouts {
		if t.value <= 0 {
			return errors.Errorf("%s must be positive", t.name)
		}
	}
	return nil
}

func validateServices(c *Config) error {
	switch c.Transcript.Provider {
	case ProviderLibrary:
		if len(c.Transcript.Languages) == 0 {
			return errors.New("at least one transcript language is required")
		}
	case ProviderCaptionsAPI:
	default:
		return errors.Errorf("unknown transcript provider %q", c.Transcript.Provider)
	}

	if c.QA.MinCount < 1 || c.QA.MaxCount < c.QA.MinCount {
		return errors.Errorf("invalid question count bounds [%d, %d]", c.QA.MinCount, c.QA.MaxCount)
	}
	if c.QA.DefaultCount < c.QA.MinCount || c.QA.DefaultCount > c.QA.MaxCount {
		return errors.Errorf("default question count %d outside [%d, %d]", c.QA.DefaultCount, c.QA.MinCount, c.QA.MaxCount)
	}
	if c.QA.ChunkSize <= 0 {
		return errors.New("chunk size must be positive")
	}
	if c.QA.MinTranscriptLength < 1 {
		return errors.New("minimum transcript length must be at least 1")
	}
	if c.OpenAI.MaxTokens <= 0 {
		return errors.New("openai max tokens must be positive")
	}
	return nil
}

// OpenAIConfigured reports whether a completion credential is present.
func (c *Config) OpenAIConfigured() bool {
	return c.OpenAI.APIKey != ""
}

// YouTubeAPIConfigured reports whether a captions API credential is present.
func (c *Config) YouTubeAPIConfigured() bool {
	return c.Transcript.YouTubeAPIKey != ""
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		warnInvalid(key, value, defaultValue, "Invalid integer, using default")
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float32) float32 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
		warnInvalid(key, value, defaultValue, "Invalid float, using default")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		warnInvalid(key, value, defaultValue, "Invalid boolean, using default")
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		warnInvalid(key, value, defaultValue, "Invalid duration, using default")
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			parts := strings.Split(value, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out
		}
	}
	return defaultValue
}

func warnInvalid(key, value string, defaultValue interface{}, msg string) {
	logrus.WithFields(logrus.Fields{
		"key":          key,
		"value":        value,
		"defaultValue": defaultValue,
	}).Warn(msg)
}
