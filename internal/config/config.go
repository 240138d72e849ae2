// Package config loads chatkit configuration from the environment and
// an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LLM provider names for the development backend.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Responder modes for the development backend.
const (
	ResponderEcho = "echo"
	ResponderLLM  = "llm"
)

// Config holds all configuration values.
type Config struct {
	// Widget client
	BackendURL     string
	RequestTimeout time.Duration
	Platform       string
	Contact        string
	SessionFile    string

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Development backend
	ListenAddr  string
	Responder   string
	LLMProvider string
	LLMModel    string
	OllamaHost  string

	OpenAIAPIKey    string
	AnthropicAPIKey string

	RateRPS   float64
	RateBurst int
}

// Load reads configuration from environment variables, with a .env file
// in the working directory applied first if present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		BackendURL:     getEnv("CHATKIT_BACKEND_URL", "http://localhost:8787/proxy/chat"),
		RequestTimeout: parseDuration(getEnv("CHATKIT_REQUEST_TIMEOUT", "30s"), 30*time.Second),
		Platform:       getEnv("CHATKIT_PLATFORM", "setinbound.com"),
		Contact:        getEnv("CHATKIT_CONTACT", "user"),
		SessionFile:    getEnv("CHATKIT_SESSION_FILE", ""),

		LogFile:  getEnv("CHATKIT_LOG_FILE", "/tmp/chatkit.log"),
		LogLevel: parseLogLevel(getEnv("CHATKIT_LOG_LEVEL", "INFO")),

		ListenAddr:  getEnv("CHATKIT_LISTEN_ADDR", ":8787"),
		Responder:   getEnv("CHATKIT_RESPONDER", ResponderEcho),
		LLMProvider: getEnv("CHATKIT_LLM_PROVIDER", ProviderOllama),
		LLMModel:    getEnv("CHATKIT_LLM_MODEL", "llama3.2"),
		OllamaHost:  getEnv("OLLAMA_HOST", "http://localhost:11434"),

		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),

		RateRPS:   parseFloat(getEnv("CHATKIT_RATE_RPS", "5"), 5),
		RateBurst: parseInt(getEnv("CHATKIT_RATE_BURST", "10"), 10),
	}
}

// fileConfig mirrors the YAML config file; only set keys override.
type fileConfig struct {
	BackendURL     *string `yaml:"backend_url"`
	RequestTimeout *string `yaml:"request_timeout"`
	Platform       *string `yaml:"platform"`
	Contact        *string `yaml:"contact"`
	SessionFile    *string `yaml:"session_file"`
	LogFile        *string `yaml:"log_file"`
	LogLevel       *string `yaml:"log_level"`
	ListenAddr     *string `yaml:"listen_addr"`
	Responder      *string `yaml:"responder"`
	LLMProvider    *string `yaml:"llm_provider"`
	LLMModel       *string `yaml:"llm_model"`
	OllamaHost     *string `yaml:"ollama_host"`
}

// ApplyFile overlays values from a YAML config file onto cfg. Keys absent
// from the file keep their current values.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&c.BackendURL, fc.BackendURL)
	setString(&c.Platform, fc.Platform)
	setString(&c.Contact, fc.Contact)
	setString(&c.SessionFile, fc.SessionFile)
	setString(&c.LogFile, fc.LogFile)
	setString(&c.ListenAddr, fc.ListenAddr)
	setString(&c.Responder, fc.Responder)
	setString(&c.LLMProvider, fc.LLMProvider)
	setString(&c.LLMModel, fc.LLMModel)
	setString(&c.OllamaHost, fc.OllamaHost)

	if fc.RequestTimeout != nil {
		c.RequestTimeout = parseDuration(*fc.RequestTimeout, c.RequestTimeout)
	}
	if fc.LogLevel != nil {
		c.LogLevel = parseLogLevel(*fc.LogLevel)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultVal
}

func parseFloat(s string, defaultVal float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func parseInt(s string, defaultVal int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
