package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds the runtime configuration of the API.
type Config struct {
	Port        string
	GinMode     string
	DBPath      string
	LogLevel    string
	CORSOrigins []string

	// JWTSecret enables bearer-token auth on /api when non-empty.
	JWTSecret string

	LLM LLMConfig

	// AIRateLimitPerMinute caps suggestion requests per client IP.
	AIRateLimitPerMinute int
}

// LLMConfig selects and tunes the text-generation provider.
type LLMConfig struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	MaxTokens     int
	Temperature   float32
}

// APIKey returns the key of the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return NewFromEnv()
}

// NewFromEnv builds a Config from environment variables only.
func NewFromEnv() (*Config, error) {
	maxTokens, err := strconv.Atoi(getEnv("LLM_MAX_TOKENS", "2000"))
	if err != nil || maxTokens <= 0 {
		return nil, fmt.Errorf("LLM_MAX_TOKENS must be a positive integer")
	}

	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.7"), 32)
	if err != nil || temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be a number between 0 and 2")
	}

	rateLimit, err := strconv.Atoi(getEnv("AI_RATE_LIMIT_PER_MINUTE", "10"))
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("AI_RATE_LIMIT_PER_MINUTE must be a non-negative integer")
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))
	if provider != ProviderOpenAI && provider != ProviderGemini {
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, provider)
	}

	var origins []string
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		DBPath:      getEnv("DB_PATH", "vacation_menu.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: origins,
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LLM: LLMConfig{
			Provider:      provider,
			OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
			GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			MaxTokens:     maxTokens,
			Temperature:   float32(temperature),
		},
		AIRateLimitPerMinute: rateLimit,
	}, nil
}
