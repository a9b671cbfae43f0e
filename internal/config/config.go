package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Data      DataConfig
	Events    EventsConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
}

type AIConfig struct {
	LLMProvider       string // "anthropic", "openai", "ollama"
	LLMModel          string
	LLMBaseURL        string // empty uses the provider default
	LLMAPIKey         string
	MaxTokens         int
	Temperature       float64
	HistoryWindow     int // turns forwarded per call, clamped to 10-16
	RequestsPerMinute float64
	MaxConcurrent     int
}

type DataConfig struct {
	Dir string
}

type EventsConfig struct {
	NatsURL string // empty keeps TURN_ROUTED events in-process
}

type TelemetryConfig struct {
	OtelEnabled     bool
	OtelEndpoint    string
	ServiceName     string
	SampleRatio     float64 // 0-1, applied to root spans only
	DeploymentStage string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/turns.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "anthropic"),
			LLMModel:          getEnv("LLM_MODEL", "claude-sonnet-4-20250514"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:         firstEnv("LLM_API_KEY", "ANTHROPIC_API_KEY", "OPENAI_API_KEY"),
			MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 1000),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			HistoryWindow:     getEnvAsInt("CHAT_HISTORY_WINDOW", 10),
			RequestsPerMinute: getEnvAsFloat("LLM_REQUESTS_PER_MINUTE", 0),
			MaxConcurrent:     getEnvAsInt("LLM_MAX_CONCURRENT", 0),
		},
		Data: DataConfig{
			Dir: getEnv("PORTFOLIO_DATA_DIR", "data"),
		},
		Events: EventsConfig{
			NatsURL: getEnv("NATS_URL", ""),
		},
		Telemetry: TelemetryConfig{
			OtelEnabled:     getEnv("OTEL_ENABLED", "false") == "true",
			OtelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:     getEnv("OTEL_SERVICE_NAME", "portfolio-chat-backend"),
			SampleRatio:     getEnvAsFloat("OTEL_TRACES_SAMPLE_RATIO", 1.0),
			DeploymentStage: getEnv("GO_ENV", "development"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
