package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Keys         APIKeys
	Ai           AIConfig
	Conversation ConversationConfig
	Research     ResearchConfig
	Pipeline     PipelineConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
	SessionStore       string // "memory" or "redis"
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Tavily string
	OpenAI string
}

type AIConfig struct {
	LLMProvider   string // "ollama" or "openai"
	LLMModel      string // e.g. "llama3", "gpt-4o-mini"
	OllamaBaseURL string
}

type ConversationConfig struct {
	MaxMessageLen     int
	SessionTTLMinutes int
}

type ResearchConfig struct {
	MaxConcurrent      int
	PerQueryTimeoutSec int
	MinContentLen      int
	TopK               int
}

type PipelineConfig struct {
	QualityThreshold float64
	MaxRetries       int
	ConceptWeight    float64
	CulturalWeight   float64
	ErrorPenalty     float64
	MinConcepts      int
	MinCulturalLen   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			SessionStore:       getEnv("SESSION_STORE", "memory"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Tavily: getEnv("TAVILY_API_KEY", ""),
			OpenAI: getEnv("OPENAI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:      getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Conversation: ConversationConfig{
			MaxMessageLen:     getEnvAsInt("CONVERSATION_MAX_MESSAGE_LEN", 2000),
			SessionTTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 120),
		},
		Research: ResearchConfig{
			MaxConcurrent:      getEnvAsInt("RESEARCH_MAX_CONCURRENT", 3),
			PerQueryTimeoutSec: getEnvAsInt("RESEARCH_QUERY_TIMEOUT_SEC", 10),
			MinContentLen:      getEnvAsInt("RESEARCH_MIN_CONTENT_LEN", 50),
			TopK:               getEnvAsInt("RESEARCH_TOP_K", 3),
		},
		Pipeline: PipelineConfig{
			QualityThreshold: getEnvAsFloat("PIPELINE_QUALITY_THRESHOLD", 0.7),
			MaxRetries:       getEnvAsInt("PIPELINE_MAX_RETRIES", 1),
			ConceptWeight:    getEnvAsFloat("PIPELINE_CONCEPT_WEIGHT", 0.5),
			CulturalWeight:   getEnvAsFloat("PIPELINE_CULTURAL_WEIGHT", 0.5),
			ErrorPenalty:     getEnvAsFloat("PIPELINE_ERROR_PENALTY", 0.15),
			MinConcepts:      getEnvAsInt("PIPELINE_MIN_CONCEPTS", 2),
			MinCulturalLen:   getEnvAsInt("PIPELINE_MIN_CULTURAL_LEN", 100),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
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
