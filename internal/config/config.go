package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// OpenAI
	OpenAIAPIKey         string
	OpenAITimeoutSeconds int

	// Model selection (A/B testing)
	BaseModel        string
	FineTunedModelID string
	ABTestingEnabled bool
	ABTestSplit      float64

	// Pricing (USD per 1M tokens)
	BaseInputPrice       float64
	BaseOutputPrice      float64
	FineTunedInputPrice  float64
	FineTunedOutputPrice float64
	EmbeddingPrice       float64
	FineTuneTrainPrice   float64

	// Retention
	RetentionDays int

	// Frontend
	CORSOrigins string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Env:                  getEnvOrDefault("ENV", "development"),
		DatabaseURL:          mustGetEnv("DATABASE_URL"),
		RedisURL:             mustGetEnv("REDIS_URL"),
		JWTSecret:            mustGetEnv("JWT_SECRET"),
		OpenAIAPIKey:         mustGetEnv("OPENAI_API_KEY"),
		OpenAITimeoutSeconds: getEnvAsIntOrDefault("OPENAI_TIMEOUT_SECONDS", 10),
		BaseModel:            getEnvOrDefault("BASE_MODEL", "gpt-4o-mini"),
		FineTunedModelID:     getEnvOrDefault("FINE_TUNED_MODEL_ID", ""),
		ABTestingEnabled:     getEnvAsBoolOrDefault("AB_TESTING_ENABLED", true),
		ABTestSplit:          getEnvAsFloatOrDefault("AB_TEST_SPLIT", 0.5),
		BaseInputPrice:       getEnvAsFloatOrDefault("BASE_INPUT_PRICE", 0.150),
		BaseOutputPrice:      getEnvAsFloatOrDefault("BASE_OUTPUT_PRICE", 0.600),
		FineTunedInputPrice:  getEnvAsFloatOrDefault("FINE_TUNED_INPUT_PRICE", 0.150),
		FineTunedOutputPrice: getEnvAsFloatOrDefault("FINE_TUNED_OUTPUT_PRICE", 0.600),
		EmbeddingPrice:       getEnvAsFloatOrDefault("EMBEDDING_PRICE", 0.020),
		FineTuneTrainPrice:   getEnvAsFloatOrDefault("FINE_TUNE_TRAINING_PRICE", 3.00),
		RetentionDays:        getEnvAsIntOrDefault("RETENTION_DAYS", 90),
		CORSOrigins:          getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
