package config

import (
	"os"
	"strconv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	AllowedOrigin string

	PostgresDSN   string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	AIAPIKey  string
	AIAPIURL  string
	AIModel   string
	AIOrgID   string
	AIReferer string

	ArxivAPIURL      string
	SearchMaxResults int
	ReportMaxPapers  int
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		AllowedOrigin: getenv("ALLOWED_ORIGIN", "http://localhost:5173"),

		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		MongoURI:      getenv("MONGO_URI", ""),
		MongoDB:       getenv("MONGO_DB", "paper_scout"),
		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "paper-scout-reports"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",

		AIAPIKey:  getenv("AI_API_KEY", ""),
		AIAPIURL:  getenv("AI_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		AIModel:   getenv("AI_MODEL", "openai/gpt-3.5-turbo"),
		AIOrgID:   getenv("AI_ORG_ID", ""),
		AIReferer: getenv("AI_REFERER", "http://localhost:5173"),

		ArxivAPIURL:      getenv("ARXIV_API_URL", "http://export.arxiv.org/api/query"),
		SearchMaxResults: getenvInt("SEARCH_MAX_RESULTS", 6),
		ReportMaxPapers:  getenvInt("REPORT_MAX_PAPERS", 5),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
