package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/errs"
)

type Config struct {
	Port            string
	Neo4jURI        string
	Neo4jUser       string
	Neo4jPass       string
	GeminiAPIKey    string
	GeminiBaseURL   string
	EmbeddingModel  string
	GenerativeModel string
	EmbeddingDims   int
	LogLevel        string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "5001"),
		Neo4jURI:        os.Getenv("NEO4J_URI"),
		Neo4jUser:       os.Getenv("NEO4J_USERNAME"),
		Neo4jPass:       os.Getenv("NEO4J_PASSWORD"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),
		GenerativeModel: getEnv("GENERATIVE_MODEL", "gemini-2.5-flash"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	var missing []string
	if cfg.Neo4jURI == "" {
		missing = append(missing, "NEO4J_URI")
	}
	if cfg.Neo4jUser == "" {
		missing = append(missing, "NEO4J_USERNAME")
	}
	if cfg.Neo4jPass == "" {
		missing = append(missing, "NEO4J_PASSWORD")
	}
	if cfg.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if len(missing) > 0 {
		return nil, errs.New(errs.KindConfiguration,
			fmt.Sprintf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}

	dims, err := parseDims(getEnv("EMBEDDING_DIMENSIONS", "3072"))
	if err != nil {
		return nil, err
	}
	cfg.EmbeddingDims = dims

	return cfg, nil
}

func parseDims(raw string) (int, error) {
	dims, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Wrap(errs.KindConfiguration, "EMBEDDING_DIMENSIONS must be an integer", err)
	}
	if dims <= 0 {
		return 0, errs.New(errs.KindConfiguration, "EMBEDDING_DIMENSIONS must be positive")
	}
	return dims, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
