package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/answer"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/api"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/config"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/db"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/embedding"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/llm"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/retrieval"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	client, err := db.NewNeo4jClient(db.Neo4jConfig{
		URI:      cfg.Neo4jURI,
		Username: cfg.Neo4jUser,
		Password: cfg.Neo4jPass,
	})
	if err != nil {
		logger.Error("failed to create neo4j client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	// Startup probes are non-fatal: the service comes up and reports the
	// store's state through /healthz until it becomes reachable.
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := client.Ping(startupCtx); err != nil {
		logger.Warn("neo4j not reachable at startup", "uri", cfg.Neo4jURI, "error", err)
	} else if err := client.EnsureVectorIndexes(startupCtx, cfg.EmbeddingDims); err != nil {
		logger.Warn("vector index setup failed", "error", err)
	} else {
		logger.Info("vector indexes ready", "dimensions", cfg.EmbeddingDims)
	}
	cancel()

	embedder := embedding.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDims)
	generator := llm.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GenerativeModel)

	reader := db.NewGraphReader(client)
	engine := retrieval.NewEngine(reader, embedder, logger)
	synth := answer.NewService(generator, logger)
	handler := api.NewHandler(client, engine, synth, embedder, logger)

	app := fiber.New(fiber.Config{
		AppName:      "GraphRAG API",
		ErrorHandler: api.ErrorHandler(logger),
	})

	app.Use(cors.New())
	app.Use(api.RequestID())
	app.Use(api.RequestLogger(logger))
	app.Use(api.Recover())

	api.SetupRoutes(app, handler)

	logger.Info("starting server",
		"port", cfg.Port,
		"neo4j_uri", cfg.Neo4jURI,
		"neo4j_user", cfg.Neo4jUser,
		"embedding_model", cfg.EmbeddingModel,
		"generative_model", cfg.GenerativeModel,
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// parseLevel converts a LOG_LEVEL string to a slog.Level, defaulting to
// info for unrecognized values.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
