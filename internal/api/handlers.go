package api

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/errs"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/models"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/retrieval"
	"github.com/gofiber/fiber/v3"
)

// Store is the administrative slice of the graph client the handlers need.
type Store interface {
	Ping(ctx context.Context) error
	ClearDatabase(ctx context.Context) error
}

// Retriever assembles grounding context for a question.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (*retrieval.Result, error)
}

// Synthesizer generates the final answer from a question and its context.
type Synthesizer interface {
	Answer(ctx context.Context, query, graphContext string, history []models.ChatTurn) (string, error)
}

// Embedder is the slice of the embedding gateway used by the health probe.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Handler struct {
	store     Store
	retriever Retriever
	synth     Synthesizer
	embedder  Embedder
	logger    *slog.Logger
}

func NewHandler(store Store, retriever Retriever, synth Synthesizer, embedder Embedder, logger *slog.Logger) *Handler {
	return &Handler{
		store:     store,
		retriever: retriever,
		synth:     synth,
		embedder:  embedder,
		logger:    logger,
	}
}

// Chat answers a question about the indexed codebase.
func (h *Handler) Chat(c fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return errs.Wrap(errs.KindValidation, "invalid request body", err)
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"response": "Please provide a query."})
	}

	result, err := h.retriever.Retrieve(c.Context(), req.Query)
	if err != nil {
		return err
	}

	answer, err := h.synth.Answer(c.Context(), req.Query, result.Context, req.History)
	if err != nil {
		return err
	}

	return c.JSON(models.ChatResponse{
		Response:    answer,
		ContextUsed: result.Context,
	})
}

// Health reports whether the store and the embedding model are reachable.
func (h *Handler) Health(c fiber.Ctx) error {
	if err := h.store.Ping(c.Context()); err != nil {
		h.logger.Error("health check: neo4j connection failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "ERROR",
			"message": "Neo4j database connection failed: " + err.Error(),
		})
	}

	if _, err := h.embedder.Embed(c.Context(), "health check test"); err != nil {
		h.logger.Error("health check: embedding model failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "ERROR",
			"message": "Embedding model unavailable: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  "OK",
		"message": "Service is healthy and connected to dependencies.",
	})
}

// ClearDatabase wipes every node and relationship from the store.
func (h *Handler) ClearDatabase(c fiber.Ctx) error {
	h.logger.Info("clearing the graph database")

	if err := h.store.ClearDatabase(c.Context()); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Database cleared successfully",
	})
}
