package answer

import (
	"context"
	"log/slog"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/errs"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/llm"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/models"
)

// answerTemperature balances deterministic answers against phrasing
// variety.
const answerTemperature = 0.3

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error)
}

// Service turns a user question plus retrieved graph context into a
// grounded answer.
type Service struct {
	generator Generator
	logger    *slog.Logger
}

func NewService(generator Generator, logger *slog.Logger) *Service {
	return &Service{generator: generator, logger: logger}
}

// Answer builds the prompt and asks the generative model once. Failures
// surface as upstream-model errors and are never retried here.
func (s *Service) Answer(ctx context.Context, query, graphContext string, history []models.ChatTurn) (string, error) {
	prompt := BuildPrompt(query, graphContext, history)

	s.logger.Debug("invoking generative model", "prompt_bytes", len(prompt))

	text, err := s.generator.Generate(ctx, prompt, llm.GenerateOptions{Temperature: answerTemperature})
	if err != nil {
		return "", errs.Wrap(errs.KindUpstreamModel, "generation failed", err)
	}

	return text, nil
}
