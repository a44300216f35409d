package retrieval

import (
	"context"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/models"
)

// GraphStore is the slice of the graph adapter the engine is built on.
// Implementations must tolerate an empty graph and report zero rows as
// an empty result rather than an error.
type GraphStore interface {
	VectorSearch(ctx context.Context, index string, embedding []float32, k int, minScore float64) ([]models.ScoredEntity, error)
	ExpandNeighborhood(ctx context.Context, seeds []models.EntityRef, relTypes []string, minHops, maxHops, limit int) ([]models.Entity, error)
	ShortestPaths(ctx context.Context, nameA, nameB string, maxLength, maxPaths int) ([]models.Entity, error)
	KeywordMatch(ctx context.Context, field models.KeywordField, keywords []string, limit int) ([]models.Entity, error)
	FilesByPath(ctx context.Context, paths []string) ([]models.FileContext, error)
	ContainedEntities(ctx context.Context, path string, limit int) ([]models.Entity, error)
}

// Embedder turns query text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
