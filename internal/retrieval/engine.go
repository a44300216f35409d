package retrieval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/errs"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/models"
)

const (
	vectorTopK        = 5
	vectorMinScore    = 0.6
	traversalMinHops  = 1
	traversalMaxHops  = 2
	traversalLimit    = 20
	pathMaxLength     = 3
	pathMaxCount      = 3
	keywordLimit      = 5
	fileChildrenLimit = 8
)

// Engine runs the hybrid retrieval pipeline: vector similarity first,
// then graph traversal, connecting paths, keyword matching and file
// context, all folded into one grounding context for the model.
type Engine struct {
	store    GraphStore
	embedder Embedder
	logger   *slog.Logger
}

func NewEngine(store GraphStore, embedder Embedder, logger *slog.Logger) *Engine {
	return &Engine{store: store, embedder: embedder, logger: logger}
}

// Retrieve runs all five stages for one query. Only an unusable query
// embedding aborts the request; a failing stage is logged and simply
// contributes nothing, the remaining stages still run.
func (e *Engine) Retrieve(ctx context.Context, query string) (*Result, error) {
	embedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, errs.Wrap(errs.KindUpstreamModel, "failed to embed query", err)
	}
	if len(embedding) == 0 {
		return nil, errs.New(errs.KindUpstreamModel, "no vector for query")
	}

	var snippets []Snippet

	// Stage 1: vector similarity over both indexes.
	hits := e.vectorStage(ctx, embedding)
	for _, hit := range hits {
		snippets = append(snippets, Snippet{
			Stage: StageVector,
			Text:  entitySentence("", hit.Entity),
			Score: hit.Score,
		})
	}

	// Stage 2: neighborhood expansion seeded by the vector hits.
	if len(hits) > 0 {
		for _, entity := range e.traversalStage(ctx, hits) {
			snippets = append(snippets, Snippet{
				Stage: StageTraversal,
				Text:  entitySentence("Via graph traversal: ", entity),
			})
		}
	}

	// Stage 3: connecting paths between the two strongest hits.
	if len(hits) >= 2 {
		for _, entity := range e.pathStage(ctx, hits[0].Name, hits[1].Name) {
			snippets = append(snippets, Snippet{
				Stage: StagePath,
				Text:  entitySentence("Via path connection: ", entity),
			})
		}
	}

	// Stage 4: lexical matching, also when the vector stage found nothing.
	if keywords := ExtractKeywords(query); len(keywords) > 0 {
		byName, byDescription := e.keywordStage(ctx, keywords)
		for _, entity := range byName {
			snippets = append(snippets, Snippet{Stage: StageKeywordName, Text: keywordNameSentence(entity)})
		}
		for _, entity := range byDescription {
			snippets = append(snippets, Snippet{Stage: StageKeywordDescription, Text: keywordDescriptionSentence(entity)})
		}
	}

	// Stage 5: file context for every location the vector stage surfaced.
	if len(hits) > 0 {
		snippets = append(snippets, e.fileStage(ctx, hits)...)
	}

	result := &Result{Snippets: snippets, Context: NoContextFound}
	if len(snippets) > 0 {
		texts := make([]string, len(snippets))
		for i, snippet := range snippets {
			texts[i] = snippet.Text
		}
		result.Context = strings.Join(texts, "\n")
	}

	e.logger.Debug("graph context assembled", "snippets", len(snippets), "context", result.Context)

	return result, nil
}

// vectorStage queries both managed indexes. Function hits come before
// file hits, each group already ordered by similarity.
func (e *Engine) vectorStage(ctx context.Context, embedding []float32) []models.ScoredEntity {
	var hits []models.ScoredEntity
	for _, index := range []string{models.FunctionIndex, models.FileIndex} {
		found, err := e.store.VectorSearch(ctx, index, embedding, vectorTopK, vectorMinScore)
		if err != nil {
			e.logger.Warn("vector search stage failed", "index", index, "error", err)
			continue
		}
		hits = append(hits, found...)
	}
	return hits
}

func (e *Engine) traversalStage(ctx context.Context, hits []models.ScoredEntity) []models.Entity {
	seeds := make([]models.EntityRef, 0, len(hits))
	for _, hit := range hits {
		seeds = append(seeds, hit.Ref())
	}

	entities, err := e.store.ExpandNeighborhood(ctx, seeds, models.RelationshipTypes, traversalMinHops, traversalMaxHops, traversalLimit)
	if err != nil {
		e.logger.Warn("graph traversal stage failed", "error", err)
		return nil
	}
	return entities
}

func (e *Engine) pathStage(ctx context.Context, nameA, nameB string) []models.Entity {
	entities, err := e.store.ShortestPaths(ctx, nameA, nameB, pathMaxLength, pathMaxCount)
	if err != nil {
		e.logger.Warn("path connection stage failed", "error", err)
		return nil
	}
	return entities
}

func (e *Engine) keywordStage(ctx context.Context, keywords []string) (byName, byDescription []models.Entity) {
	byName, err := e.store.KeywordMatch(ctx, models.KeywordName, keywords, keywordLimit)
	if err != nil {
		e.logger.Warn("keyword name stage failed", "error", err)
		byName = nil
	}

	byDescription, err = e.store.KeywordMatch(ctx, models.KeywordDescription, keywords, keywordLimit)
	if err != nil {
		e.logger.Warn("keyword description stage failed", "error", err)
		byDescription = nil
	}

	return byName, byDescription
}

// fileStage renders one summary sentence per file the vector stage
// touched and, when the file has named children, one listing sentence.
func (e *Engine) fileStage(ctx context.Context, hits []models.ScoredEntity) []Snippet {
	paths := distinctPaths(hits)
	if len(paths) == 0 {
		return nil
	}

	files, err := e.store.FilesByPath(ctx, paths)
	if err != nil {
		e.logger.Warn("file context stage failed", "error", err)
		return nil
	}

	var snippets []Snippet
	for _, file := range files {
		snippets = append(snippets, Snippet{Stage: StageFileSummary, Text: fileSummarySentence(file)})

		children, err := e.store.ContainedEntities(ctx, file.Path, fileChildrenLimit)
		if err != nil {
			e.logger.Warn("file listing lookup failed", "path", file.Path, "error", err)
			continue
		}
		if len(children) > 0 {
			snippets = append(snippets, Snippet{Stage: StageFileListing, Text: fileListingSentence(file.Path, children)})
		}
	}
	return snippets
}

// distinctPaths keeps the first occurrence of each non-empty location.
func distinctPaths(hits []models.ScoredEntity) []string {
	seen := make(map[string]struct{}, len(hits))
	var paths []string
	for _, hit := range hits {
		if hit.FilePath == "" {
			continue
		}
		if _, ok := seen[hit.FilePath]; ok {
			continue
		}
		seen[hit.FilePath] = struct{}{}
		paths = append(paths, hit.FilePath)
	}
	return paths
}
