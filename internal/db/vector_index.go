package db

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/errs"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/models"
)

// managedIndexes maps each vector index name to the label it covers.
// Both index the node's `embedding` property with cosine similarity.
var managedIndexes = map[string]string{
	models.FunctionIndex: "Function",
	models.FileIndex:     "File",
}

// vectorIndexInfo is what SHOW VECTOR INDEXES reports for a managed index.
// Dimensions is zero when the configured width could not be read.
type vectorIndexInfo struct {
	Name       string
	Dimensions int
}

// EnsureVectorIndexes guarantees both managed vector indexes exist with
// the given dimensionality. An index built for a different embedding
// width is dropped and recreated; querying a 3072-dimension vector
// against a 768-dimension index fails at search time otherwise.
func (c *Neo4jClient) EnsureVectorIndexes(ctx context.Context, dimensions int) error {
	existing, err := c.listManagedIndexes(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect vector indexes: %w", err)
	}

	for _, name := range staleIndexes(existing, dimensions) {
		if err := c.dropIndex(ctx, name); err != nil {
			return fmt.Errorf("failed to drop stale vector index %s: %w", name, err)
		}
	}

	for name, label := range managedIndexes {
		if err := c.createVectorIndex(ctx, name, label, dimensions); err != nil {
			return fmt.Errorf("failed to create vector index %s: %w", name, err)
		}
	}

	return nil
}

// staleIndexes returns the names of existing indexes whose configured
// width no longer matches the active embedding dimensionality. An index
// with an unreadable configuration counts as stale.
func staleIndexes(existing []vectorIndexInfo, dimensions int) []string {
	var stale []string
	for _, info := range existing {
		if info.Dimensions != dimensions {
			stale = append(stale, info.Name)
		}
	}
	return stale
}

// indexDimensions digs the configured vector.dimensions value out of the
// options map returned by SHOW VECTOR INDEXES.
func indexDimensions(options map[string]any) (int, bool) {
	config, ok := options["indexConfig"].(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := config["vector.dimensions"].(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func (c *Neo4jClient) listManagedIndexes(ctx context.Context) ([]vectorIndexInfo, error) {
	names := make([]string, 0, len(managedIndexes))
	for name := range managedIndexes {
		names = append(names, name)
	}

	result, err := c.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			SHOW VECTOR INDEXES
			YIELD name, options
			WHERE name IN $names
			RETURN name, options
		`
		records, err := tx.Run(ctx, query, map[string]any{"names": names})
		if err != nil {
			return nil, err
		}

		var infos []vectorIndexInfo
		for records.Next(ctx) {
			rec := records.Record()

			nameRaw, ok := rec.Get("name")
			if !ok || nameRaw == nil {
				continue
			}
			info := vectorIndexInfo{Name: nameRaw.(string)}

			if optionsRaw, ok := rec.Get("options"); ok && optionsRaw != nil {
				if options, ok := optionsRaw.(map[string]any); ok {
					if dims, ok := indexDimensions(options); ok {
						info.Dimensions = dims
					}
				}
			}

			infos = append(infos, info)
		}
		if err := records.Err(); err != nil {
			return nil, err
		}

		return infos, nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.([]vectorIndexInfo), nil
}

func (c *Neo4jClient) dropIndex(ctx context.Context, name string) error {
	_, err := c.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, fmt.Sprintf("DROP INDEX %s", name), nil)
		return nil, err
	})
	return err
}

func (c *Neo4jClient) createVectorIndex(ctx context.Context, name, label string, dimensions int) error {
	_, err := c.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
			CREATE VECTOR INDEX %s IF NOT EXISTS
			FOR (n:%s) ON (n.embedding)
			OPTIONS {indexConfig: {
				`+"`"+`vector.dimensions`+"`"+`: %d,
				`+"`"+`vector.similarity_function`+"`"+`: 'cosine'
			}}
		`, name, label, dimensions)
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	return err
}

// VectorSearch runs an approximate nearest-neighbour query against one of
// the managed vector indexes and scans the hits into scored entities.
// Hits at or below minScore, and hits without a resolvable location, are
// filtered out by the query itself.
func (r *GraphReader) VectorSearch(ctx context.Context, index string, embedding []float32, k int, minScore float64) ([]models.ScoredEntity, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			CALL db.index.vector.queryNodes($index, $k, $embedding)
			YIELD node, score
			WHERE score > $minScore AND coalesce(node.file_path, node.path) IS NOT NULL
			RETURN node.name AS name,
			       labels(node)[0] AS type,
			       coalesce(node.file_path, node.path) AS filePath,
			       node.description AS description,
			       node.context_sample AS code,
			       score
			ORDER BY score DESC
		`
		records, err := tx.Run(ctx, query, map[string]any{
			"index":     index,
			"k":         k,
			"embedding": embedding,
			"minScore":  minScore,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to run vector search query: %w", err)
		}

		var hits []models.ScoredEntity
		for records.Next(ctx) {
			rec := records.Record()

			hit := models.ScoredEntity{Entity: entityFromRecord(rec)}
			if score, ok := rec.Get("score"); ok && score != nil {
				switch v := score.(type) {
				case float64:
					hit.Score = v
				case int64:
					hit.Score = float64(v)
				}
			}
			hits = append(hits, hit)
		}
		if err := records.Err(); err != nil {
			return nil, fmt.Errorf("error iterating vector search results: %w", err)
		}

		return hits, nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindStageQuery, "vector search failed", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.([]models.ScoredEntity), nil
}
