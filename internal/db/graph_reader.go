package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/errs"
	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/models"
)

// GraphReader exposes the read-side primitives the retrieval engine is
// built from. Every method tolerates an empty graph and reports zero
// rows as an empty result, not an error.
type GraphReader struct {
	client *Neo4jClient
}

func NewGraphReader(client *Neo4jClient) *GraphReader {
	return &GraphReader{client: client}
}

// ExpandNeighborhood walks outward from the seed entities along the given
// relationship types and returns the nodes reached between minHops and
// maxHops, excluding the seeds themselves. Seeds travel as (name, path)
// pairs so a name containing a separator cannot corrupt the identity.
func (r *GraphReader) ExpandNeighborhood(ctx context.Context, seeds []models.EntityRef, relTypes []string, minHops, maxHops, limit int) ([]models.Entity, error) {
	if len(seeds) == 0 {
		return nil, nil
	}

	seedParams := make([]map[string]any, 0, len(seeds))
	for _, seed := range seeds {
		seedParams = append(seedParams, map[string]any{
			"name": seed.Name,
			"path": seed.FilePath,
		})
	}

	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			UNWIND $seeds AS seed
			MATCH (start)
			WHERE (start:Function AND start.name = seed.name AND start.file_path = seed.path)
			   OR (start:File AND start.path = seed.path)
			CALL apoc.path.expandConfig(start, {
				relationshipFilter: $relFilter,
				minLevel: $minHops,
				maxLevel: $maxHops,
				uniqueness: "NODE_GLOBAL"
			}) YIELD path
			WITH last(nodes(path)) AS node, start
			WHERE node <> start
			RETURN DISTINCT node.name AS name,
			       labels(node)[0] AS type,
			       coalesce(node.file_path, node.path) AS filePath,
			       node.description AS description,
			       node.context_sample AS code
			LIMIT $limit
		`
		records, err := tx.Run(ctx, query, map[string]any{
			"seeds":     seedParams,
			"relFilter": strings.Join(relTypes, "|"),
			"minHops":   minHops,
			"maxHops":   maxHops,
			"limit":     limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to run neighborhood expansion query: %w", err)
		}

		entities, err := collectEntities(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("error iterating neighborhood expansion results: %w", err)
		}
		return entities, nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindStageQuery, "neighborhood expansion failed", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.([]models.Entity), nil
}

// ShortestPaths collects the distinct nodes on the shortest simple paths
// between two named entities. Paths longer than maxLength hops are
// ignored and only the maxPaths shortest are kept.
func (r *GraphReader) ShortestPaths(ctx context.Context, nameA, nameB string, maxLength, maxPaths int) ([]models.Entity, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (a), (b)
			WHERE a.name = $nameA AND b.name = $nameB
			CALL apoc.algo.allSimplePaths(a, b, null, $maxLength) YIELD path
			WITH path, length(path) AS pathLength
			ORDER BY pathLength ASC
			LIMIT $maxPaths
			UNWIND nodes(path) AS node
			RETURN DISTINCT node.name AS name,
			       labels(node)[0] AS type,
			       coalesce(node.file_path, node.path) AS filePath,
			       node.description AS description,
			       node.context_sample AS code
		`
		records, err := tx.Run(ctx, query, map[string]any{
			"nameA":     nameA,
			"nameB":     nameB,
			"maxLength": maxLength,
			"maxPaths":  maxPaths,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to run path connection query: %w", err)
		}

		entities, err := collectEntities(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("error iterating path connection results: %w", err)
		}
		return entities, nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindStageQuery, "path connection search failed", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.([]models.Entity), nil
}

// KeywordMatch finds entities whose name or description contains any of
// the given lowercase keywords. The searched field comes from the closed
// KeywordField set and is never interpolated from user input.
func (r *GraphReader) KeywordMatch(ctx context.Context, field models.KeywordField, keywords []string, limit int) ([]models.Entity, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	var predicate string
	switch field {
	case models.KeywordName:
		predicate = "ANY(keyword IN $keywords WHERE toLower(n.name) CONTAINS keyword)"
	case models.KeywordDescription:
		predicate = "ANY(keyword IN $keywords WHERE toLower(n.description) CONTAINS keyword)"
	default:
		return nil, errs.New(errs.KindStageQuery, fmt.Sprintf("unsupported keyword field %q", field))
	}

	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
			MATCH (n)
			WHERE %s
			RETURN n.name AS name,
			       labels(n)[0] AS type,
			       n.file_path AS filePath,
			       n.description AS description,
			       n.context_sample AS code
			LIMIT $limit
		`, predicate)
		records, err := tx.Run(ctx, query, map[string]any{
			"keywords": keywords,
			"limit":    limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to run keyword search query: %w", err)
		}

		entities, err := collectEntities(ctx, records)
		if err != nil {
			return nil, fmt.Errorf("error iterating keyword search results: %w", err)
		}
		return entities, nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindStageQuery, "keyword search failed", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.([]models.Entity), nil
}

// FilesByPath resolves the file nodes behind a set of entity locations.
// Matching covers the closed set of file-like labels and both the `path`
// and `file_path` spellings of the location property.
func (r *GraphReader) FilesByPath(ctx context.Context, paths []string) ([]models.FileContext, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	labels := models.FileLabels()
	clauses := make([]string, len(labels))
	for i, label := range labels {
		clauses[i] = "f:" + label
	}

	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
			MATCH (f)
			WHERE (%s)
			AND (f.path IN $paths OR f.file_path IN $paths)
			RETURN coalesce(f.path, f.file_path) AS path,
			       f.repo_id AS repoId,
			       labels(f) AS fileLabels
		`, strings.Join(clauses, " OR "))
		records, err := tx.Run(ctx, query, map[string]any{"paths": paths})
		if err != nil {
			return nil, fmt.Errorf("failed to run file lookup query: %w", err)
		}

		var files []models.FileContext
		for records.Next(ctx) {
			rec := records.Record()

			var fc models.FileContext
			if path, ok := rec.Get("path"); ok && path != nil {
				fc.Path = path.(string)
			}
			if repoID, ok := rec.Get("repoId"); ok && repoID != nil {
				fc.RepoID = repoID.(string)
			}
			if labelsRaw, ok := rec.Get("fileLabels"); ok && labelsRaw != nil {
				fc.Kind = models.FileKindFromLabels(stringSlice(labelsRaw))
			}
			files = append(files, fc)
		}
		if err := records.Err(); err != nil {
			return nil, fmt.Errorf("error iterating file lookup results: %w", err)
		}

		return files, nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindStageQuery, "file lookup failed", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.([]models.FileContext), nil
}

// ContainedEntities lists the named entities a file CONTAINS. Children
// without a name are dropped.
func (r *GraphReader) ContainedEntities(ctx context.Context, path string, limit int) ([]models.Entity, error) {
	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (f)-[:CONTAINS]->(e)
			WHERE f.path = $path OR f.file_path = $path
			RETURN e.name AS name, labels(e)[0] AS type
			LIMIT $limit
		`
		records, err := tx.Run(ctx, query, map[string]any{
			"path":  path,
			"limit": limit,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to run contained entities query: %w", err)
		}

		var entities []models.Entity
		for records.Next(ctx) {
			rec := records.Record()

			entity := entityFromRecord(rec)
			if entity.Name == "" {
				continue
			}
			entities = append(entities, entity)
		}
		if err := records.Err(); err != nil {
			return nil, fmt.Errorf("error iterating contained entities: %w", err)
		}

		return entities, nil
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindStageQuery, "contained entities lookup failed", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.([]models.Entity), nil
}

func collectEntities(ctx context.Context, records neo4j.ResultWithContext) ([]models.Entity, error) {
	var entities []models.Entity
	for records.Next(ctx) {
		entities = append(entities, entityFromRecord(records.Record()))
	}
	if err := records.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}

func entityFromRecord(record *neo4j.Record) models.Entity {
	entity := models.Entity{}

	if name, ok := record.Get("name"); ok && name != nil {
		entity.Name = name.(string)
	}
	if entityType, ok := record.Get("type"); ok && entityType != nil {
		entity.Type = entityType.(string)
	}
	if filePath, ok := record.Get("filePath"); ok && filePath != nil {
		entity.FilePath = filePath.(string)
	}
	if description, ok := record.Get("description"); ok && description != nil {
		entity.Description = description.(string)
	}
	if code, ok := record.Get("code"); ok && code != nil {
		entity.CodeSample = code.(string)
	}

	return entity
}

// stringSlice unwraps a list value returned by the driver into strings.
func stringSlice(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
