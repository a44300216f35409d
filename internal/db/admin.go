package db

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Akhil373/GraphRAG-CodeAnalyer/internal/errs"
)

// ClearDatabase wipes the whole graph. Relationships go first so the
// node deletion never hits a constraint violation.
func (c *Neo4jClient) ClearDatabase(ctx context.Context) error {
	_, err := c.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, "MATCH ()-[r]-() DELETE r", nil); err != nil {
			return nil, fmt.Errorf("failed to delete relationships: %w", err)
		}
		if _, err := tx.Run(ctx, "MATCH (n) DELETE n", nil); err != nil {
			return nil, fmt.Errorf("failed to delete nodes: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return errs.Wrap(errs.KindStoreConnection, "failed to clear database", err)
	}
	return nil
}
