package db

import (
	"context"
	"testing"
)

func TestNewNeo4jClient(t *testing.T) {
	// This test requires Neo4j running
	// Skip in CI without Neo4j
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	cfg := Neo4jConfig{
		URI:      getEnvOrDefault("NEO4J_URI", "bolt://localhost:7687"),
		Username: getEnvOrDefault("NEO4J_USERNAME", "neo4j"),
		Password: getEnvOrDefault("NEO4J_PASSWORD", "password"),
	}

	client, err := NewNeo4jClient(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	// Verify connection
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Failed to ping: %v", err)
	}
}

func TestNewNeo4jClient_BadURI(t *testing.T) {
	_, err := NewNeo4jClient(Neo4jConfig{
		URI:      "not-a-uri",
		Username: "neo4j",
		Password: "password",
	})
	if err == nil {
		t.Fatal("expected error for malformed URI")
	}
}
