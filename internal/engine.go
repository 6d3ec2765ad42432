package internal

import "context"

// Engine is the contract with the external vector-memory service. All
// embedding generation, similarity search and persistence happen behind
// it; this repository only formats, tags and forwards.
type Engine interface {
	// Add stores text with metadata and returns the resulting events.
	Add(ctx context.Context, text string, metadata Metadata) (*AddResult, error)
	// Search returns the memories most similar to the query.
	Search(ctx context.Context, query string, limit int) (*SearchResponse, error)
	// Update replaces the text of an existing memory in place.
	Update(ctx context.Context, id, text string) error
	Close() error
}
