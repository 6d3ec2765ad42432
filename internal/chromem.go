package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"
)

const metaCreatedAt = "created_at"

var _ Engine = (*ChromemEngine)(nil)

// ChromemEngine persists memories in an embedded chromem-go database,
// one collection per user.
type ChromemEngine struct {
	db     *chromem.DB
	col    *chromem.Collection
	closed bool
}

// NewChromemEngine opens (or creates) the persistent store at
// cfg.MemoryPath and the collection for cfg.UserID.
func NewChromemEngine(cfg *Config) (*ChromemEngine, error) {
	db, err := chromem.NewPersistentDB(cfg.MemoryPath, false)
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	col, err := db.GetOrCreateCollection("user_"+cfg.UserID, nil, embeddingFunc(cfg))
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}

	return &ChromemEngine{db: db, col: col}, nil
}

// embeddingFunc selects the embedding backend from config. chromem-go
// computes embeddings remotely; nothing is embedded in-process.
func embeddingFunc(cfg *Config) chromem.EmbeddingFunc {
	emb := cfg.Embeddings
	switch emb.Provider {
	case "ollama":
		return chromem.NewEmbeddingFuncOllama(emb.Model, emb.BaseURL)
	default:
		if emb.BaseURL != "" {
			return chromem.NewEmbeddingFuncOpenAICompat(emb.BaseURL, emb.APIKey, emb.Model, nil)
		}
		return chromem.NewEmbeddingFuncOpenAI(emb.APIKey, chromem.EmbeddingModelOpenAI(emb.Model))
	}
}

func (e *ChromemEngine) Add(ctx context.Context, text string, metadata Metadata) (*AddResult, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}

	id := uuid.NewString()

	meta := map[string]string{metaCreatedAt: time.Now().UTC().Format(time.RFC3339)}
	for k, v := range metadata {
		meta[k] = v
	}

	doc := chromem.Document{
		ID:       id,
		Content:  text,
		Metadata: meta,
	}

	if err := e.col.AddDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}

	return &AddResult{Results: []MemoryEvent{{ID: id, Memory: text, Event: "ADD"}}}, nil
}

func (e *ChromemEngine) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}

	// chromem rejects nResults larger than the collection.
	count := e.col.Count()
	if count == 0 {
		return &SearchResponse{}, nil
	}
	if limit <= 0 || limit > count {
		limit = count
	}

	results, err := e.col.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	resp := &SearchResponse{Results: make([]MemoryRecord, 0, len(results))}
	for _, r := range results {
		rec := MemoryRecord{
			ID:       r.ID,
			Memory:   r.Content,
			Score:    r.Similarity,
			Metadata: Metadata{},
		}
		for k, v := range r.Metadata {
			if k == metaCreatedAt {
				if t, err := time.Parse(time.RFC3339, v); err == nil {
					rec.CreatedAt = t
				}
				continue
			}
			rec.Metadata[k] = v
		}
		resp.Results = append(resp.Results, rec)
	}

	return resp, nil
}

func (e *ChromemEngine) Update(ctx context.Context, id, text string) error {
	if e.closed {
		return ErrEngineClosed
	}

	doc, err := e.col.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	if err := e.col.Delete(ctx, nil, nil, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	// Keep the ID and metadata; re-embedding happens on add.
	doc.Content = text
	doc.Embedding = nil
	if err := e.col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("re-add document: %w", err)
	}

	return nil
}

func (e *ChromemEngine) Close() error {
	e.closed = true
	return nil
}
