package internal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const DefaultSearchLimit = 10

const distillPrompt = "Rewrite the following note about a dotfiles environment as short, durable facts. Keep every concrete detail: names, paths, versions, reasons. Reply with the facts only.\n\n"

// Manager is the high-level interface for semantic memory operations.
// It applies redaction before writes, mirrors writes into the journal,
// and normalizes the shapes the engine returns.
type Manager struct {
	engine    Engine
	journal   *Journal
	redact    bool
	distiller Provider
	logger    *zap.Logger
}

func NewManager(engine Engine, journal *Journal, redact bool, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		engine:  engine,
		journal: journal,
		redact:  redact,
		logger:  logger,
	}
}

// SetDistiller routes every new memory through the provider, which
// rewrites it into durable facts before storage.
func (m *Manager) SetDistiller(p Provider) {
	m.distiller = p
}

// AddWithRedaction stores text after masking secrets. With a distiller
// set, the redacted text is condensed before it reaches the engine.
func (m *Manager) AddWithRedaction(ctx context.Context, text string, metadata Metadata) (*AddResult, error) {
	if m.redact {
		text = RedactSecrets(text)
	}
	if m.distiller != nil {
		text = m.distillText(ctx, text)
	}

	result, err := m.engine.Add(ctx, text, metadata)
	if err != nil {
		m.logger.Error("failed to add memory", zap.Error(err))
		return nil, fmt.Errorf("add memory: %w", err)
	}

	if m.journal != nil {
		for _, ev := range result.Results {
			if err := m.journal.Record(ctx, ev.ID, metadata["type"], text); err != nil {
				m.logger.Warn("journal write failed", zap.String("id", ev.ID), zap.Error(err))
			}
		}
	}

	return result, nil
}

// Search runs a semantic query and drops malformed records.
func (m *Manager) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	resp, err := m.engine.Search(ctx, query, limit)
	if err != nil {
		m.logger.Error("memory search failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	if resp == nil {
		return &SearchResponse{}, nil
	}

	valid := resp.Results[:0]
	for _, rec := range resp.Results {
		if !rec.Valid() {
			m.logger.Warn("dropping malformed search result", zap.String("id", rec.ID))
			continue
		}
		valid = append(valid, rec)
	}
	resp.Results = valid

	return resp, nil
}

// Update rewrites an existing memory entry in place.
func (m *Manager) Update(ctx context.Context, memoryID, text string) error {
	if m.redact {
		text = RedactSecrets(text)
	}

	if err := m.engine.Update(ctx, memoryID, text); err != nil {
		m.logger.Error("memory update failed", zap.String("id", memoryID), zap.Error(err))
		return fmt.Errorf("update memory: %w", err)
	}

	if m.journal != nil {
		if err := m.journal.Rewrite(ctx, memoryID, text); err != nil {
			m.logger.Warn("journal rewrite failed", zap.String("id", memoryID), zap.Error(err))
		}
	}

	return nil
}

// distillText condenses raw text into facts. Failures fall back to the
// raw text; distillation must never lose a write.
func (m *Manager) distillText(ctx context.Context, text string) string {
	distilled, err := m.distiller.Complete(ctx, distillPrompt+text)
	if err != nil {
		m.logger.Warn("distillation failed, storing raw text", zap.Error(err))
		return text
	}

	distilled = strings.TrimSpace(distilled)
	if distilled == "" {
		return text
	}
	return distilled
}

func (m *Manager) Close() error {
	return m.engine.Close()
}
