package internal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// QueryService retrieves accumulated context about a specific app, and
// can condense it through the LLM provider.
type QueryService struct {
	manager  *Manager
	provider Provider
	logger   *zap.Logger
}

func NewQueryService(manager *Manager, provider Provider, logger *zap.Logger) *QueryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{manager: manager, provider: provider, logger: logger}
}

// Context returns the memories most relevant to an app: past changes,
// preferences, troubleshooting notes.
func (s *QueryService) Context(ctx context.Context, appName string) ([]MemoryRecord, error) {
	if appName == "" {
		return nil, fmt.Errorf("%w: app name is required", ErrInvalidInput)
	}

	query := fmt.Sprintf("%s configuration preferences changes context", appName)
	resp, err := s.manager.Search(ctx, query, DefaultSearchLimit)
	if err != nil {
		s.logger.Error("context retrieval failed", zap.String("app", appName), zap.Error(err))
		return nil, fmt.Errorf("get context for %s: %w", appName, err)
	}

	s.logger.Info("context retrieved", zap.String("app", appName), zap.Int("count", len(resp.Results)))
	return resp.Results, nil
}

// Summarize condenses an app's context into a structured summary.
// Requires a configured provider.
func (s *QueryService) Summarize(ctx context.Context, appName string) (*ContextSummary, error) {
	if s.provider == nil {
		return nil, ErrNoProvider
	}

	records, err := s.Context(ctx, appName)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &ContextSummary{Overview: "No recorded context for " + appName}, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Summarize what is known about the user's %s configuration:\n\n", appName)
	for _, rec := range records {
		fmt.Fprintf(&sb, "- %s\n", rec.Memory)
	}

	var summary ContextSummary
	if err := s.provider.GenerateObject(ctx, sb.String(), &summary); err != nil {
		return nil, fmt.Errorf("summarize context: %w", err)
	}

	return &summary, nil
}

// UpdateService corrects stored memories that turned out to be wrong or
// outdated.
type UpdateService struct {
	manager *Manager
	logger  *zap.Logger
}

func NewUpdateService(manager *Manager, logger *zap.Logger) *UpdateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdateService{manager: manager, logger: logger}
}

// Rewrite replaces the content of the memory identified by memoryID.
func (s *UpdateService) Rewrite(ctx context.Context, memoryID, newText string) (string, error) {
	if memoryID == "" {
		return "", fmt.Errorf("%w: memory id is required", ErrInvalidInput)
	}
	if newText == "" {
		return "", fmt.Errorf("%w: new text is required", ErrInvalidInput)
	}

	if err := s.manager.Update(ctx, memoryID, newText); err != nil {
		s.logger.Error("memory rewrite failed", zap.String("id", memoryID), zap.Error(err))
		return "", fmt.Errorf("update memory %s: %w", memoryID, err)
	}

	s.logger.Info("memory updated", zap.String("id", memoryID))
	return fmt.Sprintf("Memory %s updated successfully.", memoryID), nil
}
