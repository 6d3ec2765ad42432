package internal

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RoadmapService stores long-term goals and "nice to have" ideas the
// user is not ready to implement yet.
type RoadmapService struct {
	manager *Manager
	logger  *zap.Logger
}

func NewRoadmapService(manager *Manager, logger *zap.Logger) *RoadmapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoadmapService{manager: manager, logger: logger}
}

// Log saves a roadmap idea with its hypothesis, blockers and priority.
func (s *RoadmapService) Log(ctx context.Context, ideaTitle, hypothesis, blockers string, priority Priority) (string, error) {
	if ideaTitle == "" {
		return "", fmt.Errorf("%w: idea title is required", ErrInvalidInput)
	}
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, priority)
	}

	msg := fmt.Sprintf("Roadmap Idea: %s\nHypothesis: %s\nBlockers: %s\nPriority: %s",
		ideaTitle, hypothesis, blockers, priority)

	if _, err := s.manager.AddWithRedaction(ctx, msg, Metadata{"type": TypeRoadmap, "priority": string(priority)}); err != nil {
		s.logger.Error("roadmap entry failed", zap.String("title", ideaTitle), zap.Error(err))
		return "", fmt.Errorf("save roadmap entry: %w", err)
	}

	s.logger.Info("roadmap entry saved", zap.String("title", ideaTitle), zap.String("priority", string(priority)))
	return "Roadmap Entry saved", nil
}

// Query retrieves roadmap items by status and optional priority.
func (s *RoadmapService) Query(ctx context.Context, status string, priority Priority) ([]MemoryRecord, error) {
	query := "roadmap " + status
	if priority != "" {
		query += fmt.Sprintf(" %s priority", priority)
	}

	resp, err := s.manager.Search(ctx, query, DefaultSearchLimit)
	if err != nil {
		s.logger.Error("roadmap query failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("query roadmap: %w", err)
	}

	s.logger.Info("roadmap items retrieved", zap.Int("count", len(resp.Results)), zap.String("query", query))
	return resp.Results, nil
}

// TrialService tracks tools installed "just to try it out", so future
// sessions can check in on the verdict.
type TrialService struct {
	manager *Manager
	logger  *zap.Logger
}

func NewTrialService(manager *Manager, logger *zap.Logger) *TrialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrialService{manager: manager, logger: logger}
}

// Start sets an evaluation timer for a tool or plugin.
func (s *TrialService) Start(ctx context.Context, name string, trialDays int, successCriteria string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: trial name is required", ErrInvalidInput)
	}
	if trialDays <= 0 {
		return "", fmt.Errorf("%w: trial period must be positive", ErrInvalidInput)
	}

	msg := fmt.Sprintf("Tool/Plugin Trial: %s for %d days. Success if: %s", name, trialDays, successCriteria)

	if _, err := s.manager.AddWithRedaction(ctx, msg, Metadata{"type": TypeTrial, "active": "true"}); err != nil {
		s.logger.Error("trial start failed", zap.String("name", name), zap.Error(err))
		return "", fmt.Errorf("set trial for %s: %w", name, err)
	}

	s.logger.Info("trial started", zap.String("name", name), zap.Int("days", trialDays))
	return fmt.Sprintf("%d days Trial has been set for %s", trialDays, name), nil
}

// ListActive retrieves tools currently in a probationary period.
// minDays is accepted but not applied as a filter: the trial duration
// lives in the memory text, and retrieval is semantic.
func (s *TrialService) ListActive(ctx context.Context, minDays int) ([]MemoryRecord, error) {
	resp, err := s.manager.Search(ctx, "active plugin trials", DefaultSearchLimit)
	if err != nil {
		s.logger.Error("trial listing failed", zap.Error(err))
		return nil, fmt.Errorf("list trials: %w", err)
	}

	s.logger.Info("active trials retrieved", zap.Int("count", len(resp.Results)))
	return resp.Results, nil
}
