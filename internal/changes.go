package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ChangeService records configuration changes with their rationale,
// building a semantic history richer than plain VCS commits.
type ChangeService struct {
	manager  *Manager
	validate *validator.Validate
	logger   *zap.Logger
}

func NewChangeService(manager *Manager, logger *zap.Logger) *ChangeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangeService{
		manager:  manager,
		validate: validator.New(),
		logger:   logger,
	}
}

// Commit stores the WHAT and WHY of a configuration change.
func (s *ChangeService) Commit(ctx context.Context, change AppChange) (string, error) {
	if err := s.validate.Struct(change); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s change(%s) -> %s\nWhy? %s\nImprovement: %s",
		change.AppName, change.ChangeType, change.Description, change.Rationale, change.ImprovementMetric)
	if change.VCSCommitID != "" {
		fmt.Fprintf(&sb, "\nVCS Commit: %s", change.VCSCommitID)
	}

	result, err := s.manager.AddWithRedaction(ctx, sb.String(), Metadata{"type": TypeChange})
	if err != nil {
		s.logger.Error("change commit failed", zap.String("app", change.AppName), zap.Error(err))
		return "", fmt.Errorf("commit change: %w", err)
	}

	s.logger.Info("change recorded", zap.String("app", change.AppName), zap.String("change_type", change.ChangeType))

	if len(result.Results) > 0 {
		return fmt.Sprintf("Success: memory %s added", result.Results[0].ID), nil
	}
	return "Success: change recorded", nil
}

// LifecycleService tracks tool migration, deprecation and removal, so
// the agent never suggests a tool the user already abandoned.
type LifecycleService struct {
	manager *Manager
	logger  *zap.Logger
}

func NewLifecycleService(manager *Manager, logger *zap.Logger) *LifecycleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LifecycleService{manager: manager, logger: logger}
}

// Track records a DEPRECATE or REPLACE event. REPLACE requires the
// incoming configuration.
func (s *LifecycleService) Track(ctx context.Context, action LifecycleAction, oldConfig AppConfig, newConfig *AppConfig, logic string) (string, error) {
	switch action {
	case ActionDeprecate, ActionReplace:
	default:
		return "", fmt.Errorf("%w: unknown lifecycle action %q", ErrInvalidInput, action)
	}
	if oldConfig.AppName == "" {
		return "", fmt.Errorf("%w: old config requires app name", ErrInvalidInput)
	}
	if action == ActionReplace && newConfig == nil {
		return "", fmt.Errorf("%w: REPLACE requires a new config", ErrInvalidInput)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Lifecycle Event: %s on %s. ", action, oldConfig.AppName)
	if newConfig != nil {
		fmt.Fprintf(&sb, "Replaced by %s. ", newConfig.AppName)
	}
	fmt.Fprintf(&sb, "Logic: %s", logic)

	if _, err := s.manager.AddWithRedaction(ctx, sb.String(), Metadata{"type": TypeLifecycle}); err != nil {
		s.logger.Error("lifecycle event failed", zap.String("app", oldConfig.AppName), zap.Error(err))
		return "", fmt.Errorf("track lifecycle event: %w", err)
	}

	output := sb.String() + " has been logged in memory"
	s.logger.Info("lifecycle event recorded", zap.String("action", string(action)), zap.String("app", oldConfig.AppName))
	return output, nil
}
