package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// BaselineService establishes the ground truth for a user's environment.
// Called once per machine, before any other tool is useful.
type BaselineService struct {
	manager  *Manager
	validate *validator.Validate
	logger   *zap.Logger
}

func NewBaselineService(manager *Manager, logger *zap.Logger) *BaselineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BaselineService{
		manager:  manager,
		validate: validator.New(),
		logger:   logger,
	}
}

// Initialize records the dotfiles manager in use, the full config map and
// the system metadata as a single baseline memory.
func (s *BaselineService) Initialize(ctx context.Context, managerName string, configMap []AppConfig, sysMeta SystemMetadata) (string, error) {
	if managerName == "" {
		return "", fmt.Errorf("%w: manager name is required", ErrInvalidInput)
	}
	if err := s.validate.Struct(sysMeta); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for i, app := range configMap {
		if err := s.validate.Struct(app); err != nil {
			return "", fmt.Errorf("%w: config %d: %v", ErrInvalidInput, i, err)
		}
	}

	data := formatBaseline(managerName, configMap, sysMeta)

	if _, err := s.manager.AddWithRedaction(ctx, data, Metadata{"type": TypeBaseline}); err != nil {
		s.logger.Error("baseline initialization failed", zap.Error(err))
		return "", fmt.Errorf("initialize baseline: %w", err)
	}

	s.logger.Info("system baseline initialized", zap.String("manager", managerName), zap.Int("configs", len(configMap)))
	return "System Baseline Initialized:\n" + data, nil
}

func formatBaseline(managerName string, configMap []AppConfig, sysMeta SystemMetadata) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "User System -> dotfile_manager: %s\n", managerName)

	sb.WriteString("configs:\n")
	for _, app := range configMap {
		fmt.Fprintf(&sb, "  - %s: %s -> %s (%s", app.AppName, app.SourcePath, app.DestinationPath, app.FileStructure)
		if len(app.Dependencies) > 0 {
			fmt.Fprintf(&sb, ", deps: %s", strings.Join(app.Dependencies, ", "))
		}
		sb.WriteString(")\n")
	}

	fmt.Fprintf(&sb, "system_metadata: os=%s shell=%s terminal=%s prompt=%s editor=%s vcs=%s pkg=%s cpu=%s",
		sysMeta.OSVersion, sysMeta.MainShell, sysMeta.MainTerminalEmulator, sysMeta.MainPromptEngine,
		sysMeta.MainEditor, sysMeta.VersionControl, sysMeta.PackageManager, sysMeta.CPU)
	if sysMeta.Extra != "" {
		fmt.Fprintf(&sb, " extra=%s", sysMeta.Extra)
	}

	return sb.String()
}
