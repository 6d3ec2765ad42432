package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DriftService compares the dotfiles filesystem state against the last
// committed VCS state. Run at the start of every session.
type DriftService struct {
	manager *Manager
	dir     string
	timeout time.Duration
	logger  *zap.Logger

	// detect is swapped out in tests.
	detect func(dir string, timeout time.Duration) (*VCS, error)
}

func NewDriftService(manager *Manager, dir string, timeout time.Duration, logger *zap.Logger) *DriftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DriftService{
		manager: manager,
		dir:     dir,
		timeout: timeout,
		logger:  logger,
		detect:  DetectVCS,
	}
}

// Check detects drift and, when found, stores the report with metadata
// {type: drift}. Failures surface as a DriftResult with status error,
// never as a panic or a bare error: the caller is an agent.
func (s *DriftService) Check(ctx context.Context) *DriftResult {
	vcs, err := s.detect(s.dir, s.timeout)
	if err != nil {
		s.logger.Error("drift check failed", zap.Error(err))
		return &DriftResult{
			Status:  DriftError,
			VCSType: string(VCSGit),
			Message: fmt.Sprintf("Error checking drift: %v", err),
		}
	}

	output, err := vcs.Status(ctx)
	if err != nil {
		s.logger.Error("vcs status failed", zap.String("vcs", string(vcs.Type)), zap.Error(err))
		return &DriftResult{
			Status:  DriftError,
			VCSType: string(vcs.Type),
			Message: fmt.Sprintf("Error checking drift: %v", err),
		}
	}

	if strings.TrimSpace(output) == "" {
		return &DriftResult{
			Status:  DriftClean,
			VCSType: string(vcs.Type),
			Message: "No drift detected. System matches repository state.",
		}
	}

	modified := ModifiedFiles(output)
	message := fmt.Sprintf("Drift detected at %s level:\n%s", vcs.Type, output)

	if _, err := s.manager.AddWithRedaction(ctx, message, Metadata{"type": TypeDrift, "vcs": string(vcs.Type)}); err != nil {
		s.logger.Warn("failed to store drift report", zap.Error(err))
	}

	s.logger.Info("drift detected", zap.String("vcs", string(vcs.Type)), zap.Int("files", len(modified)))

	return &DriftResult{
		Status:        DriftModified,
		VCSType:       string(vcs.Type),
		ModifiedFiles: modified,
		TotalChanges:  len(modified),
		Message:       message,
	}
}

// HistoryService backfills semantic memory from existing commit logs.
// Useful when first connecting to a dotfiles repository with history.
type HistoryService struct {
	manager *Manager
	dir     string
	timeout time.Duration
	logger  *zap.Logger

	detect func(dir string, timeout time.Duration) (*VCS, error)
}

func NewHistoryService(manager *Manager, dir string, timeout time.Duration, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{
		manager: manager,
		dir:     dir,
		timeout: timeout,
		logger:  logger,
		detect:  DetectVCS,
	}
}

// Ingest reads the last count commits and stores them as one memory with
// metadata {type: history}.
func (s *HistoryService) Ingest(ctx context.Context, count int) (string, error) {
	if count <= 0 {
		count = 20
	}

	vcs, err := s.detect(s.dir, s.timeout)
	if err != nil {
		return "", fmt.Errorf("detect vcs: %w", err)
	}

	output, err := vcs.Log(ctx, count)
	if err != nil {
		return "", fmt.Errorf("read history: %w", err)
	}

	text := fmt.Sprintf("Historical Context (%s):\n%s", vcs.Type, output)
	if _, err := s.manager.AddWithRedaction(ctx, text, Metadata{"type": TypeHistory}); err != nil {
		s.logger.Error("history ingestion failed", zap.Error(err))
		return "", fmt.Errorf("ingest history: %w", err)
	}

	result := fmt.Sprintf("Ingested last %d %s commits into memory.", count, vcs.Type)
	s.logger.Info("history ingested", zap.String("vcs", string(vcs.Type)), zap.Int("count", count))
	return result, nil
}
