package internal

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// TroubleshootService is the knowledge base of configuration errors and
// their verified fixes. Search it first, write to it after every fix.
type TroubleshootService struct {
	manager *Manager
	logger  *zap.Logger
}

func NewTroubleshootService(manager *Manager, logger *zap.Logger) *TroubleshootService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TroubleshootService{manager: manager, logger: logger}
}

// Log records an error signature, its root cause and the fix that worked.
func (s *TroubleshootService) Log(ctx context.Context, errorSignature, rootCause, fixSteps string) (string, error) {
	if errorSignature == "" {
		return "", fmt.Errorf("%w: error signature is required", ErrInvalidInput)
	}

	msg := fmt.Sprintf("Troubleshooting: %s\nCause: %s\nFix: %s", errorSignature, rootCause, fixSteps)

	if _, err := s.manager.AddWithRedaction(ctx, msg, Metadata{"type": TypeTroubleshoot}); err != nil {
		s.logger.Error("troubleshooting log failed", zap.String("signature", errorSignature), zap.Error(err))
		return "", fmt.Errorf("add troubleshooting entry: %w", err)
	}

	s.logger.Info("troubleshooting entry added", zap.String("signature", errorSignature))
	return "Troubleshooting Knowledge Base Updated. Added: " + errorSignature, nil
}

// Guide searches past solutions for a similar error.
func (s *TroubleshootService) Guide(ctx context.Context, errorKeyword string) ([]MemoryRecord, error) {
	resp, err := s.manager.Search(ctx, "troubleshooting "+errorKeyword, DefaultSearchLimit)
	if err != nil {
		s.logger.Error("troubleshooting search failed", zap.String("keyword", errorKeyword), zap.Error(err))
		return nil, fmt.Errorf("retrieve troubleshooting logs for %q: %w", errorKeyword, err)
	}

	s.logger.Info("troubleshooting logs retrieved", zap.Int("count", len(resp.Results)), zap.String("keyword", errorKeyword))
	return resp.Results, nil
}
