package v1

import (
	"context"
	"fmt"

	"github.com/4thel00z/dotmem/internal"
	"go.uber.org/zap"
)

// Client provides programmatic access to the dotfiles memory store.
type Client struct {
	manager *internal.Manager
	tools   *internal.Toolset
}

// New creates a Client. Configuration is read from the default config
// file (or the one given via WithConfigPath) and then adjusted by the
// remaining options.
func New(opts ...Option) (*Client, error) {
	cc := &clientConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	path := cc.configPath
	if path == "" {
		path = internal.ConfigPath()
	}

	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cc.userID != "" {
		cfg.UserID = cc.userID
	}
	if cc.memoryPath != "" {
		cfg.MemoryPath = cc.memoryPath
	}
	if cc.dotfilesDir != "" {
		cfg.DotfilesDir = cc.dotfilesDir
	}
	if cc.noJournal {
		cfg.EnableJournal = false
	}
	if cc.noRedaction {
		cfg.EnableSecretsScan = false
	}

	engine, err := internal.NewChromemEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("open engine: %w", err)
	}

	var journal *internal.Journal
	if cfg.EnableJournal {
		journal, err = internal.OpenJournal(cfg.JournalPath())
		if err != nil {
			journal = nil
		}
	}

	manager := internal.NewManager(engine, journal, cfg.EnableSecretsScan, zap.NewNop())

	if cfg.EnableDistillation {
		if p, err := internal.NewProvider(context.Background(), cfg.LLM); err == nil {
			manager.SetDistiller(p)
		}
	}

	return newClient(cfg, manager), nil
}

func newClient(cfg *internal.Config, manager *internal.Manager) *Client {
	logger := zap.NewNop()
	return &Client{
		manager: manager,
		tools: &internal.Toolset{
			Baseline:     internal.NewBaselineService(manager, logger),
			Change:       internal.NewChangeService(manager, logger),
			Lifecycle:    internal.NewLifecycleService(manager, logger),
			Drift:        internal.NewDriftService(manager, cfg.DotfilesDir, cfg.VCSTimeout, logger),
			History:      internal.NewHistoryService(manager, cfg.DotfilesDir, cfg.VCSTimeout, logger),
			Roadmap:      internal.NewRoadmapService(manager, logger),
			Trial:        internal.NewTrialService(manager, logger),
			Troubleshoot: internal.NewTroubleshootService(manager, logger),
			Query:        internal.NewQueryService(manager, nil, logger),
			Update:       internal.NewUpdateService(manager, logger),
		},
	}
}

// Remember stores a free-form note and returns its id.
func (c *Client) Remember(ctx context.Context, text string) (string, error) {
	result, err := c.manager.AddWithRedaction(ctx, text, internal.Metadata{"type": internal.TypeNote})
	if err != nil {
		return "", fmt.Errorf("remember: %w", err)
	}
	if len(result.Results) == 0 {
		return "", fmt.Errorf("remember: engine returned no events")
	}
	return result.Results[0].ID, nil
}

// Search returns the memories most similar to the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Memory, error) {
	resp, err := c.manager.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return toMemories(resp.Results), nil
}

// Update rewrites the memory identified by id.
func (c *Client) Update(ctx context.Context, id, text string) error {
	if _, err := c.tools.Update.Rewrite(ctx, id, text); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// RecordChange stores a configuration change with its rationale.
func (c *Client) RecordChange(ctx context.Context, change Change) error {
	_, err := c.tools.Change.Commit(ctx, internal.AppChange{
		AppName:           change.App,
		ChangeType:        change.Kind,
		Description:       change.Description,
		Rationale:         change.Rationale,
		ImprovementMetric: change.Improves,
		VCSCommitID:       change.CommitID,
	})
	if err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}

// Context returns everything remembered about an app.
func (c *Client) Context(ctx context.Context, app string) ([]Memory, error) {
	records, err := c.tools.Query.Context(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("context: %w", err)
	}
	return toMemories(records), nil
}

// DriftCheck compares the dotfiles directory against its committed
// state. Failures are reported in the result, never as an error.
func (c *Client) DriftCheck(ctx context.Context) *DriftReport {
	result := c.tools.Drift.Check(ctx)
	return &DriftReport{
		Status:        string(result.Status),
		VCS:           result.VCSType,
		ModifiedFiles: result.ModifiedFiles,
		Message:       result.Message,
	}
}

// IngestHistory backfills memory from the dotfiles commit log.
func (c *Client) IngestHistory(ctx context.Context, count int) error {
	if _, err := c.tools.History.Ingest(ctx, count); err != nil {
		return fmt.Errorf("ingest history: %w", err)
	}
	return nil
}

// Close releases the underlying engine.
func (c *Client) Close() error {
	return c.manager.Close()
}

func toMemories(records []internal.MemoryRecord) []Memory {
	memories := make([]Memory, 0, len(records))
	for _, rec := range records {
		memories = append(memories, Memory{
			ID:        rec.ID,
			Content:   rec.Memory,
			Score:     rec.Score,
			Metadata:  rec.Metadata,
			CreatedAt: rec.CreatedAt,
		})
	}
	return memories
}
