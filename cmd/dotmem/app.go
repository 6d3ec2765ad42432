package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/4thel00z/dotmem/internal"
	"go.uber.org/zap"
)

// app wires configuration, the memory engine and the services. Setup is
// lazy so commands like sysinfo work without a reachable embeddings
// endpoint, and tests can inject fakes.
type app struct {
	configPath  string
	dotfilesDir string
	verbose     bool

	mu      sync.Mutex
	ready   bool
	initErr error

	cfg     *internal.Config
	logger  *zap.Logger
	manager *internal.Manager
	journal *internal.Journal
	tools   *internal.Toolset
}

func configPathFromEnv() string {
	if v := os.Getenv("DOTMEM_CONFIG"); v != "" {
		return v
	}
	return internal.ConfigPath()
}

// setup loads config and opens the engine on first use.
func (a *app) setup() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ready {
		return a.initErr
	}
	a.ready = true

	cfg, err := internal.LoadConfig(a.configPath)
	if err != nil {
		a.initErr = err
		return err
	}
	if a.dotfilesDir != "" {
		cfg.DotfilesDir = a.dotfilesDir
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		a.initErr = err
		return err
	}
	a.logger = logger

	engine, err := internal.NewChromemEngine(cfg)
	if err != nil {
		a.initErr = fmt.Errorf("open memory engine: %w", err)
		return a.initErr
	}

	if cfg.EnableJournal {
		a.journal, err = internal.OpenJournal(cfg.JournalPath())
		if err != nil {
			logger.Warn("journal unavailable", zap.Error(err))
			a.journal = nil
		}
	}

	a.manager = internal.NewManager(engine, a.journal, cfg.EnableSecretsScan, logger)

	if cfg.EnableDistillation {
		if p, err := internal.NewProvider(context.Background(), cfg.LLM); err != nil {
			logger.Warn("distillation unavailable", zap.Error(err))
		} else {
			a.manager.SetDistiller(p)
		}
	}

	a.tools = a.buildToolset(nil)

	return nil
}

func (a *app) buildToolset(provider internal.Provider) *internal.Toolset {
	return &internal.Toolset{
		Baseline:     internal.NewBaselineService(a.manager, a.logger),
		Change:       internal.NewChangeService(a.manager, a.logger),
		Lifecycle:    internal.NewLifecycleService(a.manager, a.logger),
		Drift:        internal.NewDriftService(a.manager, a.cfg.DotfilesDir, a.cfg.VCSTimeout, a.logger),
		History:      internal.NewHistoryService(a.manager, a.cfg.DotfilesDir, a.cfg.VCSTimeout, a.logger),
		Roadmap:      internal.NewRoadmapService(a.manager, a.logger),
		Trial:        internal.NewTrialService(a.manager, a.logger),
		Troubleshoot: internal.NewTroubleshootService(a.manager, a.logger),
		Query:        internal.NewQueryService(a.manager, provider, a.logger),
		Update:       internal.NewUpdateService(a.manager, a.logger),
	}
}

// provider builds the LLM provider on demand; only summarization and the
// agent loop need one.
func (a *app) provider(ctx context.Context) (internal.Provider, error) {
	if err := a.setup(); err != nil {
		return nil, err
	}
	return internal.NewProvider(ctx, a.cfg.LLM)
}

func (a *app) close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.manager != nil {
		_ = a.manager.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
