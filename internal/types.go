package internal

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("memory not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNoVCS        = errors.New("no version control system detected")
	ErrSearchFailed = errors.New("memory search failed")
	ErrNoProvider   = errors.New("llm provider not configured")
	ErrEngineClosed = errors.New("memory engine is closed")
)

// Metadata is attached to every stored memory. The "type" key is the
// coarse filter used by retrieval queries.
type Metadata map[string]string

// Well-known metadata types.
const (
	TypeBaseline     = "baseline"
	TypeChange       = "change"
	TypeDrift        = "drift"
	TypeHistory      = "history"
	TypeLifecycle    = "lifecycle"
	TypeRoadmap      = "roadmap"
	TypeTrial        = "trial"
	TypeTroubleshoot = "troubleshoot"
	TypeNote         = "note"
)

// MemoryRecord is a single memory returned by the engine.
type MemoryRecord struct {
	ID        string    `json:"id"`
	Memory    string    `json:"memory"`
	Score     float32   `json:"score,omitempty"`
	Metadata  Metadata  `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Valid reports whether the record has the fields every engine result
// must carry. Records failing this check are dropped by the manager.
func (r MemoryRecord) Valid() bool {
	return r.ID != "" && r.Memory != ""
}

// MemoryEvent describes what the engine did with an added text.
type MemoryEvent struct {
	ID     string `json:"id"`
	Memory string `json:"memory"`
	Event  string `json:"event"` // ADD, UPDATE or DELETE
}

type AddResult struct {
	Results []MemoryEvent `json:"results"`
}

type SearchResponse struct {
	Results []MemoryRecord `json:"results"`
}

// AppConfig describes one managed configuration on the user's system.
type AppConfig struct {
	AppName         string   `json:"app_name" validate:"required"`
	SourcePath      string   `json:"source_path" validate:"required"`
	DestinationPath string   `json:"destination_path" validate:"required"`
	FileStructure   string   `json:"file_structure" validate:"required,oneof=monolithic modular"`
	Dependencies    []string `json:"dependencies"`
}

// SystemMetadata is the hardware and software environment snapshot
// recorded in the baseline.
type SystemMetadata struct {
	OSVersion            string `json:"os_version" validate:"required"`
	MainShell            string `json:"main_shell" validate:"required"`
	MainTerminalEmulator string `json:"main_terminal_emulator"`
	MainPromptEngine     string `json:"main_prompt_engine"`
	MainEditor           string `json:"main_editor"`
	VersionControl       string `json:"version_control"`
	PackageManager       string `json:"package_manager"`
	CPU                  string `json:"cpu"`
	Extra                string `json:"extra"`
}

// AppChange records a configuration change with its rationale.
type AppChange struct {
	AppName           string `json:"app_name" validate:"required"`
	ChangeType        string `json:"change_type" validate:"required"`
	Description       string `json:"description" validate:"required"`
	Rationale         string `json:"rationale" validate:"required"`
	ImprovementMetric string `json:"improvement_metric"`
	VCSCommitID       string `json:"vcs_commit_id,omitempty"`
}

type DriftStatus string

const (
	DriftClean    DriftStatus = "clean"
	DriftModified DriftStatus = "modified"
	DriftError    DriftStatus = "error"
)

// DriftResult reports divergence between the filesystem and the last
// committed VCS state.
type DriftResult struct {
	Status        DriftStatus `json:"status"`
	VCSType       string      `json:"vcs_type"`
	ModifiedFiles []string    `json:"modified_files"`
	TotalChanges  int         `json:"total_changes"`
	Message       string      `json:"message"`
}

type LifecycleAction string

const (
	ActionDeprecate LifecycleAction = "DEPRECATE"
	ActionReplace   LifecycleAction = "REPLACE"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)
