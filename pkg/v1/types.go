package v1

import "time"

// Memory is a stored memory entry returned by search operations.
type Memory struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Score     float32           `json:"score,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at,omitempty"`
}

// Change describes a configuration change to record.
type Change struct {
	App         string `json:"app"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Rationale   string `json:"rationale"`
	Improves    string `json:"improves,omitempty"`
	CommitID    string `json:"commit_id,omitempty"`
}

// DriftReport summarizes divergence between the dotfiles directory and
// its committed state.
type DriftReport struct {
	Status        string   `json:"status"`
	VCS           string   `json:"vcs"`
	ModifiedFiles []string `json:"modified_files,omitempty"`
	Message       string   `json:"message"`
}
