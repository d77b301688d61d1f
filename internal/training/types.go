package training

import "time"

// RunStatus represents the current state of a training run
type RunStatus string

const (
	StatusPending    RunStatus = "pending"
	StatusProcessing RunStatus = "processing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// Source records what started a run.
type Source string

const (
	SourceManual    Source = "manual"
	SourceScheduled Source = "scheduled"
	SourceCLI       Source = "cli"
)

// Run tracks a single train-all execution.
type Run struct {
	ID            int64      `json:"id"`
	Status        RunStatus  `json:"status"`
	Source        Source     `json:"source"`
	TotalProducts int        `json:"total_products"`
	Trained       int        `json:"trained"`
	Skipped       int        `json:"skipped"`
	Failed        int        `json:"failed"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	ErrorMessage  string     `json:"error_message,omitempty"`
}

// Config holds configuration for the trainer
type Config struct {
	Workers int // Number of products fitted concurrently
	Horizon int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Workers: 4,
		Horizon: 14,
	}
}
