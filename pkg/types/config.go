package types

import "time"

// APIConfig holds settings for the Anthropic Messages API.
type APIConfig struct {
	// Model is the model identifier (e.g. "claude-sonnet-4-20250514").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates requests. Usually loaded from .secrets/anthropic-api-key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion length. Category names are short, so the
	// default (100) leaves ample room.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// BaseDelay is the minimum pause between consecutive API calls (default 1.5s,
	// sized for a 50 RPM rate limit).
	BaseDelay time.Duration `json:"base_delay" yaml:"base_delay"`

	// MaxRetries is the number of retry attempts on rate-limit responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// Timeout is the HTTP request timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ProcessingConfig holds settings for the categorization pipeline.
type ProcessingConfig struct {
	// FuzzyMatchThreshold is the minimum similarity ratio (0-100) for a raw
	// category to be standardized to a canonical one (default 80).
	FuzzyMatchThreshold int `json:"fuzzy_match_threshold" yaml:"fuzzy_match_threshold"`

	// ProgressSaveInterval is the number of categorized rows between progress
	// store flushes (default 50).
	ProgressSaveInterval int `json:"progress_save_interval" yaml:"progress_save_interval"`
}

// PipelineConfig groups the working directories the pipeline reads and writes.
type PipelineConfig struct {
	// RawDir is the git-ignored staging directory for PowerSearch exports
	// (default "data/raw").
	RawDir string `json:"raw_dir" yaml:"raw_dir"`

	// InterimDir receives stage-one output and the progress database
	// (default "data/interim").
	InterimDir string `json:"interim_dir" yaml:"interim_dir"`

	// ProcessedDir receives the final standardized output (default "data/processed").
	ProcessedDir string `json:"processed_dir" yaml:"processed_dir"`
}
