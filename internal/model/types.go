// Package model defines shared data structures.
package model

import "time"

// Snippet is a block of code the user is asked to retype.
type Snippet struct {
	ID       int      `json:"id"`
	Lines    []string `json:"lines"`
	URL      string   `json:"url"`
	Author   string   `json:"author"`
	Language string   `json:"language"`
}

// Config defines practice settings.
type Config struct {
	Languages []string
	MaxLines  int
	MaxCols   int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Lang        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// SessionStats captures a completed typing attempt.
type SessionStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Language   string
	SnippetURL string
	Lines      int
	Correct    int
	Incorrect  int
	DurationMs int64
}

// SessionAggregate summarizes a stored session for reporting.
type SessionAggregate struct {
	SessionID  int64
	EndedAt    time.Time
	Language   string
	Lines      int
	Correct    int
	Incorrect  int
	DurationMs int64
}

// LanguageAggregate totals stored sessions per language.
type LanguageAggregate struct {
	Language   string
	Sessions   int
	Lines      int
	Correct    int
	Incorrect  int
	DurationMs int64
}
