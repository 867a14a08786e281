package model

import (
	"time"
)

// Sources for weekly line updates. Manual entries are only ever created
// through the manual update entry point, never by provider iteration.
const (
	SourceManual    = "manual"
	SourceESPN      = "espn"
	SourceProjected = "projected"
)

// WeeklyLine is a per-week refresh of a team's win-expectation number. The
// preseason line on the Team is immutable; these rows track how the
// expectation moves during the season.
type WeeklyLine struct {
	ID           int32
	TeamID       int32
	Week         int
	Line         float64
	OriginalLine *float64 // the preseason line at the time of the update
	Source       string
	Notes        string
	Created      time.Time
	Updated      time.Time
}

type WeeklyLineEntry struct {
	Week     int      `json:"week"`
	Line     float64  `json:"line"`
	Original *float64 `json:"original"`
	Source   string   `json:"source"`
	Notes    string   `json:"notes"`
	Updated  string   `json:"updated_at"`
}

type TeamLineHistory struct {
	TeamName            string            `json:"team_name"`
	CurrentOriginalLine *float64          `json:"current_original_line"`
	History             []WeeklyLineEntry `json:"history"`
}

// LineUpdateSummary reports the outcome of one orchestrator run.
type LineUpdateSummary struct {
	Week        int       `json:"week"`
	Attempted   int       `json:"attempted"`
	Updated     int       `json:"updated"`
	Skipped     int       `json:"skipped"`
	Errors      int       `json:"errors"`
	SourcesUsed []string  `json:"sources_used"`
	Timestamp   time.Time `json:"timestamp"`
}
