package espn

import (
	"time"
)

// Wire types for the slices of ESPN's responses the tracker reads. The real
// payloads are much larger; everything not listed here is ignored.

type scheduleResponse struct {
	Events []scheduleEvent `json:"events"`
}

type scheduleEvent struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Week         eventWeek     `json:"week"`
	Competitions []competition `json:"competitions"`
}

type eventWeek struct {
	Number int `json:"number"`
}

type competition struct {
	Status      competitionStatus `json:"status"`
	Competitors []competitor      `json:"competitors"`
}

type competitionStatus struct {
	Type struct {
		Completed bool `json:"completed"`
	} `json:"type"`
}

type competitor struct {
	Team struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"team"`
	Score struct {
		Value float64 `json:"value"`
	} `json:"score"`
}

type teamResponse struct {
	Team struct {
		Odds []teamOdds `json:"odds"`
	} `json:"team"`
}

type teamOdds struct {
	WinTotal *float64 `json:"winTotal"`
}

// ESPN event dates come back as "2024-09-08T17:00Z", without seconds.
var espnDateLayouts = []string{time.RFC3339, "2006-01-02T15:04Z07:00"}

func parseESPNDate(s string) time.Time {
	for _, layout := range espnDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
