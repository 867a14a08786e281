package model

// TeamProjection is the projected season-end outcome for one team. When a
// per-team computation fails the projection degrades to a safe default and
// Err carries the reason; the manager-level sum still proceeds.
type TeamProjection struct {
	TeamID          int32    `json:"team_id"`
	TeamName        string   `json:"team_name"`
	League          League   `json:"league"`
	CurrentWins     int      `json:"current_wins"`
	GamesPlayed     int      `json:"games_played"`
	RemainingGames  int      `json:"remaining_games"`
	ProjectedWins   float64  `json:"projected_wins"`
	OriginalLine    *float64 `json:"original_vegas_line"`
	VegasBonus      float64  `json:"vegas_bonus"`
	PostseasonBonus float64  `json:"postseason_bonus"`
	ProjectedTotal  float64  `json:"projected_total"`
	Confidence      int      `json:"confidence"`
	Err             string   `json:"error,omitempty"`
}

type ManagerProjection struct {
	ManagerID       int32            `json:"manager_id"`
	ManagerName     string           `json:"manager_name"`
	DraftPosition   int              `json:"draft_position"`
	ProjectedRank   int              `json:"projected_rank"`
	ProjectedTotal  float64          `json:"projected_total"`
	Teams           []TeamProjection `json:"teams"`
	CalculationWeek int              `json:"calculation_week"`
}
