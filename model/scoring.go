package model

type PickInfo struct {
	Round int `json:"round"`
	Pick  int `json:"pick"`
}

// TeamScore is one team's point breakdown in the standings.
type TeamScore struct {
	TeamID          int32    `json:"team_id"`
	TeamName        string   `json:"team_name"`
	League          League   `json:"league"`
	Conference      string   `json:"conference"`
	TotalWins       int      `json:"total_wins"`
	TotalLosses     int      `json:"total_losses"`
	RegularWins     int      `json:"regular_wins"`
	Record          string   `json:"record"`
	ConfChampBonus  int      `json:"conf_champ_bonus"`
	PlayoffBonus    int      `json:"playoff_bonus"`
	ChampBonus      int      `json:"championship_bonus"`
	VegasBonus      int      `json:"vegas_bonus"`
	VegasTotal      *float64 `json:"vegas_total"`
	PostseasonTotal int      `json:"postseason_points"`
	TotalPoints     int      `json:"total_points"`
	PickInfo        PickInfo `json:"pick_info"`
}

type ManagerStanding struct {
	ManagerID        int32       `json:"manager_id"`
	ManagerName      string      `json:"manager_name"`
	DraftPosition    int         `json:"draft_position"`
	Rank             int         `json:"rank"`
	TotalPoints      int         `json:"total_points"`
	PostseasonPoints int         `json:"postseason_points"` // tiebreak field
	Teams            []TeamScore `json:"teams"`
	TeamCount        int         `json:"team_count"`
}

// ManagerSummary is a ManagerStanding with per-league splits for the detail view.
type ManagerSummary struct {
	ManagerStanding
	CollegeTeams []TeamScore `json:"college_teams"`
	NFLTeams     []TeamScore `json:"nfl_teams"`
	CollegeCount int         `json:"college_count"`
	NFLCount     int         `json:"nfl_count"`
}

type LeagueStats struct {
	TotalGames    int     `json:"total_games"`
	TotalWins     int     `json:"total_wins"`
	TotalTeams    int     `json:"total_teams"`
	TotalManagers int     `json:"total_managers"`
	CollegeTeams  int     `json:"college_teams"`
	NFLTeams      int     `json:"nfl_teams"`
	CurrentWeek   int     `json:"current_week"`
	GamesPerTeam  float64 `json:"games_per_team"`
}
