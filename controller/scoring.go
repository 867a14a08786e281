package controller

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/btbtyler09/FF-Tracker/model"
)

// League scoring rules:
//   - +1 per win, any game type
//   - +1 for winning a conference championship game (college only)
//   - +1 for making the playoffs (either league)
//   - +1 for winning a championship game (either league)
//   - +1 for beating the preseason vegas win total with regular season wins
//
// Bonuses are per category, not per occurrence: two playoff wins still earn a
// single playoff participation bonus (the wins themselves already count).
// Bowl games count in a team's record but carry no bonus under current rules.
func (c *controller) CalculateScores(ctx context.Context) ([]model.ManagerStanding, error) {
	managers, err := c.db.ListManagers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading managers for standings: %w", err)
	}

	standings := make([]model.ManagerStanding, 0, len(managers))
	for _, m := range managers {
		picks, err := c.db.PicksForManager(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading picks for manager %s: %w", m.Name, err)
		}

		s := model.ManagerStanding{
			ManagerID:     m.ID,
			ManagerName:   m.Name,
			DraftPosition: m.DraftPosition,
		}
		for _, pick := range picks {
			stats, err := c.teamGameStats(ctx, pick.Team)
			if err != nil {
				return nil, fmt.Errorf("error loading games for team %s: %w", pick.Team.Name, err)
			}

			ts := scoreTeam(pick, stats)
			s.Teams = append(s.Teams, ts)
			s.TotalPoints += ts.TotalPoints
			s.PostseasonPoints += ts.PostseasonTotal
		}
		sortTeamScores(s.Teams)
		s.TeamCount = len(s.Teams)
		standings = append(standings, s)
	}

	rankStandings(standings)
	return standings, nil
}

// teamGameStats are the raw counts scoring needs for one team.
type teamGameStats struct {
	totalWins   int
	totalLosses int
	regularWins int

	confChampWin      bool
	playoffAppearance bool
	champWin          bool
}

func (c *controller) teamGameStats(ctx context.Context, team *model.Team) (teamGameStats, error) {
	var stats teamGameStats
	var err error

	if stats.totalWins, err = c.db.WinCount(ctx, team.ID, model.GAME_ANY); err != nil {
		return stats, err
	}
	if stats.totalLosses, err = c.db.LossCount(ctx, team.ID, model.GAME_ANY); err != nil {
		return stats, err
	}
	if stats.regularWins, err = c.db.WinCount(ctx, team.ID, model.GAME_REGULAR); err != nil {
		return stats, err
	}

	confWins, err := c.db.WinCount(ctx, team.ID, model.GAME_CONF_CHAMP)
	if err != nil {
		return stats, err
	}
	stats.confChampWin = confWins > 0

	if stats.playoffAppearance, err = c.db.HasGameOfType(ctx, team.ID, model.GAME_PLAYOFF); err != nil {
		return stats, err
	}

	champWins, err := c.db.WinCount(ctx, team.ID, model.GAME_CHAMP)
	if err != nil {
		return stats, err
	}
	stats.champWin = champWins > 0

	return stats, nil
}

// scoreTeam turns one team's game stats into its point breakdown.
func scoreTeam(pick model.DraftPick, stats teamGameStats) model.TeamScore {
	team := pick.Team

	ts := model.TeamScore{
		TeamID:      team.ID,
		TeamName:    team.Name,
		League:      team.League,
		Conference:  team.Conference,
		TotalWins:   stats.totalWins,
		TotalLosses: stats.totalLosses,
		RegularWins: stats.regularWins,
		Record:      fmt.Sprintf("%d-%d", stats.totalWins, stats.totalLosses),
		VegasTotal:  team.VegasTotal,
		PickInfo: model.PickInfo{
			Round: pick.Round,
			Pick:  pick.Pick,
		},
	}

	if team.League == model.LEAGUE_COLLEGE && stats.confChampWin {
		ts.ConfChampBonus = 1
	}
	if stats.playoffAppearance {
		ts.PlayoffBonus = 1
	}
	if stats.champWin {
		ts.ChampBonus = 1
	}
	// Strictly exceeding the line earns the bonus; landing on it exactly does not.
	if team.VegasTotal != nil && float64(stats.regularWins) > *team.VegasTotal {
		ts.VegasBonus = 1
	}

	ts.PostseasonTotal = ts.ConfChampBonus + ts.PlayoffBonus + ts.ChampBonus + ts.VegasBonus
	ts.TotalPoints = stats.totalWins + ts.PostseasonTotal
	return ts
}

// Within a manager, teams show best-first with the earlier pick breaking ties.
func sortTeamScores(teams []model.TeamScore) {
	slices.SortFunc(teams, func(a, b model.TeamScore) int {
		if a.TotalPoints != b.TotalPoints {
			return b.TotalPoints - a.TotalPoints
		}
		return a.PickInfo.Pick - b.PickInfo.Pick
	})
}

// rankStandings sorts by total points then postseason points, both descending,
// and assigns positional ranks 1..N. Full ties still get distinct ranks.
func rankStandings(standings []model.ManagerStanding) {
	slices.SortStableFunc(standings, func(a, b model.ManagerStanding) int {
		if a.TotalPoints != b.TotalPoints {
			return b.TotalPoints - a.TotalPoints
		}
		return b.PostseasonPoints - a.PostseasonPoints
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
}

func (c *controller) GetManagerSummary(ctx context.Context, managerID int32) (*model.ManagerSummary, error) {
	if _, err := c.db.GetManager(ctx, managerID); err != nil {
		return nil, err
	}

	standings, err := c.CalculateScores(ctx)
	if err != nil {
		return nil, err
	}

	for _, s := range standings {
		if s.ManagerID != managerID {
			continue
		}

		summary := &model.ManagerSummary{ManagerStanding: s}
		for _, t := range s.Teams {
			if t.League == model.LEAGUE_COLLEGE {
				summary.CollegeTeams = append(summary.CollegeTeams, t)
			} else {
				summary.NFLTeams = append(summary.NFLTeams, t)
			}
		}
		summary.CollegeCount = len(summary.CollegeTeams)
		summary.NFLCount = len(summary.NFLTeams)
		return summary, nil
	}

	return nil, fmt.Errorf("manager %d missing from standings", managerID)
}

func (c *controller) GetLeagueStats(ctx context.Context) (*model.LeagueStats, error) {
	games, wins, err := c.db.GameTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading game totals: %w", err)
	}

	teams, err := c.db.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading teams for stats: %w", err)
	}

	managers, err := c.db.ListManagers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading managers for stats: %w", err)
	}

	stats := &model.LeagueStats{
		TotalGames:    games,
		TotalWins:     wins,
		TotalTeams:    len(teams),
		TotalManagers: len(managers),
		CurrentWeek:   c.currentWeek(ctx),
	}
	for _, t := range teams {
		if t.League == model.LEAGUE_COLLEGE {
			stats.CollegeTeams++
		} else {
			stats.NFLTeams++
		}
	}
	if len(teams) > 0 {
		stats.GamesPerTeam = math.Round(float64(games)/float64(len(teams))*10) / 10
	}
	return stats, nil
}
