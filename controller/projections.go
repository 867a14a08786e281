package controller

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/btbtyler09/FF-Tracker/config"
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/rs/zerolog/log"
)

// defaultProjectedWins is used when a team has no games and no preseason line.
const defaultProjectedWins = 8.0

func (c *controller) CalculateProjections(ctx context.Context, currentWeek int) ([]model.ManagerProjection, error) {
	if currentWeek <= 0 {
		currentWeek = c.currentWeek(ctx)
	}
	log.Info().Msgf("calculating projections for week %d", currentWeek)

	managers, err := c.db.ListManagers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading managers for projections: %w", err)
	}

	projections := make([]model.ManagerProjection, 0, len(managers))
	for _, m := range managers {
		picks, err := c.db.PicksForManager(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading picks for manager %s: %w", m.Name, err)
		}

		p := model.ManagerProjection{
			ManagerID:       m.ID,
			ManagerName:     m.Name,
			DraftPosition:   m.DraftPosition,
			CalculationWeek: currentWeek,
		}
		var total float64
		for _, pick := range picks {
			tp := c.teamProjection(ctx, pick.Team, currentWeek)
			p.Teams = append(p.Teams, tp)
			total += tp.ProjectedTotal
		}
		p.ProjectedTotal = round1(total)
		projections = append(projections, p)
	}

	slices.SortStableFunc(projections, func(a, b model.ManagerProjection) int {
		switch {
		case b.ProjectedTotal > a.ProjectedTotal:
			return 1
		case b.ProjectedTotal < a.ProjectedTotal:
			return -1
		default:
			return 0
		}
	})
	for i := range projections {
		projections[i].ProjectedRank = i + 1
	}
	return projections, nil
}

func (c *controller) GetTeamProjection(ctx context.Context, teamID int32, currentWeek int) (*model.TeamProjection, error) {
	team, err := c.db.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if currentWeek <= 0 {
		currentWeek = c.currentWeek(ctx)
	}
	tp := c.teamProjection(ctx, team, currentWeek)
	return &tp, nil
}

// teamProjection never fails hard: if the counts can't be loaded the result
// degrades to the preseason line (or the league default) with the error
// attached, and the manager-level sum proceeds with that value.
func (c *controller) teamProjection(ctx context.Context, team *model.Team, currentWeek int) model.TeamProjection {
	wins, err := c.db.WinCount(ctx, team.ID, model.GAME_REGULAR)
	if err != nil {
		return projectionFallback(team, err)
	}
	played, err := c.db.GamesPlayed(ctx, team.ID, model.GAME_REGULAR)
	if err != nil {
		return projectionFallback(team, err)
	}

	totalRegGames := team.League.RegularSeasonGames()
	remaining := max(0, totalRegGames-played)

	projectedWins := projectWins(c.cfg.Projection, team.VegasTotal, wins, played, remaining, totalRegGames)

	vegasBonus := 0.0
	if team.VegasTotal != nil && projectedWins > *team.VegasTotal {
		vegasBonus = 1.0
	}
	postseasonBonus := postseasonProjection(c.cfg.Projection, team.League, projectedWins, currentWeek)

	return model.TeamProjection{
		TeamID:          team.ID,
		TeamName:        team.Name,
		League:          team.League,
		CurrentWins:     wins,
		GamesPlayed:     played,
		RemainingGames:  remaining,
		ProjectedWins:   round1(projectedWins),
		OriginalLine:    team.VegasTotal,
		VegasBonus:      vegasBonus,
		PostseasonBonus: round1(postseasonBonus),
		ProjectedTotal:  round1(projectedWins + vegasBonus + postseasonBonus),
		Confidence:      projectionConfidence(played, totalRegGames),
	}
}

func projectionFallback(team *model.Team, err error) model.TeamProjection {
	log.Error().Err(err).Msgf("error calculating projection for %s", team.Name)

	total := defaultProjectedWins
	if team.VegasTotal != nil {
		total = *team.VegasTotal
	}
	return model.TeamProjection{
		TeamID:         team.ID,
		TeamName:       team.Name,
		League:         team.League,
		OriginalLine:   team.VegasTotal,
		ProjectedTotal: total,
		Err:            err.Error(),
	}
}

// projectWins blends the actual win rate with the vegas expectation, weighting
// actual performance more as the sample grows.
func projectWins(cfg config.ProjectionConfig, line *float64, wins, played, remaining, totalGames int) float64 {
	if played == 0 {
		if line != nil {
			return clampWins(*line, totalGames)
		}
		return clampWins(defaultProjectedWins, totalGames)
	}

	actualRate := float64(wins) / float64(played)
	vegasRate := 0.5
	if line != nil {
		vegasRate = *line / float64(totalGames)
	}

	var weight float64
	if played < cfg.MinGamesForActual {
		// Small samples lean mostly on the vegas expectation.
		weight = math.Min(float64(played)/float64(cfg.MinGamesForActual)*0.3, 0.3)
	} else {
		weight = math.Min(
			float64(played)/float64(cfg.WeightRampGames)*cfg.MaxActualWeight,
			cfg.MaxActualWeight)
	}

	// Damp volatility over the first 30% of the season.
	if float64(played)/float64(totalGames) < 0.3 {
		weight *= cfg.EarlySeasonDamping
	}

	blended := actualRate*weight + vegasRate*(1-weight)
	projected := float64(wins) + float64(remaining)*blended
	return clampWins(projected, totalGames)
}

// No team projects to a perfect or winless season.
func clampWins(wins float64, totalGames int) float64 {
	return math.Max(1.0, math.Min(wins, float64(totalGames)-1.0))
}

// postseasonProjection estimates bonus points from projected wins. The step
// thresholds are scaled down by the conservative factor and fade as the season
// progresses, since real results replace the estimate.
func postseasonProjection(cfg config.ProjectionConfig, league model.League, projectedWins float64, currentWeek int) float64 {
	seasonProgress := math.Min(float64(currentWeek)/15.0, 1.0)
	progressFactor := 1.0 - seasonProgress*0.3

	var bonus float64
	if league == model.LEAGUE_NFL {
		switch {
		case projectedWins >= 12:
			bonus = 2.5
		case projectedWins >= 10:
			bonus = 1.2
		case projectedWins >= 9:
			bonus = 0.4
		}
	} else {
		switch {
		case projectedWins >= 11:
			bonus = 3.0
		case projectedWins >= 9:
			bonus = 1.5
		case projectedWins >= 7:
			bonus = 0.6
		}
	}

	return bonus * cfg.ConservativePostseason * progressFactor
}

// projectionConfidence is a 0-100 display signal of how much data backs the
// projection. It never affects the ranking.
func projectionConfidence(played, totalGames int) int {
	if played == 0 {
		return 0
	}
	progress := float64(played) / float64(totalGames)
	base := math.Min(progress*85, 85)
	bonus := math.Min(progress*15, 15)
	return int(math.Round(base + bonus))
}

func (c *controller) ShouldUpdateProjections(ctx context.Context) (bool, error) {
	if !c.cfg.Projection.UpdateAfterWeekComplete {
		return true, nil
	}

	// A week is complete once the next week's games start showing up. This is
	// a heuristic, not a schedule lookup.
	week := c.currentWeek(ctx)
	count, err := c.db.GamesInWeek(ctx, week+1)
	if err != nil {
		return false, fmt.Errorf("error checking completeness of week %d: %w", week, err)
	}
	return count > 0, nil
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
