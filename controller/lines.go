package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/btbtyler09/FF-Tracker/db"
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/rs/zerolog/log"
)

// The projected source refuses to produce a line before a team has played
// this many games; the sample is too small to mean anything.
const minGamesForProjectedLine = 2

func (c *controller) UpdateAllLines(ctx context.Context, week int, force bool) (*model.LineUpdateSummary, error) {
	if week <= 0 {
		week = c.currentWeek(ctx)
	}
	log.Info().Msgf("starting line update for week %d", week)

	summary := &model.LineUpdateSummary{
		Week:        week,
		SourcesUsed: []string{},
		Timestamp:   c.clock.Now().UTC(),
	}

	teams, err := c.db.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading teams for line update: %w", err)
	}
	summary.Attempted = len(teams)

	// Successful updates are collected and committed together at the end of
	// the run. Per-team failures only cost that team its update.
	pending := make([]model.WeeklyLine, 0, len(teams))
	for i := range teams {
		team := &teams[i]

		line, skipped, err := c.updateTeamLine(ctx, team, week, force)
		switch {
		case err != nil:
			log.Error().Err(err).Msgf("error updating line for %s", team.Name)
			summary.Errors++
		case skipped:
			summary.Skipped++
		case line != nil:
			pending = append(pending, *line)
			summary.Updated++
			if !contains(summary.SourcesUsed, line.Source) {
				summary.SourcesUsed = append(summary.SourcesUsed, line.Source)
			}
		default:
			log.Debug().Msgf("no line update available for %s", team.Name)
		}

		// Rate limiting between teams.
		if c.cfg.Lines.RequestDelay > 0 && i < len(teams)-1 {
			c.clock.Sleep(c.cfg.Lines.RequestDelay)
		}
	}

	if err := c.db.SaveWeeklyLines(ctx, pending); err != nil {
		// The whole batch rolled back, so nothing was actually updated.
		summary.Updated = 0
		summary.Errors = summary.Attempted
		return summary, fmt.Errorf("error committing line updates: %w", err)
	}

	log.Info().Msgf("line update complete: %d updated, %d errors, %d skipped",
		summary.Updated, summary.Errors, summary.Skipped)
	return summary, nil
}

// updateTeamLine resolves one team's new line. It returns (nil, true, nil)
// when the team was skipped for freshness and (nil, false, nil) when no
// source had a value to offer.
func (c *controller) updateTeamLine(ctx context.Context, team *model.Team, week int, force bool) (*model.WeeklyLine, bool, error) {
	if !force {
		fresh, err := c.lineIsFresh(ctx, team.ID, week)
		if err != nil {
			return nil, false, err
		}
		if fresh {
			return nil, true, nil
		}
	}

	for _, source := range c.cfg.Lines.Sources {
		value, notes, err := c.fetchLineFromSource(ctx, team, source, week)
		if err != nil {
			log.Warn().Err(err).Msgf("failed to fetch line for %s from %s", team.Name, source)
			continue
		}
		if value == nil {
			continue
		}

		line := &model.WeeklyLine{
			TeamID:       team.ID,
			Week:         week,
			Line:         *value,
			OriginalLine: team.VegasTotal,
			Source:       source,
			Notes:        notes,
		}
		return line, false, nil
	}

	return nil, false, nil
}

func (c *controller) lineIsFresh(ctx context.Context, teamID int32, week int) (bool, error) {
	line, err := c.db.GetWeeklyLine(ctx, teamID, week)
	if err != nil {
		if err == db.ErrLineNotFound {
			return false, nil
		}
		return false, err
	}

	window := time.Duration(c.cfg.Lines.UpdateFrequencyHours) * time.Hour
	return c.clock.Now().Sub(line.Updated) < window, nil
}

// fetchLineFromSource consults one provider. A nil value with a nil error
// means the source had nothing to offer and the next source should be tried.
func (c *controller) fetchLineFromSource(ctx context.Context, team *model.Team, source string, week int) (*float64, string, error) {
	switch source {
	case model.SourceESPN:
		value, err := c.espn.SeasonWinTotal(team)
		if err != nil {
			return nil, "", err
		}
		return value, fmt.Sprintf("Updated from %s", source), nil
	case model.SourceProjected:
		return c.projectedLine(ctx, team, week)
	default:
		// "manual" lands here too: manual updates require human input and are
		// never part of automatic iteration.
		return nil, "", fmt.Errorf("unknown line source: %q", source)
	}
}

// projectedLine feeds the projection engine's per-team output back in as the
// updated expectation. Only fresh game history goes into the projection; the
// orchestrator's own previous lines are not read back.
func (c *controller) projectedLine(ctx context.Context, team *model.Team, week int) (*float64, string, error) {
	tp := c.teamProjection(ctx, team, week)
	if tp.Err != "" {
		return nil, "", fmt.Errorf("projection failed for %s: %s", team.Name, tp.Err)
	}
	if tp.GamesPlayed < minGamesForProjectedLine {
		log.Debug().Msgf("not enough games (%d) for %s projection", tp.GamesPlayed, team.Name)
		return nil, "", nil
	}

	original := defaultProjectedWins
	if team.League == model.LEAGUE_COLLEGE {
		original = 6.0
	}
	if team.VegasTotal != nil {
		original = *team.VegasTotal
	}
	notes := fmt.Sprintf("Projection-based update: %d/%d record adjusted from original %.1f",
		tp.CurrentWins, tp.GamesPlayed, original)

	return &tp.ProjectedWins, notes, nil
}

func (c *controller) ManualUpdateLine(ctx context.Context, teamID int32, week int, newLine float64, notes string) error {
	team, err := c.db.GetTeam(ctx, teamID)
	if err != nil {
		return err
	}

	if notes == "" {
		notes = "Updated from manual"
	}
	line := &model.WeeklyLine{
		TeamID:       team.ID,
		Week:         week,
		Line:         newLine,
		OriginalLine: team.VegasTotal,
		Source:       model.SourceManual,
		Notes:        notes,
	}
	if err := c.db.UpsertWeeklyLine(ctx, line); err != nil {
		return fmt.Errorf("error saving manual line for %s: %w", team.Name, err)
	}

	log.Info().Msgf("manually updated %s line to %.1f for week %d", team.Name, newLine, week)
	return nil
}

func (c *controller) GetLineHistory(ctx context.Context, teamID int32, weeks int) (*model.TeamLineHistory, error) {
	team, err := c.db.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	currentWeek := c.currentWeek(ctx)
	fromWeek := max(1, currentWeek-weeks)

	lines, err := c.db.LineHistory(ctx, teamID, fromWeek)
	if err != nil {
		return nil, err
	}

	history := &model.TeamLineHistory{
		TeamName:            team.Name,
		CurrentOriginalLine: team.VegasTotal,
		History:             make([]model.WeeklyLineEntry, 0, len(lines)),
	}
	for _, l := range lines {
		history.History = append(history.History, model.WeeklyLineEntry{
			Week:     l.Week,
			Line:     l.Line,
			Original: l.OriginalLine,
			Source:   l.Source,
			Notes:    l.Notes,
			Updated:  l.Updated.Format(time.RFC3339),
		})
	}
	return history, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
