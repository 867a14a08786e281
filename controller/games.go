package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/btbtyler09/FF-Tracker/db"
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/btbtyler09/FF-Tracker/platforms/espn"
	"github.com/rs/zerolog/log"
)

func (c *controller) UpdateGameResults(ctx context.Context) error {
	teams, err := c.db.ListTeams(ctx)
	if err != nil {
		return fmt.Errorf("error loading teams for game update: %w", err)
	}

	year := seasonYear(c.clock.Now())
	log.Info().Msgf("updating game results for %d teams, season %d", len(teams), year)

	var updateErrors int
	for i := range teams {
		team := &teams[i]
		if team.ESPNID == "" {
			log.Debug().Msgf("skipping %s, no feed id", team.Name)
			continue
		}

		if err := c.updateTeamGames(ctx, team, year); err != nil {
			log.Error().Err(err).Msgf("error updating games for %s", team.Name)
			updateErrors++
		}

		if c.cfg.Lines.RequestDelay > 0 && i < len(teams)-1 {
			c.clock.Sleep(c.cfg.Lines.RequestDelay)
		}
	}

	if updateErrors > 0 {
		return fmt.Errorf("game update finished with %d team errors", updateErrors)
	}
	return nil
}

func (c *controller) updateTeamGames(ctx context.Context, team *model.Team, year int) error {
	schedule, err := c.espn.Schedule(team, year)
	if err != nil {
		return err
	}

	for _, sg := range schedule {
		if !sg.Completed {
			continue
		}
		game := &model.Game{
			TeamID:     team.ID,
			Week:       sg.Week,
			Opponent:   sg.Opponent,
			Won:        sg.Won,
			Type:       gameTypeForSeason(sg.SeasonType, team.League),
			GameDate:   sg.Date,
			ScoreUs:    sg.ScoreUs,
			ScoreThem:  sg.ScoreThem,
			ESPNGameID: sg.ESPNGameID,
		}
		if err := c.db.UpsertGame(ctx, game); err != nil {
			return fmt.Errorf("error saving game vs %s: %w", sg.Opponent, err)
		}
	}
	return nil
}

// gameTypeForSeason tags an ingested game. The feed only distinguishes
// regular season from postseason, so postseason rounds beyond the first tag
// (conference championships, the championship itself) are set manually and
// preserved on re-ingestion.
func gameTypeForSeason(seasonType int, league model.League) model.GameType {
	if seasonType != espn.SeasonTypePost {
		return model.GAME_REGULAR
	}
	if league == model.LEAGUE_COLLEGE {
		return model.GAME_BOWL
	}
	return model.GAME_PLAYOFF
}

// seasonYear maps a point in time to the season it belongs to. Games played
// in January and February count toward the prior year's season.
func seasonYear(now time.Time) int {
	if now.Month() < time.March {
		return now.Year() - 1
	}
	return now.Year()
}

func (c *controller) ManualUpdateGame(ctx context.Context, teamName, opponent string, won bool, week *int, gameType model.GameType) error {
	team, err := c.db.GetTeamByName(ctx, teamName)
	if err != nil {
		return err
	}
	if gameType == model.GAME_ANY {
		gameType = model.GAME_REGULAR
	}

	game, err := c.db.FindGame(ctx, team.ID, opponent, week)
	if err != nil {
		if err != db.ErrGameNotFound {
			return err
		}
		game = &model.Game{
			TeamID:   team.ID,
			Week:     week,
			Opponent: opponent,
			Won:      won,
			Type:     gameType,
			GameDate: c.clock.Now().UTC(),
		}
		if err := c.db.AddGame(ctx, game); err != nil {
			return fmt.Errorf("error adding game for %s vs %s: %w", team.Name, opponent, err)
		}
		log.Info().Msgf("manually added %s game for %s vs %s", gameType, team.Name, opponent)
		return nil
	}

	if err := c.db.UpdateGameResult(ctx, game.ID, won, gameType); err != nil {
		return fmt.Errorf("error updating game for %s vs %s: %w", team.Name, opponent, err)
	}
	log.Info().Msgf("manually updated %s game for %s vs %s", gameType, team.Name, opponent)
	return nil
}

// RunPeriodicGameUpdates refreshes game results on a fixed interval until a
// shutdown signal arrives. Run it in its own goroutine.
func (c *controller) RunPeriodicGameUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			log.Info().Msg("stopping periodic game updates")
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			if err := c.UpdateGameResults(ctx); err != nil {
				log.Error().Err(err).Msg("periodic game update failed")
			}
			cancel()
		}
	}
}
