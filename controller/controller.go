package controller

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/btbtyler09/FF-Tracker/config"
	"github.com/btbtyler09/FF-Tracker/db"
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/btbtyler09/FF-Tracker/platforms/espn"
	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog/log"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// Calculate the current standings. An error means the standings are
	// unavailable, which callers must not present as an empty league.
	CalculateScores(ctx context.Context) ([]model.ManagerStanding, error)
	GetManagerSummary(ctx context.Context, managerID int32) (*model.ManagerSummary, error)
	GetLeagueStats(ctx context.Context) (*model.LeagueStats, error)

	// Project season-end totals. currentWeek <= 0 means auto-detect from the
	// recorded games.
	CalculateProjections(ctx context.Context, currentWeek int) ([]model.ManagerProjection, error)
	GetTeamProjection(ctx context.Context, teamID int32, currentWeek int) (*model.TeamProjection, error)
	// Reports whether projections are stale. A week is considered complete
	// once at least one game for the following week has been recorded.
	ShouldUpdateProjections(ctx context.Context) (bool, error)

	// Refresh the weekly win-expectation lines from the configured sources.
	// week <= 0 means the current week; force bypasses the freshness check.
	UpdateAllLines(ctx context.Context, week int, force bool) (*model.LineUpdateSummary, error)
	ManualUpdateLine(ctx context.Context, teamID int32, week int, newLine float64, notes string) error
	GetLineHistory(ctx context.Context, teamID int32, weeks int) (*model.TeamLineHistory, error)

	UpdateGameResults(ctx context.Context) error
	// Record or correct a game the result feed can't tag, like a conference
	// championship or the title game.
	ManualUpdateGame(ctx context.Context, teamName, opponent string, won bool, week *int, gameType model.GameType) error
	RunPeriodicGameUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	ImportTeams(ctx context.Context, r io.Reader) (int, error)
	ImportDraft(ctx context.Context, r io.Reader) (int, error)
	SeedManagers(ctx context.Context) (int, error)
}

type controller struct {
	clock clock.Clock
	db    db.DB
	espn  espn.Client
	cfg   config.Config
}

func New(clock clock.Clock, db db.DB, espn espn.Client, cfg config.Config) (C, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &controller{
		clock: clock,
		db:    db,
		espn:  espn,
		cfg:   cfg,
	}
	return c, nil
}

// currentWeek is the highest regular season week with a recorded game,
// defaulting to week 1 before any games exist.
func (c *controller) currentWeek(ctx context.Context) int {
	week, err := c.db.MaxWeek(ctx, model.GAME_REGULAR)
	if err != nil {
		log.Warn().Err(err).Msg("error finding current week, defaulting to 1")
		return 1
	}
	if week < 1 {
		return 1
	}
	return week
}
