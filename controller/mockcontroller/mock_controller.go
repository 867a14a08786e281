package mockcontroller

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) CalculateScores(ctx context.Context) ([]model.ManagerStanding, error) {
	args := c.Called(ctx)

	var r []model.ManagerStanding
	if args.Get(0) != nil {
		r = args.Get(0).([]model.ManagerStanding)
	}
	return r, args.Error(1)
}

func (c *C) GetManagerSummary(ctx context.Context, managerID int32) (*model.ManagerSummary, error) {
	args := c.Called(ctx, managerID)

	var s *model.ManagerSummary
	if args.Get(0) != nil {
		s = args.Get(0).(*model.ManagerSummary)
	}
	return s, args.Error(1)
}

func (c *C) GetLeagueStats(ctx context.Context) (*model.LeagueStats, error) {
	args := c.Called(ctx)

	var s *model.LeagueStats
	if args.Get(0) != nil {
		s = args.Get(0).(*model.LeagueStats)
	}
	return s, args.Error(1)
}

func (c *C) CalculateProjections(ctx context.Context, currentWeek int) ([]model.ManagerProjection, error) {
	args := c.Called(ctx, currentWeek)

	var r []model.ManagerProjection
	if args.Get(0) != nil {
		r = args.Get(0).([]model.ManagerProjection)
	}
	return r, args.Error(1)
}

func (c *C) GetTeamProjection(ctx context.Context, teamID int32, currentWeek int) (*model.TeamProjection, error) {
	args := c.Called(ctx, teamID, currentWeek)

	var p *model.TeamProjection
	if args.Get(0) != nil {
		p = args.Get(0).(*model.TeamProjection)
	}
	return p, args.Error(1)
}

func (c *C) ShouldUpdateProjections(ctx context.Context) (bool, error) {
	args := c.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (c *C) UpdateAllLines(ctx context.Context, week int, force bool) (*model.LineUpdateSummary, error) {
	args := c.Called(ctx, week, force)

	var s *model.LineUpdateSummary
	if args.Get(0) != nil {
		s = args.Get(0).(*model.LineUpdateSummary)
	}
	return s, args.Error(1)
}

func (c *C) ManualUpdateLine(ctx context.Context, teamID int32, week int, newLine float64, notes string) error {
	args := c.Called(ctx, teamID, week, newLine, notes)
	return args.Error(0)
}

func (c *C) GetLineHistory(ctx context.Context, teamID int32, weeks int) (*model.TeamLineHistory, error) {
	args := c.Called(ctx, teamID, weeks)

	var h *model.TeamLineHistory
	if args.Get(0) != nil {
		h = args.Get(0).(*model.TeamLineHistory)
	}
	return h, args.Error(1)
}

func (c *C) UpdateGameResults(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) ManualUpdateGame(ctx context.Context, teamName, opponent string, won bool, week *int, gameType model.GameType) error {
	args := c.Called(ctx, teamName, opponent, won, week, gameType)
	return args.Error(0)
}

func (c *C) RunPeriodicGameUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) ImportTeams(ctx context.Context, r io.Reader) (int, error) {
	args := c.Called(ctx, r)
	return args.Int(0), args.Error(1)
}

func (c *C) ImportDraft(ctx context.Context, r io.Reader) (int, error) {
	args := c.Called(ctx, r)
	return args.Int(0), args.Error(1)
}

func (c *C) SeedManagers(ctx context.Context) (int, error) {
	args := c.Called(ctx)
	return args.Int(0), args.Error(1)
}
