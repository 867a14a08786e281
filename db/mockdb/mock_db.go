package mockdb

import (
	"context"

	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) AddManager(ctx context.Context, m *model.Manager) error {
	args := db.Called(ctx, m)
	return args.Error(0)
}

func (db *DB) ListManagers(ctx context.Context) ([]model.Manager, error) {
	args := db.Called(ctx)

	var r []model.Manager
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Manager)
	}
	return r, args.Error(1)
}

func (db *DB) GetManager(ctx context.Context, id int32) (*model.Manager, error) {
	args := db.Called(ctx, id)

	var m *model.Manager
	if args.Get(0) != nil {
		m = args.Get(0).(*model.Manager)
	}
	return m, args.Error(1)
}

func (db *DB) AddTeam(ctx context.Context, t *model.Team) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) GetTeam(ctx context.Context, id int32) (*model.Team, error) {
	args := db.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (db *DB) GetTeamByName(ctx context.Context, name string) (*model.Team, error) {
	args := db.Called(ctx, name)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (db *DB) ListTeams(ctx context.Context) ([]model.Team, error) {
	args := db.Called(ctx)

	var r []model.Team
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Team)
	}
	return r, args.Error(1)
}

func (db *DB) AddDraftPick(ctx context.Context, p *model.DraftPick) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) PicksForManager(ctx context.Context, managerID int32) ([]model.DraftPick, error) {
	args := db.Called(ctx, managerID)

	var r []model.DraftPick
	if args.Get(0) != nil {
		r = args.Get(0).([]model.DraftPick)
	}
	return r, args.Error(1)
}

func (db *DB) WinCount(ctx context.Context, teamID int32, t model.GameType) (int, error) {
	args := db.Called(ctx, teamID, t)
	return args.Int(0), args.Error(1)
}

func (db *DB) LossCount(ctx context.Context, teamID int32, t model.GameType) (int, error) {
	args := db.Called(ctx, teamID, t)
	return args.Int(0), args.Error(1)
}

func (db *DB) GamesPlayed(ctx context.Context, teamID int32, t model.GameType) (int, error) {
	args := db.Called(ctx, teamID, t)
	return args.Int(0), args.Error(1)
}

func (db *DB) HasGameOfType(ctx context.Context, teamID int32, t model.GameType) (bool, error) {
	args := db.Called(ctx, teamID, t)
	return args.Bool(0), args.Error(1)
}

func (db *DB) MaxWeek(ctx context.Context, t model.GameType) (int, error) {
	args := db.Called(ctx, t)
	return args.Int(0), args.Error(1)
}

func (db *DB) GamesInWeek(ctx context.Context, week int) (int, error) {
	args := db.Called(ctx, week)
	return args.Int(0), args.Error(1)
}

func (db *DB) GameTotals(ctx context.Context) (int, int, error) {
	args := db.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (db *DB) UpsertGame(ctx context.Context, g *model.Game) error {
	args := db.Called(ctx, g)
	return args.Error(0)
}

func (db *DB) AddGame(ctx context.Context, g *model.Game) error {
	args := db.Called(ctx, g)
	return args.Error(0)
}

func (db *DB) FindGame(ctx context.Context, teamID int32, opponent string, week *int) (*model.Game, error) {
	args := db.Called(ctx, teamID, opponent, week)

	var g *model.Game
	if args.Get(0) != nil {
		g = args.Get(0).(*model.Game)
	}
	return g, args.Error(1)
}

func (db *DB) UpdateGameResult(ctx context.Context, id int32, won bool, t model.GameType) error {
	args := db.Called(ctx, id, won, t)
	return args.Error(0)
}

func (db *DB) GetWeeklyLine(ctx context.Context, teamID int32, week int) (*model.WeeklyLine, error) {
	args := db.Called(ctx, teamID, week)

	var l *model.WeeklyLine
	if args.Get(0) != nil {
		l = args.Get(0).(*model.WeeklyLine)
	}
	return l, args.Error(1)
}

func (db *DB) UpsertWeeklyLine(ctx context.Context, line *model.WeeklyLine) error {
	args := db.Called(ctx, line)
	return args.Error(0)
}

func (db *DB) SaveWeeklyLines(ctx context.Context, lines []model.WeeklyLine) error {
	args := db.Called(ctx, lines)
	return args.Error(0)
}

func (db *DB) LineHistory(ctx context.Context, teamID int32, fromWeek int) ([]model.WeeklyLine, error) {
	args := db.Called(ctx, teamID, fromWeek)

	var r []model.WeeklyLine
	if args.Get(0) != nil {
		r = args.Get(0).([]model.WeeklyLine)
	}
	return r, args.Error(1)
}
