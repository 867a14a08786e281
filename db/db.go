package db

import (
	"context"

	"github.com/btbtyler09/FF-Tracker/model"
)

type DB interface {
	AddManager(ctx context.Context, m *model.Manager) error
	// Managers in draft order. The draft position is unique so the order is total.
	ListManagers(ctx context.Context) ([]model.Manager, error)
	GetManager(ctx context.Context, id int32) (*model.Manager, error)

	AddTeam(ctx context.Context, t *model.Team) error
	GetTeam(ctx context.Context, id int32) (*model.Team, error)
	GetTeamByName(ctx context.Context, name string) (*model.Team, error)
	ListTeams(ctx context.Context) ([]model.Team, error)

	AddDraftPick(ctx context.Context, p *model.DraftPick) error
	// A manager's picks with their teams populated, ordered by overall pick number.
	PicksForManager(ctx context.Context, managerID int32) ([]model.DraftPick, error)

	// Game counts, optionally filtered by game type. Pass model.GAME_ANY to
	// count across all types.
	WinCount(ctx context.Context, teamID int32, t model.GameType) (int, error)
	LossCount(ctx context.Context, teamID int32, t model.GameType) (int, error)
	GamesPlayed(ctx context.Context, teamID int32, t model.GameType) (int, error)
	HasGameOfType(ctx context.Context, teamID int32, t model.GameType) (bool, error)
	// The highest recorded week for the given game type, 0 when there are no games.
	MaxWeek(ctx context.Context, t model.GameType) (int, error)
	GamesInWeek(ctx context.Context, week int) (int, error)
	// League wide totals for the stats view.
	GameTotals(ctx context.Context) (games int, wins int, err error)

	// Insert a game from the result feed, or update its result if it already
	// exists. Games are keyed by (team_id, espn_game_id). The game type of an
	// existing row is never overwritten, so manual postseason tags survive
	// re-ingestion.
	UpsertGame(ctx context.Context, g *model.Game) error
	// Manual entry point for games the feed does not tag, e.g. championship games.
	AddGame(ctx context.Context, g *model.Game) error
	// Find a game by opponent, optionally narrowed to a week, for the manual
	// update path. Returns ErrGameNotFound when there is no match.
	FindGame(ctx context.Context, teamID int32, opponent string, week *int) (*model.Game, error)
	UpdateGameResult(ctx context.Context, id int32, won bool, t model.GameType) error

	// The current line for (team, week), or ErrLineNotFound. When multiple
	// sources wrote a line for the same week the most recently updated row wins.
	GetWeeklyLine(ctx context.Context, teamID int32, week int) (*model.WeeklyLine, error)
	// Upsert a single line. Rows are keyed by (team, week), except projected
	// lines which are keyed by (team, week, source) so a projection never
	// clobbers a manual correction.
	UpsertWeeklyLine(ctx context.Context, line *model.WeeklyLine) error
	// Upsert a batch of lines in a single transaction. Either every line in
	// the batch is committed or none of them are.
	SaveWeeklyLines(ctx context.Context, lines []model.WeeklyLine) error
	// Line rows for a team with week >= fromWeek, most recent week first.
	LineHistory(ctx context.Context, teamID int32, fromWeek int) ([]model.WeeklyLine, error)
}
