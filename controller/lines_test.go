package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/btbtyler09/FF-Tracker/config"
	"github.com/btbtyler09/FF-Tracker/db"
	"github.com/btbtyler09/FF-Tracker/db/mockdb"
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/btbtyler09/FF-Tracker/platforms/espn/mockespn"
	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"
)

// linesTestSetup wires a controller with a mock clock and no request delay so
// the update loop never sleeps during tests.
func linesTestSetup(t *testing.T, sources ...string) (*mockdb.DB, *mockespn.Client, *clock.Mock, C) {
	t.Helper()

	mockDB := &mockdb.DB{}
	mockESPN := &mockespn.Client{}
	mockClock := clock.NewMock()
	mockClock.Set(time.Date(2025, 11, 2, 12, 0, 0, 0, time.UTC))

	cfg := config.Default()
	cfg.Lines.Sources = sources
	cfg.Lines.RequestDelay = 0

	ctrl, err := New(mockClock, mockDB, mockESPN, cfg)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return mockDB, mockESPN, mockClock, ctrl
}

func TestUpdateAllLinesFromESPN(t *testing.T) {
	mockDB, mockESPN, _, ctrl := linesTestSetup(t, model.SourceESPN)

	team := model.Team{ID: 1, Name: "Kansas City Chiefs", League: model.LEAGUE_NFL, VegasTotal: floatPtr(11.5)}
	mockDB.On("ListTeams", mock.Anything).Return([]model.Team{team}, nil)
	mockDB.On("GetWeeklyLine", mock.Anything, team.ID, 5).Return(nil, db.ErrLineNotFound)
	mockESPN.On("SeasonWinTotal", mock.Anything).Return(floatPtr(12.5), nil)
	mockDB.On("SaveWeeklyLines", mock.Anything, mock.MatchedBy(func(lines []model.WeeklyLine) bool {
		return len(lines) == 1 &&
			lines[0].TeamID == team.ID &&
			lines[0].Week == 5 &&
			lines[0].Line == 12.5 &&
			lines[0].Source == model.SourceESPN &&
			*lines[0].OriginalLine == 11.5
	})).Return(nil)

	summary, err := ctrl.UpdateAllLines(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("unexpected error updating lines: %v", err)
	}
	if summary.Attempted != 1 || summary.Updated != 1 || summary.Skipped != 0 || summary.Errors != 0 {
		t.Errorf("summary incorrect: %+v", summary)
	}
	if len(summary.SourcesUsed) != 1 || summary.SourcesUsed[0] != model.SourceESPN {
		t.Errorf("sources used incorrect: %v", summary.SourcesUsed)
	}
	mockDB.AssertExpectations(t)
	mockESPN.AssertExpectations(t)
}

func TestUpdateAllLinesFreshnessSkip(t *testing.T) {
	mockDB, _, mockClock, ctrl := linesTestSetup(t, model.SourceESPN)

	team := model.Team{ID: 1, Name: "Kansas City Chiefs", League: model.LEAGUE_NFL}
	recent := &model.WeeklyLine{TeamID: team.ID, Week: 5, Line: 11.5, Updated: mockClock.Now().Add(-2 * time.Hour)}

	mockDB.On("ListTeams", mock.Anything).Return([]model.Team{team}, nil)
	mockDB.On("GetWeeklyLine", mock.Anything, team.ID, 5).Return(recent, nil)
	mockDB.On("SaveWeeklyLines", mock.Anything, []model.WeeklyLine{}).Return(nil)

	summary, err := ctrl.UpdateAllLines(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("unexpected error updating lines: %v", err)
	}
	if summary.Skipped != 1 || summary.Updated != 0 {
		t.Errorf("wanted the fresh line skipped, got: %+v", summary)
	}
	mockDB.AssertExpectations(t)
}

func TestUpdateAllLinesForceBypassesFreshness(t *testing.T) {
	mockDB, mockESPN, _, ctrl := linesTestSetup(t, model.SourceESPN)

	team := model.Team{ID: 1, Name: "Kansas City Chiefs", League: model.LEAGUE_NFL}
	mockDB.On("ListTeams", mock.Anything).Return([]model.Team{team}, nil)
	mockESPN.On("SeasonWinTotal", mock.Anything).Return(floatPtr(11.0), nil)
	mockDB.On("SaveWeeklyLines", mock.Anything, mock.Anything).Return(nil)

	summary, err := ctrl.UpdateAllLines(context.Background(), 5, true)
	if err != nil {
		t.Fatalf("unexpected error updating lines: %v", err)
	}
	if summary.Updated != 1 {
		t.Errorf("wanted a forced update, got: %+v", summary)
	}
	// The freshness check must not have run.
	mockDB.AssertNotCalled(t, "GetWeeklyLine", mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertExpectations(t)
	mockESPN.AssertExpectations(t)
}

func TestUpdateAllLinesSourceOrder(t *testing.T) {
	mockDB, mockESPN, _, ctrl := linesTestSetup(t, model.SourceESPN, model.SourceProjected)

	team := model.Team{ID: 1, Name: "Georgia", League: model.LEAGUE_COLLEGE, VegasTotal: floatPtr(10.5)}
	mockDB.On("ListTeams", mock.Anything).Return([]model.Team{team}, nil)
	mockDB.On("GetWeeklyLine", mock.Anything, team.ID, 5).Return(nil, db.ErrLineNotFound)
	// The first source fails, so the projected source should supply the line.
	mockESPN.On("SeasonWinTotal", mock.Anything).Return(nil, errors.New("503 from feed"))
	mockDB.On("WinCount", mock.Anything, team.ID, model.GAME_REGULAR).Return(4, nil)
	mockDB.On("GamesPlayed", mock.Anything, team.ID, model.GAME_REGULAR).Return(5, nil)
	mockDB.On("SaveWeeklyLines", mock.Anything, mock.MatchedBy(func(lines []model.WeeklyLine) bool {
		return len(lines) == 1 && lines[0].Source == model.SourceProjected
	})).Return(nil)

	summary, err := ctrl.UpdateAllLines(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("unexpected error updating lines: %v", err)
	}
	if summary.Updated != 1 {
		t.Errorf("wanted the projected fallback to update, got: %+v", summary)
	}
	if len(summary.SourcesUsed) != 1 || summary.SourcesUsed[0] != model.SourceProjected {
		t.Errorf("sources used incorrect: %v", summary.SourcesUsed)
	}
	mockDB.AssertExpectations(t)
	mockESPN.AssertExpectations(t)
}

func TestUpdateAllLinesProjectedNeedsGames(t *testing.T) {
	mockDB, _, _, ctrl := linesTestSetup(t, model.SourceProjected)

	team := model.Team{ID: 1, Name: "Georgia", League: model.LEAGUE_COLLEGE}
	mockDB.On("ListTeams", mock.Anything).Return([]model.Team{team}, nil)
	mockDB.On("GetWeeklyLine", mock.Anything, team.ID, 2).Return(nil, db.ErrLineNotFound)
	mockDB.On("WinCount", mock.Anything, team.ID, model.GAME_REGULAR).Return(1, nil)
	mockDB.On("GamesPlayed", mock.Anything, team.ID, model.GAME_REGULAR).Return(1, nil)
	mockDB.On("SaveWeeklyLines", mock.Anything, []model.WeeklyLine{}).Return(nil)

	summary, err := ctrl.UpdateAllLines(context.Background(), 2, false)
	if err != nil {
		t.Fatalf("unexpected error updating lines: %v", err)
	}
	// One game is too small a sample; the team is neither updated nor skipped.
	if summary.Updated != 0 || summary.Skipped != 0 || summary.Errors != 0 {
		t.Errorf("wanted no line with one game played, got: %+v", summary)
	}
	mockDB.AssertExpectations(t)
}

func TestUpdateAllLinesBatchFailure(t *testing.T) {
	mockDB, mockESPN, _, ctrl := linesTestSetup(t, model.SourceESPN)

	team := model.Team{ID: 1, Name: "Kansas City Chiefs", League: model.LEAGUE_NFL}
	mockDB.On("ListTeams", mock.Anything).Return([]model.Team{team}, nil)
	mockDB.On("GetWeeklyLine", mock.Anything, team.ID, 5).Return(nil, db.ErrLineNotFound)
	mockESPN.On("SeasonWinTotal", mock.Anything).Return(floatPtr(11.0), nil)
	mockDB.On("SaveWeeklyLines", mock.Anything, mock.Anything).Return(errors.New("deadlock detected"))

	summary, err := ctrl.UpdateAllLines(context.Background(), 5, false)
	if err == nil {
		t.Fatal("expected an error when the batch commit fails, got none")
	}
	// The transaction rolled back, so the summary must not claim updates.
	if summary.Updated != 0 || summary.Errors != summary.Attempted {
		t.Errorf("summary after rollback incorrect: %+v", summary)
	}
	mockDB.AssertExpectations(t)
}

func TestManualUpdateLine(t *testing.T) {
	mockDB, _, _, ctrl := linesTestSetup(t, model.SourceESPN)

	team := &model.Team{ID: 1, Name: "Georgia", League: model.LEAGUE_COLLEGE, VegasTotal: floatPtr(10.5)}
	mockDB.On("GetTeam", mock.Anything, team.ID).Return(team, nil)
	mockDB.On("UpsertWeeklyLine", mock.Anything, mock.MatchedBy(func(line *model.WeeklyLine) bool {
		return line.TeamID == team.ID &&
			line.Week == 5 &&
			line.Line == 9.5 &&
			line.Source == model.SourceManual &&
			line.Notes == "injury to starting QB"
	})).Return(nil)

	if err := ctrl.ManualUpdateLine(context.Background(), team.ID, 5, 9.5, "injury to starting QB"); err != nil {
		t.Fatalf("unexpected error on manual update: %v", err)
	}
	mockDB.AssertExpectations(t)
}

func TestManualUpdateLineUnknownTeam(t *testing.T) {
	mockDB, _, _, ctrl := linesTestSetup(t, model.SourceESPN)

	mockDB.On("GetTeam", mock.Anything, int32(99)).Return(nil, db.ErrTeamNotFound)

	err := ctrl.ManualUpdateLine(context.Background(), 99, 5, 9.5, "")
	if !errors.Is(err, db.ErrTeamNotFound) {
		t.Errorf("wanted ErrTeamNotFound, got: %v", err)
	}
	mockDB.AssertExpectations(t)
}

func TestGetLineHistory(t *testing.T) {
	mockDB, _, _, ctrl := linesTestSetup(t, model.SourceESPN)

	team := &model.Team{ID: 1, Name: "Georgia", League: model.LEAGUE_COLLEGE, VegasTotal: floatPtr(10.5)}
	mockDB.On("GetTeam", mock.Anything, team.ID).Return(team, nil)
	mockDB.On("MaxWeek", mock.Anything, model.GAME_REGULAR).Return(8, nil)
	mockDB.On("LineHistory", mock.Anything, team.ID, 4).Return([]model.WeeklyLine{
		{TeamID: team.ID, Week: 8, Line: 11.0, Source: model.SourceProjected},
		{TeamID: team.ID, Week: 6, Line: 10.0, Source: model.SourceManual, Notes: "bye week"},
	}, nil)

	history, err := ctrl.GetLineHistory(context.Background(), team.ID, 4)
	if err != nil {
		t.Fatalf("unexpected error getting line history: %v", err)
	}
	if history.TeamName != "Georgia" {
		t.Errorf("team name incorrect, got: %s", history.TeamName)
	}
	if len(history.History) != 2 {
		t.Fatalf("wanted 2 history entries, got %d", len(history.History))
	}
	if history.History[0].Week != 8 || history.History[1].Week != 6 {
		t.Errorf("history order incorrect: %+v", history.History)
	}
	mockDB.AssertExpectations(t)
}
