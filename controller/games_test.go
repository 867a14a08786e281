package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/btbtyler09/FF-Tracker/config"
	"github.com/btbtyler09/FF-Tracker/db"
	"github.com/btbtyler09/FF-Tracker/db/mockdb"
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/btbtyler09/FF-Tracker/platforms/espn"
	"github.com/btbtyler09/FF-Tracker/platforms/espn/mockespn"
	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"
)

func intPtr(i int) *int {
	return &i
}

func TestGameTypeForSeason(t *testing.T) {
	tests := map[string]struct {
		seasonType int
		league     model.League
		want       model.GameType
	}{
		"nfl regular season":     {espn.SeasonTypeRegular, model.LEAGUE_NFL, model.GAME_REGULAR},
		"college regular season": {espn.SeasonTypeRegular, model.LEAGUE_COLLEGE, model.GAME_REGULAR},
		"nfl postseason":         {espn.SeasonTypePost, model.LEAGUE_NFL, model.GAME_PLAYOFF},
		"college postseason":     {espn.SeasonTypePost, model.LEAGUE_COLLEGE, model.GAME_BOWL},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := gameTypeForSeason(tc.seasonType, tc.league); got != tc.want {
				t.Errorf("game type incorrect, wanted: %s, got: %s", tc.want, got)
			}
		})
	}
}

func TestSeasonYear(t *testing.T) {
	tests := map[string]struct {
		now  time.Time
		want int
	}{
		"september":        {time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), 2025},
		"december":         {time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), 2025},
		"january playoffs": {time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), 2025},
		"february title":   {time.Date(2026, time.February, 8, 0, 0, 0, 0, time.UTC), 2025},
		"march":            {time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), 2026},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := seasonYear(tc.now); got != tc.want {
				t.Errorf("season year incorrect, wanted: %d, got: %d", tc.want, got)
			}
		})
	}
}

func TestUpdateGameResults(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockESPN := &mockespn.Client{}
	mockClock := clock.NewMock()
	mockClock.Set(time.Date(2025, time.November, 2, 12, 0, 0, 0, time.UTC))

	cfg := config.Default()
	cfg.Lines.RequestDelay = 0
	ctrl, err := New(mockClock, mockDB, mockESPN, cfg)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	chiefs := model.Team{ID: 1, Name: "Kansas City Chiefs", League: model.LEAGUE_NFL, ESPNID: "12"}
	manual := model.Team{ID: 2, Name: "North Dakota State", League: model.LEAGUE_COLLEGE}

	mockDB.On("ListTeams", mock.Anything).Return([]model.Team{chiefs, manual}, nil)
	mockESPN.On("Schedule", mock.Anything, 2025).Return([]espn.ScheduleGame{
		{
			ESPNGameID: "401001",
			Week:       intPtr(8),
			Opponent:   "Buffalo Bills",
			Completed:  true,
			Won:        true,
			ScoreUs:    intPtr(27),
			ScoreThem:  intPtr(20),
			SeasonType: espn.SeasonTypeRegular,
		},
		{
			// Still in progress, must not be recorded.
			ESPNGameID: "401002",
			Week:       intPtr(9),
			Opponent:   "Denver Broncos",
			SeasonType: espn.SeasonTypeRegular,
		},
	}, nil)
	mockDB.On("UpsertGame", mock.Anything, mock.MatchedBy(func(g *model.Game) bool {
		return g.TeamID == chiefs.ID &&
			g.ESPNGameID == "401001" &&
			g.Won &&
			g.Type == model.GAME_REGULAR &&
			*g.Week == 8
	})).Return(nil)

	if err := ctrl.UpdateGameResults(context.Background()); err != nil {
		t.Fatalf("unexpected error updating game results: %v", err)
	}

	// The team without a feed id is skipped entirely.
	mockESPN.AssertNumberOfCalls(t, "Schedule", 1)
	mockDB.AssertExpectations(t)
	mockESPN.AssertExpectations(t)
}

func TestManualUpdateGameAddsNewGame(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := testController(t, mockDB)

	team := &model.Team{ID: 1, Name: "Georgia", League: model.LEAGUE_COLLEGE}
	mockDB.On("GetTeamByName", mock.Anything, "Georgia").Return(team, nil)
	mockDB.On("FindGame", mock.Anything, team.ID, "Alabama", (*int)(nil)).
		Return(nil, db.ErrGameNotFound)
	mockDB.On("AddGame", mock.Anything, mock.MatchedBy(func(g *model.Game) bool {
		return g.TeamID == team.ID &&
			g.Opponent == "Alabama" &&
			g.Won &&
			g.Type == model.GAME_CONF_CHAMP
	})).Return(nil)

	err := ctrl.ManualUpdateGame(context.Background(), "Georgia", "Alabama", true, nil, model.GAME_CONF_CHAMP)
	if err != nil {
		t.Fatalf("unexpected error on manual game add: %v", err)
	}
	mockDB.AssertExpectations(t)
}

func TestManualUpdateGameUpdatesExisting(t *testing.T) {
	mockDB := &mockdb.DB{}
	ctrl := testController(t, mockDB)

	team := &model.Team{ID: 1, Name: "Kansas City Chiefs", League: model.LEAGUE_NFL}
	existing := &model.Game{ID: 44, TeamID: team.ID, Opponent: "Philadelphia Eagles", Won: false, Type: model.GAME_PLAYOFF}

	mockDB.On("GetTeamByName", mock.Anything, "Kansas City Chiefs").Return(team, nil)
	mockDB.On("FindGame", mock.Anything, team.ID, "Philadelphia Eagles", (*int)(nil)).
		Return(existing, nil)
	mockDB.On("UpdateGameResult", mock.Anything, existing.ID, true, model.GAME_CHAMP).Return(nil)

	err := ctrl.ManualUpdateGame(context.Background(), "Kansas City Chiefs", "Philadelphia Eagles", true, nil, model.GAME_CHAMP)
	if err != nil {
		t.Fatalf("unexpected error on manual game update: %v", err)
	}
	mockDB.AssertExpectations(t)
}

func TestRunPeriodicGameUpdates(t *testing.T) {
	mockDB := &mockdb.DB{}
	mockESPN := &mockespn.Client{}

	cfg := config.Default()
	cfg.Lines.RequestDelay = 0
	ctrl, err := New(clock.New(), mockDB, mockESPN, cfg)
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}

	team := model.Team{ID: 1, Name: "Kansas City Chiefs", League: model.LEAGUE_NFL, ESPNID: "12"}
	mockDB.On("ListTeams", mock.Anything).Return([]model.Team{team}, nil).Times(3)
	mockESPN.On("Schedule", mock.Anything, mock.Anything).Return([]espn.ScheduleGame{}, nil).Times(3)

	shutdown := make(chan bool, 1)
	go func() {
		time.Sleep(160 * time.Millisecond) // enough time to run 3 times, but not 4
		close(shutdown)
	}()
	var wg sync.WaitGroup

	wg.Add(1)
	ctrl.RunPeriodicGameUpdates(50*time.Millisecond, shutdown, &wg)
	wg.Wait()

	mockDB.AssertExpectations(t)
	mockESPN.AssertExpectations(t)
}
