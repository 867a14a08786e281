package testutils

import (
	"context"
	"log"

	"github.com/btbtyler09/FF-Tracker/containers"
	"github.com/btbtyler09/FF-Tracker/db"
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/itbasis/go-clock"
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (d *TestDB) Shutdown() {
	d.container.Shutdown()
}

func floatPtr(f float64) *float64 {
	return &f
}

// InsertTestLeague seeds two managers, four teams, and a round of draft picks.
// The inserted structs get their database ids filled in.
func InsertTestLeague(d db.DB) ([]model.Manager, []model.Team, error) {
	ctx := context.Background()

	managers := []model.Manager{
		{Name: "Cliff", DraftPosition: 1},
		{Name: "Petty", DraftPosition: 2},
	}
	for i := range managers {
		if err := d.AddManager(ctx, &managers[i]); err != nil {
			return nil, nil, err
		}
	}

	teams := []model.Team{
		{Name: "Georgia", League: model.LEAGUE_COLLEGE, Conference: "SEC", VegasTotal: floatPtr(10.5), ESPNID: "61", Abbreviation: "UGA"},
		{Name: "Kansas City Chiefs", League: model.LEAGUE_NFL, Conference: "AFC West", VegasTotal: floatPtr(11.5), ESPNID: "12", Abbreviation: "KC"},
		{Name: "Michigan", League: model.LEAGUE_COLLEGE, Conference: "Big Ten", VegasTotal: floatPtr(9.5), ESPNID: "130", Abbreviation: "MICH"},
		{Name: "Detroit Lions", League: model.LEAGUE_NFL, Conference: "NFC North", VegasTotal: floatPtr(10.5), ESPNID: "8", Abbreviation: "DET"},
	}
	for i := range teams {
		if err := d.AddTeam(ctx, &teams[i]); err != nil {
			return nil, nil, err
		}
	}

	picks := []model.DraftPick{
		{ManagerID: managers[0].ID, TeamID: teams[0].ID, Round: 1, Pick: 1},
		{ManagerID: managers[1].ID, TeamID: teams[1].ID, Round: 1, Pick: 2},
		{ManagerID: managers[1].ID, TeamID: teams[2].ID, Round: 2, Pick: 3},
		{ManagerID: managers[0].ID, TeamID: teams[3].ID, Round: 2, Pick: 4},
	}
	for i := range picks {
		if err := d.AddDraftPick(ctx, &picks[i]); err != nil {
			return nil, nil, err
		}
	}

	return managers, teams, nil
}
