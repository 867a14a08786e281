package controller

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/rs/zerolog/log"
)

// The league's managers in draft order. The roster is fixed, so seeding is a
// one-time operation rather than a CRUD surface.
var leagueManagers = []string{"Cliff", "Petty", "Andrew", "Kyle", "Chad", "Shelby", "Levi", "TB"}

func (c *controller) SeedManagers(ctx context.Context) (int, error) {
	existing, err := c.db.ListManagers(ctx)
	if err != nil {
		return 0, fmt.Errorf("error checking existing managers: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Msgf("managers already seeded (%d found), skipping", len(existing))
		return 0, nil
	}

	for i, name := range leagueManagers {
		m := &model.Manager{
			Name:          name,
			DraftPosition: i + 1,
		}
		if err := c.db.AddManager(ctx, m); err != nil {
			return i, fmt.Errorf("error adding manager %s: %w", name, err)
		}
	}

	log.Info().Msgf("seeded %d managers", len(leagueManagers))
	return len(leagueManagers), nil
}

// teamImport is one entry in the team import file.
type teamImport struct {
	Name         string   `json:"name"`
	League       string   `json:"league"`
	Conference   string   `json:"conference"`
	VegasTotal   *float64 `json:"vegas_total"`
	ESPNID       string   `json:"espn_id"`
	Abbreviation string   `json:"abbreviation"`
}

// ImportTeams loads teams from a JSON array. Teams that already exist by name
// are skipped so the import can be re-run safely.
func (c *controller) ImportTeams(ctx context.Context, r io.Reader) (int, error) {
	var entries []teamImport
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, fmt.Errorf("error parsing team import: %w", err)
	}

	existing, err := c.db.ListTeams(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[t.Name] = true
	}

	added := 0
	for _, e := range entries {
		if e.Name == "" {
			return added, errors.New("team import entry missing a name")
		}
		if known[e.Name] {
			log.Debug().Msgf("team %s already exists, skipping", e.Name)
			continue
		}

		league := model.ParseLeague(e.League)
		if !league.IsValid() {
			return added, fmt.Errorf("team %s has unknown league %q", e.Name, e.League)
		}

		team := &model.Team{
			Name:         e.Name,
			League:       league,
			Conference:   e.Conference,
			VegasTotal:   e.VegasTotal,
			ESPNID:       e.ESPNID,
			Abbreviation: e.Abbreviation,
		}
		if err := c.db.AddTeam(ctx, team); err != nil {
			return added, fmt.Errorf("error adding team %s: %w", e.Name, err)
		}
		added++
	}

	log.Info().Msgf("imported %d teams", added)
	return added, nil
}

// ImportDraft loads draft picks from a CSV with the columns
// round,pick,manager,team. A header row is detected and skipped.
func (c *controller) ImportDraft(ctx context.Context, r io.Reader) (int, error) {
	managers, err := c.db.ListManagers(ctx)
	if err != nil {
		return 0, err
	}
	managersByName := make(map[string]int32, len(managers))
	for _, m := range managers {
		managersByName[strings.ToLower(m.Name)] = m.ID
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	added := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return added, fmt.Errorf("error reading draft import: %w", err)
		}
		if strings.EqualFold(record[0], "round") {
			continue
		}

		round, err := strconv.Atoi(record[0])
		if err != nil {
			return added, fmt.Errorf("invalid round %q: %w", record[0], err)
		}
		pick, err := strconv.Atoi(record[1])
		if err != nil {
			return added, fmt.Errorf("invalid pick %q: %w", record[1], err)
		}

		managerID, ok := managersByName[strings.ToLower(strings.TrimSpace(record[2]))]
		if !ok {
			return added, fmt.Errorf("unknown manager %q on pick %d", record[2], pick)
		}

		team, err := c.db.GetTeamByName(ctx, strings.TrimSpace(record[3]))
		if err != nil {
			return added, fmt.Errorf("error finding team %q on pick %d: %w", record[3], pick, err)
		}

		dp := &model.DraftPick{
			ManagerID: managerID,
			TeamID:    team.ID,
			Round:     round,
			Pick:      pick,
		}
		if err := c.db.AddDraftPick(ctx, dp); err != nil {
			return added, fmt.Errorf("error saving pick %d: %w", pick, err)
		}
		added++
	}

	log.Info().Msgf("imported %d draft picks", added)
	return added, nil
}
