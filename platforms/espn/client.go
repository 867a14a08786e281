package espn

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/rs/zerolog/log"
)

const ESPNURL = "https://site.api.espn.com/apis/site/v2/sports"

// ESPN season types. Preseason games are never ingested.
const (
	SeasonTypePre     = 1
	SeasonTypeRegular = 2
	SeasonTypePost    = 3
)

// ScheduleGame is one event from a team's schedule, already reduced to the
// fields the tracker cares about.
type ScheduleGame struct {
	ESPNGameID string
	Week       *int
	Opponent   string
	Completed  bool
	Won        bool
	ScoreUs    *int
	ScoreThem  *int
	Date       time.Time
	SeasonType int
}

type Client interface {
	// Schedule returns the completed games from a team's regular season and
	// postseason schedule for the given year.
	Schedule(team *model.Team, year int) ([]ScheduleGame, error)
	// SeasonWinTotal returns the current season win-total line for a team if
	// ESPN exposes one. ESPN rarely does, so a nil result with a nil error is
	// the common case and callers must handle it.
	SeasonWinTotal(team *model.Team) (*float64, error)
}

type client struct {
	url        string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
}

func New(maxRetries int) (Client, error) {
	if maxRetries < 1 {
		return nil, fmt.Errorf("maxRetries must be at least 1, got %d", maxRetries)
	}
	c := &client{
		url: ESPNURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxRetries: maxRetries,
		retryDelay: 2 * time.Second,
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		maxRetries: 3,
		retryDelay: 1 * time.Millisecond,
	}
}

// sportPath maps a league to ESPN's URL segment for it.
func sportPath(l model.League) string {
	if l == model.LEAGUE_NFL {
		return "football/nfl"
	}
	return "football/college-football"
}

func (c *client) Schedule(team *model.Team, year int) ([]ScheduleGame, error) {
	if team.ESPNID == "" {
		return nil, fmt.Errorf("team %s has no ESPN id", team.Name)
	}

	games := make([]ScheduleGame, 0, 20)

	// ESPN only returns the current phase by default, so regular season and
	// postseason have to be requested separately.
	for _, seasonType := range []int{SeasonTypeRegular, SeasonTypePost} {
		url := fmt.Sprintf("%s/%s/teams/%s/schedule?season=%d&seasontype=%d",
			c.url, sportPath(team.League), team.ESPNID, year, seasonType)

		var parsed scheduleResponse
		if err := c.getWithRetry(url, team.Name, &parsed); err != nil {
			return nil, err
		}

		for _, event := range parsed.Events {
			g, ok := parseEvent(&event, team, seasonType)
			if ok {
				games = append(games, g)
			}
		}
	}

	return games, nil
}

func (c *client) SeasonWinTotal(team *model.Team) (*float64, error) {
	if team.ESPNID == "" {
		return nil, fmt.Errorf("team %s has no ESPN id", team.Name)
	}

	url := fmt.Sprintf("%s/%s/teams/%s?season=%d",
		c.url, sportPath(team.League), team.ESPNID, time.Now().Year())

	var parsed teamResponse
	if err := c.getWithRetry(url, team.Name, &parsed); err != nil {
		return nil, err
	}

	// ESPN's betting data is undocumented and usually absent from the team
	// endpoint. Take a win-total line when one shows up, otherwise report
	// nothing so the next source gets a shot.
	for _, odds := range parsed.Team.Odds {
		if odds.WinTotal != nil {
			return odds.WinTotal, nil
		}
	}
	return nil, nil
}

func (c *client) getWithRetry(url, teamName string, out any) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err := c.get(url, out)
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn().Err(err).Msgf("espn request failed for %s (attempt %d/%d)", teamName, attempt, c.maxRetries)
		if attempt < c.maxRetries {
			// Linear backoff, same shape as the feed's request budget expects.
			time.Sleep(c.retryDelay * time.Duration(attempt))
		}
	}
	return fmt.Errorf("espn request for %s failed after %d attempts: %w", teamName, c.maxRetries, lastErr)
}

func (c *client) get(url string, out any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error parsing response from espn: %w", err)
	}
	return nil
}

// parseEvent reduces an ESPN schedule event to a ScheduleGame. Only completed
// games with both competitors resolvable are returned.
func parseEvent(event *scheduleEvent, team *model.Team, seasonType int) (ScheduleGame, bool) {
	for i := range event.Competitions {
		comp := &event.Competitions[i]
		if !comp.Status.Type.Completed {
			continue
		}

		var us, them *competitor
		for j := range comp.Competitors {
			if comp.Competitors[j].Team.ID == team.ESPNID {
				us = &comp.Competitors[j]
			} else {
				them = &comp.Competitors[j]
			}
		}
		if us == nil || them == nil {
			log.Warn().Msgf("could not find team matchup for espn game %s", event.ID)
			continue
		}

		scoreUs := int(us.Score.Value)
		scoreThem := int(them.Score.Value)

		g := ScheduleGame{
			ESPNGameID: event.ID,
			Opponent:   them.Team.DisplayName,
			Completed:  true,
			Won:        us.Score.Value > them.Score.Value,
			ScoreUs:    &scoreUs,
			ScoreThem:  &scoreThem,
			SeasonType: seasonType,
		}
		if event.Week.Number > 0 {
			week := event.Week.Number
			g.Week = &week
		}
		g.Date = parseESPNDate(event.Date)
		return g, true
	}
	return ScheduleGame{}, false
}
