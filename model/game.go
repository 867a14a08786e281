package model

import (
	"fmt"
	"strings"
	"time"
)

type GameType string

const (
	// GAME_ANY is only used as a query filter, never stored.
	GAME_ANY GameType = ""

	GAME_UNKNOWN    GameType = "unknown"
	GAME_REGULAR    GameType = "regular"
	GAME_CONF_CHAMP GameType = "conference_championship"
	GAME_BOWL       GameType = "bowl"
	GAME_PLAYOFF    GameType = "playoff"
	GAME_CHAMP      GameType = "championship"
)

func ParseGameType(t string) GameType {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "regular", "":
		return GAME_REGULAR
	case "conference_championship", "conf_champ":
		return GAME_CONF_CHAMP
	case "bowl":
		return GAME_BOWL
	case "playoff":
		return GAME_PLAYOFF
	case "championship":
		return GAME_CHAMP
	default:
		return GAME_UNKNOWN
	}
}

// IsValid reports whether the type can be stored on a game.
func (t GameType) IsValid() bool {
	switch t {
	case GAME_REGULAR, GAME_CONF_CHAMP, GAME_BOWL, GAME_PLAYOFF, GAME_CHAMP:
		return true
	}
	return false
}

// Game is a single contest for one team. The opponent is free text, not a
// reference to another Team, since most opponents are never drafted.
type Game struct {
	ID         int32
	TeamID     int32
	Week       *int // nil for postseason games without a strict week
	Opponent   string
	Won        bool
	Type       GameType
	GameDate   time.Time
	ScoreUs    *int
	ScoreThem  *int
	ESPNGameID string // used for idempotent upserts from the result feed
	Created    time.Time
	Updated    time.Time
}

func (g *Game) ScoreString() string {
	if g.ScoreUs != nil && g.ScoreThem != nil {
		return fmt.Sprintf("%d-%d", *g.ScoreUs, *g.ScoreThem)
	}
	return "TBD"
}
