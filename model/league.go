package model

import (
	"strings"
)

type League string

const (
	LEAGUE_UNKNOWN League = "UNKNOWN"
	LEAGUE_NFL     League = "NFL"
	LEAGUE_COLLEGE League = "COLLEGE"
)

func ParseLeague(l string) League {
	switch strings.ToUpper(strings.TrimSpace(l)) {
	case "NFL":
		return LEAGUE_NFL
	case "COLLEGE", "CFB", "NCAA":
		return LEAGUE_COLLEGE
	default:
		return LEAGUE_UNKNOWN
	}
}

func (l League) IsValid() bool {
	return l == LEAGUE_NFL || l == LEAGUE_COLLEGE
}

// RegularSeasonGames is the fixed schedule length used by the projection engine.
func (l League) RegularSeasonGames() int {
	if l == LEAGUE_NFL {
		return 17
	}
	return 12
}
