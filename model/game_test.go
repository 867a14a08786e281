package model

import "testing"

func TestParseGameType(t *testing.T) {
	tests := []struct {
		input    string
		expected GameType
	}{
		{input: "regular", expected: GAME_REGULAR},
		{input: "REGULAR", expected: GAME_REGULAR},
		{input: "", expected: GAME_REGULAR},
		{input: "conference_championship", expected: GAME_CONF_CHAMP},
		{input: "conf_champ", expected: GAME_CONF_CHAMP},
		{input: "bowl", expected: GAME_BOWL},
		{input: "playoff", expected: GAME_PLAYOFF},
		{input: "Playoff", expected: GAME_PLAYOFF},
		{input: "championship", expected: GAME_CHAMP},
		{input: " bowl ", expected: GAME_BOWL},
		{input: "preseason", expected: GAME_UNKNOWN},
		{input: "exhibition", expected: GAME_UNKNOWN},
	}

	for _, tc := range tests {
		a := ParseGameType(tc.input)
		if a != tc.expected {
			t.Errorf("input: '%s', expected: '%s', got '%s'", tc.input, tc.expected, a)
		}
	}
}

func TestGameTypeIsValid(t *testing.T) {
	valid := []GameType{GAME_REGULAR, GAME_CONF_CHAMP, GAME_BOWL, GAME_PLAYOFF, GAME_CHAMP}
	for _, gt := range valid {
		if !gt.IsValid() {
			t.Errorf("expected '%s' to be valid", gt)
		}
	}
	invalid := []GameType{GAME_UNKNOWN, GAME_ANY, GameType("superbowl")}
	for _, gt := range invalid {
		if gt.IsValid() {
			t.Errorf("expected '%s' to be invalid", gt)
		}
	}
}

func TestScoreString(t *testing.T) {
	us := 21
	them := 17
	g := &Game{ScoreUs: &us, ScoreThem: &them}
	if s := g.ScoreString(); s != "21-17" {
		t.Errorf("expected: '21-17', got: '%s'", s)
	}

	g = &Game{}
	if s := g.ScoreString(); s != "TBD" {
		t.Errorf("expected: 'TBD', got: '%s'", s)
	}
}
