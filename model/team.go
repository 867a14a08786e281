package model

import (
	"fmt"
	"time"
)

type Team struct {
	ID           int32
	Name         string
	League       League
	Conference   string // ACC, Big Ten, etc. NFL division for NFL teams.
	VegasTotal   *float64
	ESPNID       string
	Abbreviation string
	Created      time.Time
}

func (t *Team) String() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.League)
}

type Manager struct {
	ID            int32
	Name          string
	DraftPosition int
	Created       time.Time
}

// DraftPick binds a manager to a team. Pick numbers are globally unique and
// each team can only be drafted once, both enforced by the schema.
type DraftPick struct {
	ID        int32
	ManagerID int32
	TeamID    int32
	Round     int
	Pick      int
	Team      *Team
	Created   time.Time
}
