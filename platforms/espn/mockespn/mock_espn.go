package mockespn

import (
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/btbtyler09/FF-Tracker/platforms/espn"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) Schedule(team *model.Team, year int) ([]espn.ScheduleGame, error) {
	args := c.Called(team, year)

	var res []espn.ScheduleGame
	if args.Get(0) != nil {
		res = args.Get(0).([]espn.ScheduleGame)
	}

	return res, args.Error(1)
}

func (c *Client) SeasonWinTotal(team *model.Team) (*float64, error) {
	args := c.Called(team)

	var res *float64
	if args.Get(0) != nil {
		res = args.Get(0).(*float64)
	}

	return res, args.Error(1)
}
