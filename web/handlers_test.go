package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/btbtyler09/FF-Tracker/controller/mockcontroller"
	"github.com/btbtyler09/FF-Tracker/db"
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/stretchr/testify/mock"
)

var testAdmin = AdminCreds{User: "admin", Password: "pa55word"}

func serveRequest(ctrl *mockcontroller.C, req *http.Request) *httptest.ResponseRecorder {
	router := getRouter(ctrl, newRender(), testAdmin)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	w := serveRequest(ctrl, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
}

func TestStandingsHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("CalculateScores", mock.Anything).Return([]model.ManagerStanding{
		{ManagerID: 1, ManagerName: "Cliff", Rank: 1, TotalPoints: 42},
	}, nil)

	w := serveRequest(ctrl, httptest.NewRequest(http.MethodGet, "/api/standings", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}

	var standings []model.ManagerStanding
	if err := json.NewDecoder(w.Body).Decode(&standings); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(standings) != 1 || standings[0].ManagerName != "Cliff" {
		t.Errorf("response incorrect: %+v", standings)
	}
	ctrl.AssertExpectations(t)
}

func TestStandingsHandlerUnavailable(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("CalculateScores", mock.Anything).Return(nil, errors.New("connection refused"))

	w := serveRequest(ctrl, httptest.NewRequest(http.MethodGet, "/api/standings", nil))
	// An engine failure must never look like an empty league.
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "standings unavailable") {
		t.Errorf("body missing error message: %s", w.Body.String())
	}
	ctrl.AssertExpectations(t)
}

func TestManagerSummaryHandlerNotFound(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetManagerSummary", mock.Anything, int32(99)).Return(nil, db.ErrManagerNotFound)

	w := serveRequest(ctrl, httptest.NewRequest(http.MethodGet, "/api/managers/99", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertExpectations(t)
}

func TestProjectionsHandlerWeekParam(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("CalculateProjections", mock.Anything, 7).Return([]model.ManagerProjection{}, nil)

	w := serveRequest(ctrl, httptest.NewRequest(http.MethodGet, "/api/projections/?week=7", nil))
	if w.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertExpectations(t)
}

func TestProjectionsHandlerBadWeek(t *testing.T) {
	ctrl := &mockcontroller.C{}

	w := serveRequest(ctrl, httptest.NewRequest(http.MethodGet, "/api/projections/?week=zero", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertNotCalled(t, "CalculateProjections", mock.Anything, mock.Anything)
}

func TestUpdateLinesHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("UpdateAllLines", mock.Anything, 5, true).Return(&model.LineUpdateSummary{
		Week:      5,
		Attempted: 16,
		Updated:   14,
		Skipped:   2,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/vegas-lines/update?week=5&force=true", nil)
	w := serveRequest(ctrl, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}

	var summary model.LineUpdateSummary
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if summary.Updated != 14 || summary.Skipped != 2 {
		t.Errorf("summary incorrect: %+v", summary)
	}
	ctrl.AssertExpectations(t)
}

func TestManualLineHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("ManualUpdateLine", mock.Anything, int32(3), 5, 9.5, "injury").Return(nil)

	body := `{"team_id": 3, "week": 5, "line": 9.5, "notes": "injury"}`
	req := httptest.NewRequest(http.MethodPost, "/api/vegas-lines/manual", strings.NewReader(body))
	w := serveRequest(ctrl, req)
	if w.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertExpectations(t)
}

func TestManualLineHandlerMissingFields(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodPost, "/api/vegas-lines/manual", strings.NewReader(`{"line": 9.5}`))
	w := serveRequest(ctrl, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertNotCalled(t, "ManualUpdateLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLineHistoryHandler(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("GetLineHistory", mock.Anything, int32(3), 8).Return(&model.TeamLineHistory{
		TeamName: "Georgia",
		History:  []model.WeeklyLineEntry{{Week: 8, Line: 11.0, Source: model.SourceProjected}},
	}, nil)

	w := serveRequest(ctrl, httptest.NewRequest(http.MethodGet, "/api/vegas-lines/history/3?weeks=8", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Georgia") {
		t.Errorf("body missing team name: %s", w.Body.String())
	}
	ctrl.AssertExpectations(t)
}

func TestAdminRequiresAuth(t *testing.T) {
	ctrl := &mockcontroller.C{}

	req := httptest.NewRequest(http.MethodPost, "/admin/games/update", nil)
	w := serveRequest(ctrl, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertNotCalled(t, "UpdateGameResults", mock.Anything)
}

func TestAdminUpdateGames(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("UpdateGameResults", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/games/update", nil)
	req.SetBasicAuth(testAdmin.User, testAdmin.Password)
	w := serveRequest(ctrl, req)
	if w.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertExpectations(t)
}

func TestAdminManualGame(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("ManualUpdateGame", mock.Anything, "Georgia", "Alabama", true, (*int)(nil), model.GAME_CONF_CHAMP).
		Return(nil)

	body := `{"team": "Georgia", "opponent": "Alabama", "won": true, "game_type": "conference_championship"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/games/manual", strings.NewReader(body))
	req.SetBasicAuth(testAdmin.User, testAdmin.Password)
	w := serveRequest(ctrl, req)
	if w.Code != http.StatusOK {
		t.Errorf("unexpected status code. Got: %d", w.Code)
	}
	ctrl.AssertExpectations(t)
}

func TestAdminImportTeams(t *testing.T) {
	ctrl := &mockcontroller.C{}
	ctrl.On("ImportTeams", mock.Anything, mock.Anything).Return(16, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/import/teams", strings.NewReader(`[]`))
	req.SetBasicAuth(testAdmin.User, testAdmin.Password)
	w := serveRequest(ctrl, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "16") {
		t.Errorf("body missing import count: %s", w.Body.String())
	}
	ctrl.AssertExpectations(t)
}
