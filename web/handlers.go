package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/btbtyler09/FF-Tracker/controller"
	"github.com/btbtyler09/FF-Tracker/db"
	"github.com/btbtyler09/FF-Tracker/model"
	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"
)

func jsonError(render *render.Render, w http.ResponseWriter, status int, msg string) {
	render.JSON(w, status, map[string]string{"error": msg})
}

func healthHandler(render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func standingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := ctrl.CalculateScores(r.Context())
		if err != nil {
			// Failure must never read as an empty league.
			jsonError(render, w, http.StatusServiceUnavailable, "standings unavailable")
			return
		}
		render.JSON(w, http.StatusOK, standings)
	}
}

func managerSummaryHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "managerID"))
		if err != nil {
			jsonError(render, w, http.StatusBadRequest, fmt.Sprintf("error parsing manager id: %v", err))
			return
		}

		summary, err := ctrl.GetManagerSummary(r.Context(), int32(id))
		if err != nil {
			if errors.Is(err, db.ErrManagerNotFound) {
				jsonError(render, w, http.StatusNotFound, "manager not found")
			} else {
				jsonError(render, w, http.StatusServiceUnavailable, "manager summary unavailable")
			}
			return
		}
		render.JSON(w, http.StatusOK, summary)
	}
}

func leagueStatsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := ctrl.GetLeagueStats(r.Context())
		if err != nil {
			jsonError(render, w, http.StatusServiceUnavailable, "stats unavailable")
			return
		}
		render.JSON(w, http.StatusOK, stats)
	}
}

// weekParam parses an optional week query parameter. 0 means unset and the
// controller auto-detects the current week.
func weekParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("week")
	if v == "" {
		return 0, nil
	}
	week, err := strconv.Atoi(v)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("invalid week: %q", v)
	}
	return week, nil
}

func projectionsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := weekParam(r)
		if err != nil {
			jsonError(render, w, http.StatusBadRequest, err.Error())
			return
		}

		projections, err := ctrl.CalculateProjections(r.Context(), week)
		if err != nil {
			jsonError(render, w, http.StatusServiceUnavailable, "projections unavailable")
			return
		}
		render.JSON(w, http.StatusOK, projections)
	}
}

func teamProjectionHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "teamID"))
		if err != nil {
			jsonError(render, w, http.StatusBadRequest, fmt.Sprintf("error parsing team id: %v", err))
			return
		}
		week, err := weekParam(r)
		if err != nil {
			jsonError(render, w, http.StatusBadRequest, err.Error())
			return
		}

		projection, err := ctrl.GetTeamProjection(r.Context(), int32(id), week)
		if err != nil {
			if errors.Is(err, db.ErrTeamNotFound) {
				jsonError(render, w, http.StatusNotFound, "team not found")
			} else {
				jsonError(render, w, http.StatusServiceUnavailable, "projection unavailable")
			}
			return
		}
		render.JSON(w, http.StatusOK, projection)
	}
}

func lineHistoryHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "teamID"))
		if err != nil {
			jsonError(render, w, http.StatusBadRequest, fmt.Sprintf("error parsing team id: %v", err))
			return
		}

		weeks := 5
		if v := r.URL.Query().Get("weeks"); v != "" {
			weeks, err = strconv.Atoi(v)
			if err != nil || weeks < 1 {
				jsonError(render, w, http.StatusBadRequest, fmt.Sprintf("invalid weeks: %q", v))
				return
			}
		}

		history, err := ctrl.GetLineHistory(r.Context(), int32(id), weeks)
		if err != nil {
			if errors.Is(err, db.ErrTeamNotFound) {
				jsonError(render, w, http.StatusNotFound, "team not found")
			} else {
				jsonError(render, w, http.StatusServiceUnavailable, "line history unavailable")
			}
			return
		}
		render.JSON(w, http.StatusOK, history)
	}
}

func updateLinesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		week, err := weekParam(r)
		if err != nil {
			jsonError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		force := r.URL.Query().Get("force") == "true"

		summary, err := ctrl.UpdateAllLines(r.Context(), week, force)
		if err != nil {
			jsonError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, summary)
	}
}

type manualLineRequest struct {
	TeamID int32   `json:"team_id"`
	Week   int     `json:"week"`
	Line   float64 `json:"line"`
	Notes  string  `json:"notes"`
}

func manualLineHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req manualLineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(render, w, http.StatusBadRequest, fmt.Sprintf("error parsing request: %v", err))
			return
		}
		if req.TeamID < 1 || req.Week < 1 {
			jsonError(render, w, http.StatusBadRequest, "team_id and week are required")
			return
		}

		if err := ctrl.ManualUpdateLine(r.Context(), req.TeamID, req.Week, req.Line, req.Notes); err != nil {
			if errors.Is(err, db.ErrTeamNotFound) {
				jsonError(render, w, http.StatusNotFound, "team not found")
			} else {
				jsonError(render, w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func updateGamesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.UpdateGameResults(r.Context()); err != nil {
			jsonError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

type manualGameRequest struct {
	Team     string `json:"team"`
	Opponent string `json:"opponent"`
	Won      bool   `json:"won"`
	Week     *int   `json:"week"`
	GameType string `json:"game_type"`
}

func manualGameHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req manualGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(render, w, http.StatusBadRequest, fmt.Sprintf("error parsing request: %v", err))
			return
		}
		if req.Team == "" || req.Opponent == "" {
			jsonError(render, w, http.StatusBadRequest, "team and opponent are required")
			return
		}

		gameType := model.ParseGameType(req.GameType)
		if !gameType.IsValid() {
			jsonError(render, w, http.StatusBadRequest, fmt.Sprintf("unknown game type: %q", req.GameType))
			return
		}

		err := ctrl.ManualUpdateGame(r.Context(), req.Team, req.Opponent, req.Won, req.Week, gameType)
		if err != nil {
			if errors.Is(err, db.ErrTeamNotFound) {
				jsonError(render, w, http.StatusNotFound, "team not found")
			} else {
				jsonError(render, w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func importTeamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := ctrl.ImportTeams(r.Context(), r.Body)
		if err != nil {
			jsonError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, map[string]int{"imported": count})
	}
}

func importDraftHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := ctrl.ImportDraft(r.Context(), r.Body)
		if err != nil {
			jsonError(render, w, http.StatusBadRequest, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, map[string]int{"imported": count})
	}
}

func seedManagersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := ctrl.SeedManagers(r.Context())
		if err != nil {
			jsonError(render, w, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, http.StatusOK, map[string]int{"seeded": count})
	}
}
