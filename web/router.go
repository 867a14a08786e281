package web

import (
	"time"

	"github.com/btbtyler09/FF-Tracker/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, admin AdminCreds) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", healthHandler(render))

	r.Route("/api", func(r chi.Router) {
		r.Get("/standings", standingsHandler(ctrl, render))
		r.Get("/managers/{managerID:\\d+}", managerSummaryHandler(ctrl, render))
		r.Get("/stats", leagueStatsHandler(ctrl, render))

		r.Route("/projections", func(r chi.Router) {
			r.Get("/", projectionsHandler(ctrl, render))
			r.Get("/teams/{teamID:\\d+}", teamProjectionHandler(ctrl, render))
		})

		r.Route("/vegas-lines", func(r chi.Router) {
			r.Get("/history/{teamID:\\d+}", lineHistoryHandler(ctrl, render))
			r.Post("/update", updateLinesHandler(ctrl, render))
			r.Post("/manual", manualLineHandler(ctrl, render))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("ff-tracker", map[string]string{admin.User: admin.Password}))
		r.Use(middleware.Timeout(5 * time.Minute)) // A full game refresh talks to ESPN per team

		r.Post("/games/update", updateGamesHandler(ctrl, render))
		r.Post("/games/manual", manualGameHandler(ctrl, render))
		r.Post("/import/teams", importTeamsHandler(ctrl, render))
		r.Post("/import/draft", importDraftHandler(ctrl, render))
		r.Post("/seed-managers", seedManagersHandler(ctrl, render))
	})

	return r
}
