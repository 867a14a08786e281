package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/go-chi/chi/v5"
)

//go:embed espndata
var espndata embed.FS

// FakeESPNServer serves canned schedule and team responses for team id "12",
// the Chiefs. Any other team id gets an empty but valid response.
type FakeESPNServer struct {
	s *httptest.Server
}

func NewFakeESPNServer() *FakeESPNServer {
	r := chi.NewRouter()
	for _, sport := range []string{"football/nfl", "football/college-football"} {
		r.Route("/"+sport+"/teams", func(r chi.Router) {
			r.Get("/{teamID}", teamHandler)
			r.Get("/{teamID}/schedule", scheduleHandler)
		})
	}

	return &FakeESPNServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeESPNServer) Close() {
	f.s.Close()
}

func (f *FakeESPNServer) URL() string {
	return f.s.URL
}

func scheduleHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "teamID") != "12" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"events": []}`))
		return
	}

	seasonType, _ := strconv.Atoi(r.URL.Query().Get("seasontype"))
	if seasonType == 3 {
		serveFile(w, "chiefs_schedule_post.json")
	} else {
		serveFile(w, "chiefs_schedule_regular.json")
	}
}

func teamHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "teamID") != "12" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"team": {}}`))
		return
	}
	serveFile(w, "chiefs_team.json")
}

func serveFile(w http.ResponseWriter, name string) {
	data, err := espndata.ReadFile(fmt.Sprintf("espndata/%s", name))
	if err != nil {
		log.Printf("error reading file %s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
