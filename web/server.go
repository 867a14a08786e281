package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/btbtyler09/FF-Tracker/controller"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/render"
)

type Server struct {
	server *http.Server
}

// AdminCreds protect the mutating /admin routes.
type AdminCreds struct {
	User     string
	Password string
}

func NewServer(port int, ctrl controller.C, admin AdminCreds) (*Server, error) {
	if admin.User == "" || admin.Password == "" {
		return nil, fmt.Errorf("admin credentials must be set")
	}

	render := newRender()
	router := getRouter(ctrl, render, admin)

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("error shutting down server")
		}
	}()

	log.Info().Msgf("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("fatal error with server")
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		IndentJSON: true,
	})
}
