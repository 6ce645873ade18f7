// Package server exposes a simulator to external renderer and GUI clients
// over a websocket: clients mutate parameters, inject density and velocity,
// and receive periodic density frames while the simulation runs. Each
// connection owns a private simulator.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/Efocor/FLUISIMS/config"
	"github.com/Efocor/FLUISIMS/pkg/fluid"
)

type Server struct {
	cfg      config.Config
	upgrader websocket.Upgrader
}

func New(cfg config.Config, upgrader websocket.Upgrader) *Server {
	return &Server{
		cfg:      cfg,
		upgrader: upgrader,
	}
}

// serveWs handles one websocket client: it builds a fresh simulator, runs
// the hub loop that owns it, and pumps decoded requests into the hub. All
// simulator access happens on the hub goroutine, so injections are never
// concurrent with a step.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sim, err := fluid.NewWithOptions(s.cfg.GridSize, s.cfg.Diffusion, s.cfg.Viscosity, s.cfg.TimeStep,
		fluid.Options{SolverIterations: s.cfg.SolverIterations})
	if err != nil {
		log.WithError(err).Error("cannot build simulator from config")
		return
	}

	h := newHub(sim, s.cfg.PushInterval)
	go h.run(conn)
	defer close(h.msg)

	log.WithField("remote", r.RemoteAddr).Info("client connected")
	for {
		var m Msg
		if err := conn.ReadJSON(&m); err != nil {
			log.WithError(err).WithField("remote", r.RemoteAddr).Info("client disconnected")
			return
		}
		h.msg <- m
	}
}

// Serve registers the websocket endpoint and blocks serving it.
func (s *Server) Serve() error {
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.serveWs(w, r)
	})
	log.WithField("addr", s.cfg.Addr).Info("fluid server listening")
	return http.ListenAndServe(s.cfg.Addr, nil)
}
