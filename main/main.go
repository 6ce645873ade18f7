package main

import (
	"flag"
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/Efocor/FLUISIMS/config"
	"github.com/Efocor/FLUISIMS/server"
)

var confPath = flag.String("conf", "conf/config.ini", "path to the ini configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*confPath)
	if err != nil {
		log.WithError(err).Warn("configuration not loaded, using defaults")
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}

	log.WithFields(log.Fields{
		"grid":      cfg.GridSize,
		"diffusion": cfg.Diffusion,
		"viscosity": cfg.Viscosity,
		"dt":        cfg.TimeStep,
	}).Info("starting fluid simulation server")

	s := server.New(cfg, upgrader)
	if err := s.Serve(); err != nil {
		log.Fatal(err)
	}
}
