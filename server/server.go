// Package server pushes simulation frames to a rendering frontend over
// a websocket connection. The frontend drives the run with small JSON
// messages: "case" sets the simulation case, "start" begins stepping,
// "stop" cancels it.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/bening-gawitsa/heatsim/config"
	"github.com/bening-gawitsa/heatsim/model"
)

type Server struct {
	cfg      config.Config
	upgrader websocket.Upgrader
}

func NewServer(cfg config.Config, upgrader websocket.Upgrader) *Server {
	return &Server{
		cfg:      cfg,
		upgrader: upgrader,
	}
}

// serveWs handles one websocket peer: a hub per connection, request and
// response loops in their own goroutines, reads pumped here.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h := newHub(conn, s.cfg)
	defer h.close()
	go h.handleRequest()
	go h.handleResponse()

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			log.WithError(err).Info("connection closed")
			return
		}
		h.msg <- msg
	}
}

func (s *Server) Serve() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	log.WithField("addr", s.cfg.Addr).Info("listening")
	return http.ListenAndServe(s.cfg.Addr, mux)
}
