package mux

import (
	"net/http"
	"pokerroom-server/pkg/room"

	gmux "github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version     string
	defaultRoom string
	pitBoss     *room.PitBoss
}

// NewMux returns a new HTTP mux
// defaultRoom is used by websocket connections that do not name a room.
func NewMux(version string, pitBoss *room.PitBoss, defaultRoom string) *Mux {
	this := &Mux{
		Router:      gmux.NewRouter(),
		version:     version,
		defaultRoom: defaultRoom,
		pitBoss:     pitBoss,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.Handler())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	return this
}
