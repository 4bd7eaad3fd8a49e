// Package metrics exposes the server's prometheus collectors
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	roomsOpenGauge        prometheus.Gauge
	connectedClientsGauge prometheus.Gauge
	seatsJoinedCounter    prometheus.Counter
	handsStartedCounter   prometheus.Counter
	handsEndedCounter     *prometheus.CounterVec
	actionsCounter        *prometheus.CounterVec
	turnTimeoutsCounter   prometheus.Counter
	kicksCounter          prometheus.Counter
	ledgerErrorsCounter   prometheus.Counter
}

func (m *metrics) SetRoomsOpen(count int) {
	m.roomsOpenGauge.Set(float64(count))
}

func (m *metrics) ClientConnected() {
	m.connectedClientsGauge.Inc()
}

func (m *metrics) ClientDisconnected() {
	m.connectedClientsGauge.Dec()
}

func (m *metrics) SeatJoined() {
	m.seatsJoinedCounter.Inc()
}

func (m *metrics) HandStarted() {
	m.handsStartedCounter.Inc()
}

// HandEnded records a settled hand, outcome is either "fold" or "showdown"
func (m *metrics) HandEnded(outcome string) {
	m.handsEndedCounter.WithLabelValues(outcome).Inc()
}

func (m *metrics) ActionTaken(action string) {
	m.actionsCounter.WithLabelValues(action).Inc()
}

func (m *metrics) TurnTimedOut() {
	m.turnTimeoutsCounter.Inc()
}

func (m *metrics) SeatKicked() {
	m.kicksCounter.Inc()
}

func (m *metrics) LedgerError() {
	m.ledgerErrorsCounter.Inc()
}

// Metrics is the process-wide collector set
var Metrics = &metrics{
	roomsOpenGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pokerroom_rooms_open",
		Help: "Number of rooms held by the registry",
	}),
	connectedClientsGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pokerroom_connected_clients",
		Help: "Number of open websocket connections",
	}),
	seatsJoinedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokerroom_seats_joined_total",
		Help: "Total number of seats taken",
	}),
	handsStartedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokerroom_hands_started_total",
		Help: "Total number of hands dealt",
	}),
	handsEndedCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokerroom_hands_ended_total",
		Help: "Total number of hands settled, by outcome",
	}, []string{"outcome"}),
	actionsCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokerroom_actions_total",
		Help: "Total number of betting actions applied, by action",
	}, []string{"action"}),
	turnTimeoutsCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokerroom_turn_timeouts_total",
		Help: "Total number of turns resolved by the action timer",
	}),
	kicksCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokerroom_kicks_total",
		Help: "Total number of seats removed by the host",
	}),
	ledgerErrorsCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokerroom_ledger_errors_total",
		Help: "Total number of hand results that could not be recorded",
	}),
}
