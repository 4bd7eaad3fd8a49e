package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	before := testutil.ToFloat64(Metrics.actionsCounter.WithLabelValues("raise"))
	Metrics.ActionTaken("raise")
	Metrics.ActionTaken("raise")
	assert.Equal(t, before+2, testutil.ToFloat64(Metrics.actionsCounter.WithLabelValues("raise")))

	Metrics.SetRoomsOpen(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(Metrics.roomsOpenGauge))

	connected := testutil.ToFloat64(Metrics.connectedClientsGauge)
	Metrics.ClientConnected()
	Metrics.ClientConnected()
	Metrics.ClientDisconnected()
	assert.Equal(t, connected+1, testutil.ToFloat64(Metrics.connectedClientsGauge))
}
