package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements usecase.Metrics on the default prometheus registry,
// served from the router at /metrics.
type Metrics struct {
	streamStarts  prometheus.Counter
	streamFails   prometheus.Counter
	reconnects    prometheus.Counter
	buttonPresses *prometheus.CounterVec
	playing       prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		streamStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "radiobox_stream_starts_total",
			Help: "Successful stream starts.",
		}),
		streamFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "radiobox_stream_failures_total",
			Help: "Stream connect failures.",
		}),
		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "radiobox_stream_reconnects_total",
			Help: "Automatic reconnect attempts after end of stream.",
		}),
		buttonPresses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "radiobox_button_presses_total",
			Help: "Button presses by kind.",
		}, []string{"kind"}),
		playing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "radiobox_playing",
			Help: "1 while streaming, 0 while idle.",
		}),
	}

	prometheus.MustRegister(m.streamStarts, m.streamFails, m.reconnects, m.buttonPresses, m.playing)

	return m
}

func (m *Metrics) StreamStarted()     { m.streamStarts.Inc() }
func (m *Metrics) StreamFailed()      { m.streamFails.Inc() }
func (m *Metrics) StreamReconnected() { m.reconnects.Inc() }

func (m *Metrics) ButtonPressed(kind string) {
	m.buttonPresses.WithLabelValues(kind).Inc()
}

func (m *Metrics) SetPlaying(playing bool) {
	if playing {
		m.playing.Set(1)
		return
	}
	m.playing.Set(0)
}
