package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricPaintPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tuikit",
		Name:      "paint_passes_total",
		Help:      "Paint passes run by the terminal core, by mode (update, forced).",
	}, []string{"mode"})
	metricFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tuikit",
		Name:      "flushes_total",
		Help:      "Surface flushes sent to the backend, by mode (diff, full).",
	}, []string{"mode"})
	metricEventsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tuikit",
		Name:      "events_dispatched_total",
		Help:      "Native events handled by the terminal core, by kind.",
	}, []string{"kind"})
	metricViewportActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tuikit",
		Name:      "viewport_active",
		Help:      "1 while the main widget is larger than the terminal and scrolled through a viewport.",
	})
	metricPaletteReloads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tuikit",
		Name:      "palette_reloads_total",
		Help:      "Palettes replaced on the main widget at runtime.",
	})
)
