package observability

import (
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// ScoreDrift reports how far the rolling mean of live scores sits from the
// calibration baseline, per resolved mode.
var ScoreDrift = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "score_drift",
		Help: "Absolute difference between rolling mean overall score and calibration baseline",
	},
	[]string{"mode"},
)

func init() {
	prometheus.MustRegister(ScoreDrift)
}

// DriftMonitor watches live overall scores against a calibration baseline.
// Heuristic weights are code, not models, so a sustained shift in the rolling
// mean signals a change in incoming traffic or a regression in a weight table.
type DriftMonitor struct {
	mu             sync.Mutex
	baseline       map[string]float64
	recent         map[string][]float64
	windowSize     int
	driftThreshold float64
	corpusVersion  string
}

// NewDriftMonitor creates a monitor. baseline maps mode to the calibration
// corpus mean for that mode.
func NewDriftMonitor(corpusVersion string, baseline map[string]float64, windowSize int, driftThreshold float64) *DriftMonitor {
	b := make(map[string]float64, len(baseline))
	for k, v := range baseline {
		b[k] = v
	}
	return &DriftMonitor{
		baseline:       b,
		recent:         make(map[string][]float64),
		windowSize:     windowSize,
		driftThreshold: driftThreshold,
		corpusVersion:  corpusVersion,
	}
}

// Record adds one overall score and updates the drift gauge once the rolling
// window is full.
func (m *DriftMonitor) Record(mode string, overall float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base, ok := m.baseline[mode]
	if !ok {
		return
	}

	window := append(m.recent[mode], overall)
	if len(window) > m.windowSize {
		window = window[1:]
	}
	m.recent[mode] = window
	if len(window) < m.windowSize {
		return
	}

	sum := 0.0
	for _, s := range window {
		sum += s
	}
	drift := sum/float64(len(window)) - base
	if drift < 0 {
		drift = -drift
	}
	ScoreDrift.WithLabelValues(mode).Set(drift)
	if drift > m.driftThreshold {
		slog.Warn("score drift detected",
			slog.String("mode", mode),
			slog.Float64("drift", drift),
			slog.Float64("baseline", base),
			slog.Float64("threshold", m.driftThreshold),
			slog.String("corpus_version", m.corpusVersion))
	}
}
