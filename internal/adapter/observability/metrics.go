package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"route", "method"},
	)

	ScoreRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_requests_total",
			Help: "Total number of scoring requests by resolved mode",
		},
		[]string{"mode"},
	)
	ScoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "score_duration_seconds",
			Help:    "Scoring engine computation time in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"mode"},
	)
	AutoRejectTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "score_auto_reject_total",
			Help: "Total number of ATS simulations that flagged auto-reject",
		},
	)

	// OverallScore buckets follow the calibration tiers so the dashboard
	// distribution maps directly onto resume quality bands.
	OverallScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "score_overall",
			Help:    "Distribution of overall scores (0-100) by resolved mode",
			Buckets: []float64{20, 40, 55, 70, 85, 100},
		},
		[]string{"mode"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(ScoreRequestsTotal)
	prometheus.MustRegister(ScoreDuration)
	prometheus.MustRegister(AutoRejectTotal)
	prometheus.MustRegister(OverallScore)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveScore records one scoring call's outcome.
func ObserveScore(mode string, overall float64, autoReject bool, elapsed time.Duration) {
	ScoreRequestsTotal.WithLabelValues(mode).Inc()
	ScoreDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	if overall >= 0 && overall <= 100 {
		OverallScore.WithLabelValues(mode).Observe(overall)
	}
	if autoReject {
		AutoRejectTotal.Inc()
	}
}
