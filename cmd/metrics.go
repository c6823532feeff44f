package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"foundry-monitor/internal/models"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	readingsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foundry_readings_processed_total",
		Help: "Total number of simulated live readings processed",
	}, []string{"equipment"})

	readingsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foundry_readings_dropped_total",
		Help: "Live readings dropped because the processing queue was full",
	})

	liveMessagesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foundry_live_messages_dropped_total",
		Help: "Live stream messages skipped for clients that were not keeping up",
	})

	anomaliesDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foundry_anomalies_detected_total",
		Help: "Total number of anomalous live readings",
	}, []string{"equipment"})

	currentValue = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "foundry_current_value",
		Help: "Latest simulated reading per machine",
	}, []string{"equipment"})

	rollingAverage = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "foundry_rolling_average",
		Help: "Rolling average of live readings per machine",
	}, []string{"equipment"})

	vibrationCurrent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foundry_shotblast_vibration_mm_s",
		Help: "Current shot blast vibration from the last computed series",
	})

	vibrationRisk = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foundry_shotblast_risk_level",
		Help: "Shot blast risk level (0 low, 1 medium, 2 high)",
	})

	degeneratePredictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foundry_degenerate_predictions_total",
		Help: "Maintenance projections skipped because vibration was not increasing",
	})

	liveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "foundry_live_clients",
		Help: "Connected live stream clients",
	})
)

func riskValue(r models.RiskLevel) float64 {
	switch r {
	case models.RiskHigh:
		return 2
	case models.RiskMedium:
		return 1
	default:
		return 0
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// instrument records request count and latency labelled by route template.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		requestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(sw.status)).Inc()
	})
}
