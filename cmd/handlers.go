package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"foundry-monitor/internal/analytics"
	"foundry-monitor/internal/dashboard"
	ferrors "foundry-monitor/internal/errors"
	"foundry-monitor/internal/logging"
	"foundry-monitor/internal/models"
	"foundry-monitor/internal/telemetry"
)

const (
	hourlyLength    = 24
	dailyLength     = 7
	monthlyLength   = 12
	maxSeriesLength = 10_000
	maxVibrationDay = 365
	defaultRecent   = 50
	maxAnomalies    = 10
)

type equipmentView struct {
	models.Equipment
	Series []models.SamplePoint `json:"series"`
}

type overviewResponse struct {
	LastUpdated time.Time       `json:"last_updated"`
	Alerts      []string        `json:"alerts"`
	Equipment   []equipmentView `json:"equipment"`
}

type vibrationResponse struct {
	Samples    []models.VibrationSample  `json:"samples"`
	Metrics    models.MaintenanceMetrics `json:"metrics"`
	Summary    dashboard.Summary         `json:"summary"`
	Zones      []dashboard.Zone          `json:"zones"`
	Thresholds models.Thresholds         `json:"thresholds"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger := logging.FromContext(r.Context())
	logger.Debug().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("Request failed")
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusFor maps generator and calculator failures to HTTP statuses.
func statusFor(err error) int {
	if ferrors.IsInvalidArgument(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ferrors.InvalidArgument("parse_query", "%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": s.now().UTC(),
		"version":   version,
		"cache":     s.store != nil,
	})
}

func (s *Server) equipmentSeries(eq models.Equipment, length int) ([]models.SamplePoint, error) {
	return s.generator.Series(telemetry.SeriesConfig{Length: length, Baseline: eq.Baseline})
}

func (s *Server) overviewHandler(w http.ResponseWriter, r *http.Request) {
	catalogue := models.Catalogue()
	resp := overviewResponse{
		LastUpdated: s.now().UTC(),
		Alerts:      []string{"Induction Furnace temperature approaching upper limit (1450°C)"},
		Equipment:   make([]equipmentView, 0, len(catalogue)),
	}

	for _, eq := range catalogue {
		series, err := s.equipmentSeries(eq, hourlyLength)
		if err != nil {
			writeError(w, r, statusFor(err), err)
			return
		}
		resp.Equipment = append(resp.Equipment, equipmentView{Equipment: eq, Series: series})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) lookupEquipment(w http.ResponseWriter, r *http.Request) (models.Equipment, bool) {
	id := mux.Vars(r)["id"]
	eq, ok := models.FindEquipment(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown equipment " + strconv.Quote(id)})
	}
	return eq, ok
}

func (s *Server) equipmentHandler(w http.ResponseWriter, r *http.Request) {
	eq, ok := s.lookupEquipment(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (s *Server) seriesHandler(w http.ResponseWriter, r *http.Request) {
	eq, ok := s.lookupEquipment(w, r)
	if !ok {
		return
	}

	length, err := intParam(r, "length", hourlyLength)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if length > maxSeriesLength {
		writeError(w, r, http.StatusBadRequest, ferrors.InvalidArgument("generate_series", "length must be at most %d", maxSeriesLength))
		return
	}

	series, err := s.equipmentSeries(eq, length)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (s *Server) recentHandler(w http.ResponseWriter, r *http.Request) {
	eq, ok := s.lookupEquipment(w, r)
	if !ok {
		return
	}
	if s.store == nil {
		writeError(w, r, http.StatusServiceUnavailable, errors.New("reading cache is disabled"))
		return
	}

	count, err := intParam(r, "count", defaultRecent)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	readings, err := s.store.GetRecentReadings(r.Context(), eq.ID, int64(count))
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func (s *Server) productionHandler(w http.ResponseWriter, r *http.Request) {
	points, err := s.generator.Production(hourlyLength)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) qualityPredictionHandler(w http.ResponseWriter, r *http.Request) {
	points, err := s.generator.QualityPrediction(dailyLength)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) maintenanceHistoryHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.generator.MaintenanceHistory(monthlyLength)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) qualityFactorsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, telemetry.QualityFactors())
}

// buildVibration generates the vibration series and its maintenance summary.
func buildVibration(g *telemetry.Generator, cfg telemetry.VibrationConfig, t models.Thresholds) (vibrationResponse, error) {
	// The series defines its own sampling rate.
	t.SamplesPerDay = cfg.HoursPerDay

	samples, err := g.Vibration(cfg)
	if err != nil {
		return vibrationResponse{}, err
	}

	metrics, err := analytics.ComputeMaintenanceMetrics(samples, t)
	if err != nil && !ferrors.IsNumericDegenerate(err) {
		return vibrationResponse{}, err
	}

	return vibrationResponse{
		Samples:    samples,
		Metrics:    metrics,
		Summary:    dashboard.Summarize(metrics, err, t),
		Zones:      dashboard.Zones(t),
		Thresholds: t,
	}, nil
}

func (s *Server) vibrationHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.cfg.Vibration.Generator()

	days, err := intParam(r, "days", cfg.Days)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if days > maxVibrationDay {
		writeError(w, r, http.StatusBadRequest, ferrors.InvalidArgument("generate_vibration", "days must be at most %d", maxVibrationDay))
		return
	}
	cfg.Days = days

	resp, err := buildVibration(s.generator, cfg, s.cfg.Thresholds)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	if resp.Metrics.Prediction == models.PredictionUnavailable {
		degeneratePredictions.Inc()
		logger := logging.FromContext(r.Context())
		logger.Warn().
			Float64("current_vibration", resp.Metrics.CurrentVibration).
			Msg("Vibration not increasing, maintenance prediction unavailable")
	}
	vibrationCurrent.Set(resp.Metrics.CurrentVibration)
	vibrationRisk.Set(riskValue(resp.Metrics.RiskLevel))

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analyzer.GetCurrentStats())
}

func (s *Server) getAnomaliesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analyzer.GetRecentAnomalies(maxAnomalies))
}
