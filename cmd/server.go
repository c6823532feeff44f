package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"foundry-monitor/internal/analytics"
	"foundry-monitor/internal/config"
	"foundry-monitor/internal/logging"
	"foundry-monitor/internal/models"
	"foundry-monitor/internal/stream"
	"foundry-monitor/internal/telemetry"
)

// ReadingStore caches recent live readings. Implemented by cache.RedisClient.
type ReadingStore interface {
	StoreReading(ctx context.Context, reading models.Reading) error
	GetRecentReadings(ctx context.Context, equipmentID string, count int64) ([]models.Reading, error)
}

type Server struct {
	router    *mux.Router
	cfg       *config.Config
	store     ReadingStore
	analyzer  *analytics.Analyzer
	generator *telemetry.Generator
	hub       *stream.Hub
	readings  chan models.Reading
	now       func() time.Time
}

// NewServer wires the API. store may be nil when the cache is disabled.
func NewServer(cfg *config.Config, store ReadingStore, rnd telemetry.RandomSource) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		cfg:       cfg,
		store:     store,
		analyzer:  analytics.NewAnalyzer(cfg.Analytics.WindowSize, cfg.Analytics.ZScoreThreshold),
		generator: telemetry.NewGenerator(rnd, cfg.Thresholds),
		hub:       stream.NewHub(),
		readings:  make(chan models.Reading, cfg.Simulation.QueueSize),
		now:       time.Now,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.Middleware, instrument)

	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/equipment", s.overviewHandler).Methods("GET")
	api.HandleFunc("/equipment/{id}", s.equipmentHandler).Methods("GET")
	api.HandleFunc("/equipment/{id}/series", s.seriesHandler).Methods("GET")
	api.HandleFunc("/equipment/{id}/recent", s.recentHandler).Methods("GET")

	api.HandleFunc("/shotblast/production", s.productionHandler).Methods("GET")
	api.HandleFunc("/shotblast/quality-prediction", s.qualityPredictionHandler).Methods("GET")
	api.HandleFunc("/shotblast/maintenance-history", s.maintenanceHistoryHandler).Methods("GET")
	api.HandleFunc("/shotblast/quality-factors", s.qualityFactorsHandler).Methods("GET")
	api.HandleFunc("/shotblast/vibration", s.vibrationHandler).Methods("GET")

	s.router.HandleFunc("/analytics/current", s.getAnalyticsHandler).Methods("GET")
	s.router.HandleFunc("/analytics/anomalies", s.getAnomaliesHandler).Methods("GET")
	s.router.Handle("/ws/live", s.hub).Methods("GET")
	s.router.Handle("/metrics/prometheus", promhttp.Handler())
}

// simulate re-invokes the generator every interval to mimic live readings.
// It owns s.readings and closes it on return.
func (s *Server) simulate(ctx context.Context) {
	defer close(s.readings)

	ticker := time.NewTicker(s.cfg.Simulation.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

func (s *Server) tick(now time.Time) {
	for _, eq := range models.Catalogue() {
		reading := s.generator.Reading(eq, now)

		select {
		case s.readings <- reading:
		default:
			readingsDropped.Inc()
		}
	}
}

func (s *Server) processReadings() {
	for reading := range s.readings {
		s.handleReading(reading)
	}
}

func (s *Server) handleReading(reading models.Reading) {
	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := s.store.StoreReading(ctx, reading); err != nil {
			log.Warn().Err(err).Str("equipment_id", reading.EquipmentID).Msg("Failed to cache reading")
		}
		cancel()
	}

	analysis := s.analyzer.Analyze(reading)

	readingsProcessed.WithLabelValues(reading.EquipmentID).Inc()
	currentValue.WithLabelValues(reading.EquipmentID).Set(reading.Value)
	rollingAverage.WithLabelValues(reading.EquipmentID).Set(analysis.RollingAverage)

	if analysis.IsAnomaly {
		anomaliesDetected.WithLabelValues(reading.EquipmentID).Inc()
		log.Info().
			Str("equipment_id", reading.EquipmentID).
			Float64("value", reading.Value).
			Float64("z_score", analysis.ZScore).
			Msg("Anomaly detected")
	}

	missed, err := s.hub.Broadcast(analysis)
	if err != nil {
		log.Error().Err(err).Msg("Failed to broadcast reading")
	}
	liveMessagesDropped.Add(float64(missed))
	liveClients.Set(float64(s.hub.Clients()))
}

// Run serves HTTP and the live simulation until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", srv.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.simulate(gctx)
		return nil
	})
	g.Go(func() error {
		s.processReadings()
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("Server is ready to handle requests")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		s.hub.Close()
		srv.SetKeepAlivesEnabled(false)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not gracefully shutdown the server: %w", err)
		}
		return nil
	})

	err = g.Wait()
	log.Info().Msg("Server stopped")
	return err
}
