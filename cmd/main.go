package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"foundry-monitor/internal/cache"
	"foundry-monitor/internal/config"
	"foundry-monitor/internal/logging"
	"foundry-monitor/internal/telemetry"
)

// Version information (set at build time with -ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

func newRootCmd() *cobra.Command {
	var configPath, envPath string

	root := &cobra.Command{
		Use:           "foundry-monitor",
		Short:         "Foundry floor monitoring service",
		Long:          `Serves synthetic furnace, shot blast and mixer telemetry with derived maintenance metrics for the foundry dashboard`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&envPath, "env-file", ".env", "path to dotenv file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and live simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, envPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	var days int
	var seed uint64
	var noNoise bool
	vibrationCmd := &cobra.Command{
		Use:   "vibration",
		Short: "Print a shot blast vibration series and its maintenance metrics as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, envPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			vib := cfg.Vibration.Generator()
			if cmd.Flags().Changed("days") {
				vib.Days = days
			}
			if noNoise {
				vib.NoiseAmplitude = 0
			}

			resp, err := buildVibration(telemetry.NewGenerator(randomSource(seed), cfg.Thresholds), vib, cfg.Thresholds)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	vibrationCmd.Flags().IntVar(&days, "days", 7, "number of simulated days")
	vibrationCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	vibrationCmd.Flags().BoolVar(&noNoise, "no-noise", false, "disable random noise")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "foundry-monitor %s\n", version)
			if buildTime != "unknown" {
				fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", buildTime)
			}
		},
	}

	root.AddCommand(serveCmd, vibrationCmd, versionCmd)
	return root
}

func randomSource(seed uint64) telemetry.RandomSource {
	if seed == 0 {
		return telemetry.NewRandomSource()
	}
	return telemetry.NewSeededSource(seed)
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Init(cfg.Logging)

	var store ReadingStore
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer redisClient.Close()
		store = redisClient
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Reading cache enabled")
	}

	server := NewServer(cfg, store, randomSource(cfg.Simulation.Seed))
	return server.Run(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
