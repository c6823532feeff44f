package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"foundry-monitor/internal/logging"
	"foundry-monitor/internal/models"
	"foundry-monitor/internal/telemetry"
)

type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Redis      RedisConfig       `yaml:"redis"`
	Logging    logging.Config    `yaml:"logging"`
	Simulation SimulationConfig  `yaml:"simulation"`
	Analytics  AnalyticsConfig   `yaml:"analytics"`
	Thresholds models.Thresholds `yaml:"thresholds"`
	Vibration  VibrationConfig   `yaml:"vibration"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type SimulationConfig struct {
	Interval  time.Duration `yaml:"interval"`
	QueueSize int           `yaml:"queue_size"`
	Seed      uint64        `yaml:"seed"` // 0 seeds from the clock
}

type AnalyticsConfig struct {
	WindowSize      int     `yaml:"window_size"`
	ZScoreThreshold float64 `yaml:"z_score_threshold"`
}

type VibrationConfig struct {
	Days           int      `yaml:"days"`
	Baseline       *float64 `yaml:"baseline"`
	DailyWear      *float64 `yaml:"daily_wear"`
	NoiseAmplitude *float64 `yaml:"noise_amplitude"`
}

// Generator converts the file form into generator settings.
func (v VibrationConfig) Generator() telemetry.VibrationConfig {
	cfg := telemetry.DefaultVibrationConfig()
	cfg.Days = v.Days
	if v.Baseline != nil {
		cfg.Baseline = *v.Baseline
	}
	if v.DailyWear != nil {
		cfg.DailyWear = *v.DailyWear
	}
	if v.NoiseAmplitude != nil {
		cfg.NoiseAmplitude = *v.NoiseAmplitude
	}
	return cfg
}

// Load reads the YAML file at path (optional) and the dotenv file at envPath
// (optional), applies defaults and validates. Process environment wins over
// the dotenv file, which wins over YAML.
func Load(path, envPath string) (*Config, error) {
	var cfg Config

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	env, err := readEnv(envPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readEnv(envPath string) (func(string) string, error) {
	fileEnv := map[string]string{}
	if envPath != "" {
		m, err := godotenv.Read(envPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		if m != nil {
			fileEnv = m
		}
	}

	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileEnv[key]
	}, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if port := getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if addr := getenv("REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
		c.Redis.Enabled = true
	}
	if pw := getenv("REDIS_PASSWORD"); pw != "" {
		c.Redis.Password = pw
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := getenv("LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if interval := getenv("SIMULATION_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("SIMULATION_INTERVAL: %w", err)
		}
		c.Simulation.Interval = d
	}
	if seed := getenv("SIMULATION_SEED"); seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("SIMULATION_SEED: %w", err)
		}
		c.Simulation.Seed = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 30 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = time.Hour
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}
	if c.Logging.Component == "" {
		c.Logging.Component = "foundry-monitor"
	}
	if c.Simulation.Interval == 0 {
		c.Simulation.Interval = time.Second
	}
	if c.Simulation.QueueSize == 0 {
		c.Simulation.QueueSize = 10_000
	}
	if c.Analytics.WindowSize == 0 {
		c.Analytics.WindowSize = 50
	}
	if c.Analytics.ZScoreThreshold == 0 {
		c.Analytics.ZScoreThreshold = 2.0
	}

	def := models.DefaultThresholds()
	if c.Thresholds.Caution == 0 {
		c.Thresholds.Caution = def.Caution
	}
	if c.Thresholds.Warning == 0 {
		c.Thresholds.Warning = def.Warning
	}
	if c.Thresholds.Critical == 0 {
		c.Thresholds.Critical = def.Critical
	}
	if c.Thresholds.MaintenanceFactor == 0 {
		c.Thresholds.MaintenanceFactor = def.MaintenanceFactor
	}
	if c.Thresholds.SamplesPerDay == 0 {
		c.Thresholds.SamplesPerDay = def.SamplesPerDay
	}

	vib := telemetry.DefaultVibrationConfig()
	if c.Vibration.Days == 0 {
		c.Vibration.Days = vib.Days
	}
}

func (c *Config) validate() error {
	if c.Simulation.Interval < 0 {
		return fmt.Errorf("simulation.interval must be positive")
	}
	if c.Simulation.QueueSize < 0 {
		return fmt.Errorf("simulation.queue_size must be positive")
	}
	if c.Analytics.WindowSize < 2 {
		return fmt.Errorf("analytics.window_size must be at least 2")
	}
	t := c.Thresholds
	if !(t.Caution < t.Warning && t.Warning < t.Critical) {
		return fmt.Errorf("thresholds must satisfy caution < warning < critical, got %g/%g/%g", t.Caution, t.Warning, t.Critical)
	}
	if t.MaintenanceFactor <= 0 || t.MaintenanceFactor > 1 {
		return fmt.Errorf("thresholds.maintenance_factor must be in (0, 1], got %g", t.MaintenanceFactor)
	}
	if c.Vibration.Days < 0 {
		return fmt.Errorf("vibration.days must be positive")
	}
	if c.Vibration.NoiseAmplitude != nil && *c.Vibration.NoiseAmplitude < 0 {
		return fmt.Errorf("vibration.noise_amplitude must not be negative")
	}
	return nil
}
