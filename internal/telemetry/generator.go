package telemetry

import (
	"fmt"
	"math"

	ferrors "foundry-monitor/internal/errors"
	"foundry-monitor/internal/models"
)

// LabelFunc maps a sample index to its time label.
type LabelFunc func(i int) string

// ShapeFunc maps a sample index to an offset from the baseline.
type ShapeFunc func(i int) float64

func HourLabel(i int) string { return fmt.Sprintf("%d:00", i) }
func DayLabel(i int) string { return fmt.Sprintf("Day %d", i+1) }
func MonthLabel(i int) string { return fmt.Sprintf("Month %d", i+1) }

// SeriesConfig describes a generic chart series. A nil Label yields hourly
// labels; a nil Shape adds uniform noise in [-10, 10).
type SeriesConfig struct {
	Length   int
	Baseline float64
	Label    LabelFunc
	Shape    ShapeFunc
}

// VibrationConfig describes the multi-day shot blast vibration series.
type VibrationConfig struct {
	Days           int
	HoursPerDay    int
	Baseline       float64
	DailyWear      float64
	NoiseAmplitude float64
}

func DefaultVibrationConfig() VibrationConfig {
	return VibrationConfig{
		Days:           7,
		HoursPerDay:    24,
		Baseline:       1.2,
		DailyWear:      0.1,
		NoiseAmplitude: 0.1,
	}
}

type Generator struct {
	rnd        RandomSource
	thresholds models.Thresholds
}

func NewGenerator(rnd RandomSource, thresholds models.Thresholds) *Generator {
	if rnd == nil {
		rnd = NewRandomSource()
	}
	return &Generator{
		rnd:        rnd,
		thresholds: thresholds,
	}
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rnd.Float64()*(hi-lo)
}

// Series produces cfg.Length labelled points around cfg.Baseline.
func (g *Generator) Series(cfg SeriesConfig) ([]models.SamplePoint, error) {
	if cfg.Length <= 0 {
		return nil, ferrors.InvalidArgument("generate_series", "length must be positive, got %d", cfg.Length)
	}

	label := cfg.Label
	if label == nil {
		label = HourLabel
	}
	shape := cfg.Shape
	if shape == nil {
		shape = func(int) float64 { return g.uniform(-10, 10) }
	}

	points := make([]models.SamplePoint, 0, cfg.Length)
	for i := 0; i < cfg.Length; i++ {
		points = append(points, models.SamplePoint{
			Time:  label(i),
			Value: cfg.Baseline + shape(i),
		})
	}
	return points, nil
}

// Vibration produces Days*HoursPerDay hourly samples with a linear daily wear
// trend, a reduced off-shift level and a small sinusoidal variation.
func (g *Generator) Vibration(cfg VibrationConfig) ([]models.VibrationSample, error) {
	if cfg.Days <= 0 {
		return nil, ferrors.InvalidArgument("generate_vibration", "days must be positive, got %d", cfg.Days)
	}
	if cfg.HoursPerDay <= 0 {
		return nil, ferrors.InvalidArgument("generate_vibration", "hours per day must be positive, got %d", cfg.HoursPerDay)
	}
	if cfg.NoiseAmplitude < 0 {
		return nil, ferrors.InvalidArgument("generate_vibration", "noise amplitude must not be negative, got %g", cfg.NoiseAmplitude)
	}

	samples := make([]models.VibrationSample, 0, cfg.Days*cfg.HoursPerDay)
	for day := 0; day < cfg.Days; day++ {
		for hour := 0; hour < cfg.HoursPerDay; hour++ {
			value := VibrationLevel(cfg, day, hour) + g.uniform(-cfg.NoiseAmplitude, cfg.NoiseAmplitude)

			samples = append(samples, models.VibrationSample{
				Timestamp: fmt.Sprintf("Day %d %d:00", day+1, hour),
				Vibration: round2(value),
				Warning:   g.thresholds.Warning,
				Critical:  g.thresholds.Critical,
				Day:       day + 1,
				Hour:      hour,
			})
		}
	}
	return samples, nil
}

// VibrationLevel is the noise-free vibration for a zero-based day and hour.
func VibrationLevel(cfg VibrationConfig, day, hour int) float64 {
	dailyWear := float64(day) * cfg.DailyWear
	hourlyVariation := math.Sin(float64(hour)/3) * 0.1
	return (cfg.Baseline+dailyWear)*TimeOfDayFactor(hour) + hourlyVariation
}

// TimeOfDayFactor is 1.0 during working hours (06:00-22:00) and 0.7 otherwise.
func TimeOfDayFactor(hour int) float64 {
	if hour >= 6 && hour <= 22 {
		return 1
	}
	return 0.7
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
