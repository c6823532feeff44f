package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "foundry-monitor/internal/errors"
	"foundry-monitor/internal/models"
	"foundry-monitor/internal/telemetry"
)

func series(values ...float64) []models.VibrationSample {
	out := make([]models.VibrationSample, len(values))
	for i, v := range values {
		out[i] = models.VibrationSample{Vibration: v, Warning: 2.5, Critical: 3.0, Hour: i}
	}
	return out
}

func TestComputeMaintenanceMetricsScenario(t *testing.T) {
	m, err := ComputeMaintenanceMetrics(series(1.0, 1.0, 1.5), models.DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, 1.5, m.CurrentVibration)
	assert.InDelta(t, 4.0, m.VibrationRatePerDay, 1e-9)
	require.NotNil(t, m.HoursUntilMaintenance)
	require.NotNil(t, m.DaysUntilMaintenance)
	assert.Equal(t, 4, *m.HoursUntilMaintenance)
	assert.Equal(t, 1, *m.DaysUntilMaintenance)
	assert.Equal(t, models.RiskLow, m.RiskLevel)
	assert.Equal(t, models.PredictionAvailable, m.Prediction)
}

func TestComputeMaintenanceMetricsSampleRate(t *testing.T) {
	tests := []struct {
		name          string
		samplesPerDay int
		wantRateDay   float64
		wantHours     int
		wantDays      int
	}{
		{name: "hourly", samplesPerDay: 24, wantRateDay: 4, wantHours: 4, wantDays: 1},
		{name: "half hourly", samplesPerDay: 48, wantRateDay: 8, wantHours: 2, wantDays: 1},
		{name: "every two hours", samplesPerDay: 12, wantRateDay: 2, wantHours: 9, wantDays: 1},
		{name: "every six hours", samplesPerDay: 4, wantRateDay: 0.6666666666666666, wantHours: 28, wantDays: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := models.DefaultThresholds()
			th.SamplesPerDay = tt.samplesPerDay

			m, err := ComputeMaintenanceMetrics(series(1.0, 1.0, 1.5), th)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantRateDay, m.VibrationRatePerDay, 1e-9)
			assert.Equal(t, tt.wantHours, *m.HoursUntilMaintenance)
			assert.Equal(t, tt.wantDays, *m.DaysUntilMaintenance)
		})
	}
}

func TestComputeMaintenanceMetricsIsPure(t *testing.T) {
	samples, err := telemetry.NewGenerator(telemetry.NewSeededSource(11), models.DefaultThresholds()).
		Vibration(telemetry.DefaultVibrationConfig())
	require.NoError(t, err)

	a, errA := ComputeMaintenanceMetrics(samples, models.DefaultThresholds())
	b, errB := ComputeMaintenanceMetrics(samples, models.DefaultThresholds())

	assert.Equal(t, errA, errB)
	assert.Equal(t, a, b)
	assert.Equal(t, math.Float64bits(a.VibrationRatePerDay), math.Float64bits(b.VibrationRatePerDay))
	assert.Equal(t, math.Float64bits(a.CurrentVibration), math.Float64bits(b.CurrentVibration))
}

func TestComputeMaintenanceMetricsFromNoiselessSeries(t *testing.T) {
	cfg := telemetry.DefaultVibrationConfig()
	cfg.NoiseAmplitude = 0
	samples, err := telemetry.NewGenerator(telemetry.NewSeededSource(1), models.DefaultThresholds()).Vibration(cfg)
	require.NoError(t, err)

	m, err := ComputeMaintenanceMetrics(samples, models.DefaultThresholds())
	require.NoError(t, err)

	assert.InDelta(t, 1.36, m.CurrentVibration, 1e-9)
	assert.InDelta(t, 0.0742857, m.VibrationRatePerDay, 1e-6)
	assert.Equal(t, 294, *m.HoursUntilMaintenance)
	assert.Equal(t, 13, *m.DaysUntilMaintenance)
	assert.Equal(t, models.RiskLow, m.RiskLevel)
}

func TestRiskLevelBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		want    models.RiskLevel
	}{
		{name: "at warning is medium", current: 2.5, want: models.RiskMedium},
		{name: "at caution is low", current: 2.0, want: models.RiskLow},
		{name: "just above warning is high", current: 2.50001, want: models.RiskHigh},
		{name: "just above caution is medium", current: 2.00001, want: models.RiskMedium},
		{name: "above critical is high", current: 3.1, want: models.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := ComputeMaintenanceMetrics(series(1.0, tt.current), models.DefaultThresholds())
			assert.Equal(t, tt.want, m.RiskLevel)
			assert.Equal(t, tt.want, models.DefaultThresholds().Risk(tt.current))
		})
	}
}

func TestComputeMaintenanceMetricsPastWarning(t *testing.T) {
	m, err := ComputeMaintenanceMetrics(series(2.0, 3.1), models.DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, models.RiskHigh, m.RiskLevel)
	assert.Equal(t, 0, *m.HoursUntilMaintenance)
	assert.Equal(t, 0, *m.DaysUntilMaintenance)
}

func TestComputeMaintenanceMetricsDegenerate(t *testing.T) {
	tests := []struct {
		name        string
		samples     []models.VibrationSample
		wantRateDay float64
	}{
		{name: "constant vibration", samples: series(1.2, 1.2, 1.2), wantRateDay: 0},
		{name: "decreasing vibration", samples: series(2.0, 1.0), wantRateDay: -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ComputeMaintenanceMetrics(tt.samples, models.DefaultThresholds())

			require.Error(t, err)
			assert.True(t, ferrors.IsNumericDegenerate(err))
			assert.False(t, ferrors.IsInvalidArgument(err))

			assert.Equal(t, models.PredictionUnavailable, m.Prediction)
			assert.Nil(t, m.HoursUntilMaintenance)
			assert.Nil(t, m.DaysUntilMaintenance)
			assert.InDelta(t, tt.wantRateDay, m.VibrationRatePerDay, 1e-9)
			assert.False(t, math.IsNaN(m.VibrationRatePerDay))
			assert.False(t, math.IsInf(m.VibrationRatePerDay, 0))
			assert.Equal(t, tt.samples[len(tt.samples)-1].Vibration, m.CurrentVibration)
		})
	}
}

func TestComputeMaintenanceMetricsInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		samples    []models.VibrationSample
		thresholds models.Thresholds
	}{
		{name: "empty", samples: nil, thresholds: models.DefaultThresholds()},
		{name: "single sample", samples: series(1.0), thresholds: models.DefaultThresholds()},
		{name: "nan reading", samples: series(1.0, math.NaN()), thresholds: models.DefaultThresholds()},
		{name: "infinite reading", samples: series(math.Inf(-1), 1.0), thresholds: models.DefaultThresholds()},
		{name: "zero samples per day", samples: series(1.0, 2.0), thresholds: models.Thresholds{Warning: 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ComputeMaintenanceMetrics(tt.samples, tt.thresholds)
			assert.True(t, ferrors.IsInvalidArgument(err), "%v", err)
			assert.Equal(t, models.MaintenanceMetrics{}, m)
		})
	}
}
