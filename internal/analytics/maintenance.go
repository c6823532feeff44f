package analytics

import (
	"math"

	ferrors "foundry-monitor/internal/errors"
	"foundry-monitor/internal/models"
)

const (
	hoursPerDay = 24

	// Projections beyond this many hours cannot be represented as an int on
	// every platform and are reported as unavailable.
	maxProjectedHours = math.MaxInt32
)

// ComputeMaintenanceMetrics reduces a vibration series to a maintenance summary.
//
// The rate is measured per sample and t.SamplesPerDay samples cover one day.
// The daily rate is the per-sample rate times t.SamplesPerDay, and the
// projection is converted from samples to hours before rounding, so both
// figures share the same day length.
//
// When the series is flat or decreasing the projection is undefined: the
// returned metrics carry PredictionUnavailable with nil hour and day fields,
// and the error satisfies errors.Is(err, ErrNumericDegenerate). The current
// reading, daily rate and risk level are still filled in.
func ComputeMaintenanceMetrics(samples []models.VibrationSample, t models.Thresholds) (models.MaintenanceMetrics, error) {
	const op = "maintenance_metrics"

	if len(samples) < 2 {
		return models.MaintenanceMetrics{}, ferrors.InvalidArgument(op, "need at least 2 samples, got %d", len(samples))
	}
	if t.SamplesPerDay <= 0 {
		return models.MaintenanceMetrics{}, ferrors.InvalidArgument(op, "samples per day must be positive, got %d", t.SamplesPerDay)
	}

	first := samples[0].Vibration
	current := samples[len(samples)-1].Vibration
	if !isFinite(first) || !isFinite(current) {
		return models.MaintenanceMetrics{}, ferrors.InvalidArgument(op, "vibration readings must be finite")
	}

	rate := (current - first) / float64(len(samples))

	metrics := models.MaintenanceMetrics{
		CurrentVibration:    current,
		VibrationRatePerDay: rate * float64(t.SamplesPerDay),
		RiskLevel:           t.Risk(current),
		Prediction:          models.PredictionUnavailable,
	}

	if rate <= 0 {
		return metrics, ferrors.NumericDegenerate(op, "vibration is not increasing (rate %.4f per sample)", rate)
	}

	samplesToWarning := (t.Warning - current) / rate
	hoursPerSample := float64(hoursPerDay) / float64(t.SamplesPerDay)
	projected := math.Floor(samplesToWarning * t.MaintenanceFactor * hoursPerSample)
	if !isFinite(projected) || projected > maxProjectedHours {
		return metrics, ferrors.NumericDegenerate(op, "maintenance projection out of range")
	}

	hours := int(math.Max(0, projected))
	days := int(math.Ceil(float64(hours) / hoursPerDay))

	metrics.HoursUntilMaintenance = &hours
	metrics.DaysUntilMaintenance = &days
	metrics.Prediction = models.PredictionAvailable
	return metrics, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
