package dashboard

import (
	"fmt"

	ferrors "foundry-monitor/internal/errors"
	"foundry-monitor/internal/models"
)

const NotAvailable = "N/A"

type Zone struct {
	Name  string   `json:"name"`
	Range string   `json:"range"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// Summary is the display form of a maintenance metrics card row.
type Summary struct {
	CurrentVibration string `json:"current_vibration"`
	ThresholdLabel   string `json:"threshold_label"`
	Tone             string `json:"tone"`
	DailyRate        string `json:"daily_rate"`
	MaintenanceDue   string `json:"maintenance_due"`
	OperatingHours   string `json:"operating_hours"`
	Alert            string `json:"alert,omitempty"`
}

// Summarize formats metrics for display. A NumericDegenerate err replaces the
// maintenance prediction with N/A; any other error blanks every field.
func Summarize(m models.MaintenanceMetrics, err error, t models.Thresholds) Summary {
	if err != nil && !ferrors.IsNumericDegenerate(err) {
		return Summary{
			CurrentVibration: NotAvailable,
			ThresholdLabel:   thresholdLabel(t),
			DailyRate:        NotAvailable,
			MaintenanceDue:   NotAvailable,
			OperatingHours:   NotAvailable,
		}
	}

	s := Summary{
		CurrentVibration: fmt.Sprintf("%.2f mm/s", m.CurrentVibration),
		ThresholdLabel:   thresholdLabel(t),
		Tone:             Tone(m.RiskLevel),
		DailyRate:        fmt.Sprintf("%.3f mm/s/day", m.VibrationRatePerDay),
		MaintenanceDue:   NotAvailable,
		OperatingHours:   NotAvailable,
	}
	if m.Prediction == models.PredictionAvailable && m.DaysUntilMaintenance != nil && m.HoursUntilMaintenance != nil {
		s.MaintenanceDue = fmt.Sprintf("%d Days", *m.DaysUntilMaintenance)
		s.OperatingHours = fmt.Sprintf("(%d operating hours)", *m.HoursUntilMaintenance)
	}
	s.Alert = Alert(m)
	return s
}

func thresholdLabel(t models.Thresholds) string {
	return fmt.Sprintf("Threshold: %g mm/s", t.Warning)
}

// Alert returns the banner text for a risk level, or "" when none is shown.
func Alert(m models.MaintenanceMetrics) string {
	switch m.RiskLevel {
	case models.RiskHigh:
		return "Critical vibration levels detected. Immediate maintenance recommended."
	case models.RiskMedium:
		if m.DaysUntilMaintenance == nil {
			return "Elevated vibration levels. Maintenance recommended."
		}
		return fmt.Sprintf("Elevated vibration levels. Maintenance recommended within %d days.", *m.DaysUntilMaintenance)
	default:
		return ""
	}
}

func Tone(r models.RiskLevel) string {
	switch r {
	case models.RiskHigh:
		return "red"
	case models.RiskMedium:
		return "yellow"
	default:
		return "green"
	}
}

// Zones lists the vibration severity bands.
func Zones(t models.Thresholds) []Zone {
	caution, warning, critical := t.Caution, t.Warning, t.Critical
	return []Zone{
		{Name: "Normal", Range: fmt.Sprintf("< %.1f mm/s", caution), Max: &caution},
		{Name: "Caution", Range: fmt.Sprintf("%.1f - %.1f mm/s", caution, warning), Min: &caution, Max: &warning},
		{Name: "Warning", Range: fmt.Sprintf("%.1f - %.1f mm/s", warning, critical), Min: &warning, Max: &critical},
		{Name: "Critical", Range: fmt.Sprintf("> %.1f mm/s", critical), Min: &critical},
	}
}

// ZoneFor returns the name of the band containing v. Band upper edges are inclusive.
func ZoneFor(v float64, t models.Thresholds) string {
	switch {
	case v > t.Critical:
		return "Critical"
	case v > t.Warning:
		return "Warning"
	case v > t.Caution:
		return "Caution"
	default:
		return "Normal"
	}
}
