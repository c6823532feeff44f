package models

// Thresholds holds the vibration limits shared by generation, metrics and display.
type Thresholds struct {
	Caution           float64 `json:"caution" yaml:"caution"`
	Warning           float64 `json:"warning" yaml:"warning"`
	Critical          float64 `json:"critical" yaml:"critical"`
	MaintenanceFactor float64 `json:"maintenance_factor" yaml:"maintenance_factor"`
	SamplesPerDay     int     `json:"samples_per_day" yaml:"-"`
}

// DefaultThresholds returns the shot blast limits in mm/s.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Caution:           2.0,
		Warning:           2.5,
		Critical:          3.0,
		MaintenanceFactor: 0.8,
		SamplesPerDay:     24,
	}
}

// Risk classifies a vibration reading. Comparisons are strict.
func (t Thresholds) Risk(v float64) RiskLevel {
	switch {
	case v > t.Warning:
		return RiskHigh
	case v > t.Caution:
		return RiskMedium
	default:
		return RiskLow
	}
}
