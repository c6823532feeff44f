package models

import "time"

// SamplePoint is one labelled value of a chart series.
type SamplePoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// VibrationSample is one hourly reading of the shot blast vibration series.
type VibrationSample struct {
	Timestamp string  `json:"timestamp"`
	Vibration float64 `json:"vibration"`
	Warning   float64 `json:"warning"`
	Critical  float64 `json:"critical"`
	Day       int     `json:"day"`
	Hour      int     `json:"hour"`
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

type PredictionStatus string

const (
	PredictionAvailable   PredictionStatus = "available"
	PredictionUnavailable PredictionStatus = "unavailable"
)

// MaintenanceMetrics summarises a vibration series. HoursUntilMaintenance and
// DaysUntilMaintenance are nil when Prediction is PredictionUnavailable.
type MaintenanceMetrics struct {
	CurrentVibration      float64          `json:"current_vibration"`
	VibrationRatePerDay   float64          `json:"vibration_rate_per_day"`
	HoursUntilMaintenance *int             `json:"hours_until_maintenance"`
	DaysUntilMaintenance  *int             `json:"days_until_maintenance"`
	RiskLevel             RiskLevel        `json:"risk_level"`
	Prediction            PredictionStatus `json:"prediction"`
}

type MachineStatus string

const (
	StatusRunning     MachineStatus = "running"
	StatusMaintenance MachineStatus = "maintenance"
	StatusStopped     MachineStatus = "stopped"
	StatusWarning     MachineStatus = "warning"
)

type Parameter struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

type Equipment struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Status     MachineStatus `json:"status"`
	Parameters []Parameter   `json:"parameters"`
	Baseline   float64       `json:"baseline"`
	Unit       string        `json:"unit"`
}

type ProductionPoint struct {
	Hour      string  `json:"hour"`
	Quality   float64 `json:"quality"`
	Vibration float64 `json:"vibration"`
	Energy    float64 `json:"energy"`
	Parts     int     `json:"parts"`
}

type QualityPredictionPoint struct {
	Day       string  `json:"day"`
	Actual    float64 `json:"actual"`
	Predicted float64 `json:"predicted"`
}

type MaintenanceRecord struct {
	Month            string `json:"month"`
	MaintenanceHours int    `json:"maintenance"`
	DowntimeHours    int    `json:"downtime"`
	Costs            int    `json:"costs"`
}

type QualityFactor struct {
	Factor string `json:"factor"`
	Impact int    `json:"impact"`
}

// Reading is a single simulated live value for one machine.
type Reading struct {
	Timestamp   time.Time `json:"timestamp"`
	EquipmentID string    `json:"equipment_id"`
	Value       float64   `json:"value"`
	Unit        string    `json:"unit"`
}

type AnalysisResult struct {
	Timestamp      time.Time `json:"timestamp"`
	Reading        Reading   `json:"reading"`
	RollingAverage float64   `json:"rolling_average"`
	ZScore         float64   `json:"z_score"`
	IsAnomaly      bool      `json:"is_anomaly"`
}

type AnalyticsStats struct {
	EquipmentID     string    `json:"equipment_id"`
	CurrentValue    float64   `json:"current_value"`
	RollingAverage  float64   `json:"rolling_average"`
	AnomalyRate     float64   `json:"anomaly_rate"`
	TotalReadings   int64     `json:"total_readings"`
	TotalAnomalies  int64     `json:"total_anomalies"`
	LastAnomalyTime time.Time `json:"last_anomaly_time,omitempty"`
	WindowSize      int       `json:"window_size"`
	ZScoreThreshold float64   `json:"z_score_threshold"`
}
