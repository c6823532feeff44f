package telemetry

import (
	"math"
	"time"

	ferrors "foundry-monitor/internal/errors"
	"foundry-monitor/internal/models"
)

// Production generates n hourly shot blast production points.
func (g *Generator) Production(n int) ([]models.ProductionPoint, error) {
	if n <= 0 {
		return nil, ferrors.InvalidArgument("generate_production", "length must be positive, got %d", n)
	}

	points := make([]models.ProductionPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, models.ProductionPoint{
			Hour:      HourLabel(i),
			Quality:   85 + g.rnd.Float64()*10,
			Vibration: 1.5 + g.rnd.Float64(),
			Energy:    70 + g.rnd.Float64()*20,
			Parts:     int(math.Floor(40 + g.rnd.Float64()*20)),
		})
	}
	return points, nil
}

// QualityPrediction generates n daily quality scores declining two points a day.
func (g *Generator) QualityPrediction(n int) ([]models.QualityPredictionPoint, error) {
	if n <= 0 {
		return nil, ferrors.InvalidArgument("generate_quality_prediction", "length must be positive, got %d", n)
	}

	points := make([]models.QualityPredictionPoint, 0, n)
	for i := 0; i < n; i++ {
		decline := float64(i) * 2
		points = append(points, models.QualityPredictionPoint{
			Day:       DayLabel(i),
			Actual:    90 - decline + g.rnd.Float64()*5,
			Predicted: 89 - decline + g.rnd.Float64()*3,
		})
	}
	return points, nil
}

// MaintenanceHistory generates n monthly maintenance records.
func (g *Generator) MaintenanceHistory(n int) ([]models.MaintenanceRecord, error) {
	if n <= 0 {
		return nil, ferrors.InvalidArgument("generate_maintenance_history", "length must be positive, got %d", n)
	}

	records := make([]models.MaintenanceRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.MaintenanceRecord{
			Month:            MonthLabel(i),
			MaintenanceHours: int(math.Floor(15 + g.rnd.Float64()*10)),
			DowntimeHours:    int(math.Floor(5 + g.rnd.Float64()*8)),
			Costs:            int(math.Floor(2000 + g.rnd.Float64()*1000)),
		})
	}
	return records, nil
}

func QualityFactors() []models.QualityFactor {
	return []models.QualityFactor{
		{Factor: "Abrasive Wear", Impact: 85},
		{Factor: "Vibration", Impact: 75},
		{Factor: "Air Pressure", Impact: 65},
		{Factor: "Cycle Time", Impact: 55},
		{Factor: "Temperature", Impact: 45},
	}
}

// Reading simulates one live value for eq.
func (g *Generator) Reading(eq models.Equipment, now time.Time) models.Reading {
	return models.Reading{
		Timestamp:   now,
		EquipmentID: eq.ID,
		Value:       eq.Baseline + g.uniform(-10, 10),
		Unit:        eq.Unit,
	}
}
