package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foundry-monitor/internal/models"
)

func reading(id string, v float64) models.Reading {
	return models.Reading{EquipmentID: id, Value: v, Timestamp: time.Unix(0, 0)}
}

func TestAnalyzerFlagsSpike(t *testing.T) {
	a := NewAnalyzer(50, 2.0)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return fixed }

	for i := 0; i < 20; i++ {
		v := 1450.0
		if i%2 == 0 {
			v = 1451
		}
		res := a.Analyze(reading(models.EquipmentFurnace, v))
		assert.False(t, res.IsAnomaly, "reading %d", i)
	}

	res := a.Analyze(reading(models.EquipmentFurnace, 1600))
	assert.True(t, res.IsAnomaly)
	assert.Greater(t, res.ZScore, 2.0)

	anomalies := a.GetRecentAnomalies(10)
	require.Len(t, anomalies, 1)
	assert.Equal(t, 1600.0, anomalies[0].Reading.Value)

	stats := a.GetCurrentStats()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(21), stats[0].TotalReadings)
	assert.Equal(t, int64(1), stats[0].TotalAnomalies)
	assert.Equal(t, fixed, stats[0].LastAnomalyTime)
	assert.InDelta(t, 1.0/21, stats[0].AnomalyRate, 1e-9)
}

func TestAnalyzerNeedsFullWindowForAnomaly(t *testing.T) {
	a := NewAnalyzer(50, 2.0)

	for _, v := range []float64{1, 1, 1, 1, 1, 1, 1, 1} {
		a.Analyze(reading(models.EquipmentMixer, v))
	}
	res := a.Analyze(reading(models.EquipmentMixer, 500))

	assert.False(t, res.IsAnomaly)
	assert.Empty(t, a.GetRecentAnomalies(10))
}

func TestAnalyzerKeepsWindowsPerEquipment(t *testing.T) {
	a := NewAnalyzer(3, 2.0)

	for _, v := range []float64{10, 20, 30, 40} {
		a.Analyze(reading(models.EquipmentShotBlast, v))
	}
	a.Analyze(reading(models.EquipmentMixer, 120))

	stats := a.GetCurrentStats()
	require.Len(t, stats, 2)

	assert.Equal(t, models.EquipmentMixer, stats[0].EquipmentID)
	assert.Equal(t, 120.0, stats[0].RollingAverage)

	assert.Equal(t, models.EquipmentShotBlast, stats[1].EquipmentID)
	assert.Equal(t, 30.0, stats[1].RollingAverage)
	assert.Equal(t, 40.0, stats[1].CurrentValue)
	assert.Equal(t, 3, stats[1].WindowSize)
}

func TestGetRecentAnomaliesReturnsCopy(t *testing.T) {
	a := NewAnalyzer(50, 0.5)
	for i := 0; i < 12; i++ {
		a.Analyze(reading(models.EquipmentFurnace, float64(i%2)))
	}
	a.Analyze(reading(models.EquipmentFurnace, 100))

	got := a.GetRecentAnomalies(100)
	require.NotEmpty(t, got)
	got[0].Reading.Value = -1

	assert.NotEqual(t, -1.0, a.GetRecentAnomalies(100)[0].Reading.Value)
	assert.Empty(t, a.GetRecentAnomalies(-5))
}
