package analytics

import (
	"math"
	"sort"
	"sync"
	"time"

	"foundry-monitor/internal/models"
)

const (
	minAnomalyWindow = 10
	maxAnomalies     = 100
)

type Analyzer struct {
	windowSize      int
	zScoreThreshold float64
	windows         map[string][]models.Reading
	anomalies       []models.AnalysisResult
	stats           map[string]*models.AnalyticsStats
	now             func() time.Time
	mu              sync.RWMutex
}

func NewAnalyzer(windowSize int, zScoreThreshold float64) *Analyzer {
	return &Analyzer{
		windowSize:      windowSize,
		zScoreThreshold: zScoreThreshold,
		windows:         make(map[string][]models.Reading),
		anomalies:       make([]models.AnalysisResult, 0, maxAnomalies),
		stats:           make(map[string]*models.AnalyticsStats),
		now:             time.Now,
	}
}

func (a *Analyzer) Analyze(reading models.Reading) models.AnalysisResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Slide the per-machine window
	window := append(a.windows[reading.EquipmentID], reading)
	if len(window) > a.windowSize {
		window = window[1:]
	}
	a.windows[reading.EquipmentID] = window

	rollingAvg := calculateRollingAverage(window)
	zScore := calculateZScore(window, reading.Value, rollingAvg)
	isAnomaly := math.Abs(zScore) > a.zScoreThreshold && len(window) >= minAnomalyWindow

	result := models.AnalysisResult{
		Timestamp:      a.now(),
		Reading:        reading,
		RollingAverage: rollingAvg,
		ZScore:         zScore,
		IsAnomaly:      isAnomaly,
	}

	stats, ok := a.stats[reading.EquipmentID]
	if !ok {
		stats = &models.AnalyticsStats{
			EquipmentID:     reading.EquipmentID,
			WindowSize:      a.windowSize,
			ZScoreThreshold: a.zScoreThreshold,
		}
		a.stats[reading.EquipmentID] = stats
	}
	stats.CurrentValue = reading.Value
	stats.RollingAverage = rollingAvg
	stats.TotalReadings++

	if isAnomaly {
		stats.TotalAnomalies++
		stats.LastAnomalyTime = result.Timestamp

		a.anomalies = append(a.anomalies, result)
		if len(a.anomalies) > maxAnomalies {
			a.anomalies = a.anomalies[1:]
		}
	}
	stats.AnomalyRate = float64(stats.TotalAnomalies) / float64(stats.TotalReadings)

	return result
}

func calculateRollingAverage(window []models.Reading) float64 {
	if len(window) == 0 {
		return 0
	}

	var sum float64
	for _, r := range window {
		sum += r.Value
	}

	return sum / float64(len(window))
}

func calculateZScore(window []models.Reading, value, mean float64) float64 {
	if len(window) < 2 {
		return 0
	}

	var variance float64
	for _, r := range window {
		diff := r.Value - mean
		variance += diff * diff
	}

	stdDev := math.Sqrt(variance / float64(len(window)-1))
	if stdDev == 0 {
		return 0
	}

	return (value - mean) / stdDev
}

// GetCurrentStats returns per-machine statistics ordered by equipment ID.
func (a *Analyzer) GetCurrentStats() []models.AnalyticsStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]models.AnalyticsStats, 0, len(a.stats))
	for _, s := range a.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EquipmentID < out[j].EquipmentID })
	return out
}

func (a *Analyzer) GetRecentAnomalies(limit int) []models.AnalysisResult {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if limit > len(a.anomalies) {
		limit = len(a.anomalies)
	}
	if limit < 0 {
		limit = 0
	}

	start := len(a.anomalies) - limit
	out := make([]models.AnalysisResult, limit)
	copy(out, a.anomalies[start:])
	return out
}
