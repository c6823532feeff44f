package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThresholdsRisk(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, RiskLow, th.Risk(1.2))
	assert.Equal(t, RiskLow, th.Risk(2.0))
	assert.Equal(t, RiskMedium, th.Risk(2.5))
	assert.Equal(t, RiskHigh, th.Risk(2.50001))
	assert.Equal(t, RiskHigh, th.Risk(3.1))
}

func TestFindEquipment(t *testing.T) {
	for _, id := range []string{EquipmentFurnace, EquipmentShotBlast, EquipmentMixer} {
		eq, ok := FindEquipment(id)
		assert.True(t, ok, id)
		assert.Equal(t, id, eq.ID)
		assert.Len(t, eq.Parameters, 4)
	}

	_, ok := FindEquipment("cupola")
	assert.False(t, ok)
}
