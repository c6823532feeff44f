package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foundry-monitor/internal/models"
)

func TestKeys(t *testing.T) {
	r := models.Reading{
		EquipmentID: models.EquipmentMixer,
		Timestamp:   time.Unix(0, 1500),
	}

	assert.Equal(t, "reading:versatic-mixer:1500", readingKey(r))
	assert.Equal(t, "readings:recent:versatic-mixer", recentKey(models.EquipmentMixer))
}

func TestNewRedisClientUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := NewRedisClient(ctx, Options{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}
