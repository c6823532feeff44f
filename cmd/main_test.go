package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))

	err := cmd.Execute()
	return out.String(), err
}

func TestVibrationCommand(t *testing.T) {
	out, err := execute(t, "vibration", "--days", "2", "--seed", "5", "--no-noise")
	require.NoError(t, err)

	var resp vibrationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	require.Len(t, resp.Samples, 48)
	assert.Equal(t, 0.84, resp.Samples[0].Vibration)
	assert.Equal(t, "Day 2 23:00", resp.Samples[47].Timestamp)
	assert.Equal(t, resp.Samples[47].Vibration, resp.Metrics.CurrentVibration)
}

func TestVibrationCommandIsReproducibleWithSeed(t *testing.T) {
	a, err := execute(t, "vibration", "--seed", "17")
	require.NoError(t, err)
	b, err := execute(t, "vibration", "--seed", "17")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestVibrationCommandRejectsBadDays(t *testing.T) {
	_, err := execute(t, "vibration", "--days", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "days must be positive")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "foundry-monitor dev"))
}
