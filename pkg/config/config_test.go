package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TEST_CONFIG_KEY", "value")
	assert.Equal(t, "value", getEnv("TEST_CONFIG_KEY", "default"))
	assert.Equal(t, "default", getEnv("TEST_CONFIG_MISSING_KEY", "default"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_CONFIG_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("TEST_CONFIG_INT", 7))

	t.Setenv("TEST_CONFIG_BAD_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("TEST_CONFIG_BAD_INT", 7))
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_CONFIG_DURATION", "30m")
	assert.Equal(t, 30*time.Minute, getEnvAsDuration("TEST_CONFIG_DURATION", time.Hour))
	assert.Equal(t, time.Hour, getEnvAsDuration("TEST_CONFIG_NO_DURATION", time.Hour))
}

func TestScheduleLocation(t *testing.T) {
	cfg := ScheduleConfig{Timezone: "UTC"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg = ScheduleConfig{Timezone: "Local"}
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg = ScheduleConfig{Timezone: "Not/AZone"}
	_, err = cfg.Location()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "schedule", cfg.Metrics.Prefix)
	assert.Equal(t, "Local", cfg.Schedule.Timezone)
}
