package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.FDScheduleHour)
	assert.Equal(t, 0, cfg.FDScheduleMinute)
	assert.Equal(t, 3, cfg.SavingsScheduleHour)
	assert.Equal(t, 30, cfg.SavingsScheduleMinute)
	assert.False(t, cfg.DebugMode)
	assert.Equal(t, 10*time.Second, cfg.DebugInterval)
}

func TestLoad_ScheduleOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("FD_SCHEDULE", "01:15")
	t.Setenv("SAVINGS_SCHEDULE", "23:45")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.FDScheduleHour)
	assert.Equal(t, 15, cfg.FDScheduleMinute)
	assert.Equal(t, 23, cfg.SavingsScheduleHour)
	assert.Equal(t, 45, cfg.SavingsScheduleMinute)
}

func TestLoad_MalformedScheduleFailsFast(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	for _, bad := range []string{"3am", "25:00", "03:99", "03"} {
		t.Setenv("FD_SCHEDULE", bad)
		_, err := load()
		assert.Error(t, err, "schedule %q should be rejected", bad)
	}
}

func TestLoad_SystemActorIDRequired(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/microbank")

	_, err := load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYSTEM_ACTOR_ID")

	t.Setenv("SYSTEM_ACTOR_ID", "42")
	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.SystemActorID)
}

func TestLoad_DatabaseURLRequired(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SYSTEM_ACTOR_ID", "42")
	t.Setenv("DATABASE_URL", "")

	_, err := load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
