package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Snapshot.Driver)
	assert.Equal(t, "exchange:snapshot", cfg.Snapshot.Key)
	assert.Equal(t, 1, cfg.Knowledge.RatingMin)
	assert.Equal(t, 5, cfg.Knowledge.RatingMax)
	assert.Equal(t, 4, cfg.Knowledge.ResolveThreshold)
	assert.Equal(t, 168, cfg.Knowledge.UpcomingWindow)
	assert.InDelta(t, 2.0, cfg.Knowledge.Score.SharedWeight, 0.001)
	assert.InDelta(t, 0.8, cfg.Knowledge.Score.BonusStale, 0.001)

	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Snapshot.Driver = "memory"
		cfg.Knowledge.RatingMin = 1
		cfg.Knowledge.RatingMax = 5
		cfg.Knowledge.ResolveThreshold = 4
		return cfg
	}

	cfg := base()
	assert.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Knowledge.RatingMax = 1
	assert.Error(t, cfg.Validate(), "max must exceed min")

	cfg = base()
	cfg.Knowledge.ResolveThreshold = 7
	assert.Error(t, cfg.Validate(), "threshold outside rating bounds")

	cfg = base()
	cfg.Snapshot.Driver = "cassandra"
	assert.Error(t, cfg.Validate(), "unknown driver")
}
