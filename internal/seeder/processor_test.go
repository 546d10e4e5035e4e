package seeder

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosstrain/exchange/internal/config"
	"github.com/crosstrain/exchange/internal/exchange"
	"github.com/crosstrain/exchange/internal/identity"
	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/internal/snapshot"
)

func newSeedEngine(t *testing.T) *exchange.Engine {
	t.Helper()

	cfg := &config.Config{}
	cfg.Snapshot.Driver = "memory"
	cfg.Snapshot.SaveTimeout = 5
	cfg.Knowledge.RatingMin = 1
	cfg.Knowledge.RatingMax = 5
	cfg.Knowledge.ResolveThreshold = 4
	cfg.Knowledge.UpcomingWindow = 168
	cfg.Knowledge.Score = config.ScoreConfig{
		SharedWeight:  2.0,
		AdoptedWeight: 1.0,
		DaysFresh:     1,
		DaysRecent:    7,
		DaysSteady:    30,
		BonusFresh:    1.5,
		BonusRecent:   1.2,
		BonusSteady:   1.0,
		BonusStale:    0.8,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return exchange.NewEngine(cfg, identity.NewResolver(), snapshot.NewMemoryStore(), logger)
}

func TestBootstrap_Run(t *testing.T) {
	engine := newSeedEngine(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	bootstrap := NewBootstrap(engine, logger, false)
	require.NoError(t, bootstrap.Run(context.Background()))

	patterns := engine.ListPatterns(models.PatternFilter{})
	assert.Len(t, patterns, len(demoPatterns))

	requests := engine.ListRequests(models.RequestFilter{})
	assert.Len(t, requests, len(demoRequests))

	// Both demo sessions sit inside the default lookahead window
	assert.Len(t, engine.ListUpcoming(0), 2)

	// Seeded shares show up in the activity ledger
	assert.NotEmpty(t, engine.ListStaffActivity())
}

func TestBootstrap_DryRunWritesNothing(t *testing.T) {
	engine := newSeedEngine(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	bootstrap := NewBootstrap(engine, logger, true)
	require.NoError(t, bootstrap.Run(context.Background()))

	assert.Empty(t, engine.ListPatterns(models.PatternFilter{}))
	assert.Empty(t, engine.ListRequests(models.RequestFilter{}))
	assert.Empty(t, engine.ListUpcoming(0))
}

func TestDemoCatalog_PassesValidation(t *testing.T) {
	for _, input := range demoPatterns {
		assert.True(t, input.Category.Valid(), input.Title)
		assert.True(t, input.Difficulty.Valid(), input.Title)
		assert.NotEmpty(t, input.OriginalStaffID, input.Title)
	}
	for _, input := range demoRequests {
		assert.True(t, input.Category.Valid(), input.SpecificTopic)
		assert.True(t, input.Urgency.Valid(), input.SpecificTopic)
	}
}
