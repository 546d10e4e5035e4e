package exchange

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosstrain/exchange/internal/config"
	"github.com/crosstrain/exchange/internal/identity"
	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/internal/snapshot"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Snapshot.Driver = "memory"
	cfg.Snapshot.Key = "test:snapshot"
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
	return cfg
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestEngine(t *testing.T) (*Engine, *snapshot.MemoryStore) {
	t.Helper()
	store := snapshot.NewMemoryStore()
	engine := NewEngine(testConfig(), identity.NewResolver(), store, testLogger())
	return engine, store
}

func sharePatternInput() models.SharePatternRequest {
	return models.SharePatternRequest{
		Title:           "Freight Quote Objection Handling",
		Description:     "Reframing price pushback around reliability",
		Category:        models.CategorySales,
		OriginalStaffID: "hunter",
		SuccessRate:     89,
		UsageCount:      156,
		Difficulty:      models.DifficultyMedium,
		Tags:            []string{"quoting", "objections"},
		Content: models.PatternContent{
			TriggerCondition: "Prospect pushes back on price",
			Approach:         "Lead with on-time stats before revisiting the number",
		},
	}
}

func TestRestore_EmptyStore(t *testing.T) {
	engine, _ := newTestEngine(t)

	err := engine.Restore(context.Background())
	require.NoError(t, err)
	assert.Empty(t, engine.ListPatterns(models.PatternFilter{}))
}

func TestRestore_CorruptBlob(t *testing.T) {
	engine, store := newTestEngine(t)

	require.NoError(t, store.Save(context.Background(), []byte("{not json")))

	err := engine.Restore(context.Background())
	require.Error(t, err)
	assert.True(t, IsCorruptState(err))
	assert.Empty(t, engine.ListPatterns(models.PatternFilter{}))
}

func TestRestore_UnsupportedVersion(t *testing.T) {
	engine, store := newTestEngine(t)

	blob, err := json.Marshal(models.Snapshot{Version: 99})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), blob))

	err = engine.Restore(context.Background())
	assert.True(t, IsCorruptState(err))
}

func TestSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t)

	pattern, err := engine.SharePattern(ctx, sharePatternInput())
	require.NoError(t, err)
	require.NoError(t, engine.AdoptPattern(ctx, pattern.ID, "kameelah"))

	request, err := engine.SubmitRequest(ctx, models.SubmitRequestInput{
		RequestingStaffID: "gary",
		Category:          models.CategorySales,
		SpecificTopic:     "Multi-stop quotes",
		Urgency:           models.UrgencyHigh,
	})
	require.NoError(t, err)

	_, err = engine.ScheduleSession(ctx, models.ScheduleSessionInput{
		Title:           "Quoting Workshop",
		Category:        models.CategorySales,
		ScheduledAt:     time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		DurationMinutes: 45,
	})
	require.NoError(t, err)

	// Fresh engine over the same store sees identical state
	restored := NewEngine(testConfig(), identity.NewResolver(), store, testLogger())
	require.NoError(t, restored.Restore(ctx))

	patterns := restored.ListPatterns(models.PatternFilter{})
	require.Len(t, patterns, 1)
	assert.Equal(t, pattern.ID, patterns[0].ID)
	require.Len(t, patterns[0].AdoptedBy, 1)
	assert.Equal(t, "kameelah", patterns[0].AdoptedBy[0].StaffID)

	requests := restored.ListRequests(models.RequestFilter{})
	require.Len(t, requests, 1)
	assert.Equal(t, request.ID, requests[0].ID)

	assert.Len(t, restored.ListUpcoming(0), 1)
	assert.Len(t, restored.ListStaffActivity(), 2)
}

func TestSnapshot_ActivitySortedByStaffID(t *testing.T) {
	engine, _ := newTestEngine(t)

	engine.RecordActivity("zelda", models.ActivityShared)
	engine.RecordActivity("adam", models.ActivityAdopted)
	engine.RecordActivity("miles", models.ActivityShared)

	snap := engine.Snapshot()
	require.Len(t, snap.Activity, 3)
	assert.Equal(t, "adam", snap.Activity[0].StaffID)
	assert.Equal(t, "miles", snap.Activity[1].StaffID)
	assert.Equal(t, "zelda", snap.Activity[2].StaffID)
}

type failingStore struct{}

func (failingStore) Save(ctx context.Context, data []byte) error { return assert.AnError }
func (failingStore) Load(ctx context.Context) ([]byte, error)    { return nil, nil }
func (failingStore) Driver() string                              { return "failing" }

func TestPersist_SaveFailureKeepsState(t *testing.T) {
	engine := NewEngine(testConfig(), identity.NewResolver(), failingStore{}, testLogger())

	pattern, err := engine.SharePattern(context.Background(), sharePatternInput())
	require.NoError(t, err)

	// Mutation survives even though the save failed
	patterns := engine.ListPatterns(models.PatternFilter{})
	require.Len(t, patterns, 1)
	assert.Equal(t, pattern.ID, patterns[0].ID)
}
