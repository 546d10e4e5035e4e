package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosstrain/exchange/internal/models"
)

func TestKnowledgeScore_Weights(t *testing.T) {
	engine, _ := newTestEngine(t)

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return now }

	record := models.ActivityRecord{
		StaffID:         "hunter",
		PatternsShared:  3,
		PatternsAdopted: 2,
		LastShared:      now.Add(-2 * time.Hour),
	}

	// (3*2 + 2*1) * 1.5 fresh bonus
	assert.InDelta(t, 12.0, engine.KnowledgeScore(record), 0.001)
}

func TestKnowledgeScore_RecencySteps(t *testing.T) {
	engine, _ := newTestEngine(t)

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return now }

	base := models.ActivityRecord{StaffID: "hunter", PatternsShared: 1}

	cases := []struct {
		name     string
		ago      time.Duration
		expected float64
	}{
		{"same day", 12 * time.Hour, 2.0 * 1.5},
		{"three days", 3 * 24 * time.Hour, 2.0 * 1.2},
		{"two weeks", 14 * 24 * time.Hour, 2.0 * 1.0},
		{"two months", 60 * 24 * time.Hour, 2.0 * 0.8},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := base
			record.LastShared = now.Add(-tc.ago)
			assert.InDelta(t, tc.expected, engine.KnowledgeScore(record), 0.001)
		})
	}
}

func TestKnowledgeScore_NeverSharedIsStale(t *testing.T) {
	engine, _ := newTestEngine(t)

	record := models.ActivityRecord{StaffID: "kameelah", PatternsAdopted: 4}

	// Adoption-only contributors carry the stale bonus
	assert.InDelta(t, 4.0*0.8, engine.KnowledgeScore(record), 0.001)
}

func TestRecordActivity_Counters(t *testing.T) {
	engine, _ := newTestEngine(t)

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return now }

	engine.RecordActivity("hunter", models.ActivityShared)
	engine.RecordActivity("hunter", models.ActivityShared)
	engine.RecordActivity("hunter", models.ActivityAdopted)

	engine.activityMu.RLock()
	record := *engine.activity["hunter"]
	engine.activityMu.RUnlock()

	assert.Equal(t, 2, record.PatternsShared)
	assert.Equal(t, 1, record.PatternsAdopted)
	assert.Equal(t, now, record.LastShared)
}

func TestRecordActivity_AdoptionDoesNotStampLastShared(t *testing.T) {
	engine, _ := newTestEngine(t)

	engine.RecordActivity("kameelah", models.ActivityAdopted)

	engine.activityMu.RLock()
	record := *engine.activity["kameelah"]
	engine.activityMu.RUnlock()

	assert.True(t, record.LastShared.IsZero())
}

func TestListStaffActivity_RankedByScore(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return now }

	// hunter shares twice, kameelah adopts once
	pattern, err := engine.SharePattern(ctx, sharePatternInput())
	require.NoError(t, err)
	_, err = engine.SharePattern(ctx, sharePatternInput())
	require.NoError(t, err)
	require.NoError(t, engine.AdoptPattern(ctx, pattern.ID, "kameelah"))

	summaries := engine.ListStaffActivity()
	require.Len(t, summaries, 2)

	assert.Equal(t, "hunter", summaries[0].StaffID)
	assert.Equal(t, "Hunter", summaries[0].StaffName)
	assert.Equal(t, "Sales", summaries[0].Department)
	assert.InDelta(t, 4.0*1.5, summaries[0].KnowledgeScore, 0.001)

	assert.Equal(t, "kameelah", summaries[1].StaffID)
	assert.InDelta(t, 1.0*0.8, summaries[1].KnowledgeScore, 0.001)
}

func TestListStaffActivity_TieBreakByStaffID(t *testing.T) {
	engine, _ := newTestEngine(t)

	engine.RecordActivity("zelda", models.ActivityAdopted)
	engine.RecordActivity("adam", models.ActivityAdopted)

	summaries := engine.ListStaffActivity()
	require.Len(t, summaries, 2)
	assert.Equal(t, "adam", summaries[0].StaffID)
	assert.Equal(t, "zelda", summaries[1].StaffID)
}
