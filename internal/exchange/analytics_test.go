package exchange

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosstrain/exchange/internal/models"
)

func TestAnalytics_Empty(t *testing.T) {
	engine, _ := newTestEngine(t)

	out := engine.Analytics()
	assert.Zero(t, out.TotalPatterns)
	assert.Zero(t, out.ResolutionRate)
	assert.Zero(t, out.AdoptionRate)
	assert.Zero(t, out.CommunityEngagement)
	assert.Empty(t, out.TopCategories)
	assert.Empty(t, out.MostActiveStaff)
}

func TestAnalytics_Totals(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t)

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return now }

	salesPattern, err := engine.SharePattern(ctx, sharePatternInput())
	require.NoError(t, err)

	opsInput := sharePatternInput()
	opsInput.Title = "Carrier No-Show Recovery"
	opsInput.Category = models.CategoryOperations
	opsInput.OriginalStaffID = "logan"
	_, err = engine.SharePattern(ctx, opsInput)
	require.NoError(t, err)

	secondSales := sharePatternInput()
	secondSales.Title = "Rate Lock Pitch"
	_, err = engine.SharePattern(ctx, secondSales)
	require.NoError(t, err)

	require.NoError(t, engine.AdoptPattern(ctx, salesPattern.ID, "kameelah"))
	require.NoError(t, engine.AdoptPattern(ctx, salesPattern.ID, "gary"))

	resolved, err := engine.SubmitRequest(ctx, submitRequestInput())
	require.NoError(t, err)
	require.NoError(t, engine.Respond(ctx, resolved.ID, models.RespondInput{
		RespondingStaffID: "hunter",
		Response:          "Split the legs",
	}))
	require.NoError(t, engine.RateResponse(ctx, resolved.ID, 0, 5))

	_, err = engine.SubmitRequest(ctx, submitRequestInput())
	require.NoError(t, err)

	_, err = engine.ScheduleSession(ctx, scheduleInput(now.Add(48*time.Hour)))
	require.NoError(t, err)

	out := engine.Analytics()

	assert.Equal(t, 3, out.TotalPatterns)
	assert.Equal(t, 2, out.TotalAdoptions)
	assert.Equal(t, 2, out.TotalRequests)
	assert.Equal(t, 1, out.ResolvedRequests)
	assert.Equal(t, 1, out.UpcomingSessions)

	require.NotEmpty(t, out.TopCategories)
	assert.Equal(t, models.CategorySales, out.TopCategories[0].Category)
	assert.Equal(t, 2, out.TopCategories[0].Count)

	// hunter: 2 shares; logan 1 share; kameelah and gary 1 adoption each
	require.NotEmpty(t, out.MostActiveStaff)
	assert.Equal(t, "hunter", out.MostActiveStaff[0].StaffID)
	assert.Equal(t, 2, out.MostActiveStaff[0].Activity)

	assert.Equal(t, 50, out.ResolutionRate)
	assert.Equal(t, 67, out.AdoptionRate)
	assert.Equal(t, 67, out.CommunityEngagement)
}

func TestTopCategories_TieBreakAlphabetical(t *testing.T) {
	counts := map[models.PatternCategory]int{
		models.CategorySales:      2,
		models.CategoryCompliance: 2,
		models.CategoryOperations: 1,
	}

	ranked := topCategories(counts)
	require.Len(t, ranked, 3)
	assert.Equal(t, models.CategoryCompliance, ranked[0].Category)
	assert.Equal(t, models.CategorySales, ranked[1].Category)
	assert.Equal(t, models.CategoryOperations, ranked[2].Category)
}

func TestLeaderboards_Truncated(t *testing.T) {
	engine, _ := newTestEngine(t)

	staff := []string{"ana", "brook", "cal", "dell", "drew", "gary", "will"}
	for _, id := range staff {
		engine.RecordActivity(id, models.ActivityAdopted)
	}

	out := engine.Analytics()
	assert.Len(t, out.MostActiveStaff, leaderboardSize)
}
