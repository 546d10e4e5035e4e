package exchange

import (
	"math"
	"sort"

	"github.com/crosstrain/exchange/internal/models"
)

const leaderboardSize = 5

// Analytics composes the read-only dashboard view from the four stores.
// No new state: everything is derived on demand.
func (e *Engine) Analytics() models.Analytics {
	var out models.Analytics

	e.patternsMu.RLock()
	out.TotalPatterns = len(e.patterns)
	categoryCounts := make(map[models.PatternCategory]int)
	for _, p := range e.patterns {
		out.TotalAdoptions += len(p.AdoptedBy)
		categoryCounts[p.Category]++
	}
	e.patternsMu.RUnlock()

	e.requestsMu.RLock()
	out.TotalRequests = len(e.requests)
	for _, r := range e.requests {
		if r.Resolved {
			out.ResolvedRequests++
		}
	}
	e.requestsMu.RUnlock()

	e.sessionsMu.RLock()
	for _, s := range e.sessions {
		if s.Status == models.SessionScheduled {
			out.UpcomingSessions++
		}
	}
	e.sessionsMu.RUnlock()

	out.TopCategories = topCategories(categoryCounts)
	out.MostActiveStaff = e.mostActiveStaff()

	if out.TotalRequests > 0 {
		out.ResolutionRate = roundPct(out.ResolvedRequests, out.TotalRequests)
	}
	if out.TotalPatterns > 0 {
		out.AdoptionRate = roundPct(out.TotalAdoptions, out.TotalPatterns)
		if len(out.MostActiveStaff) > 0 {
			out.CommunityEngagement = roundPct(out.MostActiveStaff[0].Activity, out.TotalPatterns)
		}
	}

	return out
}

func topCategories(counts map[models.PatternCategory]int) []models.CategoryCount {
	ranked := make([]models.CategoryCount, 0, len(counts))
	for category, count := range counts {
		ranked = append(ranked, models.CategoryCount{Category: category, Count: count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > leaderboardSize {
		ranked = ranked[:leaderboardSize]
	}
	return ranked
}

// mostActiveStaff ranks by raw shared+adopted volume. This is intentionally
// simpler than the knowledge score so the dashboard can surface volume
// separately from recency-weighted quality.
func (e *Engine) mostActiveStaff() []models.StaffActivityCount {
	e.activityMu.RLock()
	ranked := make([]models.StaffActivityCount, 0, len(e.activity))
	for staffID, record := range e.activity {
		name, _ := e.resolver.ResolveStaff(staffID)
		ranked = append(ranked, models.StaffActivityCount{
			StaffID:   staffID,
			StaffName: name,
			Activity:  record.PatternsShared + record.PatternsAdopted,
		})
	}
	e.activityMu.RUnlock()

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Activity != ranked[j].Activity {
			return ranked[i].Activity > ranked[j].Activity
		}
		return ranked[i].StaffID < ranked[j].StaffID
	})
	if len(ranked) > leaderboardSize {
		ranked = ranked[:leaderboardSize]
	}
	return ranked
}

func roundPct(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
