package exchange

import (
	"sort"

	"github.com/crosstrain/exchange/internal/models"
)

// RecordActivity bumps the matching counter for a staff member, creating
// the ledger record on first sight. Shares also stamp the last-shared time.
func (e *Engine) RecordActivity(staffID string, kind models.ActivityKind) {
	e.activityMu.Lock()
	defer e.activityMu.Unlock()

	record, ok := e.activity[staffID]
	if !ok {
		record = &models.ActivityRecord{StaffID: staffID}
		e.activity[staffID] = record
	}

	switch kind {
	case models.ActivityShared:
		record.PatternsShared++
		record.LastShared = e.now()
	case models.ActivityAdopted:
		record.PatternsAdopted++
	}
}

// KnowledgeScore computes the recency-weighted contribution score:
// weighted share/adopt counts multiplied by a step-function bonus on days
// since the last share. Sharing is double-weighted over adoption and a
// stale contributor's history still counts, just discounted.
func (e *Engine) KnowledgeScore(record models.ActivityRecord) float64 {
	score := e.cfg.Knowledge.Score
	base := float64(record.PatternsShared)*score.SharedWeight +
		float64(record.PatternsAdopted)*score.AdoptedWeight

	return base * e.recencyBonus(record)
}

func (e *Engine) recencyBonus(record models.ActivityRecord) float64 {
	score := e.cfg.Knowledge.Score
	if record.LastShared.IsZero() {
		return score.BonusStale
	}

	days := int(e.now().Sub(record.LastShared).Hours() / 24)
	switch {
	case days <= score.DaysFresh:
		return score.BonusFresh
	case days <= score.DaysRecent:
		return score.BonusRecent
	case days <= score.DaysSteady:
		return score.BonusSteady
	default:
		return score.BonusStale
	}
}

// ListStaffActivity joins ledger records with resolved identities and the
// computed knowledge score, highest score first.
func (e *Engine) ListStaffActivity() []models.ActivitySummary {
	e.activityMu.RLock()
	records := make([]models.ActivityRecord, 0, len(e.activity))
	for _, record := range e.activity {
		records = append(records, *record)
	}
	e.activityMu.RUnlock()

	summaries := make([]models.ActivitySummary, 0, len(records))
	for _, record := range records {
		name, department := e.resolver.ResolveStaff(record.StaffID)
		summaries = append(summaries, models.ActivitySummary{
			StaffID:         record.StaffID,
			StaffName:       name,
			Department:      department,
			PatternsShared:  record.PatternsShared,
			PatternsAdopted: record.PatternsAdopted,
			KnowledgeScore:  e.KnowledgeScore(record),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].KnowledgeScore != summaries[j].KnowledgeScore {
			return summaries[i].KnowledgeScore > summaries[j].KnowledgeScore
		}
		return summaries[i].StaffID < summaries[j].StaffID
	})

	return summaries
}
