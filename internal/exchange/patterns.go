package exchange

import (
	"context"
	"sort"

	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/pkg/utils"
	"github.com/sirupsen/logrus"
)

// SharePattern publishes a new knowledge pattern. The catalog is
// append-only: patterns are never deleted.
func (e *Engine) SharePattern(ctx context.Context, input models.SharePatternRequest) (*models.KnowledgePattern, error) {
	name, department := e.resolver.ResolveStaff(input.OriginalStaffID)

	pattern := &models.KnowledgePattern{
		ID:                 utils.GenerateEntityID("pattern"),
		Title:              input.Title,
		Description:        input.Description,
		Category:           input.Category,
		OriginalStaffID:    input.OriginalStaffID,
		OriginalStaffName:  name,
		OriginalDepartment: department,
		SuccessRate:        input.SuccessRate,
		UsageCount:         input.UsageCount,
		Difficulty:         input.Difficulty,
		Tags:               append([]string(nil), input.Tags...),
		Content:            input.Content,
		AdoptedBy:          []models.AdoptionRecord{},
		Votes:              models.VoteTally{},
		SharedAt:           e.now(),
	}

	if err := pattern.Validate(); err != nil {
		return nil, InvalidArgumentError{Reason: err.Error()}
	}

	e.patternsMu.Lock()
	e.patterns = append(e.patterns, pattern)
	e.patternIdx[pattern.ID] = pattern
	e.patternsMu.Unlock()

	e.RecordActivity(input.OriginalStaffID, models.ActivityShared)

	e.logger.WithFields(logrus.Fields{
		"pattern_id": pattern.ID,
		"category":   pattern.Category,
		"staff_id":   input.OriginalStaffID,
	}).Info("Knowledge pattern shared")

	e.persist(ctx)

	result := clonePattern(pattern)
	return &result, nil
}

// AdoptPattern appends an unrated adoption record for the given staff
// member. Re-adoption is idempotent: the existing record is kept and no
// duplicate is added.
func (e *Engine) AdoptPattern(ctx context.Context, patternID, staffID string) error {
	if staffID == "" {
		return invalidArgumentf("staff id is required")
	}
	name, _ := e.resolver.ResolveStaff(staffID)

	e.patternsMu.Lock()
	pattern, ok := e.patternIdx[patternID]
	if !ok {
		e.patternsMu.Unlock()
		return NotFoundError{Entity: "pattern", ID: patternID}
	}
	for _, adoption := range pattern.AdoptedBy {
		if adoption.StaffID == staffID {
			e.patternsMu.Unlock()
			e.logger.WithFields(logrus.Fields{
				"pattern_id": patternID,
				"staff_id":   staffID,
			}).Debug("Pattern already adopted, no-op")
			return nil
		}
	}
	pattern.AdoptedBy = append(pattern.AdoptedBy, models.AdoptionRecord{
		StaffID:   staffID,
		StaffName: name,
		AdoptedAt: e.now(),
	})
	e.patternsMu.Unlock()

	e.RecordActivity(staffID, models.ActivityAdopted)

	e.logger.WithFields(logrus.Fields{
		"pattern_id": patternID,
		"staff_id":   staffID,
	}).Info("Pattern adopted")

	e.persist(ctx)
	return nil
}

// RateAdoption sets the success rating on an existing adoption record.
// The rating scale is configured; the default is 1-5.
func (e *Engine) RateAdoption(ctx context.Context, patternID, staffID string, rating int) error {
	if rating < e.cfg.Knowledge.RatingMin || rating > e.cfg.Knowledge.RatingMax {
		return invalidArgumentf("rating %d outside bounds [%d, %d]",
			rating, e.cfg.Knowledge.RatingMin, e.cfg.Knowledge.RatingMax)
	}

	e.patternsMu.Lock()
	pattern, ok := e.patternIdx[patternID]
	if !ok {
		e.patternsMu.Unlock()
		return NotFoundError{Entity: "pattern", ID: patternID}
	}
	rated := false
	for i := range pattern.AdoptedBy {
		if pattern.AdoptedBy[i].StaffID == staffID {
			pattern.AdoptedBy[i].SuccessRating = rating
			rated = true
			break
		}
	}
	e.patternsMu.Unlock()

	if !rated {
		return NotFoundError{Entity: "adoption record for staff", ID: staffID}
	}

	e.logger.WithFields(logrus.Fields{
		"pattern_id": patternID,
		"staff_id":   staffID,
		"rating":     rating,
	}).Info("Adoption rated")

	e.persist(ctx)
	return nil
}

// VotePattern increments the helpful or not-helpful tally
func (e *Engine) VotePattern(ctx context.Context, patternID string, helpful bool) error {
	e.patternsMu.Lock()
	pattern, ok := e.patternIdx[patternID]
	if !ok {
		e.patternsMu.Unlock()
		return NotFoundError{Entity: "pattern", ID: patternID}
	}
	if helpful {
		pattern.Votes.Helpful++
	} else {
		pattern.Votes.NotHelpful++
	}
	e.patternsMu.Unlock()

	e.persist(ctx)
	return nil
}

// ListPatterns returns patterns matching the filter, sorted by usage count
// descending. The sort is stable so equal counts keep insertion order.
func (e *Engine) ListPatterns(filter models.PatternFilter) []models.KnowledgePattern {
	e.patternsMu.RLock()
	results := make([]models.KnowledgePattern, 0, len(e.patterns))
	for _, p := range e.patterns {
		if matchesPatternFilter(p, filter) {
			results = append(results, clonePattern(p))
		}
	}
	e.patternsMu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].UsageCount > results[j].UsageCount
	})

	return results
}

func matchesPatternFilter(p *models.KnowledgePattern, filter models.PatternFilter) bool {
	if filter.Category != "" && p.Category != filter.Category {
		return false
	}
	if filter.StaffID != "" && p.OriginalStaffID != filter.StaffID {
		return false
	}
	if filter.MinSuccessRate != nil && p.SuccessRate < *filter.MinSuccessRate {
		return false
	}
	if len(filter.Tags) > 0 && !hasAnyTag(p.Tags, filter.Tags) {
		return false
	}
	return true
}

func hasAnyTag(tags, wanted []string) bool {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	for _, w := range wanted {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}
