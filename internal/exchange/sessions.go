package exchange

import (
	"context"
	"sort"
	"time"

	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/pkg/utils"
	"github.com/sirupsen/logrus"
)

// ScheduleSession creates a new cross-training session in the scheduled
// state with empty outcomes and learnings. The scheduled time is RFC 3339.
func (e *Engine) ScheduleSession(ctx context.Context, input models.ScheduleSessionInput) (*models.CrossTrainingSession, error) {
	scheduledAt, err := time.Parse(time.RFC3339, input.ScheduledAt)
	if err != nil {
		return nil, invalidArgumentf("scheduled_at must be RFC 3339: %v", err)
	}

	participants := make([]models.SessionParticipant, 0, len(input.Participants))
	for _, p := range input.Participants {
		if p.Role != models.RoleHost && p.Role != models.RoleParticipant {
			return nil, invalidArgumentf("invalid participant role: %s", p.Role)
		}
		if p.StaffName == "" || p.Department == "" {
			name, department := e.resolver.ResolveStaff(p.StaffID)
			if p.StaffName == "" {
				p.StaffName = name
			}
			if p.Department == "" {
				p.Department = department
			}
		}
		participants = append(participants, p)
	}

	session := &models.CrossTrainingSession{
		ID:              utils.GenerateEntityID("session"),
		Title:           input.Title,
		Description:     input.Description,
		Topic:           input.Topic,
		Category:        input.Category,
		ScheduledAt:     scheduledAt,
		DurationMinutes: input.DurationMinutes,
		Status:          models.SessionScheduled,
		Participants:    participants,
		Outcomes:        []string{},
		Learnings:       []models.SessionLearning{},
	}

	if err := session.Validate(); err != nil {
		return nil, InvalidArgumentError{Reason: err.Error()}
	}

	e.sessionsMu.Lock()
	e.sessions = append(e.sessions, session)
	e.sessionsMu.Unlock()

	e.logger.WithFields(logrus.Fields{
		"session_id":   session.ID,
		"scheduled_at": session.ScheduledAt,
		"participants": len(session.Participants),
	}).Info("Cross-training session scheduled")

	e.persist(ctx)

	result := cloneSession(session)
	return &result, nil
}

// ListUpcoming returns scheduled sessions inside the window, ascending by
// start time. A zero window falls back to the configured default (one week).
func (e *Engine) ListUpcoming(windowHours int) []models.CrossTrainingSession {
	if windowHours <= 0 {
		windowHours = e.cfg.Knowledge.UpcomingWindow
	}
	now := e.now()
	horizon := now.Add(time.Duration(windowHours) * time.Hour)

	e.sessionsMu.RLock()
	results := make([]models.CrossTrainingSession, 0, len(e.sessions))
	for _, s := range e.sessions {
		if s.Status != models.SessionScheduled {
			continue
		}
		if s.ScheduledAt.Before(now) || s.ScheduledAt.After(horizon) {
			continue
		}
		results = append(results, cloneSession(s))
	}
	e.sessionsMu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ScheduledAt.Before(results[j].ScheduledAt)
	})

	return results
}
