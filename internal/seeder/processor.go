package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crosstrain/exchange/internal/exchange"
)

// Bootstrap loads the demo catalog through the engine's public operations
// so every seeded record passes the same validation as live traffic.
type Bootstrap struct {
	engine  *exchange.Engine
	logger  *logrus.Logger
	dryRun  bool
	errors  []error
	created int
}

func NewBootstrap(engine *exchange.Engine, logger *logrus.Logger, dryRun bool) *Bootstrap {
	return &Bootstrap{
		engine: engine,
		logger: logger,
		dryRun: dryRun,
		errors: make([]error, 0),
	}
}

// Run seeds patterns, requests, and sessions, then reports totals.
// Individual failures are collected rather than aborting the run.
func (b *Bootstrap) Run(ctx context.Context) error {
	b.logger.WithField("dry_run", b.dryRun).Info("Starting demo catalog seeding")

	b.seedPatterns(ctx)
	b.seedRequests(ctx)
	b.seedSessions(ctx)

	b.logger.WithFields(logrus.Fields{
		"created": b.created,
		"errors":  len(b.errors),
	}).Info("Demo catalog seeding completed")

	if len(b.errors) > 0 {
		for _, err := range b.errors {
			b.logger.WithError(err).Warn("Seeding error")
		}
		return fmt.Errorf("seeding finished with %d errors", len(b.errors))
	}

	return nil
}

func (b *Bootstrap) seedPatterns(ctx context.Context) {
	for _, input := range demoPatterns {
		if b.dryRun {
			b.logger.WithFields(logrus.Fields{
				"title":    input.Title,
				"staff_id": input.OriginalStaffID,
			}).Info("DRY RUN: Would share pattern")
			continue
		}

		pattern, err := b.engine.SharePattern(ctx, input)
		if err != nil {
			b.errors = append(b.errors, fmt.Errorf("failed to share %q: %w", input.Title, err))
			continue
		}

		b.created++
		b.logger.WithFields(logrus.Fields{
			"pattern_id": pattern.ID,
			"title":      pattern.Title,
		}).Debug("Pattern seeded")
	}
}

func (b *Bootstrap) seedRequests(ctx context.Context) {
	for _, input := range demoRequests {
		if b.dryRun {
			b.logger.WithFields(logrus.Fields{
				"topic":    input.SpecificTopic,
				"staff_id": input.RequestingStaffID,
			}).Info("DRY RUN: Would submit request")
			continue
		}

		request, err := b.engine.SubmitRequest(ctx, input)
		if err != nil {
			b.errors = append(b.errors, fmt.Errorf("failed to submit %q: %w", input.SpecificTopic, err))
			continue
		}

		b.created++
		b.logger.WithField("request_id", request.ID).Debug("Request seeded")
	}
}

func (b *Bootstrap) seedSessions(ctx context.Context) {
	for _, input := range demoSessions(time.Now()) {
		if b.dryRun {
			b.logger.WithFields(logrus.Fields{
				"title":        input.Title,
				"scheduled_at": input.ScheduledAt,
			}).Info("DRY RUN: Would schedule session")
			continue
		}

		session, err := b.engine.ScheduleSession(ctx, input)
		if err != nil {
			b.errors = append(b.errors, fmt.Errorf("failed to schedule %q: %w", input.Title, err))
			continue
		}

		b.created++
		b.logger.WithField("session_id", session.ID).Debug("Session seeded")
	}
}
