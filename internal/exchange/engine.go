package exchange

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/crosstrain/exchange/internal/config"
	"github.com/crosstrain/exchange/internal/identity"
	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/internal/snapshot"
	"github.com/sirupsen/logrus"
)

// Engine is the single in-process owner of the four knowledge stores.
// Each store is guarded by its own RWMutex: mutations are serialized per
// store, reads run concurrently. Mutations never hold more than one store
// lock; the post-mutation snapshot re-acquires read locks in a fixed order.
type Engine struct {
	cfg      *config.Config
	resolver *identity.Resolver
	store    snapshot.Store
	logger   *logrus.Logger

	patternsMu sync.RWMutex
	patterns   []*models.KnowledgePattern
	patternIdx map[string]*models.KnowledgePattern

	requestsMu sync.RWMutex
	requests   []*models.KnowledgeRequest
	requestIdx map[string]*models.KnowledgeRequest

	sessionsMu sync.RWMutex
	sessions   []*models.CrossTrainingSession

	activityMu sync.RWMutex
	activity   map[string]*models.ActivityRecord

	// test seam; defaults to time.Now
	now func() time.Time
}

// NewEngine wires an empty engine. Call Restore to load persisted state.
func NewEngine(cfg *config.Config, resolver *identity.Resolver, store snapshot.Store, logger *logrus.Logger) *Engine {
	return &Engine{
		cfg:        cfg,
		resolver:   resolver,
		store:      store,
		logger:     logger,
		patternIdx: make(map[string]*models.KnowledgePattern),
		requestIdx: make(map[string]*models.KnowledgeRequest),
		activity:   make(map[string]*models.ActivityRecord),
		now:        time.Now,
	}
}

// Restore loads the persisted snapshot into the engine. A missing blob is
// not an error; empty state is valid. An unreadable blob returns
// CorruptStateError and leaves the engine empty so the process can still
// start.
func (e *Engine) Restore(ctx context.Context) error {
	data, err := e.store.Load(ctx)
	if err != nil {
		return CorruptStateError{Cause: err}
	}
	if data == nil {
		e.logger.Info("No snapshot found, starting with empty state")
		return nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return CorruptStateError{Cause: err}
	}
	if snap.Version != models.SnapshotVersion {
		return CorruptStateError{Cause: invalidArgumentf("unsupported snapshot version %d", snap.Version)}
	}

	e.patternsMu.Lock()
	e.patterns = e.patterns[:0]
	e.patternIdx = make(map[string]*models.KnowledgePattern, len(snap.Patterns))
	for i := range snap.Patterns {
		p := snap.Patterns[i]
		e.patterns = append(e.patterns, &p)
		e.patternIdx[p.ID] = &p
	}
	e.patternsMu.Unlock()

	e.requestsMu.Lock()
	e.requests = e.requests[:0]
	e.requestIdx = make(map[string]*models.KnowledgeRequest, len(snap.Requests))
	for i := range snap.Requests {
		r := snap.Requests[i]
		e.requests = append(e.requests, &r)
		e.requestIdx[r.ID] = &r
	}
	e.requestsMu.Unlock()

	e.sessionsMu.Lock()
	e.sessions = e.sessions[:0]
	for i := range snap.Sessions {
		s := snap.Sessions[i]
		e.sessions = append(e.sessions, &s)
	}
	e.sessionsMu.Unlock()

	e.activityMu.Lock()
	e.activity = make(map[string]*models.ActivityRecord, len(snap.Activity))
	for i := range snap.Activity {
		a := snap.Activity[i]
		e.activity[a.StaffID] = &a
	}
	e.activityMu.Unlock()

	e.logger.WithFields(logrus.Fields{
		"patterns": len(snap.Patterns),
		"requests": len(snap.Requests),
		"sessions": len(snap.Sessions),
		"staff":    len(snap.Activity),
	}).Info("Snapshot restored")

	return nil
}

// Snapshot assembles the full serializable state. Collections are copied
// under read locks, always in the same lock order; activity records are
// sorted by staff id for deterministic replay.
func (e *Engine) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		Version: models.SnapshotVersion,
		SavedAt: e.now(),
	}

	e.patternsMu.RLock()
	snap.Patterns = make([]models.KnowledgePattern, 0, len(e.patterns))
	for _, p := range e.patterns {
		snap.Patterns = append(snap.Patterns, clonePattern(p))
	}
	e.patternsMu.RUnlock()

	e.requestsMu.RLock()
	snap.Requests = make([]models.KnowledgeRequest, 0, len(e.requests))
	for _, r := range e.requests {
		snap.Requests = append(snap.Requests, cloneRequest(r))
	}
	e.requestsMu.RUnlock()

	e.sessionsMu.RLock()
	snap.Sessions = make([]models.CrossTrainingSession, 0, len(e.sessions))
	for _, s := range e.sessions {
		snap.Sessions = append(snap.Sessions, cloneSession(s))
	}
	e.sessionsMu.RUnlock()

	e.activityMu.RLock()
	snap.Activity = make([]models.ActivityRecord, 0, len(e.activity))
	for _, a := range e.activity {
		snap.Activity = append(snap.Activity, *a)
	}
	e.activityMu.RUnlock()

	sort.Slice(snap.Activity, func(i, j int) bool {
		return snap.Activity[i].StaffID < snap.Activity[j].StaffID
	})

	return snap
}

// persist writes the current state to the durable blob store. Failures are
// logged and swallowed: in-memory state is the source of truth for the
// process lifetime, persistence is best-effort durability.
func (e *Engine) persist(ctx context.Context) {
	snap := e.Snapshot()

	data, err := json.Marshal(snap)
	if err != nil {
		e.logger.WithError(err).Error("Failed to serialize snapshot")
		return
	}

	timeout := time.Duration(e.cfg.Snapshot.SaveTimeout) * time.Second
	saveCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := e.store.Save(saveCtx, data); err != nil {
		e.logger.WithError(err).WithField("bytes", len(data)).Warn("Snapshot save failed, in-memory state retained")
		return
	}

	e.logger.WithField("bytes", len(data)).Debug("Snapshot saved")
}

func clonePattern(p *models.KnowledgePattern) models.KnowledgePattern {
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	cp.AdoptedBy = append([]models.AdoptionRecord(nil), p.AdoptedBy...)
	cp.Content.ExecutionSteps = append([]string(nil), p.Content.ExecutionSteps...)
	cp.Content.Outcomes = append([]string(nil), p.Content.Outcomes...)
	cp.Content.LessonsLearned = append([]string(nil), p.Content.LessonsLearned...)
	return cp
}

func cloneRequest(r *models.KnowledgeRequest) models.KnowledgeRequest {
	cr := *r
	cr.Responses = append([]models.RequestResponse(nil), r.Responses...)
	return cr
}

func cloneSession(s *models.CrossTrainingSession) models.CrossTrainingSession {
	cs := *s
	cs.Participants = append([]models.SessionParticipant(nil), s.Participants...)
	cs.Outcomes = append([]string(nil), s.Outcomes...)
	cs.Learnings = append([]models.SessionLearning(nil), s.Learnings...)
	return cs
}
