package models

// Core entities of the knowledge exchange

import (
	"fmt"
	"time"
)

// PatternCategory classifies knowledge patterns and help requests
type PatternCategory string

const (
	CategoryCommunication    PatternCategory = "communication"
	CategoryProblemSolving   PatternCategory = "problem_solving"
	CategoryCustomerHandling PatternCategory = "customer_handling"
	CategoryCompliance       PatternCategory = "compliance"
	CategorySales            PatternCategory = "sales"
	CategoryOperations       PatternCategory = "operations"
)

// Difficulty grades how hard a pattern is to apply
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Urgency grades how pressing a help request is
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// SessionStatus tracks a cross-training session's lifecycle
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionCancelled  SessionStatus = "cancelled"
)

// ParticipantRole distinguishes the session host from attendees
type ParticipantRole string

const (
	RoleHost        ParticipantRole = "host"
	RoleParticipant ParticipantRole = "participant"
)

// ActivityKind names the two ledger-relevant actions
type ActivityKind string

const (
	ActivityShared  ActivityKind = "shared"
	ActivityAdopted ActivityKind = "adopted"
)

var validCategories = map[PatternCategory]bool{
	CategoryCommunication:    true,
	CategoryProblemSolving:   true,
	CategoryCustomerHandling: true,
	CategoryCompliance:       true,
	CategorySales:            true,
	CategoryOperations:       true,
}

var validDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

var validUrgencies = map[Urgency]bool{
	UrgencyLow:      true,
	UrgencyMedium:   true,
	UrgencyHigh:     true,
	UrgencyCritical: true,
}

func (c PatternCategory) Valid() bool { return validCategories[c] }
func (d Difficulty) Valid() bool      { return validDifficulties[d] }
func (u Urgency) Valid() bool         { return validUrgencies[u] }

// PatternContent is the structured body of a pattern. The original stored
// this as loosely-typed text blocks; named fields keep the shape checked.
type PatternContent struct {
	TriggerCondition string   `json:"trigger_condition"`
	Approach         string   `json:"approach"`
	ExecutionSteps   []string `json:"execution_steps"`
	Outcomes         []string `json:"outcomes"`
	LessonsLearned   []string `json:"lessons_learned"`
}

// AdoptionRecord tracks one staff member's adoption of a pattern.
// SuccessRating stays 0 until the adopter rates the outcome.
type AdoptionRecord struct {
	StaffID       string    `json:"staff_id"`
	StaffName     string    `json:"staff_name"`
	AdoptedAt     time.Time `json:"adopted_at"`
	SuccessRating int       `json:"success_rating"`
}

// VoteTally holds helpful / not-helpful counters for a pattern
type VoteTally struct {
	Helpful    int `json:"helpful"`
	NotHelpful int `json:"not_helpful"`
}

// KnowledgePattern is a reusable solution shared by one contributor.
// SharedAt is set once at creation and never changes; the catalog is
// append-only.
type KnowledgePattern struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Category           PatternCategory  `json:"category"`
	OriginalStaffID    string           `json:"original_staff_id"`
	OriginalStaffName  string           `json:"original_staff_name"`
	OriginalDepartment string           `json:"original_department"`
	SuccessRate        float64          `json:"success_rate"`
	UsageCount         int              `json:"usage_count"`
	Difficulty         Difficulty       `json:"difficulty"`
	Tags               []string         `json:"tags"`
	Content            PatternContent   `json:"content"`
	AdoptedBy          []AdoptionRecord `json:"adopted_by"`
	Votes              VoteTally        `json:"votes"`
	SharedAt           time.Time        `json:"shared_at"`
}

// RequestResponse is one threaded answer on a help request.
// Helpfulness stays 0 until the requester rates it.
type RequestResponse struct {
	RespondingStaffID   string    `json:"responding_staff_id"`
	RespondingStaffName string    `json:"responding_staff_name"`
	Response            string    `json:"response"`
	ProvidedAt          time.Time `json:"provided_at"`
	Helpfulness         int       `json:"helpfulness"`
}

// KnowledgeRequest is an open call for help
type KnowledgeRequest struct {
	ID                  string            `json:"id"`
	RequestingStaffID   string            `json:"requesting_staff_id"`
	RequestingStaffName string            `json:"requesting_staff_name"`
	Category            PatternCategory   `json:"category"`
	SpecificTopic       string            `json:"specific_topic"`
	Context             string            `json:"context"`
	Urgency             Urgency           `json:"urgency"`
	RequestedAt         time.Time         `json:"requested_at"`
	Resolved            bool              `json:"resolved"`
	Responses           []RequestResponse `json:"responses"`
}

// SessionParticipant is one roster entry on a training session.
// One participant per session is expected to hold the host role.
type SessionParticipant struct {
	StaffID    string          `json:"staff_id"`
	StaffName  string          `json:"staff_name"`
	Department string          `json:"department"`
	Role       ParticipantRole `json:"role"`
}

// SessionLearning captures an insight recorded after a session, optionally
// linked back to the pattern it came from.
type SessionLearning struct {
	PatternID   string `json:"pattern_id,omitempty"`
	Description string `json:"description"`
	Contributor string `json:"contributor"`
}

// CrossTrainingSession is a scheduled collaborative training event
type CrossTrainingSession struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Topic           string               `json:"topic"`
	Category        PatternCategory      `json:"category"`
	ScheduledAt     time.Time            `json:"scheduled_at"`
	DurationMinutes int                  `json:"duration_minutes"`
	Status          SessionStatus        `json:"status"`
	Participants    []SessionParticipant `json:"participants"`
	Outcomes        []string             `json:"outcomes"`
	Learnings       []SessionLearning    `json:"learnings"`
}

// ActivityRecord is one staff member's contribution counters.
// LastShared is the zero time until the first share.
type ActivityRecord struct {
	StaffID         string    `json:"staff_id"`
	LastShared      time.Time `json:"last_shared"`
	PatternsShared  int       `json:"patterns_shared"`
	PatternsAdopted int       `json:"patterns_adopted"`
}

// PatternFilter narrows ListPatterns results; all set fields are ANDed,
// tags are an OR match against the pattern's tag set.
type PatternFilter struct {
	Category       PatternCategory
	StaffID        string
	MinSuccessRate *float64
	Tags           []string
}

// RequestFilter narrows ListRequests results; all set fields are ANDed.
type RequestFilter struct {
	RequestingStaffID string
	Category          PatternCategory
	Resolved          *bool
	Urgency           Urgency
}

// Model validation methods

func (p *KnowledgePattern) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("pattern title is required")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("invalid pattern category: %s", p.Category)
	}
	if !p.Difficulty.Valid() {
		return fmt.Errorf("invalid pattern difficulty: %s", p.Difficulty)
	}
	if p.OriginalStaffID == "" {
		return fmt.Errorf("original staff id is required")
	}
	if p.SuccessRate < 0 || p.SuccessRate > 100 {
		return fmt.Errorf("success rate must be between 0 and 100, got %.1f", p.SuccessRate)
	}
	if p.UsageCount < 0 {
		return fmt.Errorf("usage count cannot be negative")
	}
	return nil
}

func (r *KnowledgeRequest) Validate() error {
	if r.RequestingStaffID == "" {
		return fmt.Errorf("requesting staff id is required")
	}
	if r.SpecificTopic == "" {
		return fmt.Errorf("specific topic is required")
	}
	if !r.Category.Valid() {
		return fmt.Errorf("invalid request category: %s", r.Category)
	}
	if !r.Urgency.Valid() {
		return fmt.Errorf("invalid request urgency: %s", r.Urgency)
	}
	return nil
}

func (s *CrossTrainingSession) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("session title is required")
	}
	if !s.Category.Valid() {
		return fmt.Errorf("invalid session category: %s", s.Category)
	}
	if s.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduled time is required")
	}
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("session duration must be positive")
	}
	return nil
}
