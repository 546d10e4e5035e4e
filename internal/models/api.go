package models

// SharePatternRequest is the payload for publishing a new pattern
type SharePatternRequest struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	Category        PatternCategory `json:"category" binding:"required"`
	OriginalStaffID string          `json:"original_staff_id" binding:"required"`
	SuccessRate     float64         `json:"success_rate"`
	UsageCount      int             `json:"usage_count"`
	Difficulty      Difficulty      `json:"difficulty" binding:"required"`
	Tags            []string        `json:"tags"`
	Content         PatternContent  `json:"content"`
}

// AdoptPatternRequest identifies the adopting staff member
type AdoptPatternRequest struct {
	StaffID string `json:"staff_id" binding:"required"`
}

// RateAdoptionRequest sets the adopter's success rating for a pattern
type RateAdoptionRequest struct {
	StaffID string `json:"staff_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
}

// VotePatternRequest records a helpful / not-helpful vote
type VotePatternRequest struct {
	Helpful *bool `json:"helpful" binding:"required"`
}

// SubmitRequestInput is the payload for opening a help request
type SubmitRequestInput struct {
	RequestingStaffID string          `json:"requesting_staff_id" binding:"required"`
	Category          PatternCategory `json:"category" binding:"required"`
	SpecificTopic     string          `json:"specific_topic" binding:"required"`
	Context           string          `json:"context"`
	Urgency           Urgency         `json:"urgency" binding:"required"`
}

// RespondInput appends a response to an open help request
type RespondInput struct {
	RespondingStaffID string `json:"responding_staff_id" binding:"required"`
	Response          string `json:"response" binding:"required"`
}

// RateResponseInput scores a response's helpfulness
type RateResponseInput struct {
	Score int `json:"score" binding:"required"`
}

// ScheduleSessionInput is the payload for scheduling a training session
type ScheduleSessionInput struct {
	Title           string               `json:"title" binding:"required"`
	Description     string               `json:"description"`
	Topic           string               `json:"topic"`
	Category        PatternCategory      `json:"category" binding:"required"`
	ScheduledAt     string               `json:"scheduled_at" binding:"required"`
	DurationMinutes int                  `json:"duration_minutes" binding:"required"`
	Participants    []SessionParticipant `json:"participants"`
}

// ActivitySummary joins a ledger record with resolved identity and the
// computed knowledge score
type ActivitySummary struct {
	StaffID         string  `json:"staff_id"`
	StaffName       string  `json:"staff_name"`
	Department      string  `json:"department"`
	PatternsShared  int     `json:"patterns_shared"`
	PatternsAdopted int     `json:"patterns_adopted"`
	KnowledgeScore  float64 `json:"knowledge_score"`
}

// CategoryCount is one leaderboard row in the analytics view
type CategoryCount struct {
	Category PatternCategory `json:"category"`
	Count    int             `json:"count"`
}

// StaffActivityCount ranks staff by raw contribution volume
type StaffActivityCount struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Activity  int    `json:"activity"`
}

// Analytics is the read-only composite consumed by the dashboard
type Analytics struct {
	TotalPatterns       int                  `json:"total_patterns"`
	TotalAdoptions      int                  `json:"total_adoptions"`
	TotalRequests       int                  `json:"total_requests"`
	ResolvedRequests    int                  `json:"resolved_requests"`
	UpcomingSessions    int                  `json:"upcoming_sessions"`
	TopCategories       []CategoryCount      `json:"top_categories"`
	MostActiveStaff     []StaffActivityCount `json:"most_active_staff"`
	ResolutionRate      int                  `json:"resolution_rate_pct"`
	AdoptionRate        int                  `json:"adoption_rate_pct"`
	CommunityEngagement int                  `json:"community_engagement_pct"`
}

// HealthResponse reports dependency status for the health endpoint
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
