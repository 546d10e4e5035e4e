package exchange

import (
	"context"
	"fmt"
	"sort"

	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/pkg/utils"
	"github.com/sirupsen/logrus"
)

// SubmitRequest opens a new help request with an empty response thread
func (e *Engine) SubmitRequest(ctx context.Context, input models.SubmitRequestInput) (*models.KnowledgeRequest, error) {
	name, _ := e.resolver.ResolveStaff(input.RequestingStaffID)

	request := &models.KnowledgeRequest{
		ID:                  utils.GenerateEntityID("request"),
		RequestingStaffID:   input.RequestingStaffID,
		RequestingStaffName: name,
		Category:            input.Category,
		SpecificTopic:       input.SpecificTopic,
		Context:             input.Context,
		Urgency:             input.Urgency,
		RequestedAt:         e.now(),
		Resolved:            false,
		Responses:           []models.RequestResponse{},
	}

	if err := request.Validate(); err != nil {
		return nil, InvalidArgumentError{Reason: err.Error()}
	}

	e.requestsMu.Lock()
	e.requests = append(e.requests, request)
	e.requestIdx[request.ID] = request
	e.requestsMu.Unlock()

	e.logger.WithFields(logrus.Fields{
		"request_id": request.ID,
		"category":   request.Category,
		"urgency":    request.Urgency,
		"staff_id":   input.RequestingStaffID,
	}).Info("Help request submitted")

	e.persist(ctx)

	result := cloneRequest(request)
	return &result, nil
}

// Respond appends an unrated response to an open request. Responding does
// not by itself resolve the request.
func (e *Engine) Respond(ctx context.Context, requestID string, input models.RespondInput) error {
	if input.Response == "" {
		return invalidArgumentf("response text is required")
	}
	name, _ := e.resolver.ResolveStaff(input.RespondingStaffID)

	e.requestsMu.Lock()
	request, ok := e.requestIdx[requestID]
	if !ok {
		e.requestsMu.Unlock()
		return NotFoundError{Entity: "request", ID: requestID}
	}
	request.Responses = append(request.Responses, models.RequestResponse{
		RespondingStaffID:   input.RespondingStaffID,
		RespondingStaffName: name,
		Response:            input.Response,
		ProvidedAt:          e.now(),
	})
	e.requestsMu.Unlock()

	e.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"staff_id":   input.RespondingStaffID,
	}).Info("Response added to help request")

	e.persist(ctx)
	return nil
}

// RateResponse scores a response's helpfulness. A score at or above the
// configured threshold marks the request resolved; resolution is sticky
// and a later low score never reverts it.
func (e *Engine) RateResponse(ctx context.Context, requestID string, responseIndex, score int) error {
	if score < e.cfg.Knowledge.RatingMin || score > e.cfg.Knowledge.RatingMax {
		return invalidArgumentf("score %d outside bounds [%d, %d]",
			score, e.cfg.Knowledge.RatingMin, e.cfg.Knowledge.RatingMax)
	}

	e.requestsMu.Lock()
	request, ok := e.requestIdx[requestID]
	if !ok {
		e.requestsMu.Unlock()
		return NotFoundError{Entity: "request", ID: requestID}
	}
	if responseIndex < 0 || responseIndex >= len(request.Responses) {
		e.requestsMu.Unlock()
		return NotFoundError{Entity: "response", ID: fmt.Sprintf("%s[%d]", requestID, responseIndex)}
	}
	request.Responses[responseIndex].Helpfulness = score
	resolved := false
	if score >= e.cfg.Knowledge.ResolveThreshold && !request.Resolved {
		request.Resolved = true
		resolved = true
	}
	e.requestsMu.Unlock()

	entry := e.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"index":      responseIndex,
		"score":      score,
	})
	if resolved {
		entry.Info("Response rated, request auto-resolved")
	} else {
		entry.Info("Response rated")
	}

	e.persist(ctx)
	return nil
}

// ListRequests returns requests matching the filter, newest first
func (e *Engine) ListRequests(filter models.RequestFilter) []models.KnowledgeRequest {
	e.requestsMu.RLock()
	results := make([]models.KnowledgeRequest, 0, len(e.requests))
	for _, r := range e.requests {
		if matchesRequestFilter(r, filter) {
			results = append(results, cloneRequest(r))
		}
	}
	e.requestsMu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RequestedAt.After(results[j].RequestedAt)
	})

	return results
}

func matchesRequestFilter(r *models.KnowledgeRequest, filter models.RequestFilter) bool {
	if filter.RequestingStaffID != "" && r.RequestingStaffID != filter.RequestingStaffID {
		return false
	}
	if filter.Category != "" && r.Category != filter.Category {
		return false
	}
	if filter.Resolved != nil && r.Resolved != *filter.Resolved {
		return false
	}
	if filter.Urgency != "" && r.Urgency != filter.Urgency {
		return false
	}
	return true
}
