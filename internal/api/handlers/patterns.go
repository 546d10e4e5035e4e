package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/crosstrain/exchange/internal/database"
	"github.com/crosstrain/exchange/internal/exchange"
	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/pkg/utils"
)

type PatternHandler struct {
	engine *exchange.Engine
	cache  *database.Cache
	logger *logrus.Logger
}

func NewPatternHandler(engine *exchange.Engine, cache *database.Cache, logger *logrus.Logger) *PatternHandler {
	return &PatternHandler{
		engine: engine,
		cache:  cache,
		logger: logger,
	}
}

// HandleShare publishes a new pattern
func (h *PatternHandler) HandleShare(c *gin.Context) {
	var req models.SharePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid share pattern request")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	pattern, err := h.engine.SharePattern(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, "Failed to share pattern", err)
		return
	}

	h.invalidateDerived(c)

	h.logger.WithFields(logrus.Fields{
		"pattern_id": pattern.ID,
		"staff_id":   pattern.OriginalStaffID,
		"category":   pattern.Category,
	}).Info("Pattern shared")

	utils.SuccessResponse(c, http.StatusCreated, "Pattern shared", pattern)
}

// HandleList returns patterns matching the query filters, sorted by usage
func (h *PatternHandler) HandleList(c *gin.Context) {
	filter := models.PatternFilter{
		Category: models.PatternCategory(c.Query("category")),
		StaffID:  c.Query("staff_id"),
	}

	if raw := c.Query("min_success_rate"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid min_success_rate", err)
			return
		}
		filter.MinSuccessRate = &rate
	}

	if raw := c.Query("tags"); raw != "" {
		filter.Tags = strings.Split(raw, ",")
	}

	patterns := h.engine.ListPatterns(filter)
	utils.SuccessResponse(c, http.StatusOK, "", patterns)
}

// HandleAdopt records a staff member adopting a pattern. Adopting twice is
// a no-op, so the endpoint is safe to retry.
func (h *PatternHandler) HandleAdopt(c *gin.Context) {
	patternID := c.Param("id")

	var req models.AdoptPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.engine.AdoptPattern(c.Request.Context(), patternID, req.StaffID); err != nil {
		respondEngineError(c, "Failed to adopt pattern", err)
		return
	}

	h.invalidateDerived(c)

	h.logger.WithFields(logrus.Fields{
		"pattern_id": patternID,
		"staff_id":   req.StaffID,
	}).Info("Pattern adopted")

	utils.SuccessResponse(c, http.StatusOK, "Pattern adopted", nil)
}

// HandleRateAdoption sets the adopter's success rating
func (h *PatternHandler) HandleRateAdoption(c *gin.Context) {
	patternID := c.Param("id")

	var req models.RateAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.engine.RateAdoption(c.Request.Context(), patternID, req.StaffID, req.Rating); err != nil {
		respondEngineError(c, "Failed to rate adoption", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Adoption rated", nil)
}

// HandleVote records a helpful / not-helpful vote
func (h *PatternHandler) HandleVote(c *gin.Context) {
	patternID := c.Param("id")

	var req models.VotePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.engine.VotePattern(c.Request.Context(), patternID, *req.Helpful); err != nil {
		respondEngineError(c, "Failed to record vote", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vote recorded", nil)
}

func (h *PatternHandler) invalidateDerived(c *gin.Context) {
	if err := h.cache.InvalidateDerived(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("Failed to invalidate derived caches")
	}
}
