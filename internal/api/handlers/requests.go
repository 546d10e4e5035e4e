package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/crosstrain/exchange/internal/database"
	"github.com/crosstrain/exchange/internal/exchange"
	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/pkg/utils"
)

type RequestHandler struct {
	engine *exchange.Engine
	cache  *database.Cache
	logger *logrus.Logger
}

func NewRequestHandler(engine *exchange.Engine, cache *database.Cache, logger *logrus.Logger) *RequestHandler {
	return &RequestHandler{
		engine: engine,
		cache:  cache,
		logger: logger,
	}
}

// HandleSubmit opens a new help request
func (h *RequestHandler) HandleSubmit(c *gin.Context) {
	var req models.SubmitRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid help request payload")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	request, err := h.engine.SubmitRequest(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, "Failed to submit request", err)
		return
	}

	h.invalidateDerived(c)

	h.logger.WithFields(logrus.Fields{
		"request_id": request.ID,
		"staff_id":   request.RequestingStaffID,
		"urgency":    request.Urgency,
	}).Info("Help request submitted")

	utils.SuccessResponse(c, http.StatusCreated, "Request submitted", request)
}

// HandleList returns help requests, newest first
func (h *RequestHandler) HandleList(c *gin.Context) {
	filter := models.RequestFilter{
		RequestingStaffID: c.Query("requesting_staff_id"),
		Category:          models.PatternCategory(c.Query("category")),
		Urgency:           models.Urgency(c.Query("urgency")),
	}

	if raw := c.Query("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resolved flag", err)
			return
		}
		filter.Resolved = &resolved
	}

	requests := h.engine.ListRequests(filter)
	utils.SuccessResponse(c, http.StatusOK, "", requests)
}

// HandleRespond appends a response to an open request
func (h *RequestHandler) HandleRespond(c *gin.Context) {
	requestID := c.Param("id")

	var req models.RespondInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.engine.Respond(c.Request.Context(), requestID, req); err != nil {
		respondEngineError(c, "Failed to add response", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Response added", nil)
}

// HandleRateResponse scores a response. A score at or above the resolution
// threshold resolves the request.
func (h *RequestHandler) HandleRateResponse(c *gin.Context) {
	requestID := c.Param("id")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid response index", err)
		return
	}

	var req models.RateResponseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.engine.RateResponse(c.Request.Context(), requestID, index, req.Score); err != nil {
		respondEngineError(c, "Failed to rate response", err)
		return
	}

	h.invalidateDerived(c)

	utils.SuccessResponse(c, http.StatusOK, "Response rated", nil)
}

func (h *RequestHandler) invalidateDerived(c *gin.Context) {
	if err := h.cache.InvalidateDerived(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("Failed to invalidate derived caches")
	}
}
