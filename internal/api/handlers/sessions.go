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

type SessionHandler struct {
	engine *exchange.Engine
	cache  *database.Cache
	logger *logrus.Logger
}

func NewSessionHandler(engine *exchange.Engine, cache *database.Cache, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		engine: engine,
		cache:  cache,
		logger: logger,
	}
}

// HandleSchedule books a cross-training session
func (h *SessionHandler) HandleSchedule(c *gin.Context) {
	var req models.ScheduleSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid schedule session payload")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	session, err := h.engine.ScheduleSession(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, "Failed to schedule session", err)
		return
	}

	if err := h.cache.InvalidateDerived(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("Failed to invalidate derived caches")
	}

	h.logger.WithFields(logrus.Fields{
		"session_id":   session.ID,
		"scheduled_at": session.ScheduledAt,
		"participants": len(session.Participants),
	}).Info("Session scheduled")

	utils.SuccessResponse(c, http.StatusCreated, "Session scheduled", session)
}

// HandleUpcoming lists scheduled sessions inside the lookahead window
func (h *SessionHandler) HandleUpcoming(c *gin.Context) {
	windowHours := 0
	if raw := c.Query("window_hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid window_hours", err)
			return
		}
		windowHours = parsed
	}

	sessions := h.engine.ListUpcoming(windowHours)
	utils.SuccessResponse(c, http.StatusOK, "", sessions)
}
