package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/crosstrain/exchange/internal/database"
	"github.com/crosstrain/exchange/internal/exchange"
	"github.com/crosstrain/exchange/internal/health"
	"github.com/crosstrain/exchange/internal/models"
	"github.com/crosstrain/exchange/pkg/utils"
)

const analyticsCacheTTL = 30 * time.Second

type AnalyticsHandler struct {
	engine  *exchange.Engine
	cache   *database.Cache
	checker *health.Checker
	logger  *logrus.Logger
}

func NewAnalyticsHandler(engine *exchange.Engine, cache *database.Cache, checker *health.Checker, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		engine:  engine,
		cache:   cache,
		checker: checker,
		logger:  logger,
	}
}

// HandleAnalytics serves the dashboard composite, cached briefly since it
// walks every store
func (h *AnalyticsHandler) HandleAnalytics(c *gin.Context) {
	ctx := c.Request.Context()

	var cached models.Analytics
	if err := h.cache.GetCachedAnalytics(ctx, &cached); err == nil {
		h.logger.Debug("Analytics served from cache")
		utils.SuccessResponse(c, http.StatusOK, "", cached)
		return
	} else if !database.IsCacheMiss(err) {
		h.logger.WithError(err).Warn("Analytics cache read failed")
	}

	analytics := h.engine.Analytics()

	if err := h.cache.CacheAnalytics(ctx, analytics, analyticsCacheTTL); err != nil {
		h.logger.WithError(err).Warn("Failed to cache analytics")
	}

	utils.SuccessResponse(c, http.StatusOK, "", analytics)
}

// HandleStaffActivity ranks staff by knowledge score
func (h *AnalyticsHandler) HandleStaffActivity(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", h.engine.ListStaffActivity())
}

// HandleHealth reports dependency status
func (h *AnalyticsHandler) HandleHealth(c *gin.Context) {
	overall := h.checker.CheckAll()

	services := make(map[string]string, len(overall.Services))
	for _, service := range overall.Services {
		services[service.Name] = service.Status
	}

	response := models.HealthResponse{
		Status:    overall.Status,
		Service:   "knowledge-exchange",
		Timestamp: time.Now().Format(time.RFC3339),
		Services:  services,
	}

	code := http.StatusOK
	if overall.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, response)
}
