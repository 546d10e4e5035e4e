package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crosstrain/exchange/internal/exchange"
	"github.com/crosstrain/exchange/pkg/utils"
)

// respondEngineError maps engine errors onto HTTP statuses
func respondEngineError(c *gin.Context, message string, err error) {
	switch {
	case exchange.IsNotFound(err):
		utils.ErrorResponse(c, http.StatusNotFound, message, err)
	case exchange.IsInvalidArgument(err):
		utils.ErrorResponse(c, http.StatusBadRequest, message, err)
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}
