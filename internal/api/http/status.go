package http

import (
	"net/http"

	"github.com/GriffinCanCode/numcore/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// StatusFor maps a tool result to an HTTP status code.
func StatusFor(result *types.Result) int {
	if result == nil {
		return http.StatusInternalServerError
	}
	if result.Success {
		return http.StatusOK
	}

	switch result.Reason {
	case types.ReasonInvalidParams:
		return http.StatusBadRequest
	case types.ReasonUnknownTool:
		return http.StatusNotFound
	case types.ReasonLimitExceeded:
		return http.StatusRequestEntityTooLarge
	case types.ReasonUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}

func respond(c *gin.Context, result *types.Result) {
	c.JSON(StatusFor(result), result)
}

func fail(c *gin.Context, reason types.Reason, message string) {
	respond(c, &types.Result{Success: false, Error: &message, Reason: reason})
}
