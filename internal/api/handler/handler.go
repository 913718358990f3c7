package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/signhey/signhey-server/internal/pkg/response"
	"github.com/signhey/signhey-server/internal/service"
)

// pagination reads page/limit query params with the usual defaults.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.ParamError(c, "invalid id")
		return 0, false
	}
	return id, true
}

// rejectGateError maps admission gate errors onto the response envelope.
// Gate rejections are terminal client errors, never retried.
func rejectGateError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrTierIneligible):
		response.TierError(c, err.Error())
	case errors.Is(err, service.ErrQuotaExhausted):
		response.QuotaError(c, err.Error())
	case errors.Is(err, service.ErrAccountNotFound):
		response.AuthError(c, err.Error())
	default:
		return false
	}
	return true
}
