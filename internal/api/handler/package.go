package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/signhey/signhey-server/internal/api/middleware"
	"github.com/signhey/signhey-server/internal/pkg/response"
	"github.com/signhey/signhey-server/internal/service"
)

type PackageHandler struct {
	userService  *service.UserService
	quotaService *service.QuotaService
}

func NewPackageHandler(userService *service.UserService, quotaService *service.QuotaService) *PackageHandler {
	return &PackageHandler{
		userService:  userService,
		quotaService: quotaService,
	}
}

// Current returns the user's subscription package
// GET /api/v1/packages/current
func (h *PackageHandler) Current(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.userService.GetPackage(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, info)
}

// CheckQuota probes LIVE-mode eligibility without consuming anything
// GET /api/v1/packages/check-quota
func (h *PackageHandler) CheckQuota(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	status, err := h.quotaService.QuotaStatus(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, status)
}
