package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/signhey/signhey-server/internal/api/middleware"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/response"
	"github.com/signhey/signhey-server/internal/service"
)

type AgreementHandler struct {
	agreementService *service.AgreementService
}

func NewAgreementHandler(agreementService *service.AgreementService) *AgreementHandler {
	return &AgreementHandler{
		agreementService: agreementService,
	}
}

// List returns the user's agreements
// GET /api/v1/agreements
func (h *AgreementHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, pageSize := pagination(c)

	list, err := h.agreementService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, list.Total, page, pageSize, list.Agreements)
}

// Get returns one agreement
// GET /api/v1/agreements/:id
func (h *AgreementHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	agreementID, ok := idParam(c, "id")
	if !ok {
		return
	}

	agreement, err := h.agreementService.Get(userID, agreementID)
	if err != nil {
		h.reject(c, err)
		return
	}

	response.Success(c, agreement)
}

// Create makes an agreement, gated when mode is live
// POST /api/v1/agreements
func (h *AgreementHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	agreement, err := h.agreementService.Create(userID, &req)
	if err != nil {
		if rejectGateError(c, err) {
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, agreement)
}

// Update modifies an agreement
// PUT /api/v1/agreements/:id
func (h *AgreementHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	agreementID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	agreement, err := h.agreementService.Update(userID, agreementID, &req)
	if err != nil {
		h.reject(c, err)
		return
	}

	response.Success(c, agreement)
}

// Delete removes an agreement
// DELETE /api/v1/agreements/:id
func (h *AgreementHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	agreementID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.agreementService.Delete(userID, agreementID); err != nil {
		h.reject(c, err)
		return
	}

	response.SuccessWithMessage(c, "agreement deleted", nil)
}

// Send queues the signer-link email, gated for live agreements
// POST /api/v1/agreements/:id/send
func (h *AgreementHandler) Send(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	agreementID, ok := idParam(c, "id")
	if !ok {
		return
	}

	agreement, err := h.agreementService.Send(c.Request.Context(), userID, agreementID)
	if err != nil {
		if rejectGateError(c, err) {
			return
		}
		h.reject(c, err)
		return
	}

	response.SuccessWithMessage(c, "signer link queued for delivery", agreement)
}

func (h *AgreementHandler) reject(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAgreementNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrAgreementPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
