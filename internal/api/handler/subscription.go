package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/signhey/signhey-server/internal/api/middleware"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/response"
	"github.com/signhey/signhey-server/internal/service"
)

type SubscriptionHandler struct {
	paymentService *service.PaymentService
}

func NewSubscriptionHandler(paymentService *service.PaymentService) *SubscriptionHandler {
	return &SubscriptionHandler{
		paymentService: paymentService,
	}
}

// CreateIntent opens a payment intent for a paid tier
// POST /api/v1/subscription/create-intent
func (h *SubscriptionHandler) CreateIntent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SubscriptionIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.paymentService.CreateSubscriptionIntent(c.Request.Context(), userID, req.Tier)
	if err != nil {
		response.ServerError(c, "failed to create payment intent")
		return
	}

	response.Success(c, resp)
}

// Confirm applies the tier change after payment settles
// POST /api/v1/subscription/confirm
func (h *SubscriptionHandler) Confirm(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.ConfirmSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.paymentService.ConfirmSubscription(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotSettled):
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrAccountNotFound):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "failed to confirm subscription")
		}
		return
	}

	response.Success(c, info)
}

// Downgrade drops the user to the free tier
// POST /api/v1/subscription/downgrade
func (h *SubscriptionHandler) Downgrade(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.paymentService.Downgrade(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "failed to downgrade subscription")
		}
		return
	}

	response.Success(c, info)
}
