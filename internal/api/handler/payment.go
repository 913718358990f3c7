package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/signhey/signhey-server/internal/api/middleware"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/response"
	"github.com/signhey/signhey-server/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreateIntent opens a payment intent; preview mode uses the fake provider
// POST /api/v1/payment/create-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.paymentService.CreateIntent(c.Request.Context(), userID, &req)
	if err != nil {
		response.ServerError(c, "failed to create payment intent")
		return
	}

	response.Success(c, resp)
}

// Confirm verifies a payment settled
// POST /api/v1/payment/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.paymentService.ConfirmPayment(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotSettled):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "failed to confirm payment")
		}
		return
	}

	response.SuccessWithMessage(c, "payment confirmed", nil)
}
