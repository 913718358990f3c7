package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/signhey/signhey-server/internal/api/middleware"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/response"
	"github.com/signhey/signhey-server/internal/service"
)

type SignHandler struct {
	signService *service.SignService
}

func NewSignHandler(signService *service.SignService) *SignHandler {
	return &SignHandler{
		signService: signService,
	}
}

// Sign routes a signature request through the admission gate
// POST /api/v1/sign
func (h *SignHandler) Sign(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.signService.Sign(c.Request.Context(), userID, &req)
	if err != nil {
		if rejectGateError(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrDocumentNotFound), errors.Is(err, service.ErrSignerNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrDocumentPermission):
			response.PermissionError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	if resp.Simulated {
		response.SuccessWithMessage(c, "document signing simulated in PREVIEW mode", resp)
		return
	}
	response.SuccessWithMessage(c, "document signed in LIVE mode", resp)
}
