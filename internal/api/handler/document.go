package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/signhey/signhey-server/internal/api/middleware"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/response"
	"github.com/signhey/signhey-server/internal/service"
)

type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// List returns the user's documents
// GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, pageSize := pagination(c)
	status := c.Query("filter")

	list, err := h.documentService.List(userID, page, pageSize, status)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, list.Total, page, pageSize, list.Documents)
}

// Get returns one document with its signers
// GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.documentService.Get(userID, documentID)
	if err != nil {
		h.reject(c, err)
		return
	}

	response.Success(c, detail)
}

// Create makes a document, gated when mode is live
// POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.documentService.Create(userID, &req)
	if err != nil {
		if rejectGateError(c, err) {
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, detail)
}

// Update modifies a document, gated on a preview-to-live switch
// PUT /api/v1/documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	detail, err := h.documentService.Update(userID, documentID, &req)
	if err != nil {
		if rejectGateError(c, err) {
			return
		}
		h.reject(c, err)
		return
	}

	response.Success(c, detail)
}

// Delete removes a document and its signers
// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(userID, documentID); err != nil {
		h.reject(c, err)
		return
	}

	response.SuccessWithMessage(c, "document deleted", nil)
}

func (h *DocumentHandler) reject(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDocumentNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, service.ErrDocumentPermission):
		response.PermissionError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
