package handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/api/middleware"
	"github.com/signhey/signhey-server/internal/pkg/response"
	"github.com/signhey/signhey-server/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
	cfg           *config.Config
}

func NewUploadHandler(uploadService *service.UploadService, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		cfg:           cfg,
	}
}

// Upload stores a document file, gated when mode is live
// POST /api/v1/upload
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.ParamError(c, "file is required")
		return
	}
	defer file.Close()

	if h.cfg.Upload.MaxSize > 0 && header.Size > h.cfg.Upload.MaxSize {
		response.ParamError(c, "file too large")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, allowedExt := range h.cfg.Upload.AllowedExtensions {
		if ext == allowedExt {
			allowed = true
			break
		}
	}
	if !allowed {
		response.ParamError(c, "unsupported file type")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c, "failed to read file")
		return
	}

	mode := c.PostForm("mode")

	resp, err := h.uploadService.Upload(userID, header.Filename, data, mode)
	if err != nil {
		if rejectGateError(c, err) {
			return
		}
		response.ServerError(c, "upload failed")
		return
	}

	response.Success(c, resp)
}
