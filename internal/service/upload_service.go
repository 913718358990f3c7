package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/model"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/storage"
)

// previewBaseURL marks preview upload URLs. The bytes behind them live only in
// the local scratch dir until the cleanup job expires them.
const previewBaseURL = "https://preview.storage.signhey.com"

type UploadService struct {
	store        storage.Store
	quotaService *QuotaService
	cfg          *config.Config
}

func NewUploadService(store storage.Store, quotaService *QuotaService, cfg *config.Config) *UploadService {
	return &UploadService{
		store:        store,
		quotaService: quotaService,
		cfg:          cfg,
	}
}

// Upload stores a document file. LIVE uploads go to the durable store and
// consume quota after the write succeeds; PREVIEW uploads never touch the
// store or the counters, they stage into the local scratch dir and return a
// deterministic preview URL.
func (s *UploadService) Upload(userID int64, filename string, data []byte, mode string) (*dto.UploadResponse, error) {
	mode = normalizeMode(mode)

	if err := s.quotaService.Evaluate(userID, mode); err != nil {
		return nil, err
	}

	name := sanitizeFilename(filename)

	if mode != model.ModeLive {
		if err := s.stagePreview(userID, name, data); err != nil {
			return nil, err
		}
		return &dto.UploadResponse{
			FileURL: fmt.Sprintf("%s/%d/%s", previewBaseURL, userID, name),
			Mode:    mode,
		}, nil
	}

	objectKey := fmt.Sprintf("documents/%d/%d/%s", userID, time.Now().UnixNano(), name)
	contentType := storage.ContentTypeFor(strings.ToLower(filepath.Ext(name)))

	fileURL, err := s.store.Put(objectKey, data, contentType)
	if err != nil {
		// Effect failed, nothing is charged.
		return nil, err
	}

	if err := s.quotaService.Commit(userID); err != nil {
		s.quotaService.ReportInconsistency(userID, actionUpload, err)
	}

	return &dto.UploadResponse{FileURL: fileURL, Mode: mode}, nil
}

// stagePreview writes the artifact under a per-user scratch dir. The cron
// cleanup removes dirs untouched for longer than the upload expiry.
func (s *UploadService) stagePreview(userID int64, name string, data []byte) error {
	if s.cfg.Upload.TempDir == "" {
		return nil
	}

	dir := filepath.Join(s.cfg.Upload.TempDir, fmt.Sprintf("%d", userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o600)
}

func normalizeMode(mode string) string {
	if mode == model.ModeLive {
		return model.ModeLive
	}
	return model.ModePreview
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	if name == "" || name == "." {
		name = fmt.Sprintf("document-%d", time.Now().Unix())
	}
	return strings.ReplaceAll(name, " ", "-")
}
