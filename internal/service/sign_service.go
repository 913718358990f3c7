package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/model"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/esign"
	"github.com/signhey/signhey-server/internal/repository"
)

var ErrSignerNotFound = errors.New("signer not found")

type SignService struct {
	documentRepo *repository.DocumentRepository
	quotaService *QuotaService
	provider     esign.Provider
	cfg          *config.Config
}

func NewSignService(
	documentRepo *repository.DocumentRepository,
	quotaService *QuotaService,
	provider esign.Provider,
	cfg *config.Config,
) *SignService {
	return &SignService{
		documentRepo: documentRepo,
		quotaService: quotaService,
		provider:     provider,
		cfg:          cfg,
	}
}

// Sign routes a signature request. LIVE mode sends the document through the
// signing provider and marks the signer signed, then commits the quota.
// PREVIEW simulates the flow without touching the signer row or the counter.
func (s *SignService) Sign(ctx context.Context, userID int64, req *dto.SignRequest) (*dto.SignResponse, error) {
	mode := req.Mode
	if mode == "" {
		mode = model.ModePreview
	}

	doc, err := s.documentRepo.GetByID(req.DocumentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.UserID != userID {
		return nil, ErrDocumentPermission
	}

	signer, err := s.documentRepo.GetSigner(req.SignerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignerNotFound
		}
		return nil, err
	}
	if signer.DocumentID != doc.ID {
		return nil, ErrSignerNotFound
	}

	if err := s.quotaService.Evaluate(userID, mode); err != nil {
		return nil, err
	}

	if mode != model.ModeLive {
		return &dto.SignResponse{Mode: mode, Simulated: true}, nil
	}

	result, err := s.provider.Sign(ctx, &esign.SignRequest{
		DocumentID:  doc.ID,
		SignerID:    signer.ID,
		SignerName:  signer.Name,
		SignerEmail: signer.Email,
		FileURL:     doc.FileURL,
	})
	if err != nil {
		// Effect failed, nothing is charged.
		return nil, err
	}

	if err := s.documentRepo.MarkSignerSigned(signer.ID); err != nil {
		return nil, err
	}

	if err := s.quotaService.Commit(userID); err != nil {
		s.quotaService.ReportInconsistency(userID, actionSign, err)
	}

	return &dto.SignResponse{Mode: mode, Simulated: false, Envelope: result.EnvelopeID}, nil
}
