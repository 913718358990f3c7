package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/model"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/repository"
)

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrDocumentPermission = errors.New("no permission to access this document")
)

// Action kinds recorded when a quota commit fails after the effect.
const (
	actionCreateDocument  = "create_document"
	actionUpdateMode      = "update_document_mode"
	actionSign            = "sign"
	actionUpload          = "upload"
	actionSendAgreement   = "send_agreement"
	actionCreateAgreement = "create_agreement"
)

type DocumentService struct {
	documentRepo *repository.DocumentRepository
	quotaService *QuotaService
	cfg          *config.Config
}

func NewDocumentService(
	documentRepo *repository.DocumentRepository,
	quotaService *QuotaService,
	cfg *config.Config,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		quotaService: quotaService,
		cfg:          cfg,
	}
}

// List returns the user's documents, newest first, optionally filtered by
// status.
func (s *DocumentService) List(userID int64, page, pageSize int, status string) (*dto.DocumentList, error) {
	docs, total, err := s.documentRepo.ListByUser(userID, page, pageSize, status)
	if err != nil {
		return nil, err
	}

	return &dto.DocumentList{Documents: docs, Total: total}, nil
}

// Get returns a document with its signers, owner-checked.
func (s *DocumentService) Get(userID, documentID int64) (*dto.DocumentDetail, error) {
	doc, err := s.getOwned(userID, documentID)
	if err != nil {
		return nil, err
	}

	signers, err := s.documentRepo.GetSigners(documentID)
	if err != nil {
		return nil, err
	}

	return &dto.DocumentDetail{Document: doc, Signers: signers}, nil
}

// Create makes a new document. A LIVE document passes the admission gate
// first; the quota commit happens only after the rows exist, so failed
// creates are never charged.
func (s *DocumentService) Create(userID int64, req *dto.CreateDocumentRequest) (*dto.DocumentDetail, error) {
	mode := req.Mode
	if mode == "" {
		mode = model.ModePreview
	}

	if err := s.quotaService.Evaluate(userID, mode); err != nil {
		return nil, err
	}

	doc := &model.Document{
		UserID:  userID,
		Title:   req.Title,
		FileURL: req.FileURL,
		Status:  model.DocumentStatusDraft,
		Mode:    mode,
	}

	if err := s.documentRepo.Create(doc); err != nil {
		return nil, err
	}

	signers := make([]*model.Signer, 0, len(req.Signers))
	for _, in := range req.Signers {
		signer := &model.Signer{
			DocumentID: doc.ID,
			Name:       in.Name,
			Email:      in.Email,
		}
		if err := s.documentRepo.CreateSigner(signer); err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}

	if mode == model.ModeLive {
		if err := s.quotaService.Commit(userID); err != nil {
			s.quotaService.ReportInconsistency(userID, actionCreateDocument, err)
		}
	}

	return &dto.DocumentDetail{Document: doc, Signers: signers}, nil
}

// Update modifies a document. Switching an existing document from preview to
// live is a quota-consuming action and goes through the gate like any other.
func (s *DocumentService) Update(userID, documentID int64, req *dto.UpdateDocumentRequest) (*dto.DocumentDetail, error) {
	doc, err := s.getOwned(userID, documentID)
	if err != nil {
		return nil, err
	}

	goingLive := doc.Mode == model.ModePreview && req.Mode == model.ModeLive
	if goingLive {
		if err := s.quotaService.Evaluate(userID, model.ModeLive); err != nil {
			return nil, err
		}
	}

	if req.Title != "" {
		doc.Title = req.Title
	}
	if req.FileURL != "" {
		doc.FileURL = req.FileURL
	}
	if req.Status != "" {
		doc.Status = req.Status
	}
	if req.Mode != "" {
		doc.Mode = req.Mode
	}

	if err := s.documentRepo.Update(doc); err != nil {
		return nil, err
	}

	if req.Signers != nil {
		signers := make([]*model.Signer, 0, len(req.Signers))
		for _, in := range req.Signers {
			signers = append(signers, &model.Signer{Name: in.Name, Email: in.Email})
		}
		if err := s.documentRepo.ReplaceSigners(documentID, signers); err != nil {
			return nil, err
		}
	}

	if goingLive {
		if err := s.quotaService.Commit(userID); err != nil {
			s.quotaService.ReportInconsistency(userID, actionUpdateMode, err)
		}
	}

	signers, err := s.documentRepo.GetSigners(documentID)
	if err != nil {
		return nil, err
	}

	return &dto.DocumentDetail{Document: doc, Signers: signers}, nil
}

// Delete removes an owned document and its signers.
func (s *DocumentService) Delete(userID, documentID int64) error {
	if _, err := s.getOwned(userID, documentID); err != nil {
		return err
	}

	return s.documentRepo.Delete(documentID)
}

func (s *DocumentService) getOwned(userID, documentID int64) (*model.Document, error) {
	doc, err := s.documentRepo.GetByID(documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	if doc.UserID != userID {
		return nil, ErrDocumentPermission
	}

	return doc, nil
}
