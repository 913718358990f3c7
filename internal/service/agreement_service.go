package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/model"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/queue"
	"github.com/signhey/signhey-server/internal/repository"
)

var (
	ErrAgreementNotFound   = errors.New("agreement not found")
	ErrAgreementPermission = errors.New("no permission to access this agreement")
)

type AgreementService struct {
	agreementRepo *repository.AgreementRepository
	quotaService  *QuotaService
	mailQueue     *queue.Queue
	cfg           *config.Config
}

func NewAgreementService(
	agreementRepo *repository.AgreementRepository,
	quotaService *QuotaService,
	mailQueue *queue.Queue,
	cfg *config.Config,
) *AgreementService {
	return &AgreementService{
		agreementRepo: agreementRepo,
		quotaService:  quotaService,
		mailQueue:     mailQueue,
		cfg:           cfg,
	}
}

// List returns the user's agreements, newest first.
func (s *AgreementService) List(userID int64, page, pageSize int) (*dto.AgreementList, error) {
	agreements, total, err := s.agreementRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.AgreementListItem, 0, len(agreements))
	for _, a := range agreements {
		items = append(items, dto.NewAgreementListItem(a))
	}

	return &dto.AgreementList{Agreements: items, Total: total}, nil
}

// Get returns an owned agreement.
func (s *AgreementService) Get(userID, agreementID int64) (*model.Agreement, error) {
	return s.getOwned(userID, agreementID)
}

// Create makes a new agreement with its client-engagement signer link. A LIVE
// agreement passes the admission gate first and commits quota after the row
// exists.
func (s *AgreementService) Create(userID int64, req *dto.CreateAgreementRequest) (*model.Agreement, error) {
	mode := req.Mode
	if mode == "" {
		mode = model.ModePreview
	}

	if err := s.quotaService.Evaluate(userID, mode); err != nil {
		return nil, err
	}

	agreement := &model.Agreement{
		UserID:      userID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Title:       req.Title,
		Status:      model.AgreementStatusPending,
		Mode:        mode,
	}

	if err := s.agreementRepo.Create(agreement); err != nil {
		return nil, err
	}

	agreement.SignerLink = fmt.Sprintf("/client-engagement?agreementId=%d", agreement.ID)
	if err := s.agreementRepo.Update(agreement); err != nil {
		return nil, err
	}

	if mode == model.ModeLive {
		if err := s.quotaService.Commit(userID); err != nil {
			s.quotaService.ReportInconsistency(userID, actionCreateAgreement, err)
		}
	}

	return agreement, nil
}

// Update modifies an owned agreement's client fields and status.
func (s *AgreementService) Update(userID, agreementID int64, req *dto.UpdateAgreementRequest) (*model.Agreement, error) {
	agreement, err := s.getOwned(userID, agreementID)
	if err != nil {
		return nil, err
	}

	if req.ClientName != "" {
		agreement.ClientName = req.ClientName
	}
	if req.ClientEmail != "" {
		agreement.ClientEmail = req.ClientEmail
	}
	if req.Title != "" {
		agreement.Title = req.Title
	}
	if req.Status != "" {
		agreement.Status = req.Status
	}

	if err := s.agreementRepo.Update(agreement); err != nil {
		return nil, err
	}

	return agreement, nil
}

// Delete removes an owned agreement.
func (s *AgreementService) Delete(userID, agreementID int64) error {
	if _, err := s.getOwned(userID, agreementID); err != nil {
		return err
	}

	return s.agreementRepo.Delete(agreementID)
}

// Send queues the signer-link email for delivery by the mailer worker and
// marks the link sent. Sending a LIVE agreement consumes quota; the commit
// follows the enqueue so an undeliverable request is never charged.
func (s *AgreementService) Send(ctx context.Context, userID, agreementID int64) (*model.Agreement, error) {
	agreement, err := s.getOwned(userID, agreementID)
	if err != nil {
		return nil, err
	}

	if err := s.quotaService.Evaluate(userID, agreement.Mode); err != nil {
		return nil, err
	}

	signerLink := s.cfg.Email.BaseURL + agreement.SignerLink

	err = s.mailQueue.Push(ctx, &queue.AgreementMessage{
		AgreementID: agreement.ID,
		UserID:      userID,
		ClientName:  agreement.ClientName,
		ClientEmail: agreement.ClientEmail,
		Title:       agreement.Title,
		SignerLink:  signerLink,
	})
	if err != nil {
		return nil, err
	}

	if err := s.agreementRepo.MarkLinkSent(agreement.ID); err != nil {
		return nil, err
	}

	if agreement.Mode == model.ModeLive {
		if err := s.quotaService.Commit(userID); err != nil {
			s.quotaService.ReportInconsistency(userID, actionSendAgreement, err)
		}
	}

	return s.agreementRepo.GetByID(agreement.ID)
}

func (s *AgreementService) getOwned(userID, agreementID int64) (*model.Agreement, error) {
	agreement, err := s.agreementRepo.GetByID(agreementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgreementNotFound
		}
		return nil, err
	}

	if agreement.UserID != userID {
		return nil, ErrAgreementPermission
	}

	return agreement, nil
}
