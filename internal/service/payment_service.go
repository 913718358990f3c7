package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/model"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/payment"
	"github.com/signhey/signhey-server/internal/repository"
)

var ErrPaymentNotSettled = errors.New("payment has not succeeded")

type PaymentService struct {
	provider         payment.Provider
	previewProvider  payment.Provider
	subscriptionRepo *repository.SubscriptionRepository
	quotaService     *QuotaService
	cfg              *config.Config
}

// NewPaymentService takes the live provider and a deterministic preview
// provider: PREVIEW payment flows exercise the full code path against the
// fake so nothing is ever charged.
func NewPaymentService(
	provider payment.Provider,
	previewProvider payment.Provider,
	subscriptionRepo *repository.SubscriptionRepository,
	quotaService *QuotaService,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		provider:         provider,
		previewProvider:  previewProvider,
		subscriptionRepo: subscriptionRepo,
		quotaService:     quotaService,
		cfg:              cfg,
	}
}

// CreateIntent opens a payment intent with the provider for the given mode.
func (s *PaymentService) CreateIntent(ctx context.Context, userID int64, req *dto.CreateIntentRequest) (*dto.CreateIntentResponse, error) {
	mode := normalizeMode(req.Mode)

	intent, err := s.providerFor(mode).CreateIntent(ctx, int64(req.Amount), s.currency(), map[string]string{
		"user_id": fmt.Sprintf("%d", userID),
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateIntentResponse{ClientSecret: intent.ClientSecret, Mode: mode}, nil
}

// ConfirmPayment checks the intent settled. PREVIEW confirms against the
// fake provider.
func (s *PaymentService) ConfirmPayment(ctx context.Context, userID int64, req *dto.ConfirmPaymentRequest) error {
	mode := normalizeMode(req.Mode)

	intent, err := s.providerFor(mode).GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return err
	}
	if intent.Status != payment.IntentStatusSucceeded {
		return ErrPaymentNotSettled
	}
	return nil
}

// CreateSubscriptionIntent opens a LIVE payment intent for a paid tier, with
// the amount taken from the plan catalog.
func (s *PaymentService) CreateSubscriptionIntent(ctx context.Context, userID int64, tier string) (*dto.CreateIntentResponse, error) {
	plan := s.quotaService.PlanFor(tier)

	intent, err := s.provider.CreateIntent(ctx, int64(plan.MonthlyPrice), s.currency(), map[string]string{
		"user_id": fmt.Sprintf("%d", userID),
		"tier":    tier,
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateIntentResponse{ClientSecret: intent.ClientSecret, Mode: model.ModeLive}, nil
}

// ConfirmSubscription verifies the settled intent, applies the tier change
// through the quota service and records the subscription row. The tier change
// only happens after payment settles.
func (s *PaymentService) ConfirmSubscription(ctx context.Context, userID int64, req *dto.ConfirmSubscriptionRequest) (*dto.UserInfo, error) {
	transactionID := req.PaymentIntentID
	if transactionID == "" {
		return nil, ErrPaymentNotSettled
	}
	intent, err := s.provider.GetIntent(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if intent.Status != payment.IntentStatusSucceeded {
		return nil, ErrPaymentNotSettled
	}

	customerID := providerRef("cus", userID, transactionID)
	subscriptionID := providerRef("sub", userID, transactionID)

	user, err := s.quotaService.ChangeTier(userID, req.Tier, &customerID, &subscriptionID)
	if err != nil {
		return nil, err
	}

	plan := s.quotaService.PlanFor(req.Tier)
	if err := s.subscriptionRepo.CancelActive(userID); err != nil {
		return nil, err
	}
	sub := &model.Subscription{
		UserID:        userID,
		Tier:          req.Tier,
		Amount:        plan.MonthlyPrice,
		LiveQuota:     plan.MonthlyLiveQuota,
		StartedAt:     time.Now(),
		Status:        "active",
		TransactionID: transactionID,
	}
	if err := s.subscriptionRepo.Create(sub); err != nil {
		return nil, err
	}

	return buildUserInfo(user), nil
}

// Downgrade drops the user to the free tier, clearing usage and the stored
// provider references.
func (s *PaymentService) Downgrade(userID int64) (*dto.UserInfo, error) {
	user, err := s.quotaService.ChangeTier(userID, model.TierFree, nil, nil)
	if err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.CancelActive(userID); err != nil {
		return nil, err
	}

	return buildUserInfo(user), nil
}

func (s *PaymentService) providerFor(mode string) payment.Provider {
	if mode == model.ModeLive {
		return s.provider
	}
	return s.previewProvider
}

func (s *PaymentService) currency() string {
	if s.cfg.Payment.Currency != "" {
		return s.cfg.Payment.Currency
	}
	return "usd"
}

// providerRef derives stable customer/subscription references from the
// settled transaction rather than inventing random ones.
func providerRef(prefix string, userID int64, transactionID string) string {
	suffix := strings.TrimPrefix(transactionID, "pi_")
	if suffix == "" {
		suffix = fmt.Sprintf("u%d", userID)
	}
	return fmt.Sprintf("%s_%s", prefix, suffix)
}
