package service

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/model"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/repository"
)

var (
	ErrTierIneligible  = errors.New("free tier does not support LIVE mode")
	ErrQuotaExhausted  = errors.New("LIVE quota exceeded for this billing cycle")
	ErrAccountNotFound = errors.New("account not found")
)

// QuotaService is the single decision point for LIVE-mode admission. Every
// quota-consuming action runs Evaluate before its effect and Commit after the
// effect succeeded; PREVIEW requests never touch the counters.
type QuotaService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewQuotaService(userRepo *repository.UserRepository, cfg *config.Config) *QuotaService {
	return &QuotaService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// PlanFor looks up a tier in the catalog. Unknown tier names resolve to the
// free plan, so a bad tier string degrades to zero entitlement rather than
// erroring.
func (s *QuotaService) PlanFor(tier string) config.TierLevel {
	level, ok := s.cfg.Tiers.Levels[tier]
	if !ok {
		return s.cfg.Tiers.Levels[model.TierFree]
	}
	return level
}

// Remaining reports how many LIVE actions the account has left this cycle.
// Free accounts always have zero regardless of their counters.
func (s *QuotaService) Remaining(user *model.User) int {
	if user.Tier == model.TierFree {
		return 0
	}
	remaining := user.LiveQuota - user.LiveUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CanUseLive answers "may this account run a LIVE action right now".
func (s *QuotaService) CanUseLive(user *model.User) bool {
	return user.Tier != model.TierFree && s.Remaining(user) > 0
}

// Evaluate admits or rejects an action for the given mode. A nil return means
// allowed. PREVIEW is always allowed and reads no state.
func (s *QuotaService) Evaluate(accountID int64, mode string) error {
	if mode != model.ModeLive {
		return nil
	}

	user, err := s.userRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if user.Tier == model.TierFree {
		return ErrTierIneligible
	}
	if s.Remaining(user) == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// Commit charges one LIVE consumption. The increment is a conditional update
// at the storage layer (live_used < live_quota), so concurrent commits for
// the same account can never push the counter past the cap. Callers invoke
// Commit only after the action's effect succeeded.
func (s *QuotaService) Commit(accountID int64) error {
	consumed, err := s.userRepo.ConsumeLiveQuota(accountID)
	if err != nil {
		return err
	}
	if consumed {
		return nil
	}

	// The guarded update matched no row; read back to say why.
	user, err := s.userRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if user.Tier == model.TierFree {
		return ErrTierIneligible
	}
	return ErrQuotaExhausted
}

// ReportInconsistency records a commit failure that happened after a LIVE
// effect already succeeded. The ledger is now under-counted; this is flagged
// for manual reconciliation while the user still sees the effect succeed.
// Retrying the commit here could double-charge, so we never do.
func (s *QuotaService) ReportInconsistency(accountID int64, action string, err error) {
	log.Printf("LEDGER INCONSISTENCY: action %q completed but quota commit failed for account %d: %v",
		action, accountID, err)
}

// ChangeTier applies a subscription change: tier and quota snapshot come from
// the catalog, live_used resets only on a downgrade to free. Applied as one
// statement so a concurrent Commit sees either the old or the new plan,
// never a mix.
func (s *QuotaService) ChangeTier(accountID int64, tier string, customerID, subscriptionID *string) (*model.User, error) {
	plan := s.PlanFor(tier)

	err := s.userRepo.UpdateSubscription(accountID, tier, plan.MonthlyLiveQuota, customerID, subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return s.userRepo.GetByID(accountID)
}

// QuotaStatus backs the check-quota endpoint.
func (s *QuotaService) QuotaStatus(accountID int64) (*dto.QuotaCheck, error) {
	user, err := s.userRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	return &dto.QuotaCheck{
		HasQuota:       s.CanUseLive(user),
		QuotaRemaining: s.Remaining(user),
	}, nil
}

// ResetAllQuotas starts a new billing cycle for paid accounts. Free accounts
// already sit at zero and stay there.
func (s *QuotaService) ResetAllQuotas() error {
	return s.userRepo.ResetPaidLiveUsed()
}
