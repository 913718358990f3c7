package repository

import (
	"gorm.io/gorm"

	"github.com/signhey/signhey-server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdateProfile(id int64, fullName string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("full_name", fullName).Error
}

func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// ConsumeLiveQuota increments live_used by one, guarded by the quota cap in
// the same statement. Concurrent callers serialize on the row, so a user at
// live_used == live_quota-1 can only be charged once. Returns false when no
// row matched: account missing, free tier, or quota exhausted.
func (r *UserRepository) ConsumeLiveQuota(id int64) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND tier <> ? AND live_used < live_quota", id, model.TierFree).
		Update("live_used", gorm.Expr("live_used + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateSubscription applies a tier change as a single statement so a
// concurrent quota consume can never observe a half-applied change. Only a
// downgrade to free clears live_used; paid-to-paid changes keep the current
// cycle's usage against the new cap.
func (r *UserRepository) UpdateSubscription(id int64, tier string, liveQuota int, customerID, subscriptionID *string) error {
	fields := map[string]interface{}{
		"tier":                   tier,
		"live_quota":             liveQuota,
		"stripe_customer_id":     customerID,
		"stripe_subscription_id": subscriptionID,
	}
	if tier == model.TierFree {
		fields["live_used"] = 0
	}

	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResetPaidLiveUsed starts a new billing cycle for every paid account.
func (r *UserRepository) ResetPaidLiveUsed() error {
	return r.db.Model(&model.User{}).Where("tier <> ?", model.TierFree).
		Update("live_used", 0).Error
}
