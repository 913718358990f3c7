package repository

import (
	"gorm.io/gorm"

	"github.com/signhey/signhey-server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepository) GetActiveByUser(userID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ? AND status = ?", userID, "active").
		Order("created_at DESC").First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CancelActive marks every active subscription row for the user cancelled.
func (r *SubscriptionRepository) CancelActive(userID int64) error {
	return r.db.Model(&model.Subscription{}).
		Where("user_id = ? AND status = ?", userID, "active").
		Update("status", "cancelled").Error
}
