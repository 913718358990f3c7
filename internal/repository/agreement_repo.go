package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/signhey/signhey-server/internal/model"
)

type AgreementRepository struct {
	db *gorm.DB
}

func NewAgreementRepository(db *gorm.DB) *AgreementRepository {
	return &AgreementRepository{db: db}
}

func (r *AgreementRepository) Create(agreement *model.Agreement) error {
	return r.db.Create(agreement).Error
}

func (r *AgreementRepository) GetByID(id int64) (*model.Agreement, error) {
	var agreement model.Agreement
	err := r.db.Where("id = ?", id).First(&agreement).Error
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

func (r *AgreementRepository) ListByUser(userID int64, page, pageSize int) ([]*model.Agreement, int64, error) {
	query := r.db.Model(&model.Agreement{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var agreements []*model.Agreement
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&agreements).Error
	if err != nil {
		return nil, 0, err
	}

	return agreements, total, nil
}

func (r *AgreementRepository) Update(agreement *model.Agreement) error {
	return r.db.Save(agreement).Error
}

func (r *AgreementRepository) MarkLinkSent(id int64) error {
	now := time.Now()
	return r.db.Model(&model.Agreement{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"link_sent":    true,
			"link_sent_at": &now,
		}).Error
}

func (r *AgreementRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&model.Agreement{}).Error
}
