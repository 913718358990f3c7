package repository

import (
	"gorm.io/gorm"

	"github.com/signhey/signhey-server/internal/model"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *model.Document) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepository) GetByID(id int64) (*model.Document, error) {
	var doc model.Document
	err := r.db.Where("id = ?", id).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) ListByUser(userID int64, page, pageSize int, status string) ([]*model.Document, int64, error) {
	query := r.db.Model(&model.Document{}).Where("user_id = ?", userID)
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []*model.Document
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&docs).Error
	if err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

func (r *DocumentRepository) Update(doc *model.Document) error {
	return r.db.Save(doc).Error
}

// Delete removes the document and its signers together.
func (r *DocumentRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).Delete(&model.Signer{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Document{}).Error
	})
}

// Signer methods

func (r *DocumentRepository) GetSigners(documentID int64) ([]*model.Signer, error) {
	var signers []*model.Signer
	err := r.db.Where("document_id = ?", documentID).Order("id").Find(&signers).Error
	if err != nil {
		return nil, err
	}
	return signers, nil
}

func (r *DocumentRepository) GetSigner(id int64) (*model.Signer, error) {
	var signer model.Signer
	err := r.db.Where("id = ?", id).First(&signer).Error
	if err != nil {
		return nil, err
	}
	return &signer, nil
}

func (r *DocumentRepository) CreateSigner(signer *model.Signer) error {
	return r.db.Create(signer).Error
}

// ReplaceSigners swaps the document's signer set in one transaction.
func (r *DocumentRepository) ReplaceSigners(documentID int64, signers []*model.Signer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", documentID).Delete(&model.Signer{}).Error; err != nil {
			return err
		}
		for _, s := range signers {
			s.DocumentID = documentID
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DocumentRepository) MarkSignerSigned(id int64) error {
	return r.db.Model(&model.Signer{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"signed":    true,
			"signed_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}
