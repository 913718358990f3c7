package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/signhey/signhey-server/internal/model"
)

var fixtureSeq int64

func nextSeq() int64 {
	return atomic.AddInt64(&fixtureSeq, 1)
}

// TestUser creates a user row. Defaults to a fresh free-tier account.
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	seq := nextSeq()
	user := &model.User{
		Email:        fmt.Sprintf("test_%d@example.com", seq),
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		FullName:     fmt.Sprintf("Test User %d", seq),
		Tier:         model.TierFree,
		LiveQuota:    0,
		LiveUsed:     0,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail sets the email address.
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithTier sets the tier and its quota snapshot.
func WithTier(tier string, quota int) func(*model.User) {
	return func(u *model.User) {
		u.Tier = tier
		u.LiveQuota = quota
	}
}

// WithLiveUsed sets the consumed portion of the quota.
func WithLiveUsed(used int) func(*model.User) {
	return func(u *model.User) {
		u.LiveUsed = used
	}
}

// TestDocument creates a document row owned by userID.
func TestDocument(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Document)) *model.Document {
	t.Helper()

	doc := &model.Document{
		UserID: userID,
		Title:  fmt.Sprintf("Test Document %d", nextSeq()),
		Status: model.DocumentStatusDraft,
		Mode:   model.ModePreview,
	}

	for _, opt := range opts {
		opt(doc)
	}

	if err := db.Create(doc).Error; err != nil {
		t.Fatalf("Failed to create test document: %v", err)
	}

	return doc
}

// WithMode sets the document mode.
func WithMode(mode string) func(*model.Document) {
	return func(d *model.Document) {
		d.Mode = mode
	}
}

// WithStatus sets the document status.
func WithStatus(status string) func(*model.Document) {
	return func(d *model.Document) {
		d.Status = status
	}
}

// TestSigner creates a signer row attached to documentID.
func TestSigner(t *testing.T, db *gorm.DB, documentID int64, opts ...func(*model.Signer)) *model.Signer {
	t.Helper()

	seq := nextSeq()
	signer := &model.Signer{
		DocumentID: documentID,
		Name:       fmt.Sprintf("Signer %d", seq),
		Email:      fmt.Sprintf("signer_%d@example.com", seq),
	}

	for _, opt := range opts {
		opt(signer)
	}

	if err := db.Create(signer).Error; err != nil {
		t.Fatalf("Failed to create test signer: %v", err)
	}

	return signer
}

// TestAgreement creates an agreement row owned by userID.
func TestAgreement(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Agreement)) *model.Agreement {
	t.Helper()

	seq := nextSeq()
	agreement := &model.Agreement{
		UserID:      userID,
		ClientName:  fmt.Sprintf("Client %d", seq),
		ClientEmail: fmt.Sprintf("client_%d@example.com", seq),
		Title:       fmt.Sprintf("Test Agreement %d", seq),
		Status:      model.AgreementStatusPending,
		Mode:        model.ModePreview,
	}

	for _, opt := range opts {
		opt(agreement)
	}

	if err := db.Create(agreement).Error; err != nil {
		t.Fatalf("Failed to create test agreement: %v", err)
	}

	return agreement
}

// WithAgreementMode sets the agreement mode.
func WithAgreementMode(mode string) func(*model.Agreement) {
	return func(a *model.Agreement) {
		a.Mode = mode
	}
}
