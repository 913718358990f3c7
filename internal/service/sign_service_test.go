package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/signhey/signhey-server/config"
	"github.com/signhey/signhey-server/internal/model"
	"github.com/signhey/signhey-server/internal/model/dto"
	"github.com/signhey/signhey-server/internal/pkg/esign"
	"github.com/signhey/signhey-server/internal/repository"
	"github.com/signhey/signhey-server/internal/testutil"
)

func newSignService(db *gorm.DB, provider esign.Provider) *SignService {
	cfg := &config.Config{Tiers: config.DefaultTiers()}
	quotaService := NewQuotaService(repository.NewUserRepository(db), cfg)
	return NewSignService(repository.NewDocumentRepository(db), quotaService, provider, cfg)
}

func TestSignService_PreviewSimulates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	service := newSignService(db, esign.NewFake())

	user := testutil.TestUser(t, db)
	doc := testutil.TestDocument(t, db, user.ID)
	signer := testutil.TestSigner(t, db, doc.ID)

	resp, err := service.Sign(context.Background(), user.ID, &dto.SignRequest{
		DocumentID: doc.ID,
		SignerID:   signer.ID,
	})
	require.NoError(t, err)
	assert.True(t, resp.Simulated)
	assert.Empty(t, resp.Envelope)

	// The signer row is untouched and nothing was charged.
	updated, err := repository.NewDocumentRepository(db).GetSigner(signer.ID)
	require.NoError(t, err)
	assert.False(t, updated.Signed)
	assert.Equal(t, 0, liveUsedOf(t, db, user.ID))
}

func TestSignService_LiveSignsAndCharges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	service := newSignService(db, esign.NewFake())

	user := testutil.TestUser(t, db, testutil.WithTier(model.TierPro, 30))
	doc := testutil.TestDocument(t, db, user.ID, testutil.WithMode(model.ModeLive))
	signer := testutil.TestSigner(t, db, doc.ID)

	resp, err := service.Sign(context.Background(), user.ID, &dto.SignRequest{
		DocumentID: doc.ID,
		SignerID:   signer.ID,
		Mode:       model.ModeLive,
	})
	require.NoError(t, err)
	assert.False(t, resp.Simulated)
	assert.Equal(t, "env_test_000001", resp.Envelope)

	updated, err := repository.NewDocumentRepository(db).GetSigner(signer.ID)
	require.NoError(t, err)
	assert.True(t, updated.Signed)
	assert.Equal(t, 1, liveUsedOf(t, db, user.ID))
}

func TestSignService_LiveProviderFailureChargesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	fake := esign.NewFake()
	fake.FailSign = true
	service := newSignService(db, fake)

	user := testutil.TestUser(t, db, testutil.WithTier(model.TierPro, 30))
	doc := testutil.TestDocument(t, db, user.ID)
	signer := testutil.TestSigner(t, db, doc.ID)

	_, err := service.Sign(context.Background(), user.ID, &dto.SignRequest{
		DocumentID: doc.ID,
		SignerID:   signer.ID,
		Mode:       model.ModeLive,
	})
	require.Error(t, err)

	updated, err := repository.NewDocumentRepository(db).GetSigner(signer.ID)
	require.NoError(t, err)
	assert.False(t, updated.Signed)
	assert.Equal(t, 0, liveUsedOf(t, db, user.ID))
}

func TestSignService_LiveRejectedForFreeTier(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	service := newSignService(db, esign.NewFake())

	user := testutil.TestUser(t, db)
	doc := testutil.TestDocument(t, db, user.ID)
	signer := testutil.TestSigner(t, db, doc.ID)

	_, err := service.Sign(context.Background(), user.ID, &dto.SignRequest{
		DocumentID: doc.ID,
		SignerID:   signer.ID,
		Mode:       model.ModeLive,
	})
	assert.ErrorIs(t, err, ErrTierIneligible)
}

// drainingProvider empties the account's remaining quota while the envelope
// is out with the vendor, after gate admission but before the commit.
type drainingProvider struct {
	inner esign.Provider
	drain func()
}

func (p *drainingProvider) Sign(ctx context.Context, req *esign.SignRequest) (*esign.Result, error) {
	p.drain()
	return p.inner.Sign(ctx, req)
}

func TestSignService_CommitFailureAfterSignStillSucceeds(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db,
		testutil.WithTier(model.TierPro, 30),
		testutil.WithLiveUsed(29))
	doc := testutil.TestDocument(t, db, user.ID, testutil.WithMode(model.ModeLive))
	signer := testutil.TestSigner(t, db, doc.ID)

	provider := &drainingProvider{
		inner: esign.NewFake(),
		drain: func() {
			err := db.Model(&model.User{}).
				Where("id = ?", user.ID).
				Update("live_used", 30).Error
			require.NoError(t, err)
		},
	}
	service := newSignService(db, provider)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	resp, err := service.Sign(context.Background(), user.ID, &dto.SignRequest{
		DocumentID: doc.ID,
		SignerID:   signer.ID,
		Mode:       model.ModeLive,
	})

	// The signature went out, so the caller sees success even though the
	// commit lost the race; the gap is logged for reconciliation.
	require.NoError(t, err)
	assert.False(t, resp.Simulated)
	assert.NotEmpty(t, resp.Envelope)

	updated, err := repository.NewDocumentRepository(db).GetSigner(signer.ID)
	require.NoError(t, err)
	assert.True(t, updated.Signed)
	assert.Equal(t, 30, liveUsedOf(t, db, user.ID))

	assert.Contains(t, logs.String(), "LEDGER INCONSISTENCY")
	assert.Contains(t, logs.String(), fmt.Sprintf("account %d", user.ID))
}

func TestSignService_SignerMustBelongToDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	service := newSignService(db, esign.NewFake())

	user := testutil.TestUser(t, db)
	doc := testutil.TestDocument(t, db, user.ID)
	otherDoc := testutil.TestDocument(t, db, user.ID)
	straySigner := testutil.TestSigner(t, db, otherDoc.ID)

	_, err := service.Sign(context.Background(), user.ID, &dto.SignRequest{
		DocumentID: doc.ID,
		SignerID:   straySigner.ID,
	})
	assert.ErrorIs(t, err, ErrSignerNotFound)
}

func TestSignService_OwnershipCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	service := newSignService(db, esign.NewFake())

	owner := testutil.TestUser(t, db)
	intruder := testutil.TestUser(t, db)
	doc := testutil.TestDocument(t, db, owner.ID)
	signer := testutil.TestSigner(t, db, doc.ID)

	_, err := service.Sign(context.Background(), intruder.ID, &dto.SignRequest{
		DocumentID: doc.ID,
		SignerID:   signer.ID,
	})
	assert.ErrorIs(t, err, ErrDocumentPermission)
}
