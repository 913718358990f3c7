package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/signhey/signhey-server/internal/model"
	"github.com/signhey/signhey-server/internal/testutil"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewUserRepository(db)

	user := &model.User{
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FullName:     "Alice",
		Tier:         model.TierFree,
	}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := repo.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	exists, err := repo.ExistsByEmail("alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail("bob@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_ConsumeLiveQuota(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewUserRepository(db)

	user := testutil.TestUser(t, db,
		testutil.WithTier(model.TierPro, 2))

	consumed, err := repo.ConsumeLiveQuota(user.ID)
	require.NoError(t, err)
	assert.True(t, consumed)

	consumed, err = repo.ConsumeLiveQuota(user.ID)
	require.NoError(t, err)
	assert.True(t, consumed)

	// At the cap the guarded update matches nothing.
	consumed, err = repo.ConsumeLiveQuota(user.ID)
	require.NoError(t, err)
	assert.False(t, consumed)

	updated, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.LiveUsed)
}

func TestUserRepository_ConsumeLiveQuota_FreeTier(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewUserRepository(db)

	// Free accounts never match, even with a nonzero quota column.
	user := testutil.TestUser(t, db, testutil.WithTier(model.TierFree, 10))

	consumed, err := repo.ConsumeLiveQuota(user.ID)
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestUserRepository_ConsumeLiveQuota_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewUserRepository(db)

	user := testutil.TestUser(t, db,
		testutil.WithTier(model.TierPro, 30),
		testutil.WithLiveUsed(20))

	const callers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	var errs []error

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumed, err := repo.ConsumeLiveQuota(user.ID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if consumed {
				succeeded++
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, errs)
	assert.Equal(t, 10, succeeded)

	updated, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, updated.LiveUsed)
}

func TestUserRepository_UpdateSubscription_DowngradeClearsUsage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewUserRepository(db)

	user := testutil.TestUser(t, db,
		testutil.WithTier(model.TierEnterprise, 100),
		testutil.WithLiveUsed(60))

	require.NoError(t, repo.UpdateSubscription(user.ID, model.TierFree, 0, nil, nil))

	updated, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TierFree, updated.Tier)
	assert.Equal(t, 0, updated.LiveQuota)
	assert.Equal(t, 0, updated.LiveUsed)
	assert.Nil(t, updated.StripeCustomerID)
	assert.Nil(t, updated.StripeSubscriptionID)
}

func TestUserRepository_UpdateSubscription_PaidToPaidKeepsUsage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewUserRepository(db)

	user := testutil.TestUser(t, db,
		testutil.WithTier(model.TierPro, 30),
		testutil.WithLiveUsed(7))

	customerID := "cus_000123"
	subscriptionID := "sub_000123"
	require.NoError(t, repo.UpdateSubscription(user.ID, model.TierEnterprise, 100, &customerID, &subscriptionID))

	updated, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TierEnterprise, updated.Tier)
	assert.Equal(t, 100, updated.LiveQuota)
	assert.Equal(t, 7, updated.LiveUsed)
	require.NotNil(t, updated.StripeCustomerID)
	assert.Equal(t, "cus_000123", *updated.StripeCustomerID)
}

func TestUserRepository_UpdateSubscription_MissingUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewUserRepository(db)

	err := repo.UpdateSubscription(99999, model.TierPro, 30, nil, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_ResetPaidLiveUsed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewUserRepository(db)

	pro := testutil.TestUser(t, db,
		testutil.WithTier(model.TierPro, 30),
		testutil.WithLiveUsed(30))
	free := testutil.TestUser(t, db, testutil.WithLiveUsed(2))

	require.NoError(t, repo.ResetPaidLiveUsed())

	updatedPro, err := repo.GetByID(pro.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updatedPro.LiveUsed)

	updatedFree, err := repo.GetByID(free.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updatedFree.LiveUsed)
}

func TestUserRepository_UpdateProfileAndPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewUserRepository(db)

	user := testutil.TestUser(t, db)

	require.NoError(t, repo.UpdateProfile(user.ID, "New Name"))
	require.NoError(t, repo.UpdatePassword(user.ID, "newhash"))

	updated, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "newhash", updated.PasswordHash)
}
