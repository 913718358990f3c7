package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/signhey/signhey-server/internal/model"
	"github.com/signhey/signhey-server/internal/testutil"
)

func TestDocumentRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewDocumentRepository(db)

	user := testutil.TestUser(t, db)
	doc := &model.Document{
		UserID: user.ID,
		Title:  "NDA",
		Status: model.DocumentStatusDraft,
		Mode:   model.ModePreview,
	}
	require.NoError(t, repo.Create(doc))
	require.NotZero(t, doc.ID)

	got, err := repo.GetByID(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "NDA", got.Title)
	assert.Equal(t, model.ModePreview, got.Mode)
}

func TestDocumentRepository_ListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewDocumentRepository(db)

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	for i := 0; i < 3; i++ {
		testutil.TestDocument(t, db, user.ID)
	}
	testutil.TestDocument(t, db, user.ID, testutil.WithStatus(model.DocumentStatusCompleted))
	testutil.TestDocument(t, db, other.ID)

	docs, total, err := repo.ListByUser(user.ID, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, docs, 4)

	docs, total, err = repo.ListByUser(user.ID, 1, 10, model.DocumentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, docs, 1)

	// Pagination
	docs, total, err = repo.ListByUser(user.ID, 2, 3, "all")
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, docs, 1)
}

func TestDocumentRepository_Delete_RemovesSigners(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewDocumentRepository(db)

	user := testutil.TestUser(t, db)
	doc := testutil.TestDocument(t, db, user.ID)
	testutil.TestSigner(t, db, doc.ID)
	testutil.TestSigner(t, db, doc.ID)

	require.NoError(t, repo.Delete(doc.ID))

	_, err := repo.GetByID(doc.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	signers, err := repo.GetSigners(doc.ID)
	require.NoError(t, err)
	assert.Empty(t, signers)
}

func TestDocumentRepository_ReplaceSigners(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewDocumentRepository(db)

	user := testutil.TestUser(t, db)
	doc := testutil.TestDocument(t, db, user.ID)
	testutil.TestSigner(t, db, doc.ID)
	testutil.TestSigner(t, db, doc.ID)

	replacement := []*model.Signer{
		{Name: "Carol", Email: "carol@example.com"},
	}
	require.NoError(t, repo.ReplaceSigners(doc.ID, replacement))

	signers, err := repo.GetSigners(doc.ID)
	require.NoError(t, err)
	require.Len(t, signers, 1)
	assert.Equal(t, "Carol", signers[0].Name)
	assert.Equal(t, doc.ID, signers[0].DocumentID)
}

func TestDocumentRepository_MarkSignerSigned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	repo := NewDocumentRepository(db)

	user := testutil.TestUser(t, db)
	doc := testutil.TestDocument(t, db, user.ID)
	signer := testutil.TestSigner(t, db, doc.ID)
	require.False(t, signer.Signed)

	require.NoError(t, repo.MarkSignerSigned(signer.ID))

	updated, err := repo.GetSigner(signer.ID)
	require.NoError(t, err)
	assert.True(t, updated.Signed)
	assert.NotNil(t, updated.SignedAt)
}
