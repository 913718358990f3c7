package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signhey/signhey-server/internal/pkg/queue"
	"github.com/signhey/signhey-server/internal/repository"
	"github.com/signhey/signhey-server/internal/testutil"
)

type recordingSender struct {
	sent []sentMail
	fail bool
}

type sentMail struct {
	to, clientName, title, link string
}

func (r *recordingSender) SendAgreementLink(to, clientName, title, link string) error {
	if r.fail {
		return fmt.Errorf("smtp unavailable")
	}
	r.sent = append(r.sent, sentMail{to, clientName, title, link})
	return nil
}

func TestMailer_Process(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)
	agreement := testutil.TestAgreement(t, db, user.ID)

	sender := &recordingSender{}
	mailer := NewMailer(sender, repository.NewAgreementRepository(db))

	err := mailer.Process(context.Background(), &queue.AgreementMessage{
		AgreementID: agreement.ID,
		UserID:      user.ID,
		ClientName:  agreement.ClientName,
		ClientEmail: agreement.ClientEmail,
		Title:       agreement.Title,
		SignerLink:  "https://app.signhey.com/client-engagement?agreementId=1",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, agreement.ClientEmail, sender.sent[0].to)
	assert.Equal(t, "https://app.signhey.com/client-engagement?agreementId=1", sender.sent[0].link)
}

func TestMailer_Process_DeletedAgreementDropped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)

	sender := &recordingSender{}
	mailer := NewMailer(sender, repository.NewAgreementRepository(db))

	err := mailer.Process(context.Background(), &queue.AgreementMessage{
		AgreementID: 99999,
		UserID:      user.ID,
		ClientEmail: "legal@acme.example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestMailer_Process_SendFailureReturnsError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)
	agreement := testutil.TestAgreement(t, db, user.ID)

	sender := &recordingSender{fail: true}
	mailer := NewMailer(sender, repository.NewAgreementRepository(db))

	err := mailer.Process(context.Background(), &queue.AgreementMessage{
		AgreementID: agreement.ID,
		UserID:      user.ID,
		ClientEmail: agreement.ClientEmail,
	})
	assert.Error(t, err)
}
