package worker

import (
	"context"
	"fmt"
	"log"

	"github.com/signhey/signhey-server/internal/pkg/queue"
	"github.com/signhey/signhey-server/internal/repository"
)

// Sender delivers a signer link to a client mailbox.
type Sender interface {
	SendAgreementLink(to, clientName, title, link string) error
}

// Mailer drains the agreement queue and emails signer links.
type Mailer struct {
	sender        Sender
	agreementRepo *repository.AgreementRepository
}

func NewMailer(sender Sender, agreementRepo *repository.AgreementRepository) *Mailer {
	return &Mailer{
		sender:        sender,
		agreementRepo: agreementRepo,
	}
}

// Process delivers one queued agreement message.
func (m *Mailer) Process(ctx context.Context, msg *queue.AgreementMessage) error {
	// The agreement may have been deleted between enqueue and delivery.
	agreement, err := m.agreementRepo.GetByID(msg.AgreementID)
	if err != nil {
		log.Printf("Mailer: agreement %d no longer exists, dropping message", msg.AgreementID)
		return nil
	}

	if agreement.UserID != msg.UserID {
		log.Printf("Mailer: agreement %d owner mismatch, dropping message", msg.AgreementID)
		return nil
	}

	// SignerLink in the message is already absolute.
	if err := m.sender.SendAgreementLink(msg.ClientEmail, msg.ClientName, msg.Title, msg.SignerLink); err != nil {
		return fmt.Errorf("failed to send agreement %d to %s: %w", msg.AgreementID, msg.ClientEmail, err)
	}

	log.Printf("Mailer: agreement %d link sent to %s", msg.AgreementID, msg.ClientEmail)
	return nil
}
