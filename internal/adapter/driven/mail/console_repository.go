package mail

import (
	"context"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
	"github.com/diillson/cf-analytics-report/internal/domain/repository"
	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

// ConsoleRepositoryImpl imprime o email no console em vez de enviá-lo (send --dry-run).
type ConsoleRepositoryImpl struct {
	console types.ConsoleInterface
}

func NewConsoleRepository(console types.ConsoleInterface) repository.MailRepository {
	return &ConsoleRepositoryImpl{console: console}
}

func (r *ConsoleRepositoryImpl) Send(_ context.Context, msg entity.EmailMessage) error {
	if msg.To == "" {
		return errEmptyRecipient
	}

	r.console.LogInfo("Dry run: email not sent")
	r.console.Printf("From: %s\n", formatAddress(msg.FromName, msg.FromAddress))
	r.console.Printf("To: %s\n", msg.To)
	r.console.Printf("Subject: %s\n", msg.Subject)
	r.console.Println(msg.Body)
	return nil
}
