package repository

import (
	"context"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
)

// MailRepository é a capacidade externa de envio de email.
type MailRepository interface {
	Send(ctx context.Context, msg entity.EmailMessage) error
}
