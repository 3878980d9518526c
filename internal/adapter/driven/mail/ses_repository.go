package mail

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/diillson/cf-analytics-report/internal/domain/entity"
	"github.com/diillson/cf-analytics-report/internal/domain/repository"
	"github.com/diillson/cf-analytics-report/internal/shared/types"
)

const charset = "UTF-8"

var errEmptyRecipient = errors.New("email recipient is empty")

// sesAPI is the subset of the SES v2 client used here.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESRepositoryImpl envia o relatório via AWS SES v2 (conteúdo simples, corpo texto).
type SESRepositoryImpl struct {
	client  sesAPI
	console types.ConsoleInterface
}

// NewSESRepository cria o sender SES. Com access/secret key usa credenciais estáticas,
// senão a cadeia padrão de credenciais da AWS.
func NewSESRepository(ctx context.Context, cfg types.SESConfig, console types.ConsoleInterface) (repository.MailRepository, error) {
	region := cfg.Region
	if region == "" {
		region = types.DefaultSESRegion
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AWS config for SES: %w", err)
	}

	return newSESRepositoryWithClient(sesv2.NewFromConfig(awsCfg), console), nil
}

func newSESRepositoryWithClient(client sesAPI, console types.ConsoleInterface) *SESRepositoryImpl {
	return &SESRepositoryImpl{client: client, console: console}
}

// Send entrega uma única mensagem. Uma tentativa, sem retry.
func (r *SESRepositoryImpl) Send(ctx context.Context, msg entity.EmailMessage) error {
	if msg.To == "" {
		return errEmptyRecipient
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(formatAddress(msg.FromName, msg.FromAddress)),
		Destination:      &sestypes.Destination{ToAddresses: []string{msg.To}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(msg.Body), Charset: aws.String(charset)},
				},
			},
		},
	}

	out, err := r.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("SES SendEmail to %s: %w", msg.To, err)
	}

	if r.console != nil {
		r.console.LogInfo("Email sent to %s (id: %s)", msg.To, aws.ToString(out.MessageId))
	}
	return nil
}

func formatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return (&netmail.Address{Name: name, Address: address}).String()
}
