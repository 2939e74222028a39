package email

import (
	"context"
	"log/slog"
	"net/mail"

	"coursemart/config"
	"coursemart/internal/domain/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/pkg/errors"
)

// sesAPI is the subset of the SES v2 client used here.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	client sesAPI
	from   string
	logger *slog.Logger
}

// NewSESSender loads the default AWS credential chain for cfg.AWSRegion.
func NewSESSender(ctx context.Context, cfg *config.EmailConfig, logger *slog.Logger) (service.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}

	logger.Info("Email service enabled", slog.String("from", cfg.FromAddress), slog.String("region", cfg.AWSRegion))

	return newSESSender(sesv2.NewFromConfig(awsCfg), cfg, logger), nil
}

func newSESSender(client sesAPI, cfg *config.EmailConfig, logger *slog.Logger) *sesSender {
	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = (&mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}).String()
	}

	return &sesSender{client: client, from: from, logger: logger}
}

// Send delivers msg through SES. Errors are returned as-is for the caller to map.
func (s *sesSender) Send(ctx context.Context, msg *service.EmailMessage) error {
	body := &types.Body{}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")}
	}
	if msg.TextBody != "" {
		body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")}
	}

	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	})
	if err != nil {
		return errors.Wrapf(err, "ses send to %s", msg.To)
	}

	s.logger.DebugContext(ctx, "Email sent", slog.String("to", msg.To), slog.String("message_id", aws.ToString(out.MessageId)))

	return nil
}
