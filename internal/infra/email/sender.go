// Package email delivers outbound mail through Amazon SES, or logs it when
// no sender address is configured.
package email

import (
	"context"
	"log/slog"

	"coursemart/config"
	"coursemart/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	ProviderSES = "ses"
	ProviderLog = "log"
)

// Params defines the dependencies of the email sender provider.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewSender picks the sender implementation from configuration.
func NewSender(params Params) (service.EmailSender, error) {
	cfg := params.Config.Email
	if cfg == nil || cfg.FromAddress == "" || cfg.Provider == ProviderLog || cfg.Provider == "" {
		params.Logger.Warn("Email delivery disabled, messages are only logged")

		return NewLogSender(params.Logger), nil
	}

	switch cfg.Provider {
	case ProviderSES:
		return NewSESSender(context.Background(), cfg, params.Logger)
	default:
		return nil, errors.Errorf("unsupported email provider: %s", cfg.Provider)
	}
}

type logSender struct {
	logger *slog.Logger
}

// NewLogSender returns a sender that records messages in the log instead of mailing them.
func NewLogSender(logger *slog.Logger) service.EmailSender {
	return &logSender{logger: logger}
}

func (s *logSender) Send(ctx context.Context, msg *service.EmailMessage) error {
	s.logger.InfoContext(ctx, "[LogMailer] Email not sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("text", msg.TextBody),
	)

	return nil
}
