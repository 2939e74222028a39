package service

import "context"

// EmailMessage is one outbound mail.
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// EmailSender delivers mail. Failures are returned to the caller, never retried.
type EmailSender interface {
	Send(ctx context.Context, msg *EmailMessage) error
}
