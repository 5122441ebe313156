// Package email abstracts outbound email delivery behind the EmailSender
// interface. The current implementation uses the Resend API.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

type EmailSender interface {
	// SendTemplated sends one templated email. attachmentURL, when non-empty,
	// must be a publicly resolvable URL (blob storage); Resend fetches it
	// server-side.
	SendTemplated(ctx context.Context, toEmail, subject, html, attachmentURL, attachmentName string) error
}

type resendSender struct {
	client    *resend.Client
	fromEmail string
}

func NewResendSender(apiKey, fromEmail string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (s *resendSender) SendTemplated(ctx context.Context, toEmail, subject, html, attachmentURL, attachmentName string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("CompliDesk <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	if attachmentURL != "" {
		params.Attachments = []*resend.Attachment{
			{
				Path:     attachmentURL,
				Filename: attachmentName,
			},
		}
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send templated email: %w", err)
	}

	return nil
}
