package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

type ResendEmailSender struct {
	Client *resend.Client
	From   string
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client: resend.NewClient(apiKey),
		From:   from,
	}
}

func (s *ResendEmailSender) SendVerificationEmail(ctx context.Context, email string, token string) error {
	subject := "Verify your account"
	html := fmt.Sprintf("<p>Your verification token is:</p><p><b>%s</b></p>", token)
	text := fmt.Sprintf("Your verification token is %s.", token)
	return s.send(ctx, email, subject, html, text)
}

func (s *ResendEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	subject := "Reset your password"
	html := fmt.Sprintf("<p>Your password reset token is:</p><p><b>%s</b></p>", token)
	text := fmt.Sprintf("Your password reset token is %s.", token)
	return s.send(ctx, email, subject, html, text)
}

func (s *ResendEmailSender) send(_ context.Context, to string, subject string, html string, text string) error {
	if s.Client == nil {
		return errors.New("email sender not configured")
	}
	params := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}
	_, err := s.Client.Emails.Send(params)
	return err
}
