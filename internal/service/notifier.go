package service

import (
	"context"
	"fmt"
	"strings"

	"accounthub/internal/entity"
)

type TransmissionMedium string

const (
	MediumEmail TransmissionMedium = "email"
	MediumSMS   TransmissionMedium = "sms"
)

func ParseTransmissionMedium(value string) (TransmissionMedium, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(MediumEmail):
		return MediumEmail, true
	case string(MediumSMS):
		return MediumSMS, true
	default:
		return "", false
	}
}

// TokenNotifier delivers an issued token over the caller's chosen medium.
// Delivery is a leaf collaborator; a missing sender or contact field is the
// caller's problem, not the engine's.
type TokenNotifier struct {
	Email EmailSender
	SMS   SMSSender
}

func (n TokenNotifier) SendVerificationToken(ctx context.Context, account *entity.Account, token string, medium string) error {
	parsed, ok := ParseTransmissionMedium(medium)
	if !ok {
		return ErrInvalidMedium
	}
	switch parsed {
	case MediumEmail:
		if n.Email == nil || account.Email == nil {
			return ErrInvalidMedium
		}
		return n.Email.SendVerificationEmail(ctx, *account.Email, token)
	default:
		if n.SMS == nil || account.PhoneNumber == nil {
			return ErrInvalidMedium
		}
		message := fmt.Sprintf("Your verification token is %s.", token)
		return n.SMS.SendSMS(ctx, *account.PhoneNumber, message)
	}
}

func (n TokenNotifier) SendResetPasswordToken(ctx context.Context, account *entity.Account, token string, medium string) error {
	parsed, ok := ParseTransmissionMedium(medium)
	if !ok {
		return ErrInvalidMedium
	}
	switch parsed {
	case MediumEmail:
		if n.Email == nil || account.Email == nil {
			return ErrInvalidMedium
		}
		return n.Email.SendPasswordResetEmail(ctx, *account.Email, token)
	default:
		if n.SMS == nil || account.PhoneNumber == nil {
			return ErrInvalidMedium
		}
		message := fmt.Sprintf("Your password reset token is %s.", token)
		return n.SMS.SendSMS(ctx, *account.PhoneNumber, message)
	}
}
