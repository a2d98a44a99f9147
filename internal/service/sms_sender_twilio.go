package service

import (
	"context"
	"errors"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioSMSSender struct {
	Client *twilio.RestClient
	From   string
}

func NewTwilioSMSSender(accountSID string, authToken string, from string) *TwilioSMSSender {
	if strings.TrimSpace(accountSID) == "" || strings.TrimSpace(authToken) == "" || strings.TrimSpace(from) == "" {
		return &TwilioSMSSender{}
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSSender{Client: client, From: from}
}

func (s *TwilioSMSSender) SendSMS(_ context.Context, phoneNumber string, message string) error {
	if s.Client == nil {
		return errors.New("sms sender not configured")
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(s.From)
	params.SetBody(message)
	_, err := s.Client.Api.CreateMessage(params)
	return err
}
