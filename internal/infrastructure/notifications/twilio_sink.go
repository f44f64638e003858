package notifications

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// TwilioSinkImpl implements domain.NotificationSink over SMS. It is an
// optional delivery channel for emergency notifications when push delivery
// is unavailable on the device.
type TwilioSinkImpl struct {
	client     *twilio.RestClient
	fromNumber string
	toNumber   string
}

// NewTwilioSink creates a Twilio SMS sink.
func NewTwilioSink(accountSID, authToken, fromNumber, toNumber string) domain.NotificationSink {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSinkImpl{
		client:     client,
		fromNumber: fromNumber,
		toNumber:   toNumber,
	}
}

// Notify implements domain.NotificationSink.
func (s *TwilioSinkImpl) Notify(ctx context.Context, notification domain.Notification) error {
	if s.fromNumber == "" || s.toNumber == "" {
		return fmt.Errorf("twilio sink is not configured")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.toNumber)
	params.SetFrom(s.fromNumber)
	params.SetBody(fmt.Sprintf("%s: %s", notification.Title, notification.Body))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS notification: %w", err)
	}
	return nil
}
