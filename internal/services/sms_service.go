package services

import (
	"context"
	"fmt"

	"walkaway/internal/models"
	"walkaway/internal/utils"
)

// SMSNotifier texts the lead a copy of their estimate.
type SMSNotifier struct {
	client *utils.SMSClient
}

func NewSMSNotifier(client *utils.SMSClient) *SMSNotifier {
	return &SMSNotifier{client: client}
}

func (n *SMSNotifier) Name() string { return "sms" }

func (n *SMSNotifier) Notify(ctx context.Context, lead models.LeadRecord) error {
	if n.client == nil || !(n.client.DryRun || n.client.Configured()) {
		return fmt.Errorf("%w: SMS credentials or sender not set", ErrChannelSkipped)
	}
	to, ok := NormalizePhone(lead.Phone)
	if !ok {
		return fmt.Errorf("%w: phone %q is not a US/Canada number", ErrChannelSkipped, lead.Phone)
	}
	if _, err := n.client.SendSMS(ctx, to, smsText(lead)); err != nil {
		return fmt.Errorf("sms error: %w", err)
	}
	return nil
}
