// internal/notify/notifier.go

// Package notify sends the outbound alerts the assistant raises: SMS pages for
// critical tickets and email for onboarding decisions.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	commonerrors "helpdesk-assistant/internal/common/errors"
	"helpdesk-assistant/internal/common/logger"
	"helpdesk-assistant/internal/models"
)

// EmailAPI is the slice of SES used here.
type EmailAPI interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSAPI is the slice of SNS used here.
type SMSAPI interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Notifier struct {
	email        EmailAPI
	sms          SMSAPI
	fromEmail    string
	onCallNumber string
	logger       logger.Logger
}

// New builds a Notifier. Either client may be nil, in which case the matching
// notification is silently skipped; callers decide availability via config.
func New(email EmailAPI, sms SMSAPI, fromEmail, onCallNumber string, log logger.Logger) *Notifier {
	return &Notifier{
		email:        email,
		sms:          sms,
		fromEmail:    fromEmail,
		onCallNumber: onCallNumber,
		logger:       log.WithFields(map[string]interface{}{"component": "notify"}),
	}
}

// NotifyCriticalTicket pages the on-call number whenever a critical ticket is
// opened. Failures are reported but must not fail the ticket creation itself.
func (n *Notifier) NotifyCriticalTicket(ctx context.Context, ticket models.Ticket) error {
	if n.sms == nil || n.onCallNumber == "" {
		n.logger.Debug("sms notifications disabled, skipping critical ticket page", nil)
		return nil
	}

	message := fmt.Sprintf("CRITICAL ticket opened: %s (id %s)", ticket.Title, ticket.ID)
	_, err := n.sms.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.onCallNumber),
		Message:     aws.String(message),
	})
	if err != nil {
		n.logger.WithError(err).Error("failed to page on-call for critical ticket", map[string]interface{}{
			"ticketId": ticket.ID,
		})
		return commonerrors.NewExternalOpError("sns publish", err)
	}

	n.logger.Info("paged on-call for critical ticket", map[string]interface{}{
		"ticketId": ticket.ID,
	})
	return nil
}

// SendOnboardingDecision emails the requester once an onboarding request has
// been approved or rejected.
func (n *Notifier) SendOnboardingDecision(ctx context.Context, req models.OnboardingRequest) error {
	if n.email == nil || n.fromEmail == "" {
		n.logger.Debug("email notifications disabled, skipping onboarding decision", nil)
		return nil
	}

	subject := fmt.Sprintf("Onboarding request %s: %s", req.ID, req.Status)
	body := decisionBody(req)

	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.fromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{req.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		n.logger.WithError(err).Error("failed to send onboarding decision email", map[string]interface{}{
			"requestId": req.ID,
		})
		return commonerrors.NewExternalOpError("ses send", err)
	}

	n.logger.Info("sent onboarding decision email", map[string]interface{}{
		"requestId": req.ID,
		"status":    string(req.Status),
	})
	return nil
}

func decisionBody(req models.OnboardingRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\nThe onboarding request for %s has been %s.\n", req.EmployeeName, req.Status)
	if len(req.Equipment) > 0 {
		fmt.Fprintf(&b, "\nRequested equipment: %s\n", strings.Join(req.Equipment, ", "))
	}
	if req.Status == models.OnboardingApproved {
		b.WriteString("\nIT will reach out with account details before the start date.\n")
	}
	b.WriteString("\n- IT Helpdesk\n")
	return b.String()
}
