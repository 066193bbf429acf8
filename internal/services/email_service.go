package services

import (
	"context"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"walkaway/internal/models"
	"walkaway/internal/pdf"
)

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier sends the operator a summary of each new lead over SMTP.
type EmailNotifier struct {
	sender mailSender
	from   string
	to     string
	sheets pdf.Generator
	log    *logrus.Logger
}

// NewEmailNotifier returns a notifier that skips every lead when the SMTP
// host, password or operator address is missing.
func NewEmailNotifier(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, notifyEmail string) *EmailNotifier {
	n := &EmailNotifier{from: fromEmail, to: notifyEmail, log: logrus.StandardLogger()}
	if strings.TrimSpace(smtpHost) != "" && strings.TrimSpace(smtpPassword) != "" {
		n.sender = gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	}
	return n
}

// WithLeadSheet attaches a PDF lead sheet to every email.
func (n *EmailNotifier) WithLeadSheet(gen pdf.Generator) *EmailNotifier {
	n.sheets = gen
	return n
}

func (n *EmailNotifier) WithLogger(log *logrus.Logger) *EmailNotifier {
	if log != nil {
		n.log = log
	}
	return n
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Notify(ctx context.Context, lead models.LeadRecord) error {
	if n.sender == nil || strings.TrimSpace(n.to) == "" {
		return fmt.Errorf("%w: SMTP credentials or notify address not set", ErrChannelSkipped)
	}
	if _, err := mail.ParseAddress(n.from); err != nil {
		return fmt.Errorf("%w: sender %q is not an email address", ErrChannelSkipped, n.from)
	}
	m := n.buildMessage(lead)
	return sendWithContext(ctx, func() error {
		if err := n.sender.DialAndSend(m); err != nil {
			return fmt.Errorf("failed to send lead email: %w", err)
		}
		return nil
	})
}

// buildMessage never fails: a lead sheet that cannot be rendered is logged
// and the email goes out without it.
func (n *EmailNotifier) buildMessage(lead models.LeadRecord) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	if strings.TrimSpace(lead.Email) != "" {
		m.SetHeader("Reply-To", lead.Email)
	}
	m.SetHeader("Subject", emailSubject(lead))
	m.SetBody("text/html", emailHTML(lead))

	if n.sheets != nil {
		sheet, err := n.sheets.LeadSheet(lead)
		if err != nil {
			n.logger().WithError(err).WithField("email", lead.Email).Warn("[email] lead sheet skipped")
			return m
		}
		m.Attach("walkaway-lead.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(sheet)
			return err
		}))
	}
	return m
}

func (n *EmailNotifier) logger() *logrus.Logger {
	if n.log == nil {
		return logrus.StandardLogger()
	}
	return n.log
}

// sendWithContext runs a blocking send and gives up when ctx is done. The
// send itself cannot be interrupted and finishes in the background.
func sendWithContext(ctx context.Context, send func() error) error {
	done := make(chan error, 1)
	go func() { done <- send() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("send abandoned: %w", ctx.Err())
	}
}
