package mail

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// ContactMessage is an inbound contact-form submission to forward
type ContactMessage struct {
	Name           string
	Email          string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// Mailer sends the storefront's outbound mail
type Mailer interface {
	SendPasswordReset(ctx context.Context, to string, newPassword string) error
	SendContact(ctx context.Context, msg ContactMessage) error
}

const resetSubject = "Butiken - Your new password"

const resetBodyFormat = `A request to reset your password has been made and a new password has been generated for your account.

Below is your new password:

%s

Best regards,
Butiken`

// SMTPConfig holds the connection settings for an SMTPMailer
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the sender address for all outbound mail
	From string
	// FromName is the display name shown with the sender address
	FromName string
	// ContactTo receives forwarded contact-form messages
	ContactTo string
}

// SMTPMailer delivers mail over authenticated SMTP with mandatory TLS
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a mailer for the given SMTP account
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Ensure SMTPMailer implements Mailer
var _ Mailer = (*SMTPMailer)(nil)

// SendPasswordReset mails the freshly generated password to the account holder
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to string, newPassword string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(resetSubject)
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(resetBodyFormat, newPassword))

	return m.send(ctx, msg)
}

// SendContact forwards a contact-form message to the shop inbox, with the
// visitor as reply-to so staff can answer directly
func (m *SMTPMailer) SendContact(ctx context.Context, cm ContactMessage) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.cfg.ContactTo); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	if err := msg.ReplyTo(cm.Email); err != nil {
		return fmt.Errorf("set reply-to: %w", err)
	}
	msg.Subject(cm.Subject)
	msg.SetBodyString(gomail.TypeTextPlain,
		fmt.Sprintf("From: %s <%s>\n\n%s", cm.Name, cm.Email, cm.Body))

	if len(cm.Attachment) > 0 {
		if err := msg.AttachReader(cm.AttachmentName, bytes.NewReader(cm.Attachment)); err != nil {
			return fmt.Errorf("attach file: %w", err)
		}
	}

	return m.send(ctx, msg)
}

func (m *SMTPMailer) send(ctx context.Context, msg *gomail.Msg) error {
	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
