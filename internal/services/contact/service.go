package contact

import (
	"context"
	"log/slog"
	netmail "net/mail"
	"strings"

	"github.com/butiken/storefront/internal/mail"
)

// MaxAttachmentSize caps uploaded attachments at 5 MiB
const MaxAttachmentSize = 5 << 20

// Input is a contact form submission before validation
type Input struct {
	Name           string
	Email          string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

// FieldErrors maps a form field name to its validation message
type FieldErrors map[string]string

// Service validates and forwards contact-form messages
type Service struct {
	mailer mail.Mailer
	logger *slog.Logger
}

// New creates a new contact Service
func New(m mail.Mailer, logger *slog.Logger) *Service {
	return &Service{mailer: m, logger: logger}
}

// Submit validates the input and forwards it to the shop inbox. The name
// is optional and defaults to "N/A"; email, subject and message are
// required.
func (s *Service) Submit(ctx context.Context, in Input) (FieldErrors, error) {
	fieldErrs := FieldErrors{}

	if _, err := netmail.ParseAddress(in.Email); err != nil {
		fieldErrs["email"] = "Please enter a valid email address."
	}
	if strings.TrimSpace(in.Subject) == "" {
		fieldErrs["subject"] = "Please enter a subject."
	}
	if strings.TrimSpace(in.Body) == "" {
		fieldErrs["message"] = "Please enter a message."
	}
	if len(in.Attachment) > MaxAttachmentSize {
		fieldErrs["file"] = "Attachment is too large."
	}
	if len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "N/A"
	}

	msg := mail.ContactMessage{
		Name:           name,
		Email:          in.Email,
		Subject:        in.Subject,
		Body:           in.Body,
		AttachmentName: in.AttachmentName,
		Attachment:     in.Attachment,
	}
	if err := s.mailer.SendContact(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("contact message forwarded",
		slog.String("from", in.Email),
		slog.Bool("attachment", len(in.Attachment) > 0))
	return nil, nil
}
