package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/butiken/storefront/internal/mail"
	"github.com/butiken/storefront/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	mailer  *mail.Recorder
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.mailer = mail.NewRecorder()
	s.service = New(s.mailer, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) validInput() Input {
	return Input{
		Name:    "Alice",
		Email:   "alice@example.com",
		Subject: "Order question",
		Body:    "Where is my mug?",
	}
}

func (s *ServiceSuite) TestSubmitForwardsMessage() {
	fieldErrs, err := s.service.Submit(s.ctx, s.validInput())
	s.Require().NoError(err)
	s.Require().Empty(fieldErrs)

	msgs := s.mailer.Contacts()
	s.Require().Len(msgs, 1)
	s.Equal("Alice", msgs[0].Name)
	s.Equal("Order question", msgs[0].Subject)
}

func (s *ServiceSuite) TestSubmitEmptyNameDefaultsToNA() {
	in := s.validInput()
	in.Name = "  "

	fieldErrs, err := s.service.Submit(s.ctx, in)
	s.Require().NoError(err)
	s.Require().Empty(fieldErrs)

	msgs := s.mailer.Contacts()
	s.Require().Len(msgs, 1)
	s.Equal("N/A", msgs[0].Name)
}

func (s *ServiceSuite) TestSubmitValidation() {
	in := Input{Email: "bad", Subject: " ", Body: ""}

	fieldErrs, err := s.service.Submit(s.ctx, in)
	s.Require().NoError(err)
	s.Contains(fieldErrs, "email")
	s.Contains(fieldErrs, "subject")
	s.Contains(fieldErrs, "message")
	s.Empty(s.mailer.Contacts())
}

func (s *ServiceSuite) TestSubmitAttachmentForwarded() {
	in := s.validInput()
	in.AttachmentName = "receipt.pdf"
	in.Attachment = []byte("%PDF-1.4 fake")

	fieldErrs, err := s.service.Submit(s.ctx, in)
	s.Require().NoError(err)
	s.Require().Empty(fieldErrs)

	msgs := s.mailer.Contacts()
	s.Require().Len(msgs, 1)
	s.Equal("receipt.pdf", msgs[0].AttachmentName)
	s.Equal([]byte("%PDF-1.4 fake"), msgs[0].Attachment)
}

func (s *ServiceSuite) TestSubmitOversizedAttachmentRejected() {
	in := s.validInput()
	in.AttachmentName = "huge.bin"
	in.Attachment = make([]byte, MaxAttachmentSize+1)

	fieldErrs, err := s.service.Submit(s.ctx, in)
	s.Require().NoError(err)
	s.Contains(fieldErrs, "file")
	s.Empty(s.mailer.Contacts())
}

func (s *ServiceSuite) TestSubmitMailerFailureSurfaced() {
	s.mailer.Err = context.DeadlineExceeded

	_, err := s.service.Submit(s.ctx, s.validInput())
	s.Error(err)
}
