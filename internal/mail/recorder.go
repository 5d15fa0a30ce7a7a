package mail

import (
	"context"
	"sync"
)

// ResetMail is one recorded password-reset send
type ResetMail struct {
	To          string
	NewPassword string
}

// Recorder is a Mailer that captures outbound mail in memory, for tests
// and for running without an SMTP account configured
type Recorder struct {
	mu       sync.Mutex
	resets   []ResetMail
	contacts []ContactMessage
	// Err, when set, is returned from every send
	Err error
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Ensure Recorder implements Mailer
var _ Mailer = (*Recorder)(nil)

// SendPasswordReset records the reset mail
func (r *Recorder) SendPasswordReset(ctx context.Context, to string, newPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.resets = append(r.resets, ResetMail{To: to, NewPassword: newPassword})
	return nil
}

// SendContact records the contact message
func (r *Recorder) SendContact(ctx context.Context, msg ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.contacts = append(r.contacts, msg)
	return nil
}

// Resets returns a copy of the recorded password-reset sends
func (r *Recorder) Resets() []ResetMail {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ResetMail, len(r.resets))
	copy(out, r.resets)
	return out
}

// Contacts returns a copy of the recorded contact messages
func (r *Recorder) Contacts() []ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ContactMessage, len(r.contacts))
	copy(out, r.contacts)
	return out
}
