package factory

import (
	"time"

	"github.com/butiken/storefront/internal/dependencies/mocks"
	"github.com/butiken/storefront/internal/loginlog"
	"github.com/butiken/storefront/internal/mail"
	sessionmemory "github.com/butiken/storefront/internal/session/memory"
	"github.com/butiken/storefront/internal/storage/memory"
	"github.com/butiken/storefront/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	SentMail   *mail.Recorder
	Logins     *loginlog.MemoryRecorder
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	sessStore := sessionmemory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	sentMail := mail.NewRecorder()
	logins := loginlog.NewMemoryRecorder()

	app := newWithDependencies(store, sessStore, mockClock, mockRandom, logins, sentMail, false, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		SentMail:   sentMail,
		Logins:     logins,
	}
}
