package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/butiken/storefront/internal/dependencies/clock"
	"github.com/butiken/storefront/internal/dependencies/random"
	"github.com/butiken/storefront/internal/loginlog"
	mailer "github.com/butiken/storefront/internal/mail"
	"github.com/butiken/storefront/internal/model"
	"github.com/butiken/storefront/internal/session"
	"github.com/butiken/storefront/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("incorrect email and/or password")
	ErrNotRegistered      = errors.New("email is not registered")
)

// Validation limits
const (
	minPasswordLength   = 8
	resetPasswordLength = 8
)

// RememberDuration is how long the remember cookie stays valid
const RememberDuration = 30 * 24 * time.Hour

// usernamePattern is deliberately strict: lowercase alphanumerics only, so
// usernames are safe as keys and URL components without escaping
var usernamePattern = regexp.MustCompile(`^[a-z0-9]{3,25}$`)

// FieldErrors maps a form field name to its validation message. An empty
// map means the input passed validation.
type FieldErrors map[string]string

// RegisterInput is a registration form submission
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Captcha  string
}

// Service owns account registration, authentication, sign-out and
// password recovery
type Service struct {
	storage storage.Store
	clock   clock.Clock
	random  random.Random
	logins  loginlog.Recorder
	mailer  mailer.Mailer
	logger  *slog.Logger
}

// New creates a new auth Service
func New(
	store storage.Store,
	clk clock.Clock,
	rnd random.Random,
	logins loginlog.Recorder,
	m mailer.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		random:  rnd,
		logins:  logins,
		mailer:  m,
		logger:  logger,
	}
}

// Register validates the input and creates the account. The captcha is
// consumed from the session before comparison, so a failed attempt always
// needs a freshly rendered challenge. A successful registration does not
// sign the visitor in.
func (s *Service) Register(ctx context.Context, sess *session.Session, in RegisterInput) (FieldErrors, error) {
	fieldErrs := s.validateRegistration(sess, in)
	if len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	acct := &model.Account{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.CreateAccount(ctx, acct); err != nil {
		if dup, ok := model.AsDuplicateAccount(err); ok {
			fieldErrs = FieldErrors{}
			if dup.EmailTaken {
				fieldErrs["email"] = "Email is already registered."
			}
			if dup.UsernameTaken {
				fieldErrs["username"] = "Username is already taken."
			}
			return fieldErrs, nil
		}
		return nil, err
	}

	s.logger.Info("account registered",
		slog.String("username", in.Username))
	return nil, nil
}

func (s *Service) validateRegistration(sess *session.Session, in RegisterInput) FieldErrors {
	fieldErrs := FieldErrors{}

	if _, err := mail.ParseAddress(in.Email); err != nil {
		fieldErrs["email"] = "Please enter a valid email address."
	}
	if !usernamePattern.MatchString(in.Username) {
		fieldErrs["username"] = "Username must be 3-25 lowercase letters or digits."
	}
	if len(in.Password) < minPasswordLength {
		fieldErrs["password"] = "Password must be at least 8 characters."
	}

	// Case-sensitive compare against the one-time code; taking it means a
	// retry is impossible without re-rendering the image.
	expected := sess.TakeCaptcha()
	if expected == "" || in.Captcha != expected {
		fieldErrs["captcha"] = "Captcha verification failed. Please try again!"
	}

	return fieldErrs
}

// Login verifies the credentials and binds the account to the session.
// With remember set, the session id doubles as the persistent token and is
// returned for the caller to place in the remember cookie. A failed
// login-log append is logged and swallowed; the sign-in still succeeds.
func (s *Service) Login(ctx context.Context, sess *session.Session, email, password string, remember bool, clientAddr string) (string, error) {
	acct, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	// The session is only bound once every store write has succeeded, so a
	// failed token write leaves the visitor signed out rather than half in.
	var token string
	if remember {
		token = sess.ID
		if err := s.storage.SetRememberToken(ctx, acct.Username, token); err != nil {
			return "", err
		}
	}

	sess.User = &session.User{Email: acct.Email, Username: acct.Username}

	if err := s.logins.Record(ctx, loginlog.Entry{
		Time:       s.clock.Now(),
		Username:   acct.Username,
		Email:      acct.Email,
		RemoteAddr: clientAddr,
	}); err != nil {
		s.logger.Warn("login log append failed",
			slog.String("username", acct.Username),
			slog.String("error", err.Error()))
	}

	s.logger.Info("user logged in",
		slog.String("username", acct.Username),
		slog.Bool("remember", remember))
	return token, nil
}

// Logout clears the identity and guest cart from the session and revokes
// the persistent token, so neither the session cookie nor the remember
// cookie can authenticate afterwards
func (s *Service) Logout(ctx context.Context, sess *session.Session, rememberToken string) error {
	username := ""
	if sess.User != nil {
		username = sess.User.Username
	} else if rememberToken != "" {
		acct, err := s.storage.GetAccountByRememberToken(ctx, rememberToken)
		if err == nil {
			username = acct.Username
		} else if !errors.Is(err, model.ErrAccountNotFound) {
			return err
		}
	}

	if username != "" {
		if err := s.storage.ClearRememberToken(ctx, username); err != nil {
			return err
		}
	}

	sess.User = nil
	sess.Cart = nil

	if username != "" {
		s.logger.Info("user logged out", slog.String("username", username))
	}
	return nil
}

// ResetPassword replaces the account password with a generated one and
// mails it to the address on file. An unknown email returns
// ErrNotRegistered so the page can say so; whether that reveals account
// existence is accepted here.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	acct, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return ErrNotRegistered
		}
		return err
	}

	newPassword := s.random.String(resetPasswordLength, random.Alphanumeric)

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.storage.UpdatePassword(ctx, acct.Email, string(hash)); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, acct.Email, newPassword); err != nil {
		return err
	}

	s.logger.Info("password reset",
		slog.String("username", acct.Username))
	return nil
}
