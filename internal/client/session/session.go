// Package session owns process-wide authentication state: the bearer
// token, the cached user profile, and their durable persistence. It is
// the only writer of the auth keys in storage; every other component
// asks it for the current token instead of touching storage directly.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/jobtrack/internal/client/api"
	"github.com/dmitrijs2005/jobtrack/internal/client/models"
	"github.com/dmitrijs2005/jobtrack/internal/client/storage"
	"github.com/dmitrijs2005/jobtrack/internal/logging"
)

// State is the session lifecycle position.
type State string

const (
	// StateUnknown holds until durable storage has been consulted once
	// at startup.
	StateUnknown State = "unknown"
	// StateAnonymous means no valid token is held.
	StateAnonymous State = "anonymous"
	// StateAuthenticated means a token is present; the profile may be
	// absent (degraded session).
	StateAuthenticated State = "authenticated"
)

// ErrVerificationInFlight is returned when an OTP verification is
// resubmitted while an identical one is still pending. The duplicate is
// suppressed, not queued.
var ErrVerificationInFlight = errors.New("otp verification already in flight")

// AuthAPI is the authentication slice of the API adapter.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Register(ctx context.Context, email, password, firstName, lastName string) (*api.AuthResult, error)
	VerifyOTP(ctx context.Context, email, code string, module api.OTPModule) (*api.VerifyResult, error)
	ResendOTP(ctx context.Context, email string, module api.OTPModule) (*api.OTPStatus, error)
	ForgotPassword(ctx context.Context, email string) (*api.OTPStatus, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) (string, error)
}

// Store is the session state machine. Login and Register never produce
// StateAuthenticated directly; OTP verification (and password-reset
// completion, which forces a re-login) are the only transitions.
type Store struct {
	api     AuthAPI
	storage storage.Store
	log     logging.Logger

	mu        sync.Mutex
	state     State
	token     string
	profile   models.UserProfile
	resolving bool

	verifying bool
	verifyKey string

	onExpired func()
}

func New(client AuthAPI, store storage.Store, log logging.Logger) *Store {
	return &Store{
		api:       client,
		storage:   store,
		log:       log,
		state:     StateUnknown,
		resolving: true,
	}
}

// SetExpiredHandler registers the callback invoked when the backend
// rejects the token (401) and the session is torn down centrally.
func (s *Store) SetExpiredHandler(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// Restore consults durable storage exactly once at startup and resolves
// the initial state. A token without a cached profile still counts as
// authenticated; the profile is then reconstructed, best effort, from
// the token's unverified email claim for display purposes.
func (s *Store) Restore(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.resolving = false
		s.mu.Unlock()
	}()

	token, err := s.storage.Get(ctx, storage.KeyToken)
	if err != nil {
		s.setAnonymous()
		return fmt.Errorf("session restore: %w", err)
	}
	if len(token) == 0 {
		s.setAnonymous()
		return nil
	}

	var profile models.UserProfile
	raw, err := s.storage.Get(ctx, storage.KeyProfile)
	switch {
	case err != nil:
		s.log.Warn(ctx, "failed to load cached profile", "error", err)
	case len(raw) > 0:
		if err := json.Unmarshal(raw, &profile); err != nil {
			s.log.Warn(ctx, "failed to decode cached profile", "error", err)
			profile = models.UserProfile{}
		}
	}
	if profile == (models.UserProfile{}) {
		profile.Email = emailClaim(string(token))
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.token = string(token)
	s.profile = profile
	s.mu.Unlock()
	return nil
}

// emailClaim peeks at the token's email claim without verifying the
// signature. Display only; authentication is established by token
// presence, the backend does the real verification.
func emailClaim(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.token = ""
	s.profile = models.UserProfile{}
	s.mu.Unlock()
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resolving is true only during the startup storage resolution window.
// Route-guarded views wait on it before rendering.
func (s *Store) Resolving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolving
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAuthenticated
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) Profile() models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Login submits credentials. By contract it never authenticates the
// session directly; the backend always demands an OTP follow-up.
func (s *Store) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	return s.api.Login(ctx, email, password)
}

// Register creates an account. Same OTP-required contract as Login.
func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) (*api.AuthResult, error) {
	return s.api.Register(ctx, email, password, firstName, lastName)
}

// VerifyOTP completes an auth flow. It is the only path into
// StateAuthenticated: on success, token and profile are persisted in a
// single storage transaction before in-memory state flips, so neither
// exists without the other. A duplicate submission for the same
// email+code while one is in flight returns ErrVerificationInFlight.
func (s *Store) VerifyOTP(ctx context.Context, email, code string, module api.OTPModule) (*api.VerifyResult, error) {
	key := email + "\x00" + code

	s.mu.Lock()
	if s.verifying && s.verifyKey == key {
		s.mu.Unlock()
		return nil, ErrVerificationInFlight
	}
	s.verifying = true
	s.verifyKey = key
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.verifying = false
		s.verifyKey = ""
		s.mu.Unlock()
	}()

	result, err := s.api.VerifyOTP(ctx, email, code, module)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(result.Profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	err = s.storage.SetMany(ctx, map[string][]byte{
		storage.KeyToken:   []byte(result.Token),
		storage.KeyProfile: raw,
	})
	if err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.token = result.Token
	s.profile = result.Profile
	s.mu.Unlock()

	return result, nil
}

// ResendOTP requests a fresh code for the given flow.
func (s *Store) ResendOTP(ctx context.Context, email string, module api.OTPModule) (*api.OTPStatus, error) {
	return s.api.ResendOTP(ctx, email, module)
}

// ForgotPassword starts the reset flow.
func (s *Store) ForgotPassword(ctx context.Context, email string) (*api.OTPStatus, error) {
	return s.api.ForgotPassword(ctx, email)
}

// ResetPassword completes the reset flow. Success invalidates any
// current session: the user must authenticate again with the new
// credentials.
func (s *Store) ResetPassword(ctx context.Context, email, code, newPassword string) (string, error) {
	msg, err := s.api.ResetPassword(ctx, email, code, newPassword)
	if err != nil {
		return "", err
	}
	s.Logout(ctx)
	return msg, nil
}

// Logout clears durable storage and in-memory state. It is always safe
// to call; storage errors are logged, never surfaced.
func (s *Store) Logout(ctx context.Context) {
	if err := s.storage.Clear(ctx, storage.KeyToken, storage.KeyProfile); err != nil {
		s.log.Error(ctx, "failed to clear session storage", "error", err)
	}
	s.setAnonymous()
}

// HandleUnauthorized is the teardown hook wired into the transport. Any
// 401 anywhere in the system lands here, independent of the caller.
func (s *Store) HandleUnauthorized(ctx context.Context) {
	s.mu.Lock()
	wasAuthenticated := s.state == StateAuthenticated
	fn := s.onExpired
	s.mu.Unlock()

	s.Logout(ctx)

	if wasAuthenticated && fn != nil {
		fn()
	}
}
