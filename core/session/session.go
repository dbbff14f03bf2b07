// Package session owns the authenticated principal's state and drives the
// login → OTP → session-ready lifecycle. It is the single point that turns
// facade errors into the stored message string; forms read that message
// reactively and never format errors themselves.
package session

import (
	"context"
	"sync"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/auth"
)

// fallback messages when a facade error carries none
const (
	loginFailedMsg  = "server error during login"
	invalidOTPMsg   = "invalid OTP"
	resendFailedMsg = "failed to resend OTP"
	forgotFailedMsg = "failed to send reset password email"
	resetFailedMsg  = "failed to reset password"
)

// State is an immutable snapshot of the session, safe to hand to guards.
//
// Invariant: Identity is non-nil only while OTPPending is false; no caller
// may treat a user as authenticated while an OTP challenge is outstanding.
type State struct {
	Identity    *auth.Identity
	OTPPending  bool
	Initialized bool // has an initial session-fetch completed
	Loading     bool
	LastError   string
}

// Session is the state-owning service, constructed once per process with an
// injected facade and passed by reference to consumers.
type Session struct {
	mu  sync.Mutex
	api api.Auth
	log core.Logger
	st  State
}

func New(authAPI api.Auth, log core.Logger) *Session {
	if log == nil {
		log = core.NopLogger{}
	}
	return &Session{api: authAPI, log: log}
}

// State returns a snapshot; the identity is copied so callers cannot
// mutate session state through it.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.st
	if s.st.Identity != nil {
		ident := *s.st.Identity
		st.Identity = &ident
	}
	return st
}

// SetError lets the UI park a message on the shared error channel (eg. an
// OAuth callback failure); pass "" to clear it.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	s.st.LastError = msg
	s.mu.Unlock()
}

func (s *Session) begin() {
	s.mu.Lock()
	s.st.Loading = true
	s.st.LastError = ""
	s.mu.Unlock()
}

func (s *Session) fail(msg string) {
	s.mu.Lock()
	s.st.Loading = false
	s.st.LastError = msg
	s.mu.Unlock()
}

// Login authenticates with the backend. When the backend signals an OTP
// requirement the session stops at OTPPending without an identity; otherwise
// the full identity record is fetched immediately. On failure the message is
// recorded and the error returned so the caller can decide not to navigate.
func (s *Session) Login(ctx context.Context, username, password string, rememberMe bool) error {
	creds := auth.Credentials{Username: username, Password: password, RememberMe: rememberMe}
	if err := creds.Validate(); err != nil {
		// input errors never reach the facade
		s.fail(err.Error())
		return err
	}

	s.begin()
	res, err := s.api.Login(ctx, creds)
	if err != nil {
		s.fail(api.ErrorMessage(err, loginFailedMsg))
		return err
	}

	if res.Data.OTPRequired {
		s.mu.Lock()
		s.st.Identity = nil
		s.st.OTPPending = true
		s.st.Loading = false
		s.mu.Unlock()
		return nil
	}

	me, err := s.api.Me(ctx)
	if err != nil {
		s.fail(api.ErrorMessage(err, loginFailedMsg))
		return err
	}

	s.mu.Lock()
	ident := me.Data
	s.st.Identity = &ident
	s.st.OTPPending = false
	s.st.Loading = false
	s.mu.Unlock()
	return nil
}

// VerifyOTP completes a pending OTP challenge. On success the identity is
// fetched and the pending flag cleared; on failure the challenge stays
// pending and the entered code remains the caller's concern.
func (s *Session) VerifyOTP(ctx context.Context, otp string) error {
	s.begin()
	if _, err := s.api.VerifyOTP(ctx, otp); err != nil {
		s.fail(api.ErrorMessage(err, invalidOTPMsg))
		return err
	}

	me, err := s.api.Me(ctx)
	if err != nil {
		s.fail(api.ErrorMessage(err, invalidOTPMsg))
		return err
	}

	s.mu.Lock()
	ident := me.Data
	s.st.Identity = &ident
	s.st.OTPPending = false
	s.st.Loading = false
	s.mu.Unlock()
	return nil
}

// ResendOTP asks for a fresh code. No state transition besides
// loading/error; re-arming the resend cool-down is the caller's job,
// whatever this call's outcome.
func (s *Session) ResendOTP(ctx context.Context) error {
	s.begin()
	if _, err := s.api.ResendOTP(ctx); err != nil {
		s.fail(api.ErrorMessage(err, resendFailedMsg))
		return err
	}
	s.mu.Lock()
	s.st.Loading = false
	s.mu.Unlock()
	return nil
}

// FetchMe is the idempotent "who am I" probe. It always marks the session
// initialized once it completes; a failure just means "not logged in" and
// surfaces no message.
func (s *Session) FetchMe(ctx context.Context) {
	me, err := s.api.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Initialized = true
	if err != nil {
		s.st.Identity = nil
		return
	}
	ident := me.Data
	s.st.Identity = &ident
	s.st.OTPPending = false
}

// Logout invokes the facade then unconditionally clears the identity and
// the OTP-pending flag; a failed server call never leaves the client
// looking authenticated.
func (s *Session) Logout(ctx context.Context) {
	if _, err := s.api.Logout(ctx); err != nil {
		s.log.Warn("logout call failed, clearing local session anyway", err)
	}
	s.mu.Lock()
	s.st.Identity = nil
	s.st.OTPPending = false
	s.st.Loading = false
	s.mu.Unlock()
}

// ForgotPassword requests a reset email; success carries no state change,
// navigation is the UI's decision.
func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	s.begin()
	if _, err := s.api.ForgotPassword(ctx, email); err != nil {
		s.fail(api.ErrorMessage(err, forgotFailedMsg))
		return err
	}
	s.mu.Lock()
	s.st.Loading = false
	s.mu.Unlock()
	return nil
}

// ResetPassword consumes a reset ticket; stateless besides loading/error.
func (s *Session) ResetPassword(ctx context.Context, ticket, newPassword string) error {
	s.begin()
	if _, err := s.api.ResetPassword(ctx, ticket, newPassword); err != nil {
		s.fail(api.ErrorMessage(err, resetFailedMsg))
		return err
	}
	s.mu.Lock()
	s.st.Loading = false
	s.mu.Unlock()
	return nil
}
