// Package guard holds the pure route-guard decision functions. Guards never
// fail: an indeterminate session (not yet initialized) always suspends
// rather than guessing.
package guard

import (
	"github.com/itmsdev/itms-client/core/auth"
	"github.com/itmsdev/itms-client/core/session"
)

type Decision int

const (
	// Allow lets the route render.
	Allow Decision = iota
	// Suspend renders nothing until the session is initialized.
	Suspend
	// RedirectLogin sends the visitor to the login route.
	RedirectLogin
	// RedirectUnauthorized sends an authenticated visitor without the
	// required role to the unauthorized route.
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Suspend:
		return "suspend"
	case RedirectLogin:
		return "redirect:" + auth.RouteLogin
	case RedirectUnauthorized:
		return "redirect:" + auth.RouteUnauthorized
	}
	return "unknown"
}

// Target returns the route a redirect decision points at; Allow and Suspend
// have none.
func (d Decision) Target() (string, bool) {
	switch d {
	case RedirectLogin:
		return auth.RouteLogin, true
	case RedirectUnauthorized:
		return auth.RouteUnauthorized, true
	}
	return "", false
}

// Authenticated is the plain authentication gate.
func Authenticated(st session.State) Decision {
	if !st.Initialized || st.Loading {
		return Suspend
	}
	if st.Identity == nil {
		return RedirectLogin
	}
	return Allow
}

// HasRole gates a route on the intersection of the identity's role-set with
// the route's allowed set.
func HasRole(st session.State, allowed ...string) Decision {
	if d := Authenticated(st); d != Allow {
		return d
	}
	if !st.Identity.HasAnyRole(allowed...) {
		return RedirectUnauthorized
	}
	return Allow
}

// OTPPending admits the OTP view only while a challenge is outstanding;
// deep-linking into it without one goes back to login.
func OTPPending(st session.State) Decision {
	if st.OTPPending {
		return Allow
	}
	return RedirectLogin
}

// ResetTicket admits the reset-password view only when the URL carries a
// non-empty ticket.
func ResetTicket(ticket string) Decision {
	if ticket != "" {
		return Allow
	}
	return RedirectLogin
}

// Home resolves the post-login landing route for the current identity;
// unauthenticated sessions land on login. Uses the same precedence as
// auth.HomeRoute so direct navigation and redirect-after-login agree.
func Home(st session.State) string {
	if st.Identity == nil {
		return auth.RouteLogin
	}
	return auth.HomeRoute(st.Identity.Roles)
}
