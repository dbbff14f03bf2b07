package httpapi

import (
	"context"
	"net/http"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core/auth"
)

type authAPI struct {
	c *Client
}

var _ api.Auth = (*authAPI)(nil)

// loginPayload is the backend's login response; it carries a single role
// which gets normalized into the role-set used everywhere else.
type loginPayload struct {
	Token       string   `json:"token"`
	Email       string   `json:"email"`
	Role        string   `json:"role,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	OTPRequired bool     `json:"otpRequired"`
}

// userInfo tolerates both the single-role and the role-set wire convention.
type userInfo struct {
	ID         int              `json:"id"`
	Username   string           `json:"username"`
	Email      string           `json:"email"`
	FullName   string           `json:"fullName"`
	Role       string           `json:"role,omitempty"`
	Roles      []string         `json:"roles,omitempty"`
	Department *auth.Department `json:"department,omitempty"`
	Phone      string           `json:"phone,omitempty"`
}

func normalizeRoles(roles []string, role string) []string {
	if len(roles) > 0 {
		return roles
	}
	if role != "" {
		return []string{role}
	}
	return nil
}

func (ui userInfo) identity() auth.Identity {
	return auth.Identity{
		ID:         ui.ID,
		Username:   ui.Username,
		Email:      ui.Email,
		FullName:   ui.FullName,
		Roles:      normalizeRoles(ui.Roles, ui.Role),
		Department: ui.Department,
		Phone:      ui.Phone,
	}
}

func (a *authAPI) Login(ctx context.Context, creds auth.Credentials) (api.Envelope[api.LoginResult], error) {
	var zero api.Envelope[api.LoginResult]
	var payload loginPayload
	status, msg, err := a.c.do(ctx, http.MethodPost, "/auth/login", creds, &payload)
	if err != nil {
		return zero, err
	}
	if payload.Token != "" {
		a.c.setToken(payload.Token)
	}
	return api.Envelope[api.LoginResult]{
		Data: api.LoginResult{
			OTPRequired: payload.OTPRequired,
			Token:       payload.Token,
			Email:       payload.Email,
			Roles:       normalizeRoles(payload.Roles, payload.Role),
		},
		Message: msg,
		Status:  status,
	}, nil
}

func (a *authAPI) VerifyOTP(ctx context.Context, otp string) (api.Envelope[any], error) {
	body := map[string]string{"otp": otp}
	status, msg, err := a.c.do(ctx, http.MethodPost, "/auth/verify-otp", body, nil)
	if err != nil {
		return api.Envelope[any]{}, err
	}
	return api.Envelope[any]{Message: msg, Status: status}, nil
}

func (a *authAPI) ResendOTP(ctx context.Context) (api.Envelope[any], error) {
	status, msg, err := a.c.do(ctx, http.MethodPost, "/auth/resend-otp", nil, nil)
	if err != nil {
		return api.Envelope[any]{}, err
	}
	return api.Envelope[any]{Message: msg, Status: status}, nil
}

func (a *authAPI) Me(ctx context.Context) (api.Envelope[auth.Identity], error) {
	var zero api.Envelope[auth.Identity]
	var ui userInfo
	status, msg, err := a.c.do(ctx, http.MethodGet, "/auth/me", nil, &ui)
	if err != nil {
		return zero, err
	}
	return api.Envelope[auth.Identity]{Data: ui.identity(), Message: msg, Status: status}, nil
}

func (a *authAPI) Logout(ctx context.Context) (api.Envelope[any], error) {
	status, msg, err := a.c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	// the local token is gone no matter what the server said
	a.c.setToken("")
	if err != nil {
		return api.Envelope[any]{}, err
	}
	return api.Envelope[any]{Message: msg, Status: status}, nil
}

func (a *authAPI) ForgotPassword(ctx context.Context, email string) (api.Envelope[any], error) {
	body := map[string]string{"email": email}
	status, msg, err := a.c.do(ctx, http.MethodPost, "/auth/forgot-password", body, nil)
	if err != nil {
		return api.Envelope[any]{}, err
	}
	return api.Envelope[any]{Message: msg, Status: status}, nil
}

func (a *authAPI) ResetPassword(ctx context.Context, token, newPassword string) (api.Envelope[any], error) {
	body := map[string]string{"token": token, "newPassword": newPassword}
	status, msg, err := a.c.do(ctx, http.MethodPost, "/auth/reset-password", body, nil)
	if err != nil {
		return api.Envelope[any]{}, err
	}
	return api.Envelope[any]{Message: msg, Status: status}, nil
}
