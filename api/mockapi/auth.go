package mockapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/auth"
	"github.com/itmsdev/itms-client/storage/kv"
)

type authAPI struct {
	*service
}

var _ api.Auth = (*authAPI)(nil)

func (a *authAPI) findByUsername(username string) (*auth.User, error) {
	users, err := a.users.All()
	if err != nil {
		return nil, errors.Wrap(err, "loading users")
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (a *authAPI) findByEmail(email string) (*auth.User, error) {
	users, err := a.users.All()
	if err != nil {
		return nil, errors.Wrap(err, "loading users")
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// establish persists the synthetic bearer token and user snapshot; this is
// what makes Me succeed until Logout.
func (a *authAPI) establish(ident auth.Identity) (string, error) {
	token := fmt.Sprintf("mock_jwt_token_%d_%d", ident.ID, time.Now().UnixMilli())
	if err := a.kvs.Set(keyToken, token); err != nil {
		return "", err
	}
	return token, a.kvs.Set(keyUser, ident)
}

func (a *authAPI) Login(ctx context.Context, creds auth.Credentials) (api.Envelope[api.LoginResult], error) {
	var zero api.Envelope[api.LoginResult]
	if err := a.delay(ctx); err != nil {
		return zero, err
	}

	usr, err := a.findByUsername(core.CleanString(creds.Username, true /* lower */))
	if err != nil {
		return zero, err
	}
	if usr == nil || usr.CheckPassword(creds.Password) != nil {
		return zero, api.BadRequest("invalid username or password")
	}
	if !usr.Active {
		return zero, api.NewError(http.StatusForbidden, "account deactivated")
	}

	if usr.OTPEnabled {
		// arm the login challenge; no identity until it is verified
		if err = a.kvs.Set(keyLoginOTP, mockOTP); err != nil {
			return zero, err
		}
		if err = a.kvs.Set(keyLoginUser, usr.Identity); err != nil {
			return zero, err
		}
		return ok(api.LoginResult{
			OTPRequired: true,
			Email:       usr.Email,
			Roles:       usr.Roles,
		}, "an OTP has been sent to your email"), nil
	}

	token, err := a.establish(usr.Identity)
	if err != nil {
		return zero, err
	}
	return ok(api.LoginResult{
		Token: token,
		Email: usr.Email,
		Roles: usr.Roles,
	}, "login successful"), nil
}

func (a *authAPI) VerifyOTP(ctx context.Context, otp string) (api.Envelope[any], error) {
	var zero api.Envelope[any]
	if err := a.delay(ctx); err != nil {
		return zero, err
	}

	// login challenge takes precedence over the reset flow
	if pending, err := a.kvs.Has(keyLoginOTP); err != nil {
		return zero, err
	} else if pending {
		code, err := kv.GetString(a.kvs, keyLoginOTP)
		if err != nil {
			return zero, err
		}
		if otp != code {
			return zero, api.BadRequest("invalid OTP")
		}
		var ident auth.Identity
		if _, err = a.kvs.Get(keyLoginUser, &ident); err != nil {
			return zero, err
		}
		_ = a.kvs.Remove(keyLoginOTP)
		_ = a.kvs.Remove(keyLoginUser)
		if _, err = a.establish(ident); err != nil {
			return zero, err
		}
		return ok[any](nil, "OTP verified"), nil
	}

	code, err := kv.GetString(a.kvs, keyResetOTP)
	if err != nil {
		return zero, err
	}
	if code == "" {
		return zero, api.BadRequest("no pending OTP challenge")
	}
	if otp != code {
		return zero, api.BadRequest("invalid OTP")
	}
	if err = a.kvs.Set(keyResetVerified, "true"); err != nil {
		return zero, err
	}
	return ok[any](nil, "OTP verified"), nil
}

func (a *authAPI) ResendOTP(ctx context.Context) (api.Envelope[any], error) {
	var zero api.Envelope[any]
	if err := a.delay(ctx); err != nil {
		return zero, err
	}

	login, err := a.kvs.Has(keyLoginOTP)
	if err != nil {
		return zero, err
	}
	reset, err := a.kvs.Has(keyResetOTP)
	if err != nil {
		return zero, err
	}
	if !login && !reset {
		return zero, api.BadRequest("no pending OTP challenge")
	}
	return ok[any](nil, "a new OTP has been sent to your email"), nil
}

func (a *authAPI) Me(ctx context.Context) (api.Envelope[auth.Identity], error) {
	var zero api.Envelope[auth.Identity]
	if err := a.delay(ctx); err != nil {
		return zero, err
	}

	token, err := kv.GetString(a.kvs, keyToken)
	if err != nil {
		return zero, err
	}
	var ident auth.Identity
	found, err := a.kvs.Get(keyUser, &ident)
	if err != nil {
		return zero, err
	}
	if token == "" || !found {
		return zero, api.Unauthorized("not logged in")
	}
	return ok(ident, "ok"), nil
}

func (a *authAPI) Logout(ctx context.Context) (api.Envelope[any], error) {
	var zero api.Envelope[any]
	if err := a.delay(ctx); err != nil {
		return zero, err
	}
	if err := a.kvs.Remove(keyToken); err != nil {
		return zero, err
	}
	if err := a.kvs.Remove(keyUser); err != nil {
		return zero, err
	}
	return ok[any](nil, "logged out"), nil
}

func (a *authAPI) ForgotPassword(ctx context.Context, email string) (api.Envelope[any], error) {
	var zero api.Envelope[any]
	if err := a.delay(ctx); err != nil {
		return zero, err
	}

	usr, err := a.findByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return zero, err
	}
	if usr == nil {
		return zero, api.NotFound("no account matches this email")
	}

	if err = a.kvs.Set(keyResetEmail, usr.Email); err != nil {
		return zero, err
	}
	if err = a.kvs.Set(keyResetOTP, mockOTP); err != nil {
		return zero, err
	}
	if err = a.kvs.Remove(keyResetVerified); err != nil {
		return zero, err
	}
	return ok[any](nil, "an OTP has been sent to your email"), nil
}

func (a *authAPI) ResetPassword(ctx context.Context, _, newPassword string) (api.Envelope[any], error) {
	var zero api.Envelope[any]
	if err := a.delay(ctx); err != nil {
		return zero, err
	}

	verified, err := kv.GetString(a.kvs, keyResetVerified)
	if err != nil {
		return zero, err
	}
	if verified != "true" {
		return zero, api.BadRequest("OTP verification required")
	}

	email, err := kv.GetString(a.kvs, keyResetEmail)
	if err != nil {
		return zero, err
	}
	users, err := a.users.All()
	if err != nil {
		return zero, errors.Wrap(err, "loading users")
	}
	for i := range users {
		if users[i].Email == email {
			if err = users[i].SetPassword(newPassword); err != nil {
				return zero, err
			}
			if err = a.users.Save(users); err != nil {
				return zero, err
			}
			break
		}
	}

	for _, key := range []string{keyResetEmail, keyResetOTP, keyResetVerified} {
		if err = a.kvs.Remove(key); err != nil {
			return zero, err
		}
	}
	return ok[any](nil, "password reset successful"), nil
}
