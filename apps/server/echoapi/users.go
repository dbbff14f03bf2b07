package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/auth"
	"github.com/itmsdev/itms-client/storage/fixtures"
	"github.com/itmsdev/itms-client/storage/kv"
)

type userAPI struct {
	conf  *core.Config
	log   core.Logger
	users *kv.Table[auth.User]
	otps  *otpCache
}

func registerAuthAPI(app *echo.Echo, conf *core.Config, log core.Logger, store kv.Store) {
	api := userAPI{
		conf:  conf,
		log:   log,
		users: fixtures.UserTable(store),
		otps:  newOTPCache(conf),
	}

	ag := app.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/verify-otp", api.verifyOTP)
	ag.POST("/resend-otp", api.resendOTP)
	ag.POST("/logout", api.logout)
	ag.POST("/forgot-password", api.forgotPassword)
	ag.POST("/reset-password", api.resetPassword)
	ag.GET("/me", api.me, authMiddleware(conf))
}

type loginResponse struct {
	Token       string   `json:"token,omitempty"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles,omitempty"`
	OTPRequired bool     `json:"otpRequired"`
}

func (api userAPI) login(ctx echo.Context) error {
	var creds auth.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return err
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	usr, err := api.userByUsername(creds.Username)
	if err != nil {
		return err
	}
	if usr == nil || usr.CheckPassword(creds.Password) != nil {
		return errAuthenticationFailed
	}
	if !usr.Active {
		return errAccountDeactivated
	}

	if usr.OTPEnabled {
		code := api.otps.generate(usr.ID)
		// Email delivery is out of reach here, surface the code in the logs.
		api.log.Info("OTP issued", "username", usr.Username, "code", code)

		claims := getUserClaims(api.conf, *usr, purposeOTP, api.conf.OTPExpirationDelta)
		token, err := generateToken(api.conf, claims)
		if err != nil {
			return err
		}
		setTokenCookie(ctx, otpCookieName, token, api.conf.OTPExpirationDelta)
		return respond(ctx, http.StatusOK,
			loginResponse{Email: usr.Email, OTPRequired: true},
			"an OTP has been sent to your email",
		)
	}
	return api.establishSession(ctx, *usr, "login successful")
}

// establishSession issues the session token both in the response body and as
// an HttpOnly cookie, so header-based and cookie-based clients work alike.
func (api userAPI) establishSession(ctx echo.Context, usr auth.User, message string) error {
	claims := getUserClaims(api.conf, usr, purposeSession, api.conf.Server.JWTExpirationDelta)
	token, err := generateToken(api.conf, claims)
	if err != nil {
		return err
	}
	setTokenCookie(ctx, jwtCookieName, token, api.conf.Server.JWTExpirationDelta)
	clearTokenCookie(ctx, otpCookieName)
	return respond(ctx, http.StatusOK, loginResponse{
		Token: token,
		Email: usr.Email,
		Roles: usr.Roles,
	}, message)
}

func (api userAPI) verifyOTP(ctx echo.Context) error {
	var input struct {
		OTP string `json:"otp" validate:"required"`
	}
	if err := ctx.Bind(&input); err != nil {
		return err
	}
	if err := core.Validate.Struct(&input); err != nil {
		return err
	}

	claims, err := api.pendingClaims(ctx)
	if err != nil {
		return err
	}
	userID, err := claims.userID()
	if err != nil {
		return errUnauthorized
	}
	if err = api.otps.validate(userID, core.CleanString(input.OTP)); err != nil {
		return err
	}

	usr, err := api.userByID(userID)
	if err != nil {
		return err
	}
	if usr == nil || !usr.Active {
		return errUnauthorized
	}
	return api.establishSession(ctx, *usr, "OTP verified")
}

func (api userAPI) resendOTP(ctx echo.Context) error {
	claims, err := api.pendingClaims(ctx)
	if err != nil {
		return err
	}
	userID, err := claims.userID()
	if err != nil {
		return errUnauthorized
	}

	code := api.otps.generate(userID)
	api.log.Info("OTP reissued", "username", claims.Username, "code", code)
	return respond(ctx, http.StatusOK, nil, "a new OTP has been sent to your email")
}

// pendingClaims reads the short-lived OTP cookie set by login.
func (api userAPI) pendingClaims(ctx echo.Context) (*Claims, error) {
	cookie, err := ctx.Cookie(otpCookieName)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "no pending OTP challenge")
	}
	claims, err := parseToken(api.conf, cookie.Value, purposeOTP)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "no pending OTP challenge")
	}
	return claims, nil
}

func (api userAPI) me(ctx echo.Context) error {
	claims, err := contextClaims(ctx)
	if err != nil {
		return err
	}
	userID, err := claims.userID()
	if err != nil {
		return errUnauthorized
	}
	usr, err := api.userByID(userID)
	if err != nil {
		return err
	}
	if usr == nil || !usr.Active {
		return errUnauthorized
	}
	return respond(ctx, http.StatusOK, usr.Identity, "ok")
}

func (api userAPI) logout(ctx echo.Context) error {
	clearTokenCookie(ctx, jwtCookieName)
	clearTokenCookie(ctx, otpCookieName)
	return respond(ctx, http.StatusOK, nil, "logged out")
}

func (api userAPI) forgotPassword(ctx echo.Context) error {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := ctx.Bind(&input); err != nil {
		return err
	}
	input.Email = core.CleanString(input.Email, true /* lower */)
	if err := core.Validate.Struct(&input); err != nil {
		return err
	}

	usr, err := api.userByEmail(input.Email)
	if err != nil {
		return err
	}
	if usr == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no account matches this email")
	}

	claims := getUserClaims(api.conf, *usr, purposeReset, api.conf.PasswordResetTimeoutDelta)
	ticket, err := generateToken(api.conf, claims)
	if err != nil {
		return err
	}
	api.log.Info("password reset ticket issued", "email", usr.Email, "ticket", ticket)
	return respond(ctx, http.StatusOK, nil, "a password reset link has been sent to your email")
}

func (api userAPI) resetPassword(ctx echo.Context) error {
	var input struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}
	if err := ctx.Bind(&input); err != nil {
		return err
	}
	if err := core.Validate.Struct(&input); err != nil {
		return err
	}

	claims, err := parseToken(api.conf, input.Token, purposeReset)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid or expired reset token")
	}
	userID, err := claims.userID()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid or expired reset token")
	}

	users, err := api.users.All()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		if err = users[i].SetPassword(input.NewPassword); err != nil {
			return err
		}
		if err = api.users.Save(users); err != nil {
			return err
		}
		return respond(ctx, http.StatusOK, nil, "password reset successful")
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid or expired reset token")
}

func (api userAPI) userByUsername(uname string) (*auth.User, error) {
	return api.findUser(func(u auth.User) bool { return u.Username == uname })
}

func (api userAPI) userByEmail(email string) (*auth.User, error) {
	return api.findUser(func(u auth.User) bool { return u.Email == email })
}

func (api userAPI) userByID(id int) (*auth.User, error) {
	return api.findUser(func(u auth.User) bool { return u.ID == id })
}

func (api userAPI) findUser(match func(auth.User) bool) (*auth.User, error) {
	users, err := api.users.All()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(users[i]) {
			return &users[i], nil
		}
	}
	return nil, nil
}
