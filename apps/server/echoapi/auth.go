package echoapi

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/auth"
)

const (
	jwtCookieName = "JWT_TOKEN"
	otpCookieName = "OTP_PENDING"

	contextClaimsKey = "claims"

	purposeSession = ""
	purposeOTP     = "otp"
	purposeReset   = "reset"
)

// Claims represents the authorization claims transmitted via a JWT.
// Purpose distinguishes a full session token from the short-lived OTP and
// reset-ticket tokens.
type Claims struct {
	jwt.RegisteredClaims
	Username string   `json:"username,omitempty"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Purpose  string   `json:"purpose,omitempty"`
}

func (c *Claims) userID() (int, error) {
	return strconv.Atoi(c.Subject)
}

func getUserClaims(conf *core.Config, usr auth.User, purpose string, ttl time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: usr.Username,
		Email:    usr.Email,
		Roles:    usr.Roles,
		Purpose:  purpose,
	}
}

// generateToken generates a signed JWT token string representing the Claims.
func generateToken(conf *core.Config, claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(conf.SecretKey)
}

func parseToken(conf *core.Config, tokenStr, purpose string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return conf.SecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("unexpected token purpose %q", claims.Purpose)
	}
	return claims, nil
}

// authMiddleware accepts the session token from either the Authorization
// header or the JWT cookie.
func authMiddleware(conf *core.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tokenStr := ""
			if header := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
				tokenStr = strings.TrimPrefix(header, "Bearer ")
			} else if cookie, err := ctx.Cookie(jwtCookieName); err == nil {
				tokenStr = cookie.Value
			}
			if tokenStr == "" {
				return errUnauthorized
			}

			claims, err := parseToken(conf, tokenStr, purposeSession)
			if err != nil {
				return errUnauthorized
			}
			ctx.Set(contextClaimsKey, claims)
			return next(ctx)
		}
	}
}

// roleMiddleware gates a route on the claims' role-set; must run after
// authMiddleware.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := contextClaims(ctx)
			if err != nil {
				return err
			}
			for _, role := range roles {
				for _, have := range claims.Roles {
					if role == have {
						return next(ctx)
					}
				}
			}
			return errHTTPForbidden
		}
	}
}

func contextClaims(ctx echo.Context) (*Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(*Claims); ok {
		return claims, nil
	}
	return nil, errUnauthorized
}

func setTokenCookie(ctx echo.Context, name, token string, ttl time.Duration) {
	ctx.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
	})
}

func clearTokenCookie(ctx echo.Context, name string) {
	ctx.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// otpCache holds the outstanding OTP challenges, keyed by user id.
// A code is single-use, expires after OTPExpirationDelta and survives at
// most OTPMaxAttempts wrong guesses.
type otpCache struct {
	mu      sync.Mutex
	conf    *core.Config
	entries map[int]*otpEntry
}

type otpEntry struct {
	code         string
	expiresAt    time.Time
	attemptsLeft int
}

func newOTPCache(conf *core.Config) *otpCache {
	return &otpCache{
		conf:    conf,
		entries: make(map[int]*otpEntry),
	}
}

var randomCodeFunc = randomCode // mockable

func randomCode(length int) string {
	bound := 1
	for i := 0; i < length; i++ {
		bound *= 10
	}
	return fmt.Sprintf("%0*d", length, rand.IntN(bound))
}

func (c *otpCache) generate(userID int) string {
	code := randomCodeFunc(c.conf.OTPLength)

	c.mu.Lock()
	c.entries[userID] = &otpEntry{
		code:         code,
		expiresAt:    time.Now().Add(c.conf.OTPExpirationDelta),
		attemptsLeft: c.conf.OTPMaxAttempts,
	}
	c.mu.Unlock()
	return code
}

func (c *otpCache) validate(userID int, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "no pending OTP challenge")
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, userID)
		return echo.NewHTTPError(http.StatusBadRequest, "OTP expired")
	}
	if entry.attemptsLeft <= 0 {
		delete(c.entries, userID)
		return echo.NewHTTPError(http.StatusBadRequest, "too many failed attempts")
	}
	if entry.code != code {
		entry.attemptsLeft--
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid OTP, %d attempts left", entry.attemptsLeft))
	}

	delete(c.entries, userID) // consumed
	return nil
}
