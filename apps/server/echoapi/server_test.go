package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/core/auth"
	"github.com/itmsdev/itms-client/core/course"
	"github.com/itmsdev/itms-client/storage/fixtures"
	"github.com/itmsdev/itms-client/storage/kv"
)

func newTestServer(t *testing.T) Server {
	t.Helper()
	return NewServer(&Options{
		Addr:           ":0",
		DisableReqLogs: true,
		Conf:           core.NewTestConfig(),
		Store:          kv.NewMemory(),
	})
}

type request struct {
	method  string
	path    string
	body    interface{}
	bearer  string
	cookies []*http.Cookie
}

func doRequest(t *testing.T, s Server, r request) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if r.body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(r.body))
	}
	req := httptest.NewRequest(r.method, r.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if r.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearer)
	}
	for _, c := range r.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message json.RawMessage `json:"message"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func messageString(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(decodeBody(t, rec).Message, &msg))
	return msg
}

func loginToken(t *testing.T, s Server, username, password string) string {
	t.Helper()
	rec := doRequest(t, s, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   auth.Credentials{Username: username, Password: password},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &payload))
	require.NotEmpty(t, payload.Token)
	return payload.Token
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success returns token, cookie and roles", func(t *testing.T) {
		s := newTestServer(t)
		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/auth/login",
			body:   auth.Credentials{Username: "admin", Password: fixtures.DefaultPassword},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var payload struct {
			Token       string   `json:"token"`
			Email       string   `json:"email"`
			Roles       []string `json:"roles"`
			OTPRequired bool     `json:"otpRequired"`
		}
		require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &payload))
		assert.NotEmpty(t, payload.Token)
		assert.Equal(t, "admin@itms.com", payload.Email)
		assert.Equal(t, []string{auth.RoleAdmin}, payload.Roles)
		assert.False(t, payload.OTPRequired)

		var jwtCookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == jwtCookieName {
				jwtCookie = c
			}
		}
		require.NotNil(t, jwtCookie, "JWT cookie missing")
		assert.True(t, jwtCookie.HttpOnly)
	})

	t.Run("wrong password", func(t *testing.T) {
		s := newTestServer(t)
		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/auth/login",
			body:   auth.Credentials{Username: "admin", Password: "nope"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid username or password", messageString(t, rec))
	})

	t.Run("missing fields get field errors", func(t *testing.T) {
		s := newTestServer(t)
		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/auth/login",
			body:   map[string]string{"username": "admin"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fldErrs map[string]string
		require.NoError(t, json.Unmarshal(decodeBody(t, rec).Message, &fldErrs))
		assert.Contains(t, fldErrs, "password")
	})
}

func TestMeEndpoint(t *testing.T) {
	s := newTestServer(t)

	t.Run("requires a token", func(t *testing.T) {
		rec := doRequest(t, s, request{method: http.MethodGet, path: "/auth/me"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts bearer", func(t *testing.T) {
		token := loginToken(t, s, "trainer001", fixtures.DefaultPassword)
		rec := doRequest(t, s, request{method: http.MethodGet, path: "/auth/me", bearer: token})
		require.Equal(t, http.StatusOK, rec.Code)

		var ident auth.Identity
		require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &ident))
		assert.Equal(t, "trainer001", ident.Username)
		assert.Equal(t, []string{auth.RoleTrainer, auth.RoleEmployee}, ident.Roles)
	})

	t.Run("accepts cookie", func(t *testing.T) {
		token := loginToken(t, s, "emp001", fixtures.DefaultPassword)
		rec := doRequest(t, s, request{
			method:  http.MethodGet,
			path:    "/auth/me",
			cookies: []*http.Cookie{{Name: jwtCookieName, Value: token}},
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		rec := doRequest(t, s, request{method: http.MethodGet, path: "/auth/me", bearer: "lol.nope.sig"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOTPFlow(t *testing.T) {
	randomCodeFunc = func(int) string { return "424242" }
	t.Cleanup(func() { randomCodeFunc = randomCode })

	login := func(t *testing.T, s Server) []*http.Cookie {
		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/auth/login",
			body:   auth.Credentials{Username: "hr001", Password: fixtures.DefaultPassword},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var payload struct {
			Token       string `json:"token"`
			OTPRequired bool   `json:"otpRequired"`
		}
		require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &payload))
		require.True(t, payload.OTPRequired)
		require.Empty(t, payload.Token, "no session token before the OTP is verified")
		return rec.Result().Cookies()
	}

	t.Run("verify completes the login", func(t *testing.T) {
		s := newTestServer(t)
		cookies := login(t, s)

		rec := doRequest(t, s, request{
			method:  http.MethodPost,
			path:    "/auth/verify-otp",
			body:    map[string]string{"otp": "424242"},
			cookies: cookies,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var payload struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &payload))
		assert.NotEmpty(t, payload.Token)

		me := doRequest(t, s, request{method: http.MethodGet, path: "/auth/me", bearer: payload.Token})
		assert.Equal(t, http.StatusOK, me.Code)
	})

	t.Run("wrong code burns an attempt", func(t *testing.T) {
		s := newTestServer(t)
		cookies := login(t, s)

		rec := doRequest(t, s, request{
			method:  http.MethodPost,
			path:    "/auth/verify-otp",
			body:    map[string]string{"otp": "000000"},
			cookies: cookies,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid OTP, 4 attempts left", messageString(t, rec))
	})

	t.Run("attempts run out", func(t *testing.T) {
		s := newTestServer(t)
		cookies := login(t, s)

		for i := 0; i < 5; i++ {
			doRequest(t, s, request{
				method:  http.MethodPost,
				path:    "/auth/verify-otp",
				body:    map[string]string{"otp": "000000"},
				cookies: cookies,
			})
		}
		rec := doRequest(t, s, request{
			method:  http.MethodPost,
			path:    "/auth/verify-otp",
			body:    map[string]string{"otp": "424242"},
			cookies: cookies,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "too many failed attempts", messageString(t, rec))
	})

	t.Run("verify without a challenge", func(t *testing.T) {
		s := newTestServer(t)
		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/auth/verify-otp",
			body:   map[string]string{"otp": "424242"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "no pending OTP challenge", messageString(t, rec))
	})

	t.Run("resend rearms the challenge", func(t *testing.T) {
		s := newTestServer(t)
		cookies := login(t, s)

		rec := doRequest(t, s, request{method: http.MethodPost, path: "/auth/resend-otp", cookies: cookies})
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, s, request{method: http.MethodPost, path: "/auth/resend-otp"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPasswordResetEndpoints(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		s := newTestServer(t)
		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/auth/forgot-password",
			body:   map[string]string{"email": "nouser@example.com"},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "no account matches this email", messageString(t, rec))
	})

	t.Run("reset with a valid ticket changes the password", func(t *testing.T) {
		conf := core.NewTestConfig()
		store := kv.NewMemory()
		s := NewServer(&Options{Addr: ":0", DisableReqLogs: true, Conf: conf, Store: store})

		// seed the users table, then mint the ticket the reset email
		// would carry
		users, err := fixtures.UserTable(store).All()
		require.NoError(t, err)
		ticket, err := generateToken(conf, getUserClaims(conf, users[0], purposeReset, conf.PasswordResetTimeoutDelta))
		require.NoError(t, err)

		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/auth/reset-password",
			body:   map[string]string{"token": ticket, "newPassword": "newpassword1"},
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		loginToken(t, s, "admin", "newpassword1")
		rec = doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/auth/login",
			body:   auth.Credentials{Username: "admin", Password: fixtures.DefaultPassword},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "old password must no longer work")
	})

	t.Run("reset rejects a session token", func(t *testing.T) {
		s := newTestServer(t)
		token := loginToken(t, s, "admin", fixtures.DefaultPassword)

		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/auth/reset-password",
			body:   map[string]string{"token": token, "newPassword": "newpassword1"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid or expired reset token", messageString(t, rec))
	})
}

func TestResourceEndpoints(t *testing.T) {
	t.Run("listing requires auth", func(t *testing.T) {
		s := newTestServer(t)
		rec := doRequest(t, s, request{method: http.MethodGet, path: "/api/courses"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("employee can read but not write courses", func(t *testing.T) {
		s := newTestServer(t)
		token := loginToken(t, s, "emp001", fixtures.DefaultPassword)

		rec := doRequest(t, s, request{method: http.MethodGet, path: "/api/courses", bearer: token})
		require.Equal(t, http.StatusOK, rec.Code)

		var courses []course.Course
		require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &courses))
		assert.Len(t, courses, 3)

		rec = doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/api/courses",
			body:   course.NewCourse{Code: "GO-101", Name: "Go Basics"},
			bearer: token,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "permission denied", messageString(t, rec))
	})

	t.Run("hr manages the catalog", func(t *testing.T) {
		s := newTestServer(t)
		token := loginToken(t, s, "admin", fixtures.DefaultPassword)

		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/api/courses",
			body:   course.NewCourse{Code: "GO-101", Name: "Go Basics"},
			bearer: token,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created course.Course
		require.NoError(t, json.Unmarshal(decodeBody(t, rec).Data, &created))
		assert.Equal(t, 4, created.ID)
		assert.Equal(t, course.StatusDraft, created.Status)

		rec = doRequest(t, s, request{
			method: http.MethodPut,
			path:   "/api/courses/4",
			body:   course.UpdateCourse{Status: course.StatusOpen},
			bearer: token,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, s, request{method: http.MethodDelete, path: "/api/courses/4", bearer: token})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, s, request{method: http.MethodDelete, path: "/api/courses/4", bearer: token})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "course not found", messageString(t, rec))
	})

	t.Run("trainer can write schedules but not courses", func(t *testing.T) {
		s := newTestServer(t)
		token := loginToken(t, s, "trainer001", fixtures.DefaultPassword)

		rec := doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/api/schedules",
			body: map[string]string{
				"trainerUsername": "trainer001",
				"courseCode":      "GO-101",
				"startTime":       "09:00",
				"endTime":         "11:00",
				"date":            "2026-09-04",
			},
			bearer: token,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = doRequest(t, s, request{
			method: http.MethodPost,
			path:   "/api/courses",
			body:   course.NewCourse{Code: "GO-101", Name: "Go Basics"},
			bearer: token,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
