package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itmsdev/itms-client/api"
	"github.com/itmsdev/itms-client/core/auth"
	"github.com/itmsdev/itms-client/core/course"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Fatalf("encoding response: %v", err)
	}
}

func TestLoginCapturesToken(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var creds auth.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "admin", creds.Username)
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"data": map[string]interface{}{
					"token": "jwt-abc",
					"email": "admin@itms.com",
					"role":  "ADMIN",
				},
				"message": "login successful",
			})
		case "/auth/me":
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"data": map[string]interface{}{
					"id":       1,
					"username": "admin",
					"role":     "ADMIN",
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	a := NewWithClient(NewClient(srv.URL))
	ctx := context.Background()

	env, err := a.Auth.Login(ctx, auth.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", env.Data.Token)
	assert.Equal(t, []string{"ADMIN"}, env.Data.Roles, "single role normalized into a set")
	assert.Equal(t, "login successful", env.Message)

	me, err := a.Auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/auth/me", gotPath)
	assert.Equal(t, "Bearer jwt-abc", gotAuth, "captured token sent as bearer")
	assert.Equal(t, []string{"ADMIN"}, me.Data.Roles)
}

func TestErrorMessageExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]string{"message": "invalid username or password"})
	}))
	defer srv.Close()

	a := NewWithClient(NewClient(srv.URL))
	_, err := a.Auth.Login(context.Background(), auth.Credentials{Username: "x", Password: "y"})
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, "invalid username or password", api.ErrorMessage(err, "fallback"))
}

func TestErrorMessageFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewWithClient(NewClient(srv.URL))
	_, err := a.Auth.ResendOTP(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), api.ErrorMessage(err, ""))
}

func TestUnauthorizedHookFires(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "user not authenticated"})
	}))
	defer srv.Close()

	var unauthorized, forbidden bool
	a := NewWithClient(NewClient(srv.URL,
		WithUnauthorizedHook(func() { unauthorized = true }),
		WithForbiddenHook(func() { forbidden = true }),
	))

	_, err := a.Auth.Me(context.Background())
	require.Error(t, err)
	assert.True(t, unauthorized)
	assert.False(t, forbidden)
}

func TestForbiddenHookFires(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]string{"message": "permission denied"})
	}))
	defer srv.Close()

	var forbidden bool
	a := NewWithClient(NewClient(srv.URL, WithForbiddenHook(func() { forbidden = true })))

	_, err := a.Courses.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, forbidden)
	assert.True(t, api.IsStatus(err, http.StatusForbidden))
}

func TestLogoutClearsTokenEvenOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("stale"))
	a := NewWithClient(c)

	_, err := a.Auth.Logout(context.Background())
	require.Error(t, err)
	assert.Empty(t, c.Token())
}

func TestCoursesRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/courses":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"data": []course.Course{{ID: 1, Code: "GO-101", Name: "Go Basics"}},
			})
		case "POST /api/courses":
			var nc course.NewCourse
			require.NoError(t, json.NewDecoder(r.Body).Decode(&nc))
			writeJSON(t, w, http.StatusCreated, map[string]interface{}{
				"data":    course.Course{ID: 2, Code: nc.Code, Name: nc.Name},
				"message": "course created",
			})
		case "PUT /api/courses/2":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{
				"data": course.Course{ID: 2, Code: "GO-102", Name: "Go Advanced"},
			})
		case "DELETE /api/courses/2":
			writeJSON(t, w, http.StatusOK, map[string]interface{}{"message": "course deleted"})
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	a := NewWithClient(NewClient(srv.URL))
	ctx := context.Background()

	list, err := a.Courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)

	added, err := a.Courses.Add(ctx, course.NewCourse{Code: "GO-102", Name: "Go Advanced"})
	require.NoError(t, err)
	assert.Equal(t, 2, added.Data.ID)

	updated, err := a.Courses.Update(ctx, 2, course.UpdateCourse{Code: "GO-102"})
	require.NoError(t, err)
	assert.Equal(t, "GO-102", updated.Data.Code)

	deleted, err := a.Courses.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "course deleted", deleted.Message)
}
