package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finlight/dashboard-be/internal/auth"
	"github.com/finlight/dashboard-be/internal/middleware"
	"github.com/finlight/dashboard-be/internal/models"
	"github.com/finlight/dashboard-be/internal/storage"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type memoryUserStore struct {
	users map[string]models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[string]models.User{}}
}

func (m *memoryUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (m *memoryUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (m *memoryUserStore) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	m.users[user.ID] = user
	return user, nil
}

func (m *memoryUserStore) ListUsers(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

// newAuthServer assembles the real request pipeline: session middleware in
// front of the auth handlers plus a protected probe route.
func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	codec := auth.NewTokenCodec(testSecret, 900*time.Second)
	policy := auth.NewSessionPolicy(900*time.Second, 120*time.Second, 30*24*time.Hour)
	authorizer := auth.NewRouteAuthorizer()
	svc := auth.NewService(newMemoryUserStore(), auth.NewPasswordHasher(4), codec)

	mux := http.NewServeMux()
	NewAuthHandler(svc).Register(mux)
	mux.HandleFunc("/dashboard/summary", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ts := httptest.NewServer(middleware.Session(codec, policy, authorizer, mux))
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestSignupLoginLogoutFlow(t *testing.T) {
	ts := newAuthServer(t)
	client := newClient(t)

	// Signup auto-logs-in: the protected route must open right away.
	resp := postJSON(t, client, ts.URL+"/signup", map[string]string{
		"email":    "flow@example.com",
		"username": "flowtester",
		"password": "longenoughpw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err := client.Get(ts.URL + "/dashboard/summary")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Logout clears the cookie and the same route now redirects to login.
	resp = postJSON(t, client, ts.URL+"/logout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	resp, err = client.Get(ts.URL + "/dashboard/summary")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	// Logging back in restores access.
	resp = postJSON(t, client, ts.URL+"/login", map[string]string{
		"email":    "flow@example.com",
		"password": "longenoughpw",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(ts.URL + "/dashboard/summary")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginSetsHttpOnlyStrictCookie(t *testing.T) {
	ts := newAuthServer(t)
	client := newClient(t)

	resp := postJSON(t, client, ts.URL+"/signup", map[string]string{
		"email":    "cookie@example.com",
		"username": "cookiecheck",
		"password": "longenoughpw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "signup must set the session cookie")
	require.True(t, sessionCookie.HttpOnly)
	require.Equal(t, "/", sessionCookie.Path)
	require.Equal(t, http.SameSiteStrictMode, sessionCookie.SameSite)
	require.Greater(t, sessionCookie.MaxAge, 0)
}

func TestLoginWithBadCredentials(t *testing.T) {
	ts := newAuthServer(t)
	client := newClient(t)

	resp := postJSON(t, client, ts.URL+"/signup", map[string]string{
		"email":    "creds@example.com",
		"username": "credscheck",
		"password": "longenoughpw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = postJSON(t, client, ts.URL+"/logout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = postJSON(t, client, ts.URL+"/login", map[string]string{
		"email":    "creds@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, client, ts.URL+"/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "longenoughpw",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	ts := newAuthServer(t)

	first := newClient(t)
	resp := postJSON(t, first, ts.URL+"/signup", map[string]string{
		"email":    "dup@example.com",
		"username": "original",
		"password": "longenoughpw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	second := newClient(t)
	resp = postJSON(t, second, ts.URL+"/signup", map[string]string{
		"email":    "dup@example.com",
		"username": "imposter",
		"password": "longenoughpw",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSignupValidationDetail(t *testing.T) {
	ts := newAuthServer(t)
	client := newClient(t)

	resp := postJSON(t, client, ts.URL+"/signup", map[string]string{
		"email":    "broken",
		"username": "ab",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope struct {
		Data struct {
			Fields map[string]string `json:"fields"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Contains(t, envelope.Data.Fields, "email")
	require.Contains(t, envelope.Data.Fields, "username")
	require.Contains(t, envelope.Data.Fields, "password")
}

func TestLogoutIsIdempotent(t *testing.T) {
	ts := newAuthServer(t)
	client := newClient(t)

	// No session at all: logout still lands on login without erroring.
	resp := postJSON(t, client, ts.URL+"/logout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}
