package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"result-portal/app/models"
	"result-portal/app/services"
)

type memAdminStore struct {
	admins map[string]*models.Admin
}

func (s *memAdminStore) GetByUsername(username string) (*models.Admin, error) {
	admin, ok := s.admins[username]
	if !ok {
		return nil, services.ErrNotFound
	}
	return admin, nil
}

func (s *memAdminStore) UpdatePassword(id string, hashedPassword string) error {
	for _, admin := range s.admins {
		if admin.ID == id {
			admin.Password = hashedPassword
			return nil
		}
	}
	return services.ErrNotFound
}

const testSecret = "guard-test-secret"

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	hash, err := services.HashPassword("correct-horse")
	require.NoError(t, err)
	store := &memAdminStore{admins: map[string]*models.Admin{
		"headmaster": {ID: "a1", Username: "headmaster", Password: hash},
	}}

	issuer := services.NewSessionIssuer(store, []byte(testSecret), time.Hour)
	h := NewHandler(issuer, []byte(testSecret), time.Hour, false)

	app := fiber.New()
	SetupAuthRoutes(app, h)

	// Guarded API route, mirrors the results surface.
	app.Get("/results", h.RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	return app, h
}

func validToken(t *testing.T, h *Handler) string {
	t.Helper()
	token, err := h.Issuer.IssueSession("headmaster", "correct-horse")
	require.NoError(t, err)
	return token
}

func expiredToken(t *testing.T, h *Handler) string {
	t.Helper()
	expired := services.NewSessionIssuer(h.Issuer.Admins, []byte(testSecret), -time.Minute)
	token, err := expired.IssueSession("headmaster", "correct-horse")
	require.NoError(t, err)
	return token
}

func get(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRequireAuth_NoCookieRedirectsToSignIn(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/teacher-dashboard", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in", resp.Header.Get("Location"))
}

func TestRequireAuth_TamperedTokenRedirects(t *testing.T) {
	app, h := newTestApp(t)

	token := validToken(t, h) + "x"
	resp := get(t, app, "/teacher-dashboard", token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in", resp.Header.Get("Location"))
}

func TestRequireAuth_ExpiredTokenRedirects(t *testing.T) {
	app, h := newTestApp(t)

	resp := get(t, app, "/teacher-dashboard", expiredToken(t, h))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sign-in", resp.Header.Get("Location"))
}

func TestRequireAuth_ValidTokenPassesThrough(t *testing.T) {
	app, h := newTestApp(t)

	resp := get(t, app, "/teacher-dashboard", validToken(t, h))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAuth_APIRouteGets401NotRedirect(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/results", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
}

func TestSignIn_RedirectsAuthenticatedAdmin(t *testing.T) {
	app, h := newTestApp(t)

	resp := get(t, app, "/sign-in", validToken(t, h))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/teacher-dashboard", resp.Header.Get("Location"))
}

func TestSignIn_AllowsAnonymousAndInvalidTokens(t *testing.T) {
	app, h := newTestApp(t)

	resp := get(t, app, "/sign-in", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/sign-in", expiredToken(t, h))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	app, _ := newTestApp(t)

	body, _ := json.Marshal(map[string]string{
		"username": "headmaster",
		"password": "correct-horse",
	})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "login must set the session cookie")
	assert.True(t, sessionCookie.HttpOnly)
	assert.NotEmpty(t, sessionCookie.Value)

	// The issued cookie must satisfy the guard.
	resp = get(t, app, "/teacher-dashboard", sessionCookie.Value)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_RejectsBadCredentialsUniformly(t *testing.T) {
	app, _ := newTestApp(t)

	for _, creds := range []map[string]string{
		{"username": "headmaster", "password": "wrong"},
		{"username": "nobody", "password": "whatever"},
	} {
		body, _ := json.Marshal(creds)
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "Invalid username or password", payload["error"])
	}
}

func TestChangePassword_UnknownAdminIs404(t *testing.T) {
	app, _ := newTestApp(t)

	body, _ := json.Marshal(map[string]string{
		"username":        "nobody",
		"currentPassword": "x",
		"newPassword":     "y",
	})
	req := httptest.NewRequest(http.MethodPut, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogout_ClearsCookie(t *testing.T) {
	app, _ := newTestApp(t)

	resp := get(t, app, "/logout", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			assert.Empty(t, c.Value)
			assert.True(t, c.Expires.Before(time.Now()) || c.MaxAge < 0)
			assert.True(t, c.HttpOnly)
			// The clearing cookie must carry the same attributes as the
			// one set on login, or some user agents keep the original.
			assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
			return
		}
	}
	t.Fatal("logout must overwrite the session cookie")
}
