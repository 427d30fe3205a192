package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

func newAdminHandler(t *testing.T) *AdminHandler {
	t.Helper()
	return &AdminHandler{
		Store:        newTestStore(t),
		SessionStore: sessions.NewCookieStore([]byte("test-key")),
		Templates:    NewTemplateCache(),
		Cfg:          testConfig(),
	}
}

// authenticate marks the request's admin session as logged in. The session
// registry is cached on the request, so the handler under test sees the
// same session values.
func authenticate(t *testing.T, h *AdminHandler, r *http.Request) {
	t.Helper()
	admin, err := h.Store.GetAdminByUsername("Nakha")
	if err != nil || admin == nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	session, _ := h.SessionStore.Get(r, AdminSessionName)
	session.Values["authenticated"] = true
	session.Values["admin_id"] = admin.ID
}

// sessionCookiePresent reports whether the response set the named session
// cookie. Flashes only survive a redirect when the save happened before the
// redirect wrote the response headers.
func sessionCookiePresent(w *httptest.ResponseRecorder, name string) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return true
		}
	}
	return false
}

func TestAuthMiddlewareRedirectsAnonymous(t *testing.T) {
	h := newAdminHandler(t)

	called := false
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	protected(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	if called {
		t.Error("protected handler must not run without an admin session")
	}
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/admin/login" {
		t.Errorf("expected redirect to /admin/login, got %q", location)
	}
}

func TestAuthMiddlewareAllowsAuthenticated(t *testing.T) {
	h := newAdminHandler(t)

	called := false
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	authenticate(t, h, r)
	protected(httptest.NewRecorder(), r)

	if !called {
		t.Error("protected handler should run for an authenticated session")
	}
}

func TestLoginPost(t *testing.T) {
	h := newAdminHandler(t)

	tests := []struct {
		name         string
		username     string
		password     string
		wantLocation string
	}{
		{"valid credentials", "Nakha", "123456", "/admin/dashboard"},
		{"wrong password", "Nakha", "wrong", "/admin/login"},
		{"unknown user", "nobody", "123456", "/admin/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"username": {tt.username}, "password": {tt.password}}
			w := httptest.NewRecorder()
			h.LoginPost(w, postForm("/admin/login", form))

			if w.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", w.Code)
			}
			if location := w.Header().Get("Location"); location != tt.wantLocation {
				t.Errorf("expected redirect to %q, got %q", tt.wantLocation, location)
			}
		})
	}
}

func TestUpdateAccountMismatchedConfirmationChangesNothing(t *testing.T) {
	h := newAdminHandler(t)

	before, _ := h.Store.GetAdminByUsername("Nakha")

	form := url.Values{
		"form_type":        {"account"},
		"current_password": {"123456"},
		"new_username":     {"Renamed"},
		"new_password":     {"abcdef"},
		"confirm_password": {"different"},
	}
	r := postForm("/admin/settings", form)
	authenticate(t, h, r)
	w := httptest.NewRecorder()
	h.UpdateSettings(w, r)

	if location := w.Header().Get("Location"); location != "/admin/settings" {
		t.Errorf("expected redirect back to settings, got %q", location)
	}
	if !sessionCookiePresent(w, AdminSessionName) {
		t.Error("redirect must carry the session cookie so the error flash survives")
	}

	after, err := h.Store.GetAdminByID(before.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.PasswordHash != before.PasswordHash {
		t.Error("password hash must be unchanged after a mismatched confirmation")
	}
	if after.Username != "Nakha" {
		t.Errorf("username change must not apply when the paired password change fails, got %q", after.Username)
	}
}

func TestUpdateAccountWrongCurrentPassword(t *testing.T) {
	h := newAdminHandler(t)

	before, _ := h.Store.GetAdminByUsername("Nakha")

	form := url.Values{
		"form_type":        {"account"},
		"current_password": {"not-the-password"},
		"new_password":     {"abcdef"},
		"confirm_password": {"abcdef"},
	}
	r := postForm("/admin/settings", form)
	authenticate(t, h, r)
	h.UpdateSettings(httptest.NewRecorder(), r)

	after, _ := h.Store.GetAdminByID(before.ID)
	if after.PasswordHash != before.PasswordHash {
		t.Error("credentials must not change without the correct current password")
	}
}

func TestUpdateAccountSuccess(t *testing.T) {
	h := newAdminHandler(t)

	before, _ := h.Store.GetAdminByUsername("Nakha")

	form := url.Values{
		"form_type":        {"account"},
		"current_password": {"123456"},
		"new_username":     {"Juliette"},
		"new_password":     {"s3cret-long"},
		"confirm_password": {"s3cret-long"},
	}
	r := postForm("/admin/settings", form)
	authenticate(t, h, r)
	w := httptest.NewRecorder()
	h.UpdateSettings(w, r)

	if location := w.Header().Get("Location"); location != "/admin/dashboard" {
		t.Errorf("expected redirect to dashboard, got %q", location)
	}

	after, err := h.Store.GetAdminByID(before.ID)
	if err != nil {
		t.Fatal(err)
	}
	if after.Username != "Juliette" {
		t.Errorf("username not updated: %q", after.Username)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(after.PasswordHash), []byte("s3cret-long")); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}
}

func TestUpdateWhatsAppNumber(t *testing.T) {
	h := newAdminHandler(t)

	form := url.Values{
		"form_type":       {"whatsapp"},
		"whatsapp_number": {"1112223333"},
	}
	r := postForm("/admin/settings", form)
	authenticate(t, h, r)
	h.UpdateSettings(httptest.NewRecorder(), r)

	if got := h.Store.EffectiveWhatsAppNumber("fallback"); got != "1112223333" {
		t.Errorf("number not stored, got %q", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"basket.jpg", "basket.jpg"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil", "evil"},
		{"my photo (1)", "my-photo-1"},
		{"...", "upload"},
		{"", "upload"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
