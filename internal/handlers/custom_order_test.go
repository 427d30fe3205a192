package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/athanas-ai/nakhasbit/internal/config"
	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/gorilla/sessions"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	s.DB.SetMaxOpenConns(1)
	t.Cleanup(func() { s.DB.Close() })
	if err := s.InitSchema(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	if err := s.Seed("Nakha", "9863824320"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func testConfig() *config.Config {
	return &config.Config{
		UploadDir:      "uploads",
		MaxUploadSize:  16 << 20,
		WhatsAppNumber: "9863824320",
		AdminUsername:  "Nakha",
	}
}

func postForm(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestSubmitCustomOrderRedirectsToChatLink(t *testing.T) {
	db := newTestStore(t)
	h := &OrderHandler{
		Store:        db,
		Templates:    NewTemplateCache(),
		SessionStore: sessions.NewCookieStore([]byte("test-key")),
		Cfg:          testConfig(),
	}

	form := url.Values{
		"product_type": {"Basket"},
		"name":         {"Asha"},
		"phone":        {"9876543210"},
	}
	w := httptest.NewRecorder()
	h.SubmitCustomOrder(w, postForm("/custom_order", form))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "https://wa.me/919863824320?text=") {
		t.Errorf("redirect should target the owner's chat link, got %q", location)
	}

	orders, err := db.GetAllCustomOrders()
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 persisted order, got %d", len(orders))
	}
	if orders[0].ProductType != "Basket" || orders[0].Name != "Asha" || orders[0].Phone != "9876543210" {
		t.Errorf("persisted order mismatch: %+v", orders[0])
	}
}

func TestSubmitCustomOrderMissingNameFails(t *testing.T) {
	db := newTestStore(t)
	h := &OrderHandler{
		Store:        db,
		Templates:    NewTemplateCache(),
		SessionStore: sessions.NewCookieStore([]byte("test-key")),
		Cfg:          testConfig(),
	}

	form := url.Values{
		"product_type": {"Basket"},
		"name":         {""},
		"phone":        {"9876543210"},
	}
	w := httptest.NewRecorder()
	h.SubmitCustomOrder(w, postForm("/custom_order", form))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/custom_order" {
		t.Errorf("validation failure should redirect back to the form, got %q", location)
	}

	count, err := db.GetTotalCustomOrdersCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("no order row should exist after a validation failure, got %d", count)
	}
}

func TestSubmitCustomOrderUsesStoredOwnerNumber(t *testing.T) {
	db := newTestStore(t)
	if err := db.UpdateWhatsAppNumber("1234567890"); err != nil {
		t.Fatal(err)
	}
	h := &OrderHandler{
		Store:        db,
		Templates:    NewTemplateCache(),
		SessionStore: sessions.NewCookieStore([]byte("test-key")),
		Cfg:          testConfig(),
	}

	form := url.Values{
		"product_type": {"Wall Basket"},
		"name":         {"Ravi"},
		"phone":        {"9876543210"},
	}
	w := httptest.NewRecorder()
	h.SubmitCustomOrder(w, postForm("/custom_order", form))

	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "https://wa.me/911234567890?text=") {
		t.Errorf("redirect should use the settings-row number, got %q", location)
	}
}
