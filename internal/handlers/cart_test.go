package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/athanas-ai/nakhasbit/internal/cart"
	"github.com/gorilla/sessions"
)

func newCartHandler(t *testing.T) *CartHandler {
	t.Helper()
	return &CartHandler{
		Store:        newTestStore(t),
		Templates:    NewTemplateCache(),
		SessionStore: sessions.NewCookieStore([]byte("test-key")),
		Cfg:          testConfig(),
	}
}

func TestAddToCartAccumulates(t *testing.T) {
	h := newCartHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/add_to_cart/7", nil)
	r.SetPathValue("id", "7")

	w := httptest.NewRecorder()
	h.AddToCart(w, r)
	if location := w.Header().Get("Location"); location != "/products" {
		t.Errorf("add should redirect to the catalog, got %q", location)
	}

	// Same request carries the same session registry, so this models a
	// second click within one browsing session.
	h.AddToCart(httptest.NewRecorder(), r)

	session, _ := h.SessionStore.Get(r, ShopSessionName)
	c := cart.FromSession(session)
	if len(c) != 1 || c[7] != 2 {
		t.Errorf("expected single entry with quantity 2, got %v", c)
	}
}

func TestRemoveFromCart(t *testing.T) {
	h := newCartHandler(t)

	r := httptest.NewRequest(http.MethodGet, "/remove_from_cart/7", nil)
	r.SetPathValue("id", "7")

	session, _ := h.SessionStore.Get(r, ShopSessionName)
	c := cart.Cart{7: 2, 9: 1}
	c.Save(session)

	w := httptest.NewRecorder()
	h.RemoveFromCart(w, r)
	if location := w.Header().Get("Location"); location != "/cart" {
		t.Errorf("remove should redirect to the cart, got %q", location)
	}

	got := cart.FromSession(session)
	if _, ok := got[7]; ok {
		t.Error("entry should be gone after removal")
	}
	if got[9] != 1 {
		t.Errorf("unrelated entry must survive, got %v", got)
	}

	// Removing an id that is not present leaves the cart untouched.
	r2 := httptest.NewRequest(http.MethodGet, "/remove_from_cart/42", nil)
	r2.SetPathValue("id", "42")
	session2, _ := h.SessionStore.Get(r2, ShopSessionName)
	cart.Cart{9: 1}.Save(session2)
	h.RemoveFromCart(httptest.NewRecorder(), r2)
	if got := cart.FromSession(session2); len(got) != 1 || got[9] != 1 {
		t.Errorf("removing absent id should be a no-op, got %v", got)
	}
}

func TestProductDetailNotFound(t *testing.T) {
	h := &ShopHandler{
		Store:        newTestStore(t),
		Templates:    NewTemplateCache(),
		SessionStore: sessions.NewCookieStore([]byte("test-key")),
		Cfg:          testConfig(),
	}

	r := httptest.NewRequest(http.MethodGet, "/product/999", nil)
	r.SetPathValue("id", "999")
	w := httptest.NewRecorder()
	h.ProductDetail(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
}
