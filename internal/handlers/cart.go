package handlers

import (
	"net/http"
	"strconv"

	"github.com/athanas-ai/nakhasbit/internal/cart"
	"github.com/athanas-ai/nakhasbit/internal/config"
	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/gorilla/sessions"
)

type CartHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Cfg          *config.Config
}

func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, ShopSessionName)

	c := cart.FromSession(session)
	lines, total, err := cart.Resolve(c, h.Store.GetProductByID)
	if err != nil {
		http.Error(w, "Error loading cart", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Lines":          lines,
		"Total":          total,
		"WhatsAppNumber": h.Store.EffectiveWhatsAppNumber(h.Cfg.WhatsAppNumber),
		"Flashes":        GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session, _ := h.SessionStore.Get(r, ShopSessionName)
	c := cart.FromSession(session)
	c.Add(id)
	c.Save(session)
	session.AddFlash(FlashMessage{Type: "success", Message: "Product added to cart!"})
	session.Save(r, w)

	http.Redirect(w, r, "/products", http.StatusSeeOther)
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	session, _ := h.SessionStore.Get(r, ShopSessionName)
	c := cart.FromSession(session)
	c.Remove(id)
	c.Save(session)
	session.Save(r, w)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
