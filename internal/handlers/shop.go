package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/athanas-ai/nakhasbit/internal/config"
	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/gorilla/sessions"
)

// featuredLimit caps how many available products the landing page shows.
const featuredLimit = 4

type ShopHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Cfg          *config.Config
}

func (h *ShopHandler) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAvailableProducts(featuredLimit)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, ShopSessionName)
	data := map[string]interface{}{
		"Products":       products,
		"WhatsAppNumber": h.Store.EffectiveWhatsAppNumber(h.Cfg.WhatsAppNumber),
		"Flashes":        GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, ShopSessionName)
	data := map[string]interface{}{
		"Products": products,
		"Flashes":  GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("product_detail.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Product": product,
	})
}

func (h *ShopHandler) About(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("about.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, nil)
}

func (h *ShopHandler) Contact(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("contact.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"WhatsAppNumber": h.Store.EffectiveWhatsAppNumber(h.Cfg.WhatsAppNumber),
	})
}
