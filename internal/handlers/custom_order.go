package handlers

import (
	"net/http"

	"github.com/athanas-ai/nakhasbit/internal/config"
	"github.com/athanas-ai/nakhasbit/internal/models"
	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/athanas-ai/nakhasbit/internal/whatsapp"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type OrderHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Cfg          *config.Config
}

func (h *OrderHandler) CustomOrderForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("custom_order.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, ShopSessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// SubmitCustomOrder validates and persists a custom order, then redirects
// the visitor to a wa.me link that opens a pre-filled chat with the shop
// owner. The server never sends anything itself; the visitor's browser
// completes delivery.
func (h *OrderHandler) SubmitCustomOrder(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, ShopSessionName)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		session.Save(r, w)
		http.Redirect(w, r, "/custom_order", http.StatusSeeOther)
		return
	}

	order := &models.CustomOrder{
		ProductType: r.FormValue("product_type"),
		Material:    r.FormValue("material"),
		Color:       r.FormValue("color"),
		Occasion:    r.FormValue("occasion"),
		Size:        r.FormValue("size"),
		Notes:       r.FormValue("notes"),
		Name:        r.FormValue("name"),
		Phone:       r.FormValue("phone"),
	}

	// Validation
	errors := make(map[string]string)
	if order.ProductType == "" {
		errors["product_type"] = "Product type is required."
	}
	if order.Name == "" {
		errors["name"] = "Your name is required."
	}
	if order.Phone == "" {
		errors["phone"] = "Phone number is required."
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/custom_order", http.StatusSeeOther)
		return
	}

	if err := h.Store.CreateCustomOrder(order); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to submit your order. Please try again."})
		session.Save(r, w)
		http.Redirect(w, r, "/custom_order", http.StatusSeeOther)
		return
	}

	ownerNumber := h.Store.EffectiveWhatsAppNumber(h.Cfg.WhatsAppNumber)
	link := whatsapp.CustomOrderNotification(ownerNumber, whatsapp.OrderDetails{
		ProductType: order.ProductType,
		Material:    order.Material,
		Color:       order.Color,
		Occasion:    order.Occasion,
		Size:        order.Size,
		Notes:       order.Notes,
		Name:        order.Name,
		Phone:       order.Phone,
	})

	session.Save(r, w)
	http.Redirect(w, r, link, http.StatusSeeOther)
}
