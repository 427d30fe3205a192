package handlers

import (
	"log/slog"
	"net/http"

	"github.com/athanas-ai/nakhasbit/internal/config"
	"github.com/athanas-ai/nakhasbit/internal/models"
	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/athanas-ai/nakhasbit/internal/whatsapp"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
	Cfg          *config.Config
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, AdminSessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, AdminSessionName)

	username := r.FormValue("username")
	password := r.FormValue("password")

	admin, err := h.Store.GetAdminByUsername(username)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if admin == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid credentials"})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid credentials"})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	// Track the admin's identity, not just a boolean: credential updates
	// later resolve the account through this id.
	session.Values["authenticated"] = true
	session.Values["admin_id"] = admin.ID
	session.Options.Path = "/"
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + admin.Username + "!"})

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful, redirecting to /admin/dashboard", "admin_id", admin.ID)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, AdminSessionName)
	session.Values["authenticated"] = false
	delete(session.Values, "admin_id")
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AuthMiddleware ensures the admin is logged in before reaching any
// admin-only route; anyone else is bounced to the login page.
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, AdminSessionName)
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			slog.Info("Unauthenticated admin request, redirecting to login", "path", r.URL.Path)
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// sessionAdminID returns the logged-in admin's id, or 0 if the session
// somehow lacks one.
func sessionAdminID(session *sessions.Session) int {
	if id, ok := session.Values["admin_id"].(int); ok {
		return id
	}
	return 0
}

// orderView pairs a custom order with a ready-made wa.me confirmation link
// so the dashboard can offer one-click customer contact.
type orderView struct {
	models.CustomOrder
	ContactLink string
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	orders, err := h.Store.GetAllCustomOrders()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView{
			CustomOrder: o,
			ContactLink: whatsapp.OrderConfirmation(o.Phone, o.ID, o.ProductType),
		})
	}

	tmpl := h.Templates.Get("admin_dashboard.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, AdminSessionName)
	data := map[string]interface{}{
		"Products":  products,
		"Orders":    views,
		"Stats":     stats,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
