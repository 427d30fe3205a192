package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/gorilla/csrf"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func (h *AdminHandler) SettingsForm(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.GetSettings()
	if err != nil {
		http.Error(w, "Error fetching settings", http.StatusInternalServerError)
		return
	}
	currentNumber := h.Cfg.WhatsAppNumber
	if settings != nil {
		currentNumber = settings.WhatsAppNumber
	}

	tmpl := h.Templates.Get("admin_settings.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, AdminSessionName)
	data := map[string]interface{}{
		"CsrfField":     csrf.TemplateField(r),
		"Flashes":       GetFlash(session),
		"CurrentNumber": currentNumber,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateSettings handles both sub-forms of the settings page, selected by
// the form_type field: the owner contact number and the admin credentials.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, AdminSessionName)

	switch r.FormValue("form_type") {
	case "whatsapp":
		number := strings.TrimSpace(r.FormValue("whatsapp_number"))
		if number == "" {
			session.AddFlash(FlashMessage{Type: "error", Message: "WhatsApp number is required."})
			session.Save(r, w) // Save before redirect
			http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
			return
		}
		if err := h.Store.UpdateWhatsAppNumber(number); err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error saving WhatsApp number."})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
			return
		}
		session.AddFlash(FlashMessage{Type: "success", Message: "WhatsApp number updated successfully!"})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)

	case "account":
		h.updateAccount(w, r)

	default:
		session.AddFlash(FlashMessage{Type: "error", Message: "Unknown settings form."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
	}
}

// updateAccount changes the logged-in admin's username and/or password.
// Every check runs before anything is written, and both fields commit in a
// single update: a failed password confirmation also discards a pending
// username change.
func (h *AdminHandler) updateAccount(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, AdminSessionName)

	admin, err := h.Store.GetAdminByID(sessionAdminID(session))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not load your account. Please log in again."})
		session.Save(r, w) // Save before redirect
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	currentPassword := r.FormValue("current_password")
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Current password is incorrect!"})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	newUsername := strings.TrimSpace(r.FormValue("new_username"))
	newPassword := strings.TrimSpace(r.FormValue("new_password"))
	confirmPassword := strings.TrimSpace(r.FormValue("confirm_password"))

	username := admin.Username
	if newUsername != "" && newUsername != admin.Username {
		username = newUsername
	}

	passwordHash := admin.PasswordHash
	if newPassword != "" {
		if newPassword != confirmPassword {
			session.AddFlash(FlashMessage{Type: "error", Message: "Passwords do not match!"})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
			return
		}
		if len(newPassword) < minPasswordLength {
			session.AddFlash(FlashMessage{Type: "error", Message: "Password must be at least 6 characters long!"})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error updating password."})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
			return
		}
		passwordHash = string(hash)
	}

	if username == admin.Username && passwordHash == admin.PasswordHash {
		session.AddFlash(FlashMessage{Type: "success", Message: "Nothing to update."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	if err := h.Store.UpdateAdminCredentials(admin.ID, username, passwordHash); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Username already exists!"})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error updating account."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	if username != admin.Username {
		session.AddFlash(FlashMessage{Type: "success", Message: "Username updated to: " + username})
	}
	if passwordHash != admin.PasswordHash {
		session.AddFlash(FlashMessage{Type: "success", Message: "Password updated successfully!"})
	}
	session.Save(r, w)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}
