package handlers

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"log/slog"

	"github.com/athanas-ai/nakhasbit/internal/models"
	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"
	"github.com/shopspring/decimal"
)

func (h *AdminHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_product_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, AdminSessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"Product":   nil,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, AdminSessionName)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large."})
		session.Save(r, w) // Save before redirect
		http.Redirect(w, r, "/admin/product/new", http.StatusSeeOther)
		return
	}

	product, errs := h.productFromForm(r)
	if len(errs) > 0 {
		for _, msg := range errs {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/admin/product/new", http.StatusSeeOther)
		return
	}

	filename, err := h.saveUpload(r)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/product/new", http.StatusSeeOther)
		return
	}
	product.Image = filename

	if err := h.Store.CreateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product to database."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/product/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product added successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
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

	tmpl := h.Templates.Get("admin_product_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, AdminSessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"Product":   product,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, AdminSessionName)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if _, err := h.Store.GetProductByID(id); errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large."})
		session.Save(r, w) // Save before redirect
		http.Redirect(w, r, fmt.Sprintf("/admin/product/edit/%d", id), http.StatusSeeOther)
		return
	}

	product, errs := h.productFromForm(r)
	if len(errs) > 0 {
		for _, msg := range errs {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		session.Save(r, w)
		http.Redirect(w, r, fmt.Sprintf("/admin/product/edit/%d", id), http.StatusSeeOther)
		return
	}
	product.ID = id

	// Validate and store the optional upload before touching the record,
	// so a rejected file leaves the product entirely unchanged.
	filename, err := h.saveUpload(r)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, fmt.Sprintf("/admin/product/edit/%d", id), http.StatusSeeOther)
		return
	}

	if err := h.Store.UpdateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product."})
		session.Save(r, w)
		http.Redirect(w, r, fmt.Sprintf("/admin/product/edit/%d", id), http.StatusSeeOther)
		return
	}

	// The image reference only changes when a new file was supplied.
	if filename != "" {
		if err := h.Store.UpdateProductImage(id, filename); err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product image."})
			session.Save(r, w)
			http.Redirect(w, r, fmt.Sprintf("/admin/product/edit/%d", id), http.StatusSeeOther)
			return
		}
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product updated successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, AdminSessionName)

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

	if err := h.Store.DeleteProduct(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		session.Save(r, w) // Save before redirect
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}

	// A missing or locked file must not block record deletion.
	if product.Image != "" {
		if err := os.Remove(filepath.Join(h.Cfg.UploadDir, product.Image)); err != nil {
			slog.Warn("Failed to remove product image file", "image", product.Image, "error", err)
		}
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// productFromForm validates the shared create/edit form fields and returns
// either a populated product or the full list of validation messages.
func (h *AdminHandler) productFromForm(r *http.Request) (*models.Product, map[string]string) {
	name := r.FormValue("name")
	description := r.FormValue("description")
	priceStr := r.FormValue("price")
	availability := r.FormValue("availability")
	if availability == "" {
		availability = models.AvailabilityAvailable
	}

	errs := make(map[string]string)
	if name == "" {
		errs["name"] = "Name is required."
	}
	if description == "" {
		errs["description"] = "Description is required."
	}
	price, err := decimal.NewFromString(priceStr)
	if priceStr == "" {
		errs["price"] = "Price is required."
	} else if err != nil {
		errs["price"] = "Invalid price format."
	} else if price.IsNegative() {
		errs["price"] = "Price must not be negative."
	}
	if !models.ValidAvailability(availability) {
		errs["availability"] = "Invalid availability selected."
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &models.Product{
		Name:         name,
		Description:  description,
		Price:        price,
		Availability: availability,
		Size:         r.FormValue("size"),
		Color:        r.FormValue("color"),
	}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeFilename reduces an uploaded filename to a safe base name:
// any path components are stripped and unsafe characters collapse to "-".
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFilenameChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, ".-")
	if base == "" {
		base = "upload"
	}
	return base
}

// saveUpload stores an optional uploaded image: decoded, resized to a max
// width of 800px, re-encoded as JPEG and written under the upload dir with
// a uuid-prefixed sanitized name so repeated uploads never collide.
// Returns the stored filename, or "" when no file was supplied.
func (h *AdminHandler) saveUpload(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading uploaded file: %w", err)
	}
	defer file.Close()

	var img image.Image
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", fmt.Errorf("unsupported image format %q; only PNG, JPG, JPEG are allowed", ext)
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	base := sanitizeFilename(strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)))
	filename := fmt.Sprintf("%s-%s.jpg", uuid.New().String(), base)

	out, err := os.Create(filepath.Join(h.Cfg.UploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("error saving image file: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("error encoding image: %w", err)
	}

	return filename, nil
}
