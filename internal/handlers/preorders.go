package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/moeeznaveed278/myplug/internal/models"
	"github.com/moeeznaveed278/myplug/internal/store"
)

// PreorderHandler takes requests for out-of-stock sizes.
type PreorderHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *PreorderHandler) Form(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("product_id")
	size := r.URL.Query().Get("size")

	product, err := h.Store.GetProductByID(productID)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("preorder.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Product":   product,
		"Size":      size,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *PreorderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "public-session")
	defer session.Save(r, w)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	preorder := &models.Preorder{
		CustomerName: r.FormValue("customer_name"),
		PhoneNumber:  r.FormValue("phone_number"),
		Instagram:    r.FormValue("instagram"),
		ProductName:  r.FormValue("product_name"),
		ProductImage: r.FormValue("product_image"),
		Size:         r.FormValue("size"),
		Status:       models.PreorderPending,
	}

	// Validation
	errors := make(map[string]string)
	if preorder.CustomerName == "" {
		errors["customer_name"] = "Your name is required."
	}
	if preorder.PhoneNumber == "" {
		errors["phone_number"] = "Phone number is required."
	}
	if preorder.ProductName == "" {
		errors["product_name"] = "Product name is required."
	}
	if preorder.Size == "" {
		errors["size"] = "Size is required."
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, r.Referer(), http.StatusSeeOther)
		return
	}

	if err := h.Store.CreatePreorder(preorder); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to submit preorder. Please try again."})
		http.Redirect(w, r, r.Referer(), http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Preorder request received! We'll contact you when it's available."})
	http.Redirect(w, r, "/shop", http.StatusSeeOther)
}
