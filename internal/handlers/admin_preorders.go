package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
)

func (h *AdminHandler) ListPreorders(w http.ResponseWriter, r *http.Request) {
	preorders, err := h.Store.ListPreorders()
	if err != nil {
		http.Error(w, "Error fetching preorders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_preorders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Preorders": preorders,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdatePreorderStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	status := r.FormValue("status")

	if err := h.Store.UpdatePreorderStatus(id, status); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to update preorder status."})
		http.Redirect(w, r, "/admin/preorders", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Preorder updated!"})
	http.Redirect(w, r, "/admin/preorders", http.StatusSeeOther)
}

func (h *AdminHandler) DeletePreorder(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := h.Store.DeletePreorder(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to delete preorder."})
		http.Redirect(w, r, "/admin/preorders", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Preorder deleted."})
	http.Redirect(w, r, "/admin/preorders", http.StatusSeeOther)
}
