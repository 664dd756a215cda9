package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/moeeznaveed278/myplug/internal/checkout"
)

type CheckoutHandler struct {
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Checkout     *checkout.Service
}

// Begin validates the session cart and redirects to the hosted payment
// page. Validation and gateway failures surface inline on the cart page.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cartSessionName)

	c := loadCart(session)
	if c.Empty() {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	url, err := h.Checkout.Begin(c)
	if err != nil {
		var stockErr *checkout.StockError
		if errors.As(err, &stockErr) {
			session.AddFlash(FlashMessage{Type: "error", Message: stockErr.Message})
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: "Failed to create checkout session. Please try again."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	session.Save(r, w)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Success is the return page after payment; it clears the cart. The order
// itself is fulfilled by the webhook, not here.
func (h *CheckoutHandler) Success(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cartSessionName)

	c := loadCart(session)
	c.Clear()
	saveCart(session, c)
	session.Save(r, w)

	tmpl := h.Templates.Get("checkout_success.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, nil)
}
