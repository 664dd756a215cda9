package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/moeeznaveed278/myplug/internal/cart"
	"github.com/moeeznaveed278/myplug/internal/checkout"
	"github.com/moeeznaveed278/myplug/internal/models"
	"github.com/moeeznaveed278/myplug/internal/store"
)

const cartSessionName = "cart-session"

type CartHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// loadCart reads the cart out of the session, or starts a fresh one.
func loadCart(session *sessions.Session) *cart.Cart {
	if v, ok := session.Values["cart"].(cart.Cart); ok {
		c := v
		if c.DeliveryMethod == "" {
			c.DeliveryMethod = cart.DeliveryStandard
		}
		return &c
	}
	return cart.New()
}

func saveCart(session *sessions.Session, c *cart.Cart) {
	session.Values["cart"] = *c
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cartSessionName)
	c := loadCart(session)

	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Cart":        c,
		"Subtotal":    c.Subtotal(),
		"ShippingFee": float64(checkout.ShippingFeeMinor(c.DeliveryMethod)) / 100,
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cartSessionName)
	defer session.Save(r, w)

	productID := r.FormValue("product_id")
	size := r.FormValue("size")
	quantity := 1
	if q, err := strconv.Atoi(r.FormValue("quantity")); err == nil && q > 0 {
		quantity = q
	}

	product, err := h.Store.GetProductByID(productID)
	if err != nil || product.IsArchived {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}

	// Cap quantity at the stock seen right now. Products without size rows
	// get the implicit One Size variant with an assumed ceiling; the cap is
	// UI-level only, the checkout re-validates real sizes.
	maxAvailable := 0
	if len(product.Sizes) == 0 {
		size = models.OneSizeLabel
		maxAvailable = models.OneSizeCap
	} else {
		sz, err := h.Store.GetSize(productID, size)
		if err == sql.ErrNoRows {
			session.AddFlash(FlashMessage{Type: "error", Message: "Please select a size."})
			http.Redirect(w, r, "/product/"+productID, http.StatusSeeOther)
			return
		}
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: "Something went wrong. Please try again."})
			http.Redirect(w, r, "/product/"+productID, http.StatusSeeOther)
			return
		}
		if sz.Quantity <= 0 {
			session.AddFlash(FlashMessage{Type: "error", Message: "This size is out of stock. You can request a preorder instead."})
			http.Redirect(w, r, "/product/"+productID, http.StatusSeeOther)
			return
		}
		maxAvailable = sz.Quantity
	}

	c := loadCart(session)
	c.Add(cart.Line{
		ProductID:    product.ID,
		Name:         product.Name,
		Price:        product.Price,
		Image:        product.PrimaryImage(),
		Size:         size,
		Quantity:     quantity,
		MaxAvailable: maxAvailable,
	})
	saveCart(session, c)

	session.AddFlash(FlashMessage{Type: "success", Message: "Added to cart!"})
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cartSessionName)
	defer session.Save(r, w)

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		quantity = 0
	}

	c := loadCart(session)
	c.SetQuantity(r.FormValue("product_id"), r.FormValue("size"), quantity)
	saveCart(session, c)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cartSessionName)
	defer session.Save(r, w)

	c := loadCart(session)
	c.Remove(r.FormValue("product_id"), r.FormValue("size"))
	saveCart(session, c)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cartSessionName)
	defer session.Save(r, w)

	c := loadCart(session)
	c.Clear()
	saveCart(session, c)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, cartSessionName)
	defer session.Save(r, w)

	c := loadCart(session)
	c.SetDeliveryMethod(r.FormValue("delivery_method"))
	saveCart(session, c)

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
