package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/moeeznaveed278/myplug/internal/models"
	"github.com/moeeznaveed278/myplug/internal/store"
)

type ShopHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	featured, err := h.Store.ListFeaturedProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Featured": featured,
		"Flashes":  GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) Shop(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.ProductFilter{
		Size:       q.Get("size"),
		Search:     q.Get("search"),
		CategoryID: q.Get("categoryId"),
	}
	// Only pass through known enum values; anything else means "all".
	switch g := q.Get("gender"); g {
	case models.GenderMen, models.GenderWomen, models.GenderKids, models.GenderUnisex:
		filter.Gender = g
	}
	switch t := q.Get("type"); t {
	case models.TypeShoes, models.TypeClothing, models.TypeAccessories:
		filter.ProductType = t
	}

	products, err := h.Store.ListProducts(filter)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	categories, err := h.Store.ListCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("shop.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Products":   products,
		"Categories": categories,
		"Filter":     filter,
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) ProductPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("productId")

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if product.IsArchived {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	reviews, err := h.Store.ListReviewsByProduct(id)
	if err != nil {
		http.Error(w, "Error fetching reviews", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Product":   product,
		"Reviews":   reviews,
		"OneSize":   len(product.Sizes) == 0,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
