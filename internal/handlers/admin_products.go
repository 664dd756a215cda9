package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"

	"github.com/moeeznaveed278/myplug/internal/models"
)

const defaultCategoryName = "Sneakers"

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.ListAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Products":  products,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_product_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	product, err := h.Store.GetProductByID(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("admin_product_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Product":   product,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// parseProductForm extracts and validates the shared product fields.
func parseProductForm(r *http.Request) (*models.Product, map[string]string) {
	errors := make(map[string]string)

	p := &models.Product{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Gender:      r.FormValue("gender"),
		ProductType: r.FormValue("product_type"),
		IsFeatured:  r.FormValue("is_featured") == "on",
	}

	if p.Name == "" {
		errors["name"] = "Name is required."
	}
	if len(p.Description) < 10 {
		errors["description"] = "Description must be at least 10 chars."
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		errors["price"] = "Invalid price format."
	} else if price < 0 {
		errors["price"] = "Price must be positive."
	}
	p.Price = price

	switch p.Gender {
	case models.GenderMen, models.GenderWomen, models.GenderKids, models.GenderUnisex:
	case "":
		p.Gender = models.GenderMen
	default:
		errors["gender"] = "Invalid gender selected."
	}
	switch p.ProductType {
	case models.TypeShoes, models.TypeClothing, models.TypeAccessories:
	case "":
		p.ProductType = models.TypeShoes
	default:
		errors["product_type"] = "Invalid product type selected."
	}

	// Dynamic size rows: parallel size_value / size_quantity fields.
	values := r.Form["size_value"]
	quantities := r.Form["size_quantity"]
	for i, v := range values {
		if v == "" {
			continue
		}
		qty := 0
		if i < len(quantities) {
			if q, err := strconv.Atoi(quantities[i]); err == nil && q >= 0 {
				qty = q
			}
		}
		p.Sizes = append(p.Sizes, models.Size{Value: v, Quantity: qty})
	}

	return p, errors
}

// saveUploadedImages decodes, resizes and stores each uploaded image under
// static/uploads, returning the public URLs.
func saveUploadedImages(files []*multipart.FileHeader) ([]string, error) {
	var urls []string
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}

		var img image.Image
		switch ext := filepath.Ext(header.Filename); ext {
		case ".png":
			img, err = png.Decode(file)
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(file)
		default:
			file.Close()
			return nil, fmt.Errorf("unsupported image format %q", ext)
		}
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}

		// Max width 800px, preserve aspect ratio
		resized := resize.Resize(800, 0, img, resize.Lanczos3)

		filename := fmt.Sprintf("%s.jpg", uuid.New().String())
		uploadPath := filepath.Join("static/uploads", filename)
		out, err := os.Create(uploadPath)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		err = jpeg.Encode(out, resized, &jpeg.Options{Quality: 80})
		out.Close()
		if err != nil {
			return nil, fmt.Errorf("encode image: %w", err)
		}

		urls = append(urls, "/static/uploads/"+filename)
	}
	return urls, nil
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(20 << 20); err != nil { // 20MB across images
		session.AddFlash(FlashMessage{Type: "error", Message: "Upload too large. Max 20MB."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	p, errors := parseProductForm(r)

	var uploads []*multipart.FileHeader
	if r.MultipartForm != nil {
		uploads = r.MultipartForm.File["images"]
	}
	if len(uploads) == 0 {
		errors["images"] = "At least one image is required."
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	images, err := saveUploadedImages(uploads)
	if err != nil {
		slog.Error("Image upload failed", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error processing images."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}
	p.Images = images

	category, err := h.Store.GetOrCreateCategory(defaultCategoryName)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product to database."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}
	p.CategoryID = category.ID

	if err := h.Store.CreateProduct(p); err != nil {
		slog.Error("Failed to create product", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product to database."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product added successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Upload too large. Max 20MB."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	id := r.FormValue("id")
	existing, err := h.Store.GetProductByID(id)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	p, errors := parseProductForm(r)
	p.ID = existing.ID
	p.CategoryID = existing.CategoryID

	// Keep the image URLs the form retained, append any new uploads.
	p.Images = r.Form["image_url"]
	if r.MultipartForm != nil {
		if uploaded, err := saveUploadedImages(r.MultipartForm.File["images"]); err != nil {
			slog.Error("Image upload failed", "error", err)
			errors["images"] = "Error processing images."
		} else {
			p.Images = append(p.Images, uploaded...)
		}
	}
	if len(p.Images) == 0 {
		errors["images"] = "At least one image is required."
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/admin/products/edit?id="+id, http.StatusSeeOther)
		return
	}

	if err := h.Store.UpdateProduct(p); err != nil {
		slog.Error("Failed to update product", "product_id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product."})
		http.Redirect(w, r, "/admin/products/edit?id="+id, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product updated successfully!"})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// ArchiveProduct soft-deletes: past orders keep referencing the product.
func (h *AdminHandler) ArchiveProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	if err := h.Store.ArchiveProduct(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error archiving product."})
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product archived."})
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}
