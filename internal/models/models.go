package models

import (
	"strings"
	"time"
)

// Gender values for products.
const (
	GenderMen    = "MEN"
	GenderWomen  = "WOMEN"
	GenderKids   = "KIDS"
	GenderUnisex = "UNISEX"
)

// Product type values.
const (
	TypeShoes       = "SHOES"
	TypeClothing    = "CLOTHING"
	TypeAccessories = "ACCESSORIES"
)

// Preorder status lifecycle: PENDING -> CONTACTED -> CLOSED (terminal).
const (
	PreorderPending   = "PENDING"
	PreorderContacted = "CONTACTED"
	PreorderClosed    = "CLOSED"
)

// OneSizeLabel is the implicit variant for products without size rows.
// Such products are never validated against real inventory; the cart caps
// their quantity at OneSizeCap instead.
const (
	OneSizeLabel = "One Size"
	OneSizeCap   = 10
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"` // dollars
	Gender      string    `json:"gender"`
	ProductType string    `json:"product_type"`
	Images      []string  `json:"images"` // first is primary
	IsFeatured  bool      `json:"is_featured"`
	IsArchived  bool      `json:"is_archived"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Loaded on demand
	Sizes []Size `json:"sizes,omitempty"`
}

// PrimaryImage returns the first image URL, or "" for products without images.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Size is the inventory unit: one (product, size label, quantity) row.
type Size struct {
	ID        int    `json:"id"`
	ProductID string `json:"product_id"`
	Value     string `json:"value"` // free-text label, e.g. "US 10", "M"
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID             string    `json:"id"`
	IsPaid         bool      `json:"is_paid"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	DeliveryMethod string    `json:"delivery_method"`
	CreatedAt      time.Time `json:"created_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// ShortRef is the public order reference used in email subjects and the
// admin UI: the last 6 characters of the id, uppercased.
func (o Order) ShortRef() string {
	id := o.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// OrderItem references a product plus the size label chosen at order time.
// The label deliberately matches Size.Value by text, not by foreign key, so
// admins can rework a product's size set without touching historical orders.
type OrderItem struct {
	ID        int    `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`

	// Loaded on demand for display/email
	Product *Product `json:"product,omitempty"`
}

// Preorder is a standalone request for an out-of-stock size.
type Preorder struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	PhoneNumber  string    `json:"phone_number"`
	Instagram    string    `json:"instagram"` // optional handle
	ProductName  string    `json:"product_name"`
	ProductImage string    `json:"product_image"`
	Size         string    `json:"size"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type Review struct {
	ID        int       `json:"id"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayRating clamps the stored rating into the 0-5 range.
func (r Review) DisplayRating() int {
	if r.Rating < 0 {
		return 0
	}
	if r.Rating > 5 {
		return 5
	}
	return r.Rating
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash
}
