// Package cart holds the shopper's cart state between requests. The cart is
// gob-encoded into the visitor's session cookie, so its lifecycle boundary is
// the session itself: it survives reloads and is gone when the cookie is
// cleared or expires.
package cart

import (
	"encoding/gob"
)

// Delivery methods a shopper can select. The shipping fee and estimate for
// each live in the checkout package; the cart only records the choice.
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
	DeliveryPickup   = "pickup"
	DeliveryUS       = "us"
)

func init() {
	gob.Register(Cart{})
}

// IsValidDeliveryMethod reports whether m is one of the known methods.
func IsValidDeliveryMethod(m string) bool {
	switch m {
	case DeliveryStandard, DeliveryExpress, DeliveryPickup, DeliveryUS:
		return true
	}
	return false
}

// Line is one cart entry: a product in a specific size. MaxAvailable caches
// the stock seen when the line was added and caps quantity edits; zero means
// uncapped. It is advisory only — the checkout re-validates against live
// inventory.
type Line struct {
	ProductID    string
	Name         string
	Price        float64
	Image        string
	Size         string
	Quantity     int
	MaxAvailable int
}

type Cart struct {
	Items          []Line
	DeliveryMethod string
}

// New returns an empty cart with the default delivery method.
func New() *Cart {
	return &Cart{DeliveryMethod: DeliveryStandard}
}

func (c *Cart) find(productID, size string) int {
	for i, line := range c.Items {
		if line.ProductID == productID && line.Size == size {
			return i
		}
	}
	return -1
}

// Add merges into an existing line for the same product+size, or appends a
// new one. Quantities below 1 are treated as 1; the resulting quantity is
// capped at the line's max-available ceiling when one is known.
func (c *Cart) Add(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if line.MaxAvailable < 0 {
		line.MaxAvailable = 0
	}

	if i := c.find(line.ProductID, line.Size); i >= 0 {
		existing := &c.Items[i]
		cap := line.MaxAvailable
		if cap == 0 {
			cap = existing.MaxAvailable
		}
		next := existing.Quantity + line.Quantity
		if cap > 0 && next > cap {
			next = cap
		}
		existing.Quantity = next
		if cap > 0 {
			existing.MaxAvailable = cap
		}
		return
	}

	if line.MaxAvailable > 0 && line.Quantity > line.MaxAvailable {
		line.Quantity = line.MaxAvailable
	}
	c.Items = append(c.Items, line)
}

// SetQuantity sets a line's quantity, capped at its ceiling. Zero or
// negative removes the line.
func (c *Cart) SetQuantity(productID, size string, quantity int) {
	i := c.find(productID, size)
	if i < 0 {
		return
	}
	if quantity <= 0 {
		c.Remove(productID, size)
		return
	}
	if cap := c.Items[i].MaxAvailable; cap > 0 && quantity > cap {
		quantity = cap
	}
	c.Items[i].Quantity = quantity
}

func (c *Cart) Remove(productID, size string) {
	if i := c.find(productID, size); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

// SetDeliveryMethod ignores unknown methods and keeps the current choice.
func (c *Cart) SetDeliveryMethod(method string) {
	if IsValidDeliveryMethod(method) {
		c.DeliveryMethod = method
	}
}

// Subtotal is the sum of price x quantity over all lines, in dollars.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.Items {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
