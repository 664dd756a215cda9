package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptSubject(t *testing.T) {
	r := Receipt{OrderID: "9c1b2f3a-4d5e-6f70-8192-a3b4c5d6e7f8"}
	assert.Equal(t, "Order Confirmed: #D6E7F8", r.Subject())

	short := Receipt{OrderID: "ab12"}
	assert.Equal(t, "Order Confirmed: #AB12", short.Subject())
}

func TestRenderHTML(t *testing.T) {
	r := Receipt{
		OrderID:       "order-abc123",
		CustomerName:  "Jane Buyer",
		CustomerEmail: "jane@example.com",
		Products: []ReceiptProduct{
			{Name: "Jordan 4", Image: "https://cdn.example.com/j4.jpg", Size: "US 10", Quantity: 2, Price: 300},
			{Name: "Tote Bag", Size: "One Size", Quantity: 1, Price: 40},
		},
		ShippingAddress: "1 Main St, Toronto, ON, M1M1M1, CA",
		Subtotal:        640,
		Shipping:        20,
		Total:           660,
	}

	html, err := r.RenderHTML()
	require.NoError(t, err)

	assert.Contains(t, html, "Hi Jane Buyer,")
	assert.Contains(t, html, "#ABC123")
	assert.Contains(t, html, "Jordan 4")
	assert.Contains(t, html, "Size: US 10")
	assert.Contains(t, html, "$600.00 CAD", "line total is price times quantity")
	assert.Contains(t, html, "$640.00 CAD")
	assert.Contains(t, html, "$20.00 CAD")
	assert.Contains(t, html, "$660.00 CAD")
	assert.Contains(t, html, "1 Main St, Toronto, ON, M1M1M1, CA")
}

func TestRenderHTMLDefaults(t *testing.T) {
	r := Receipt{OrderID: "order-abc123", Total: 40, Subtotal: 40}

	html, err := r.RenderHTML()
	require.NoError(t, err)

	assert.Contains(t, html, "Hi there,", "no name falls back to a generic greeting")
	assert.Contains(t, html, "Address not provided")
	assert.NotContains(t, html, ">Shipping<", "zero shipping hides the shipping row")
}
