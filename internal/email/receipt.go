package email

import (
	"fmt"
	"html/template"
	"strings"
)

// ReceiptProduct is one line of the receipt.
type ReceiptProduct struct {
	Name     string
	Image    string
	Size     string
	Quantity int
	Price    float64 // unit price, dollars
}

// Receipt is the rendered order confirmation. Totals are in dollars;
// Shipping may be zero (pickup or free shipping).
type Receipt struct {
	OrderID         string
	CustomerName    string
	CustomerEmail   string
	Products        []ReceiptProduct
	ShippingAddress string
	Subtotal        float64
	Shipping        float64
	Total           float64
}

// ShortRef is the public order reference: last 6 of the id, uppercased.
func (r Receipt) ShortRef() string {
	id := r.OrderID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

func (r Receipt) Subject() string {
	return fmt.Sprintf("Order Confirmed: #%s", r.ShortRef())
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("$%.2f CAD", v) },
	"lineTotal": func(p ReceiptProduct) float64 {
		return p.Price * float64(p.Quantity)
	},
}).Parse(`<html>
<body style="font-family: Helvetica, Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 24px;">
  <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="margin: 0; font-size: 24px;">MyPlug</h1>
    <p style="color: #666; margin-top: 4px;">Canada</p>

    {{if .CustomerName}}<p>Hi {{.CustomerName}},</p>{{else}}<p>Hi there,</p>{{end}}
    <p>Thank you for your order! We've received it and it's being processed.</p>

    <table style="width: 100%; margin: 16px 0;">
      <tr>
        <td style="color: #888; font-size: 12px;">Order ID</td>
        {{if .CustomerEmail}}<td style="color: #888; font-size: 12px;">Email</td>{{end}}
      </tr>
      <tr>
        <td style="font-weight: bold;">#{{.ShortRef}}</td>
        {{if .CustomerEmail}}<td>{{.CustomerEmail}}</td>{{end}}
      </tr>
    </table>

    <hr style="border: none; border-top: 1px solid #eee;">

    <h3>Order Details</h3>
    {{range .Products}}
    <table style="width: 100%; margin-bottom: 12px;">
      <tr>
        {{if .Image}}<td style="width: 88px;"><img src="{{.Image}}" alt="{{.Name}}" width="80" height="80" style="border-radius: 4px; object-fit: cover;"></td>{{end}}
        <td>
          <div style="font-weight: bold;">{{.Name}}</div>
          <div style="color: #666; font-size: 13px;">Size: {{.Size}} &middot; Quantity: {{.Quantity}}</div>
          <div>{{money (lineTotal .)}}</div>
        </td>
      </tr>
    </table>
    {{end}}

    <hr style="border: none; border-top: 1px solid #eee;">

    <h3>Shipping Address</h3>
    <p style="color: #444;">{{.ShippingAddress}}</p>

    <table style="width: 100%; margin-top: 16px;">
      <tr><td>Subtotal</td><td style="text-align: right;">{{money .Subtotal}}</td></tr>
      {{if gt .Shipping 0.0}}<tr><td>Shipping</td><td style="text-align: right;">{{money .Shipping}}</td></tr>{{end}}
      <tr><td style="font-weight: bold;">Total</td><td style="text-align: right; font-weight: bold;">{{money .Total}}</td></tr>
    </table>
  </div>
</body>
</html>`))

// RenderHTML renders the receipt body.
func (r Receipt) RenderHTML() (string, error) {
	if r.ShippingAddress == "" {
		r.ShippingAddress = "Address not provided"
	}
	var b strings.Builder
	if err := receiptTmpl.Execute(&b, r); err != nil {
		return "", err
	}
	return b.String(), nil
}
