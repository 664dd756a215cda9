package checkout

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/stripe/stripe-go/v79"

	"github.com/moeeznaveed278/myplug/internal/cart"
	"github.com/moeeznaveed278/myplug/internal/email"
	"github.com/moeeznaveed278/myplug/internal/metrics"
	"github.com/moeeznaveed278/myplug/internal/models"
	"github.com/moeeznaveed278/myplug/internal/store"
)

// Webhook outcome labels for metrics.
const (
	ResultFulfilled   = "fulfilled"
	ResultAlreadyPaid = "already_paid"
	ResultNoOrder     = "no_order"
	ResultNoOp        = "no_op"
)

// CompletedCheckout is what the fulfillment pipeline needs from a completed
// payment session, extracted from the provider event.
type CompletedCheckout struct {
	OrderID        string
	DeliveryMethod string
	RawCartItems   string // compact metadata JSON
	CustomerName   string
	CustomerEmail  string
	Phone          string
	Address        string // flattened
	AmountTotal    int64  // total charged, minor units
}

// CompletedFromSession maps a provider checkout session onto the pipeline's
// input. Field presence is defensive: every field may be empty.
func CompletedFromSession(cs *stripe.CheckoutSession) CompletedCheckout {
	cc := CompletedCheckout{AmountTotal: cs.AmountTotal}
	if cs.Metadata != nil {
		cc.OrderID = cs.Metadata[MetaOrderID]
		cc.DeliveryMethod = cs.Metadata[MetaDeliveryMethod]
		cc.RawCartItems = cs.Metadata[MetaCartItems]
	}
	if cd := cs.CustomerDetails; cd != nil {
		cc.CustomerName = cd.Name
		cc.CustomerEmail = cd.Email
		cc.Phone = cd.Phone
		cc.Address = FormatAddress(cd.Address)
	}
	return cc
}

// FormatAddress flattens a structured address into one display string:
// street, then "city, state, postal", then country when present.
func FormatAddress(addr *stripe.Address) string {
	if addr == nil {
		return ""
	}
	street := joinNonEmpty(" ", addr.Line1, addr.Line2)
	cityStateZip := joinNonEmpty(", ", addr.City, addr.State, addr.PostalCode)
	base := joinNonEmpty(", ", street, cityStateZip)
	return joinNonEmpty(", ", base, addr.Country)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Fulfiller applies a completed payment to the order and inventory, exactly
// once per order.
type Fulfiller struct {
	Store   *store.Store
	Email   *email.Dispatcher
	Metrics *metrics.Pipeline
}

// Process runs the fulfillment state machine for one payment-completed
// event. It never returns an error: once the event is authenticated, every
// internal failure is logged and swallowed so the provider's retry loop is
// not fed events whose side effects are not safe to blindly replay.
// Recovery from a partial failure here is out-of-band (log monitoring).
func (f *Fulfiller) Process(ctx context.Context, cc CompletedCheckout) {
	if cc.OrderID == "" {
		// Not every event type carries order metadata.
		f.Metrics.Webhook(ResultNoOp)
		return
	}

	log := slog.With("order_id", cc.OrderID)

	if _, err := f.Store.GetOrderByID(cc.OrderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Webhook for unknown order, skipping")
		} else {
			log.Error("Order lookup failed", "error", err)
		}
		f.Metrics.Webhook(ResultNoOrder)
		return
	}

	deliveryMethod := cc.DeliveryMethod
	if !cart.IsValidDeliveryMethod(deliveryMethod) {
		deliveryMethod = cart.DeliveryStandard
	}

	// Atomic compare-and-set: the is_paid guard lives in the UPDATE's WHERE
	// clause, so duplicate deliveries cannot both pass it. This is the only
	// idempotency mechanism in the pipeline.
	paid, err := f.Store.MarkOrderPaid(cc.OrderID, store.PaidDetails{
		CustomerName:   cc.CustomerName,
		CustomerEmail:  cc.CustomerEmail,
		Phone:          cc.Phone,
		Address:        cc.Address,
		DeliveryMethod: deliveryMethod,
	})
	if err != nil {
		log.Error("Failed to mark order paid", "error", err)
		f.Metrics.Webhook(ResultNoOp)
		return
	}
	if !paid {
		log.Info("Order already marked as paid, skipping fulfillment")
		f.Metrics.Webhook(ResultAlreadyPaid)
		return
	}

	// Stock decrement: each line is an independent atomic floored update.
	// A missing size row or a failed write skips that line only.
	for _, item := range ParseCartItems(cc.RawCartItems) {
		ok, err := f.Store.DecrementSize(item.ID, item.Size, item.Quantity)
		if err != nil {
			log.Error("Stock decrement failed", "product_id", item.ID, "size", item.Size, "error", err)
			continue
		}
		if !ok {
			log.Warn("Size row not found for stock decrement", "product_id", item.ID, "size", item.Size)
		}
	}

	f.sendReceipt(cc, log)
	f.Metrics.Webhook(ResultFulfilled)
}

// sendReceipt dispatches the confirmation email in the background, detached
// from the webhook response. At most one attempt; failures are logged only.
func (f *Fulfiller) sendReceipt(cc CompletedCheckout, log *slog.Logger) {
	order, err := f.Store.GetOrderWithItems(cc.OrderID)
	if err != nil {
		log.Error("Failed to load order for receipt email", "error", err)
		f.Metrics.Email("skipped")
		return
	}

	// Prefer what the paid update stored; fall back to the event's captured
	// email when the degraded field sets dropped it.
	to := order.CustomerEmail
	if to == "" {
		to = cc.CustomerEmail
	}
	if to == "" {
		log.Warn("No customer email available, skipping receipt")
		f.Metrics.Email("skipped")
		return
	}
	if !f.Email.Configured() {
		log.Warn("Email not configured, skipping receipt")
		f.Metrics.Email("skipped")
		return
	}

	var subtotal float64
	products := make([]email.ReceiptProduct, 0, len(order.Items))
	for _, item := range order.Items {
		if item.Product == nil {
			continue
		}
		subtotal += item.Product.Price * float64(item.Quantity)
		size := item.Size
		if size == "" {
			size = models.OneSizeLabel
		}
		products = append(products, email.ReceiptProduct{
			Name:     item.Product.Name,
			Image:    item.Product.PrimaryImage(),
			Size:     size,
			Quantity: item.Quantity,
			Price:    item.Product.Price,
		})
	}

	total := float64(cc.AmountTotal) / 100
	shipping := total - subtotal
	if shipping < 0 {
		shipping = 0
	}

	name := order.CustomerName
	if name == "" {
		name = cc.CustomerName
	}

	receipt := email.Receipt{
		OrderID:         order.ID,
		CustomerName:    name,
		CustomerEmail:   to,
		Products:        products,
		ShippingAddress: order.Address,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           total,
	}

	f.Email.DispatchAsync(to, receipt, func(id string, err error) {
		if err != nil {
			f.Metrics.Email("failed")
		} else {
			f.Metrics.Email("sent")
		}
	})
}
