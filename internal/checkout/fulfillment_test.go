package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"github.com/moeeznaveed278/myplug/internal/cart"
	"github.com/moeeznaveed278/myplug/internal/email"
	"github.com/moeeznaveed278/myplug/internal/models"
	"github.com/moeeznaveed278/myplug/internal/store"
)

// fakeSender records sent messages instead of calling a provider.
type fakeSender struct {
	mu   sync.Mutex
	sent []email.Message
}

func (f *fakeSender) Send(_ context.Context, msg email.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return "msg_test", nil
}

func (f *fakeSender) messages() []email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]email.Message(nil), f.sent...)
}

func newTestFulfiller(t *testing.T, s *store.Store) (*Fulfiller, *fakeSender, *email.Dispatcher) {
	t.Helper()
	sender := &fakeSender{}
	dispatcher := email.NewDispatcher(sender, "MyPlug <onboarding@resend.dev>")
	return &Fulfiller{Store: s, Email: dispatcher}, sender, dispatcher
}

func completedFor(t *testing.T, s *store.Store, order *models.Order, lines []cart.Line, amountTotal int64) CompletedCheckout {
	t.Helper()
	raw, err := EncodeCartItems(lines)
	require.NoError(t, err)
	return CompletedCheckout{
		OrderID:        order.ID,
		DeliveryMethod: cart.DeliveryStandard,
		RawCartItems:   raw,
		CustomerName:   "Jane Buyer",
		CustomerEmail:  "jane@example.com",
		Phone:          "+1 555 0100",
		Address:        "1 Main St, Toronto, ON, M1M1M1, CA",
		AmountTotal:    amountTotal,
	}
}

func TestProcessFulfillsOrder(t *testing.T) {
	s := newTestStore(t)
	p := createTestProduct(t, s, "Jordan 4", 300, models.Size{Value: "US 10", Quantity: 5})

	order := &models.Order{Items: []models.OrderItem{
		{ProductID: p.ID, Size: "US 10", Quantity: 2},
	}}
	require.NoError(t, s.CreateOrder(order))

	lines := []cart.Line{{ProductID: p.ID, Name: p.Name, Size: "US 10", Quantity: 2, Price: 300}}
	f, sender, dispatcher := newTestFulfiller(t, s)

	f.Process(context.Background(), completedFor(t, s, order, lines, 62000)) // 600 + 20 shipping
	dispatcher.Wait()

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	assert.Equal(t, "Jane Buyer", got.CustomerName)
	assert.Equal(t, cart.DeliveryStandard, got.DeliveryMethod)

	sz, err := s.GetSize(p.ID, "US 10")
	require.NoError(t, err)
	assert.Equal(t, 3, sz.Quantity, "stock decremented by the paid quantity")

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "jane@example.com", msgs[0].To)
	assert.Equal(t, "Order Confirmed: #"+got.ShortRef(), msgs[0].Subject)
	assert.Contains(t, msgs[0].HTML, "Jordan 4")
	assert.Contains(t, msgs[0].HTML, "$600.00 CAD")
	assert.Contains(t, msgs[0].HTML, "$20.00 CAD")
}

func TestProcessDuplicateDeliveryIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	p := createTestProduct(t, s, "Jordan 4", 300, models.Size{Value: "US 10", Quantity: 5})

	order := &models.Order{Items: []models.OrderItem{
		{ProductID: p.ID, Size: "US 10", Quantity: 2},
	}}
	require.NoError(t, s.CreateOrder(order))

	lines := []cart.Line{{ProductID: p.ID, Name: p.Name, Size: "US 10", Quantity: 2, Price: 300}}
	f, sender, dispatcher := newTestFulfiller(t, s)

	cc := completedFor(t, s, order, lines, 62000)
	f.Process(context.Background(), cc)
	f.Process(context.Background(), cc)
	f.Process(context.Background(), cc)
	dispatcher.Wait()

	sz, err := s.GetSize(p.ID, "US 10")
	require.NoError(t, err)
	assert.Equal(t, 3, sz.Quantity, "stock decremented exactly once")

	assert.Len(t, sender.messages(), 1, "receipt sent exactly once")
}

func TestProcessFloorsStockAtZero(t *testing.T) {
	s := newTestStore(t)
	p := createTestProduct(t, s, "Jordan 4", 300, models.Size{Value: "US 10", Quantity: 1})

	order := &models.Order{Items: []models.OrderItem{
		{ProductID: p.ID, Size: "US 10", Quantity: 3},
	}}
	require.NoError(t, s.CreateOrder(order))

	lines := []cart.Line{{ProductID: p.ID, Name: p.Name, Size: "US 10", Quantity: 3, Price: 300}}
	f, _, dispatcher := newTestFulfiller(t, s)

	f.Process(context.Background(), completedFor(t, s, order, lines, 92000))
	dispatcher.Wait()

	sz, err := s.GetSize(p.ID, "US 10")
	require.NoError(t, err)
	assert.Equal(t, 0, sz.Quantity)
}

func TestProcessUnknownOrderIsNoOp(t *testing.T) {
	s := newTestStore(t)
	p := createTestProduct(t, s, "Jordan 4", 300, models.Size{Value: "US 10", Quantity: 5})

	f, sender, dispatcher := newTestFulfiller(t, s)
	f.Process(context.Background(), CompletedCheckout{
		OrderID:      "no-such-order",
		RawCartItems: `[{"id":"` + p.ID + `","size":"US 10","quantity":2}]`,
	})
	dispatcher.Wait()

	sz, err := s.GetSize(p.ID, "US 10")
	require.NoError(t, err)
	assert.Equal(t, 5, sz.Quantity, "no stock movement for unknown orders")
	assert.Empty(t, sender.messages())
}

func TestProcessEmptyOrderIDIsNoOp(t *testing.T) {
	s := newTestStore(t)
	f, sender, dispatcher := newTestFulfiller(t, s)

	f.Process(context.Background(), CompletedCheckout{})
	dispatcher.Wait()
	assert.Empty(t, sender.messages())
}

func TestProcessInvalidDeliveryMethodFallsBackToStandard(t *testing.T) {
	s := newTestStore(t)

	order := &models.Order{}
	require.NoError(t, s.CreateOrder(order))

	f, _, dispatcher := newTestFulfiller(t, s)
	f.Process(context.Background(), CompletedCheckout{
		OrderID:        order.ID,
		DeliveryMethod: "drone",
		CustomerEmail:  "jane@example.com",
	})
	dispatcher.Wait()

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.DeliveryStandard, got.DeliveryMethod)
}

func TestCompletedFromSession(t *testing.T) {
	cs := &stripe.CheckoutSession{
		AmountTotal: 62000,
		Metadata: map[string]string{
			MetaOrderID:        "order-123",
			MetaDeliveryMethod: "express",
			MetaCartItems:      `[{"id":"p1","size":"US 10","quantity":2}]`,
		},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Name:  "Jane Buyer",
			Email: "jane@example.com",
			Phone: "+1 555 0100",
			Address: &stripe.Address{
				Line1:      "1 Main St",
				City:       "Toronto",
				State:      "ON",
				PostalCode: "M1M1M1",
				Country:    "CA",
			},
		},
	}

	cc := CompletedFromSession(cs)
	assert.Equal(t, "order-123", cc.OrderID)
	assert.Equal(t, "express", cc.DeliveryMethod)
	assert.Equal(t, "Jane Buyer", cc.CustomerName)
	assert.Equal(t, "jane@example.com", cc.CustomerEmail)
	assert.Equal(t, int64(62000), cc.AmountTotal)
	assert.Equal(t, "1 Main St, Toronto, ON, M1M1M1, CA", cc.Address)
}

func TestCompletedFromSessionEmptyFields(t *testing.T) {
	cc := CompletedFromSession(&stripe.CheckoutSession{})
	assert.Empty(t, cc.OrderID)
	assert.Empty(t, cc.CustomerEmail)
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "", FormatAddress(nil))

	assert.Equal(t, "1 Main St Unit 2, Toronto, ON, M1M1M1, CA", FormatAddress(&stripe.Address{
		Line1:      "1 Main St",
		Line2:      "Unit 2",
		City:       "Toronto",
		State:      "ON",
		PostalCode: "M1M1M1",
		Country:    "CA",
	}))

	// Partial addresses skip the empty parts without stray separators.
	assert.Equal(t, "Toronto, CA", FormatAddress(&stripe.Address{
		City:    "Toronto",
		Country: "CA",
	}))
}
