package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeeznaveed278/myplug/internal/models"
)

func TestCreateOrderAssignsIDAndStaysUnpaid(t *testing.T) {
	s := newTestStore(t)
	p := createTestProduct(t, s, models.Size{Value: "US 10", Quantity: 5})

	order := &models.Order{Items: []models.OrderItem{
		{ProductID: p.ID, Size: "US 10", Quantity: 2},
	}}
	require.NoError(t, s.CreateOrder(order))
	require.NotEmpty(t, order.ID)

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPaid)

	withItems, err := s.GetOrderWithItems(order.ID)
	require.NoError(t, err)
	require.Len(t, withItems.Items, 1)
	assert.Equal(t, p.ID, withItems.Items[0].ProductID)
	require.NotNil(t, withItems.Items[0].Product)
	assert.Equal(t, p.Name, withItems.Items[0].Product.Name)
}

func TestMarkOrderPaidIsExactlyOnce(t *testing.T) {
	s := newTestStore(t)

	order := &models.Order{}
	require.NoError(t, s.CreateOrder(order))

	details := PaidDetails{
		CustomerName:   "Jane Buyer",
		CustomerEmail:  "jane@example.com",
		Phone:          "+1 555 0100",
		Address:        "1 Main St, Toronto, ON, M1M1M1, CA",
		DeliveryMethod: "standard",
	}

	paid, err := s.MarkOrderPaid(order.ID, details)
	require.NoError(t, err)
	assert.True(t, paid, "first delivery performs the transition")

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	assert.Equal(t, "Jane Buyer", got.CustomerName)
	assert.Equal(t, "jane@example.com", got.CustomerEmail)
	assert.Equal(t, "standard", got.DeliveryMethod)

	// Duplicate delivery: the is_paid guard rejects the second write.
	paid, err = s.MarkOrderPaid(order.ID, details)
	require.NoError(t, err)
	assert.False(t, paid, "second delivery must see the order already paid")
}

func TestMarkOrderPaidUnknownOrder(t *testing.T) {
	s := newTestStore(t)

	paid, err := s.MarkOrderPaid("no-such-order", PaidDetails{})
	require.NoError(t, err)
	assert.False(t, paid)
}

func TestShortRef(t *testing.T) {
	o := models.Order{ID: "9c1b2f3a-4d5e-6f70-8192-a3b4c5d6e7f8"}
	assert.Equal(t, "D6E7F8", o.ShortRef())

	short := models.Order{ID: "ab12"}
	assert.Equal(t, "AB12", short.ShortRef())
}

func TestListAndCountOrders(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateOrder(&models.Order{}))
	}

	orders, err := s.ListOrders(10, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	total, err := s.CountOrders()
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	paidCount, err := s.CountPaidOrders()
	require.NoError(t, err)
	assert.Equal(t, 0, paidCount)
}
