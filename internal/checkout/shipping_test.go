package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeeznaveed278/myplug/internal/cart"
)

func TestShippingFees(t *testing.T) {
	assert.Equal(t, int64(2000), ShippingFeeMinor(cart.DeliveryStandard))
	assert.Equal(t, int64(3700), ShippingFeeMinor(cart.DeliveryExpress))
	assert.Equal(t, int64(3000), ShippingFeeMinor(cart.DeliveryUS))
	assert.Equal(t, int64(0), ShippingFeeMinor(cart.DeliveryPickup))
	assert.Equal(t, int64(0), ShippingFeeMinor("unknown"))
}

func TestShippingOptionFor(t *testing.T) {
	opt, ok := ShippingOptionFor(cart.DeliveryStandard)
	require.True(t, ok)
	assert.Equal(t, "Canada Post Standard", opt.DisplayName)
	assert.Equal(t, int64(2), opt.MinDays)
	assert.Equal(t, int64(2), opt.MaxDays)

	opt, ok = ShippingOptionFor(cart.DeliveryExpress)
	require.True(t, ok)
	assert.Equal(t, "Express Delivery (Same/Next Day)", opt.DisplayName)
	assert.Zero(t, opt.MinDays, "express shows no estimate window")

	opt, ok = ShippingOptionFor(cart.DeliveryUS)
	require.True(t, ok)
	assert.Equal(t, "US Shipping", opt.DisplayName)
	assert.Equal(t, int64(5), opt.MinDays)
	assert.Equal(t, int64(10), opt.MaxDays)

	_, ok = ShippingOptionFor(cart.DeliveryPickup)
	assert.False(t, ok, "pickup has no shipping option line")
}

func TestAllowedCountries(t *testing.T) {
	assert.Equal(t, []string{"US"}, AllowedCountriesFor(cart.DeliveryUS))
	assert.Equal(t, []string{"CA"}, AllowedCountriesFor(cart.DeliveryStandard))
	assert.Equal(t, []string{"CA"}, AllowedCountriesFor(cart.DeliveryPickup))
}
