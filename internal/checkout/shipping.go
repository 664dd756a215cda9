package checkout

import "github.com/moeeznaveed278/myplug/internal/cart"

// ShippingOption is the fixed-fee shipping line presented on the hosted
// payment page for a delivery method. Estimates are in business days; zero
// min/max means no estimate window is shown.
type ShippingOption struct {
	DisplayName string
	AmountMinor int64 // minor currency units (cents)
	MinDays     int64
	MaxDays     int64
}

// Fixed business data. Pickup deliberately has no entry: it yields no
// shipping option line at all.
var shippingOptions = map[string]ShippingOption{
	cart.DeliveryStandard: {
		DisplayName: "Canada Post Standard",
		AmountMinor: 2000,
		MinDays:     2,
		MaxDays:     2,
	},
	cart.DeliveryExpress: {
		DisplayName: "Express Delivery (Same/Next Day)",
		AmountMinor: 3700,
	},
	cart.DeliveryUS: {
		DisplayName: "US Shipping",
		AmountMinor: 3000,
		MinDays:     5,
		MaxDays:     10,
	},
}

// ShippingOptionFor returns the shipping option for a delivery method, or
// ok=false when the method ships without one (pickup, unknown).
func ShippingOptionFor(method string) (ShippingOption, bool) {
	opt, ok := shippingOptions[method]
	return opt, ok
}

// ShippingFeeMinor is the fee charged for a delivery method in minor units.
// Pure function of the method; pickup and unknown methods are free.
func ShippingFeeMinor(method string) int64 {
	return shippingOptions[method].AmountMinor
}

// AllowedCountriesFor picks the address-collection country list: US-only for
// the us method, domestic otherwise.
func AllowedCountriesFor(method string) []string {
	if method == cart.DeliveryUS {
		return []string{"US"}
	}
	return []string{"CA"}
}
