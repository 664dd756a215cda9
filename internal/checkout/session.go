package checkout

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/moeeznaveed278/myplug/internal/cart"
	"github.com/moeeznaveed278/myplug/internal/metrics"
	"github.com/moeeznaveed278/myplug/internal/models"
	"github.com/moeeznaveed278/myplug/internal/store"
)

// ErrGateway is the generic failure returned when the payment provider
// rejects the session. The pending order created beforehand is left behind
// on purpose: it is never shown to customers and is cheap to ignore.
var ErrGateway = errors.New("failed to create checkout session")

const currency = "cad"

// Service drives checkout initiation: stock validation, pending order
// creation, and the hosted payment session.
type Service struct {
	Store   *store.Store
	BaseURL string // origin for success/cancel redirects
	Metrics *metrics.Pipeline
}

// Begin validates the cart, creates the pending order, and opens a hosted
// payment session. It returns the provider's redirect URL. Validation
// failures come back as *StockError; gateway failures as ErrGateway.
func (s *Service) Begin(c *cart.Cart) (string, error) {
	if err := ValidateStock(s.Store, c.Items); err != nil {
		s.Metrics.Checkout("validation_failed")
		return "", err
	}

	// The order exists before the payment session: if session creation
	// fails we keep the orphaned unpaid row rather than rolling back.
	order := &models.Order{}
	for _, line := range c.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}
	if err := s.Store.CreateOrder(order); err != nil {
		s.Metrics.Checkout("order_error")
		return "", fmt.Errorf("create pending order: %w", err)
	}

	params, err := BuildSessionParams(c.Items, c.DeliveryMethod, order.ID, s.BaseURL)
	if err != nil {
		s.Metrics.Checkout("gateway_error")
		slog.Error("Failed to build checkout session params", "order_id", order.ID, "error", err)
		return "", ErrGateway
	}

	sess, err := session.New(params)
	if err != nil {
		s.Metrics.Checkout("gateway_error")
		slog.Error("Stripe session creation failed", "order_id", order.ID, "error", err)
		return "", ErrGateway
	}

	s.Metrics.Checkout("created")
	slog.Info("Checkout session created", "order_id", order.ID, "session_id", sess.ID)
	return sess.URL, nil
}

// BuildSessionParams assembles the hosted-checkout request: one line item
// per cart entry, the shipping option for the delivery method, and metadata
// carrying the order id plus the compact cart encoding.
func BuildSessionParams(lines []cart.Line, deliveryMethod, orderID, baseURL string) (*stripe.CheckoutSessionParams, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(fmt.Sprintf("%s - Size: %s", line.Name, line.Size)),
		}
		if line.Image != "" {
			product.Images = stripe.StringSlice([]string{line.Image})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(int64(line.Quantity)),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				UnitAmount:  stripe.Int64(int64(math.Round(line.Price * 100))),
				ProductData: product,
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: lineItems,
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
			"afterpay_clearpay",
			"klarna",
			"affirm",
		}),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(AllowedCountriesFor(deliveryMethod)),
		},
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		SuccessURL: stripe.String(baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(baseURL + "/cart"),
	}

	if opt, ok := ShippingOptionFor(deliveryMethod); ok {
		rate := &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
			Type:        stripe.String("fixed_amount"),
			DisplayName: stripe.String(opt.DisplayName),
			FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
				Amount:   stripe.Int64(opt.AmountMinor),
				Currency: stripe.String(currency),
			},
		}
		if opt.MinDays > 0 {
			rate.DeliveryEstimate = &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateParams{
				Minimum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMinimumParams{
					Unit:  stripe.String("business_day"),
					Value: stripe.Int64(opt.MinDays),
				},
				Maximum: &stripe.CheckoutSessionShippingOptionShippingRateDataDeliveryEstimateMaximumParams{
					Unit:  stripe.String("business_day"),
					Value: stripe.Int64(opt.MaxDays),
				},
			}
		}
		params.ShippingOptions = []*stripe.CheckoutSessionShippingOptionParams{
			{ShippingRateData: rate},
		}
	}

	compact, err := EncodeCartItems(lines)
	if err != nil {
		return nil, fmt.Errorf("encode cart metadata: %w", err)
	}
	params.AddMetadata(MetaOrderID, orderID)
	params.AddMetadata(MetaDeliveryMethod, deliveryMethod)
	params.AddMetadata(MetaCartItems, compact)

	return params, nil
}
