// Package checkout implements the checkout-to-fulfillment pipeline: stock
// re-validation at checkout time, pending order creation, the Stripe hosted
// session, and the webhook-driven fulfillment that marks orders paid,
// decrements inventory and sends the receipt email.
package checkout

import (
	"fmt"

	"github.com/moeeznaveed278/myplug/internal/cart"
	"github.com/moeeznaveed278/myplug/internal/models"
	"github.com/moeeznaveed278/myplug/internal/store"
)

// Stock failure reasons.
const (
	ReasonSizeUnavailable   = "size_unavailable"
	ReasonInsufficientStock = "insufficient_stock"
)

// StockError is a user-facing validation failure for one cart line.
type StockError struct {
	Reason    string
	Message   string
	Available int // only set for insufficient stock
}

func (e *StockError) Error() string { return e.Message }

// ValidateStock confirms every concrete-size cart line is coverable by
// current inventory. Lines with no size or the implicit "One Size" variant
// are never checked. The quantities for all distinct (product, size) pairs
// are fetched in one batched lookup, then the first violation short-circuits
// with a single message.
//
// The check is advisory: nothing is reserved, so two concurrent checkouts
// can both pass for the last unit. The webhook-time decrement is the
// authoritative write and floors at zero.
func ValidateStock(s *store.Store, lines []cart.Line) error {
	var checkable []cart.Line
	for _, line := range lines {
		if line.Size == "" || line.Size == models.OneSizeLabel {
			continue
		}
		checkable = append(checkable, line)
	}
	if len(checkable) == 0 {
		return nil
	}

	keys := make([]store.SizeKey, 0, len(checkable))
	for _, line := range checkable {
		keys = append(keys, store.SizeKey{ProductID: line.ProductID, Value: line.Size})
	}

	available, err := s.GetSizeQuantities(keys)
	if err != nil {
		return fmt.Errorf("stock lookup: %w", err)
	}

	for _, line := range checkable {
		qty, ok := available[store.SizeKey{ProductID: line.ProductID, Value: line.Size}]
		if !ok {
			return &StockError{
				Reason:  ReasonSizeUnavailable,
				Message: fmt.Sprintf("Size %s is not available for %s.", line.Size, line.Name),
			}
		}
		if line.Quantity > qty {
			return &StockError{
				Reason:    ReasonInsufficientStock,
				Message:   fmt.Sprintf("Only %d left for %s (Size: %s).", qty, line.Name, line.Size),
				Available: qty,
			}
		}
	}

	return nil
}
