package checkout

import (
	"encoding/json"

	"github.com/moeeznaveed278/myplug/internal/cart"
)

// Payment-session metadata keys. Values are opaque strings with provider
// size limits, hence the compact re-encoding of cart lines instead of the
// full cart objects.
const (
	MetaOrderID        = "orderId"
	MetaDeliveryMethod = "deliveryMethod"
	MetaCartItems      = "cartItems"
)

// MetadataItem is the compact {id,size,quantity} encoding of one cart line,
// round-tripped through the payment session for the webhook's stock
// decrement.
type MetadataItem struct {
	ID       string `json:"id"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// EncodeCartItems renders cart lines into the compact metadata JSON.
func EncodeCartItems(lines []cart.Line) (string, error) {
	items := make([]MetadataItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, MetadataItem{
			ID:       line.ProductID,
			Size:     line.Size,
			Quantity: line.Quantity,
		})
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseCartItems decodes the compact metadata payload. It is deliberately
// lenient: a missing or malformed payload yields an empty slice, and entries
// without an id, size, or positive quantity are dropped rather than failing
// the webhook.
func ParseCartItems(raw string) []MetadataItem {
	if raw == "" {
		return nil
	}
	var parsed []MetadataItem
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}
	items := parsed[:0]
	for _, item := range parsed {
		if item.ID == "" || item.Size == "" || item.Quantity <= 0 {
			continue
		}
		items = append(items, item)
	}
	return items
}
