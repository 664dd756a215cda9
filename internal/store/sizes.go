package store

import (
	"strings"

	"github.com/moeeznaveed278/myplug/internal/models"
)

// SizeKey identifies one inventory unit: a (product, size label) pair.
type SizeKey struct {
	ProductID string
	Value     string
}

// GetSizeQuantities fetches the available quantity for each requested
// (product, size) pair in one batched query. Pairs without a matching size
// row are absent from the result map.
func (s *Store) GetSizeQuantities(keys []SizeKey) (map[SizeKey]int, error) {
	result := make(map[SizeKey]int)
	if len(keys) == 0 {
		return result, nil
	}

	productIDs := make(map[string]struct{})
	values := make(map[string]struct{})
	for _, k := range keys {
		productIDs[k.ProductID] = struct{}{}
		values[k.Value] = struct{}{}
	}

	// Query by the two distinct-value sets (like the original IN/IN lookup);
	// the caller only reads the pairs it asked for.
	var args []any
	query := `SELECT product_id, value, quantity FROM sizes WHERE product_id IN (` +
		placeholders(len(productIDs), &args, productIDs) + `) AND value IN (` +
		placeholders(len(values), &args, values) + `)`

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var k SizeKey
		var qty int
		if err := rows.Scan(&k.ProductID, &k.Value, &qty); err != nil {
			return nil, err
		}
		result[k] = qty
	}
	return result, rows.Err()
}

func placeholders(n int, args *[]any, set map[string]struct{}) string {
	marks := make([]string, 0, n)
	for v := range set {
		marks = append(marks, "?")
		*args = append(*args, v)
	}
	return strings.Join(marks, ", ")
}

// DecrementSize atomically subtracts qty from the size row's stock, flooring
// at zero. Returns false when no matching size row exists.
func (s *Store) DecrementSize(productID, value string, qty int) (bool, error) {
	res, err := s.DB.Exec(`
		UPDATE sizes
		SET quantity = MAX(quantity - ?, 0)
		WHERE product_id = ? AND value = ?
	`, qty, productID, value)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetSize returns the size row for a (product, label) pair, or nil.
func (s *Store) GetSize(productID, value string) (*models.Size, error) {
	var sz models.Size
	err := s.DB.QueryRow(`SELECT id, product_id, value, quantity FROM sizes WHERE product_id = ? AND value = ?`,
		productID, value).Scan(&sz.ID, &sz.ProductID, &sz.Value, &sz.Quantity)
	if err != nil {
		return nil, err
	}
	return &sz, nil
}

// CountLowStockSizes counts size rows at or below the given threshold, for
// the admin dashboard.
func (s *Store) CountLowStockSizes(threshold int) (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM sizes WHERE quantity <= ?`, threshold).Scan(&count)
	return count, err
}
