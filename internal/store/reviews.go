package store

import (
	"github.com/moeeznaveed278/myplug/internal/models"
)

// Reviews are append-only; there is no update or delete path.
func (s *Store) CreateReview(r *models.Review) error {
	_, err := s.DB.Exec(`
		INSERT INTO reviews (product_id, rating, comment, user_name, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, r.ProductID, r.Rating, r.Comment, r.UserName)
	return err
}

func (s *Store) ListReviewsByProduct(productID string) ([]models.Review, error) {
	rows, err := s.DB.Query(`
		SELECT id, product_id, rating, comment, user_name, created_at
		FROM reviews
		WHERE product_id = ?
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.Rating, &r.Comment, &r.UserName, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
