package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/moeeznaveed278/myplug/internal/models"
)

func (s *Store) CreatePreorder(p *models.Preorder) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = models.PreorderPending
	}
	_, err := s.DB.Exec(`
		INSERT INTO preorders (id, customer_name, phone_number, instagram, product_name, product_image, size, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.CustomerName, p.PhoneNumber, p.Instagram, p.ProductName, p.ProductImage, p.Size, p.Status)
	return err
}

func (s *Store) ListPreorders() ([]models.Preorder, error) {
	rows, err := s.DB.Query(`
		SELECT id, customer_name, phone_number, instagram, product_name, product_image, size, status, created_at
		FROM preorders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var preorders []models.Preorder
	for rows.Next() {
		var p models.Preorder
		if err := rows.Scan(&p.ID, &p.CustomerName, &p.PhoneNumber, &p.Instagram, &p.ProductName, &p.ProductImage, &p.Size, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		preorders = append(preorders, p)
	}
	return preorders, rows.Err()
}

func (s *Store) UpdatePreorderStatus(id, status string) error {
	switch status {
	case models.PreorderPending, models.PreorderContacted, models.PreorderClosed:
	default:
		return fmt.Errorf("invalid preorder status %q", status)
	}
	_, err := s.DB.Exec(`UPDATE preorders SET status = ? WHERE id = ?`, status, id)
	return err
}

func (s *Store) DeletePreorder(id string) error {
	_, err := s.DB.Exec(`DELETE FROM preorders WHERE id = ?`, id)
	return err
}

func (s *Store) CountPendingPreorders() (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM preorders WHERE status = ?`, models.PreorderPending).Scan(&count)
	return count, err
}
