package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/moeeznaveed278/myplug/internal/models"
)

const productColumns = `id, name, description, price, gender, product_type, images, is_featured, is_archived, COALESCE(category_id, '') as category_id, created_at`

// ProductFilter narrows ListProducts. Zero values mean "no filter".
type ProductFilter struct {
	Gender      string
	ProductType string
	Size        string // products having a size row with this value
	Search      string // case-insensitive substring on name
	CategoryID  string
}

func scanProduct(scan func(dest ...any) error) (models.Product, error) {
	var p models.Product
	var images string
	err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Gender, &p.ProductType,
		&images, &p.IsFeatured, &p.IsArchived, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		// A corrupt images column shouldn't hide the product
		p.Images = nil
	}
	return p, nil
}

func (s *Store) CreateProduct(p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO products (id, name, description, price, gender, product_type, images, is_featured, is_archived, category_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Description, p.Price, p.Gender, p.ProductType, string(images), p.IsFeatured, p.CategoryID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	for _, sz := range p.Sizes {
		if _, err := tx.Exec(`INSERT INTO sizes (product_id, value, quantity) VALUES (?, ?, ?)`,
			p.ID, sz.Value, sz.Quantity); err != nil {
			return fmt.Errorf("insert size: %w", err)
		}
	}

	return tx.Commit()
}

// UpdateProduct rewrites the product row and replaces its size set with the
// submitted one (delete + recreate, simple and predictable for admin edits).
func (s *Store) UpdateProduct(p *models.Product) error {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return err
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE products
		SET name = ?, description = ?, price = ?, gender = ?, product_type = ?, images = ?, is_featured = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.Gender, p.ProductType, string(images), p.IsFeatured, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM sizes WHERE product_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear sizes: %w", err)
	}
	for _, sz := range p.Sizes {
		if _, err := tx.Exec(`INSERT INTO sizes (product_id, value, quantity) VALUES (?, ?, ?)`,
			p.ID, sz.Value, sz.Quantity); err != nil {
			return fmt.Errorf("insert size: %w", err)
		}
	}

	return tx.Commit()
}

// ArchiveProduct soft-deletes. Products referenced by historical orders are
// never hard-deleted.
func (s *Store) ArchiveProduct(id string) error {
	_, err := s.DB.Exec(`UPDATE products SET is_archived = 1 WHERE id = ?`, id)
	return err
}

func (s *Store) GetProductByID(id string) (*models.Product, error) {
	row := s.DB.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row.Scan)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(`SELECT id, product_id, value, quantity FROM sizes WHERE product_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sz models.Size
		if err := rows.Scan(&sz.ID, &sz.ProductID, &sz.Value, &sz.Quantity); err != nil {
			return nil, err
		}
		p.Sizes = append(p.Sizes, sz)
	}

	return &p, rows.Err()
}

// ListProducts returns non-archived products matching the filter, newest first.
func (s *Store) ListProducts(f ProductFilter) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_archived = 0`
	var args []any

	if f.Gender != "" {
		query += ` AND gender = ?`
		args = append(args, f.Gender)
	}
	if f.ProductType != "" {
		query += ` AND product_type = ?`
		args = append(args, f.ProductType)
	}
	if f.Size != "" {
		query += ` AND id IN (SELECT product_id FROM sizes WHERE value = ?)`
		args = append(args, f.Size)
	}
	if f.Search != "" {
		query += ` AND name LIKE '%' || ? || '%' COLLATE NOCASE`
		args = append(args, f.Search)
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	query += ` ORDER BY created_at DESC`

	return s.queryProducts(query, args...)
}

// ListAllProducts includes archived products, for the admin back office.
func (s *Store) ListAllProducts() ([]models.Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`)
}

func (s *Store) ListFeaturedProducts() ([]models.Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` FROM products WHERE is_featured = 1 AND is_archived = 0 ORDER BY created_at DESC`)
}

func (s *Store) queryProducts(query string, args ...any) ([]models.Product, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetOrCreateCategory looks a category up by name, creating it on first use.
func (s *Store) GetOrCreateCategory(name string) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRow(`SELECT id, name FROM categories WHERE name = ?`, name).Scan(&c.ID, &c.Name)
	if err == nil {
		return &c, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	c = models.Category{ID: uuid.New().String(), Name: name}
	if _, err := s.DB.Exec(`INSERT INTO categories (id, name) VALUES (?, ?)`, c.ID, c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCategories() ([]models.Category, error) {
	rows, err := s.DB.Query(`SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
