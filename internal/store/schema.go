package store

import "log/slog"

// InitSchema creates all tables directly, without the migrations directory.
// Used by the cli and by tests running against :memory: databases; the
// server goes through Migrate instead.
func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL DEFAULT 0,
		gender TEXT NOT NULL DEFAULT 'MEN',
		product_type TEXT NOT NULL DEFAULT 'SHOES',
		images TEXT NOT NULL DEFAULT '[]',
		is_featured INTEGER NOT NULL DEFAULT 0,
		is_archived INTEGER NOT NULL DEFAULT 0,
		category_id TEXT REFERENCES categories(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sizes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		value TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0)
	);
	CREATE INDEX IF NOT EXISTS idx_sizes_product_value ON sizes(product_id, value);

	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		is_paid INTEGER NOT NULL DEFAULT 0,
		customer_name TEXT NOT NULL DEFAULT '',
		customer_email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		delivery_method TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL REFERENCES products(id),
		size TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

	CREATE TABLE IF NOT EXISTS preorders (
		id TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		instagram TEXT NOT NULL DEFAULT '',
		product_name TEXT NOT NULL,
		product_image TEXT NOT NULL DEFAULT '',
		size TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		rating INTEGER NOT NULL DEFAULT 5,
		comment TEXT NOT NULL DEFAULT '',
		user_name TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
