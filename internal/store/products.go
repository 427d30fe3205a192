package store

import (
	"database/sql"
	"errors"

	"github.com/athanas-ai/nakhasbit/internal/models"
)

const productColumns = `id, name, description, price, COALESCE(image, '') as image, COALESCE(availability, 'available') as availability, COALESCE(size, '') as size, COALESCE(color, '') as color, created_at`

func (s *Store) CreateProduct(p *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, image, availability, size, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, p.Name, p.Description, p.Price, p.Image, p.Availability, p.Size, p.Color)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		p.ID = int(id)
	}
	return nil
}

// GetAllProducts returns every product regardless of availability, in
// insertion order. Used by the catalog page and the admin dashboard.
func (s *Store) GetAllProducts() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetAvailableProducts returns up to limit products with availability
// 'available', in insertion order. Backs the landing page's featured grid.
func (s *Store) GetAvailableProducts(limit int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE availability = ? ORDER BY id LIMIT ?`
	rows, err := s.DB.Query(query, models.AvailabilityAvailable, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *Store) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`
	var p models.Product
	err := s.DB.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Availability, &p.Size, &p.Color, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct rewrites every field except the image reference, which only
// changes when a new file is uploaded (see UpdateProductImage).
func (s *Store) UpdateProduct(p *models.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, availability = ?, size = ?, color = ?
		WHERE id = ?
	`
	_, err := s.DB.Exec(query, p.Name, p.Description, p.Price, p.Availability, p.Size, p.Color, p.ID)
	return err
}

func (s *Store) UpdateProductImage(id int, image string) error {
	query := `UPDATE products SET image = ? WHERE id = ?`
	_, err := s.DB.Exec(query, image, id)
	return err
}

func (s *Store) DeleteProduct(id int) error {
	query := `DELETE FROM products WHERE id = ?`
	_, err := s.DB.Exec(query, id)
	return err
}

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Availability, &p.Size, &p.Color, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
