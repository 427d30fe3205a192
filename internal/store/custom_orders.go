package store

import (
	"github.com/athanas-ai/nakhasbit/internal/models"
)

func (s *Store) CreateCustomOrder(o *models.CustomOrder) error {
	query := `
		INSERT INTO custom_orders (product_type, material, color, occasion, size, notes, name, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := s.DB.Exec(query, o.ProductType, o.Material, o.Color, o.Occasion, o.Size, o.Notes, o.Name, o.Phone)
	if err != nil {
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		o.ID = int(id)
	}
	return nil
}

// GetAllCustomOrders returns every custom order, newest first, for the
// admin dashboard. Orders are never mutated or deleted through the app.
func (s *Store) GetAllCustomOrders() ([]models.CustomOrder, error) {
	query := `
		SELECT id, product_type, COALESCE(material, '') as material, COALESCE(color, '') as color,
		       COALESCE(occasion, '') as occasion, COALESCE(size, '') as size, COALESCE(notes, '') as notes,
		       name, phone, created_at
		FROM custom_orders
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.CustomOrder
	for rows.Next() {
		var o models.CustomOrder
		if err := rows.Scan(&o.ID, &o.ProductType, &o.Material, &o.Color, &o.Occasion, &o.Size, &o.Notes, &o.Name, &o.Phone, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) GetTotalCustomOrdersCount() (int, error) {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM custom_orders").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
