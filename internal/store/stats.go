package store

import "database/sql"

type DashboardStats struct {
	TotalProducts          int
	TotalOrders            int
	ProductsByAvailability map[string]int
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		ProductsByAvailability: make(map[string]int),
	}

	err := s.DB.QueryRow("SELECT COUNT(*) FROM products").Scan(&stats.TotalProducts)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COUNT(*) FROM custom_orders").Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query("SELECT availability, COUNT(*) FROM products GROUP BY availability")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var availability string
		var count int
		if err := rows.Scan(&availability, &count); err != nil {
			return nil, err
		}
		stats.ProductsByAvailability[availability] = count
	}

	return stats, rows.Err()
}
