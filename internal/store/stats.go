package store

import (
	"database/sql"

	"github.com/moeeznaveed278/myplug/internal/models"
)

// lowStockThreshold flags sizes nearly sold out on the dashboard.
const lowStockThreshold = 2

type DashboardStats struct {
	TotalProducts    int
	TotalOrders      int
	PaidOrders       int
	PendingPreorders int
	LowStockSizes    int
	RecentOrders     []models.Order
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := s.DB.QueryRow(`SELECT COUNT(*) FROM products WHERE is_archived = 0`).Scan(&stats.TotalProducts)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	if stats.TotalOrders, err = s.CountOrders(); err != nil {
		return nil, err
	}
	if stats.PaidOrders, err = s.CountPaidOrders(); err != nil {
		return nil, err
	}
	if stats.PendingPreorders, err = s.CountPendingPreorders(); err != nil {
		return nil, err
	}
	if stats.LowStockSizes, err = s.CountLowStockSizes(lowStockThreshold); err != nil {
		return nil, err
	}
	if stats.RecentOrders, err = s.ListOrders(5, 0); err != nil {
		return nil, err
	}

	return stats, nil
}
