package storage

import (
	"github.com/brgysanantonio/portal/internal/models"
)

// ListAllocations retrieves all budget rows ordered by id ascending.
func (db *DB) ListAllocations() ([]models.BudgetAllocation, error) {
	rows, err := db.conn.Query(
		"SELECT id, category, allocated, spent, status FROM budget_allocations ORDER BY id ASC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.BudgetAllocation
	for rows.Next() {
		var a models.BudgetAllocation
		if err := rows.Scan(&a.ID, &a.Category, &a.Allocated, &a.Spent, &a.Status); err != nil {
			return nil, err
		}
		items = append(items, a)
	}

	return items, rows.Err()
}

// GetAllocation retrieves a single budget row by ID.
func (db *DB) GetAllocation(id int64) (*models.BudgetAllocation, error) {
	row := db.conn.QueryRow(
		"SELECT id, category, allocated, spent, status FROM budget_allocations WHERE id = ?",
		id,
	)

	var a models.BudgetAllocation
	if err := row.Scan(&a.ID, &a.Category, &a.Allocated, &a.Spent, &a.Status); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAllocation overwrites the allocated, spent and status fields of a
// budget row in place. The category never changes through the API.
func (db *DB) UpdateAllocation(id int64, allocated, spent float64, status string) error {
	_, err := db.conn.Exec(
		"UPDATE budget_allocations SET allocated = ?, spent = ?, status = ? WHERE id = ?",
		allocated, spent, status, id,
	)
	return err
}

// TotalAllocated returns the sum of all allocated amounts.
func (db *DB) TotalAllocated() (float64, error) {
	var total float64
	err := db.conn.QueryRow("SELECT COALESCE(SUM(allocated), 0) FROM budget_allocations").Scan(&total)
	return total, err
}
