package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"haulageBackoffice/models"
)

// DriverRepository handles CRUD for drivers.
type DriverRepository struct {
	db *sql.DB
}

// NewDriverRepository creates a new DriverRepository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create inserts a new driver.
func (r *DriverRepository) Create(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	if d == nil {
		return nil, errors.New("driver is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO drivers (company_id, name, hourly_rate) VALUES (?,?,?)`,
		d.CompanyID, d.Name, d.HourlyRate.Float64())
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	d.ID = id
	return d, nil
}

// GetByID fetches a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var d models.Driver
	err := r.db.QueryRowContext(ctx, `SELECT id, company_id, name, hourly_rate FROM drivers WHERE id = ?`, id).
		Scan(&d.ID, &d.CompanyID, &d.Name, &d.HourlyRate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// List returns all drivers for a company ordered by name.
func (r *DriverRepository) List(ctx context.Context, companyID int64) ([]*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT id, company_id, name, hourly_rate FROM drivers WHERE company_id = ? ORDER BY name, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.HourlyRate); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// Update rewrites a driver's rate configuration.
func (r *DriverRepository) Update(ctx context.Context, d *models.Driver) error {
	if d == nil {
		return errors.New("driver is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE drivers SET company_id = ?, name = ?, hourly_rate = ? WHERE id = ?`,
		d.CompanyID, d.Name, d.HourlyRate.Float64(), d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
