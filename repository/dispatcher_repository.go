package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"haulageBackoffice/models"
)

// DispatcherRepository handles CRUD for dispatcher principals.
type DispatcherRepository struct {
	db *sql.DB
}

// NewDispatcherRepository creates a new DispatcherRepository.
func NewDispatcherRepository(db *sql.DB) *DispatcherRepository {
	return &DispatcherRepository{db: db}
}

// Create inserts a new dispatcher with the default role.
func (r *DispatcherRepository) Create(ctx context.Context, username string) (*models.Dispatcher, error) {
	if username == "" {
		return nil, errors.New("username is empty")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `INSERT INTO dispatchers (username) VALUES (?)`, username)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Dispatcher{ID: id, Username: username, Role: "dispatcher"}, nil
}

// GetByUsername fetches a dispatcher by username.
func (r *DispatcherRepository) GetByUsername(ctx context.Context, username string) (*models.Dispatcher, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var d models.Dispatcher
	err := r.db.QueryRowContext(ctx, `SELECT id, username, role FROM dispatchers WHERE username = ?`, username).
		Scan(&d.ID, &d.Username, &d.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// GetByID fetches a dispatcher by ID.
func (r *DispatcherRepository) GetByID(ctx context.Context, id int64) (*models.Dispatcher, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var d models.Dispatcher
	err := r.db.QueryRowContext(ctx, `SELECT id, username, role FROM dispatchers WHERE id = ?`, id).
		Scan(&d.ID, &d.Username, &d.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
