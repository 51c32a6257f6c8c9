package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"haulageBackoffice/models"
)

// JobTypeRepository handles CRUD for billing templates.
type JobTypeRepository struct {
	db *sql.DB
}

// NewJobTypeRepository creates a new JobTypeRepository.
func NewJobTypeRepository(db *sql.DB) *JobTypeRepository {
	return &JobTypeRepository{db: db}
}

// Create inserts a new job type.
func (r *JobTypeRepository) Create(ctx context.Context, jt *models.JobType) (*models.JobType, error) {
	if jt == nil {
		return nil, errors.New("job type is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO job_types (company_id, title, dispatch_type, rate_of_job, start_location, end_location) VALUES (?,?,?,?,?,?)`,
		jt.CompanyID, jt.Title, string(jt.DispatchType), jt.RateOfJob.Float64(), jt.StartLocation, jt.EndLocation)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	jt.ID = id
	return jt, nil
}

// GetByID fetches a job type by its ID.
func (r *JobTypeRepository) GetByID(ctx context.Context, id int64) (*models.JobType, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var jt models.JobType
	var dispatch string
	var startLoc, endLoc sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, title, dispatch_type, rate_of_job, start_location, end_location FROM job_types WHERE id = ?`, id).
		Scan(&jt.ID, &jt.CompanyID, &jt.Title, &dispatch, &jt.RateOfJob, &startLoc, &endLoc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	jt.DispatchType = models.DispatchType(dispatch)
	if startLoc.Valid {
		v := startLoc.String
		jt.StartLocation = &v
	}
	if endLoc.Valid {
		v := endLoc.String
		jt.EndLocation = &v
	}
	return &jt, nil
}

// List returns all job types for a company ordered by title.
func (r *JobTypeRepository) List(ctx context.Context, companyID int64) ([]*models.JobType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, title, dispatch_type, rate_of_job, start_location, end_location FROM job_types WHERE company_id = ? ORDER BY title, id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.JobType
	for rows.Next() {
		var jt models.JobType
		var dispatch string
		var startLoc, endLoc sql.NullString
		if err := rows.Scan(&jt.ID, &jt.CompanyID, &jt.Title, &dispatch, &jt.RateOfJob, &startLoc, &endLoc); err != nil {
			return nil, err
		}
		jt.DispatchType = models.DispatchType(dispatch)
		if startLoc.Valid {
			v := startLoc.String
			jt.StartLocation = &v
		}
		if endLoc.Valid {
			v := endLoc.String
			jt.EndLocation = &v
		}
		out = append(out, &jt)
	}
	return out, rows.Err()
}

// Update rewrites a job type. Jobs referencing it keep their cached figures
// until their next recompute.
func (r *JobTypeRepository) Update(ctx context.Context, jt *models.JobType) error {
	if jt == nil {
		return errors.New("job type is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx,
		`UPDATE job_types SET company_id = ?, title = ?, dispatch_type = ?, rate_of_job = ?, start_location = ?, end_location = ? WHERE id = ?`,
		jt.CompanyID, jt.Title, string(jt.DispatchType), jt.RateOfJob.Float64(), jt.StartLocation, jt.EndLocation, jt.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
