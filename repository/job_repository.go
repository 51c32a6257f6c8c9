package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"haulageBackoffice/models"
)

// jobColumns is the canonical column list shared by every job query.
const jobColumns = `id, dispatcher_id, job_type_id, driver_id, job_date,
start_time_for_job, end_time_for_job, start_time_for_driver, end_time_for_driver,
weight, loads, invoice_id, invoice_status, payment_received, driver_paid,
hours_of_job, hours_of_driver, job_gross_amount, driver_pay, estimated_fuel, estimated_revenue, day_of_job`

// JobRepository is the core repository for Job entities.
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create inserts a new job. InvoiceStatus defaults to 'Pending' if empty;
// the default is resolved here, once, not at call sites. The caller is
// expected to have filled the cached computed fields from the billing
// engine before insert.
func (r *JobRepository) Create(ctx context.Context, j *models.Job) (*models.Job, error) {
	if j == nil {
		return nil, errors.New("job is nil")
	}
	if j.InvoiceStatus == "" {
		j.InvoiceStatus = models.InvoiceStatusPending
	}
	if !j.InvoiceStatus.Known() {
		return nil, errors.New("unrecognized invoice status: " + string(j.InvoiceStatus))
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	weight, err := j.Weight.Value()
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, `INSERT INTO jobs
(dispatcher_id, job_type_id, driver_id, job_date,
 start_time_for_job, end_time_for_job, start_time_for_driver, end_time_for_driver,
 weight, loads, invoice_id, invoice_status, payment_received, driver_paid,
 hours_of_job, hours_of_driver, job_gross_amount, driver_pay, estimated_fuel, estimated_revenue, day_of_job)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		j.DispatcherID, j.JobTypeID, j.DriverID, j.JobDate,
		j.StartTimeForJob, j.EndTimeForJob, j.StartTimeForDriver, j.EndTimeForDriver,
		weight, j.Loads, j.InvoiceID, string(j.InvoiceStatus), j.PaymentReceived, j.DriverPaid,
		j.HoursOfJob, j.HoursOfDriver, j.JobGrossAmount, j.DriverPay, j.EstimatedFuel, j.EstimatedRevenue, j.DayOfJob)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	j.ID = id
	return j, nil
}

// GetByID fetches a job by its ID.
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return j, nil
}

// Update rewrites a job's input fields and its cached computed fields in
// one statement so the cache can never drift from the inputs it was
// derived from. When the job is already linked to an invoice, the invoice's
// money block is re-derived from its linked jobs in the same transaction,
// keeping the subtotal equal to the sum of the linked gross amounts.
// Invoice linkage itself is not touched here; that goes through the invoice
// repository's transactional paths.
func (r *JobRepository) Update(ctx context.Context, j *models.Job) error {
	if j == nil {
		return errors.New("job is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	weight, err := j.Weight.Value()
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var invoiceID sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT invoice_id FROM jobs WHERE id = ?`, j.ID).Scan(&invoiceID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE jobs SET
dispatcher_id = ?, job_type_id = ?, driver_id = ?, job_date = ?,
start_time_for_job = ?, end_time_for_job = ?, start_time_for_driver = ?, end_time_for_driver = ?,
weight = ?, loads = ?, payment_received = ?, driver_paid = ?,
hours_of_job = ?, hours_of_driver = ?, job_gross_amount = ?, driver_pay = ?,
estimated_fuel = ?, estimated_revenue = ?, day_of_job = ?
WHERE id = ?`,
		j.DispatcherID, j.JobTypeID, j.DriverID, j.JobDate,
		j.StartTimeForJob, j.EndTimeForJob, j.StartTimeForDriver, j.EndTimeForDriver,
		weight, j.Loads, j.PaymentReceived, j.DriverPaid,
		j.HoursOfJob, j.HoursOfDriver, j.JobGrossAmount, j.DriverPay,
		j.EstimatedFuel, j.EstimatedRevenue, j.DayOfJob,
		j.ID); err != nil {
		return err
	}

	if invoiceID.Valid {
		if _, err := recomputeInvoiceTotals(ctx, tx, invoiceID.Int64); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateInvoiceStatus applies a manual invoice-status correction after
// validating the transition against the current stored status. The prior
// status is left untouched on rejection. The read and the write run in one
// transaction with a guard on the prior status so two concurrent
// corrections cannot both slip past validation.
func (r *JobRepository) UpdateInvoiceStatus(ctx context.Context, id int64, status models.InvoiceStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var cur string
	if err := tx.QueryRowContext(ctx, `SELECT invoice_status FROM jobs WHERE id = ?`, id).Scan(&cur); err != nil {
		return err
	}
	if err := models.InvoiceStatus(cur).ValidateTransition(status); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE jobs SET invoice_status = ? WHERE id = ? AND invoice_status = ?`,
		string(status), id, cur)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("invoice status of job %d changed concurrently", id)
	}
	return tx.Commit()
}

// ListJobsParams represents filters for List.
type ListJobsParams struct {
	DispatcherID *int64
	Uninvoiced   bool // only jobs not linked to any invoice
	InvoiceID    *int64
	JobDateFrom  *string // inclusive lower bound on job_date
	JobDateTo    *string // inclusive upper bound on job_date
}

// List returns jobs matching the filters ordered by job_date, id.
func (r *JobRepository) List(ctx context.Context, p ListJobsParams) ([]*models.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var where []string
	var args []any
	if p.DispatcherID != nil {
		where = append(where, "dispatcher_id = ?")
		args = append(args, *p.DispatcherID)
	}
	if p.Uninvoiced {
		where = append(where, "invoice_id IS NULL")
	}
	if p.InvoiceID != nil {
		where = append(where, "invoice_id = ?")
		args = append(args, *p.InvoiceID)
	}
	if p.JobDateFrom != nil {
		where = append(where, "job_date >= ?")
		args = append(args, *p.JobDateFrom)
	}
	if p.JobDateTo != nil {
		where = append(where, "job_date <= ?")
		args = append(args, *p.JobDateTo)
	}

	q := `SELECT ` + jobColumns + ` FROM jobs`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY job_date, id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobRows(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var j models.Job
	var status string
	var invoiceID sql.NullInt64
	err := row.Scan(&j.ID, &j.DispatcherID, &j.JobTypeID, &j.DriverID, &j.JobDate,
		&j.StartTimeForJob, &j.EndTimeForJob, &j.StartTimeForDriver, &j.EndTimeForDriver,
		&j.Weight, &j.Loads, &invoiceID, &status, &j.PaymentReceived, &j.DriverPaid,
		&j.HoursOfJob, &j.HoursOfDriver, &j.JobGrossAmount, &j.DriverPay,
		&j.EstimatedFuel, &j.EstimatedRevenue, &j.DayOfJob)
	if err != nil {
		return nil, err
	}
	j.InvoiceStatus = models.InvoiceStatus(status)
	if invoiceID.Valid {
		v := invoiceID.Int64
		j.InvoiceID = &v
	}
	return &j, nil
}

func scanJobRows(rows *sql.Rows) ([]*models.Job, error) {
	var out []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}
