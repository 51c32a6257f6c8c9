package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"haulageBackoffice/internal/billing"
	"haulageBackoffice/models"
)

// ErrJobNotFound is returned when a referenced job does not exist.
var ErrJobNotFound = errors.New("job not found")

// ErrDuplicateReference is returned when raising an invoice with a
// reference that is already taken.
var ErrDuplicateReference = errors.New("invoice reference already in use")

// InvoiceRepository handles invoices and their job linkage. Raising an
// invoice and removing a job from one run inside a single transaction so a
// job can never end up billed on two invoices, even under concurrent
// requests.
type InvoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// GetByID fetches an invoice by its ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return getInvoice(ctx, r.db, id)
}

// GetByReference fetches an invoice by its external reference.
func (r *InvoiceRepository) GetByReference(ctx context.Context, reference string) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var inv models.Invoice
	var status string
	err := r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE reference = ?`, reference).
		Scan(&inv.ID, &inv.Reference, &inv.InvoiceDate, &inv.DispatcherID, &inv.BilledTo, &inv.BilledEmail,
			&inv.Commission, &status, &inv.SubTotal, &inv.HST, &inv.Total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	inv.Status = models.InvoiceStatus(status)
	return &inv, nil
}

// JobsForInvoice returns the jobs currently linked to an invoice.
func (r *InvoiceRepository) JobsForInvoice(ctx context.Context, invoiceID int64) ([]*models.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE invoice_id = ? ORDER BY job_date, id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobRows(rows)
}

// Raise creates an invoice over the given jobs. Inside one transaction it
// re-reads every job, rejects the whole set on any conflict (job missing,
// owned by another dispatcher, or already linked to an invoice), derives
// the totals, inserts the invoice row, links the jobs and transitions them
// to Raised. The check-and-set runs under the transaction, which is what
// makes concurrent double-booking impossible.
func (r *InvoiceRepository) Raise(ctx context.Context, inv *models.Invoice, jobIDs []int64) (*models.Invoice, error) {
	if inv == nil {
		return nil, errors.New("invoice is nil")
	}
	if len(jobIDs) == 0 {
		return nil, billing.ErrNoJobs
	}
	if inv.Reference == "" {
		inv.Reference = uuid.NewString()
	} else if existing, err := r.GetByReference(ctx, inv.Reference); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, inv.Reference)
	}
	// Explicit construction-time default, not scattered per call site.
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusPending
	}
	if !inv.Status.Known() {
		return nil, errors.New("unrecognized invoice status: " + string(inv.Status))
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	jobs, err := jobsForUpdate(ctx, tx, jobIDs)
	if err != nil {
		return nil, err
	}
	if len(jobs) != len(jobIDs) {
		return nil, fmt.Errorf("%w: requested %d jobs, found %d", ErrJobNotFound, len(jobIDs), len(jobs))
	}
	if err := billing.ValidateInvoiceJobs(inv.DispatcherID, jobs, nil); err != nil {
		return nil, err
	}

	gross := make([]float64, len(jobs))
	for i, j := range jobs {
		gross[i] = j.JobGrossAmount
	}
	totals := billing.ComputeInvoiceTotals(gross, inv.Commission.Float64())
	inv.SubTotal = totals.SubTotal
	inv.HST = totals.HST
	inv.Total = totals.Total

	res, err := tx.ExecContext(ctx, `INSERT INTO invoices
(reference, invoice_date, dispatcher_id, billed_to, billed_email, commission, status, sub_total, hst, total)
VALUES (?,?,?,?,?,?,?,?,?,?)`,
		inv.Reference, inv.InvoiceDate, inv.DispatcherID, inv.BilledTo, inv.BilledEmail,
		inv.Commission.Float64(), string(inv.Status), inv.SubTotal, inv.HST, inv.Total)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	inv.ID = id

	for _, j := range jobs {
		if _, err := tx.ExecContext(ctx, `UPDATE jobs SET invoice_id = ?, invoice_status = ? WHERE id = ?`,
			id, string(models.InvoiceStatusRaised), j.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inv, nil
}

// RemoveJob detaches a job from an invoice, reverts the job to Pending and
// re-derives the invoice totals from the jobs that remain, all in one
// transaction.
func (r *InvoiceRepository) RemoveJob(ctx context.Context, invoiceID, jobID int64) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	inv, err := getInvoice(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, sql.ErrNoRows
	}

	res, err := tx.ExecContext(ctx, `UPDATE jobs SET invoice_id = NULL, invoice_status = ? WHERE id = ? AND invoice_id = ?`,
		string(models.InvoiceStatusPending), jobID, invoiceID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: job %d is not on invoice %d", ErrJobNotFound, jobID, invoiceID)
	}

	inv, err = recomputeInvoiceTotals(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return inv, nil
}

// recomputeInvoiceTotals re-derives an invoice's money block from the jobs
// currently linked to it and persists it, all on the caller's transaction.
// Every path that changes a linked job's gross amount or the job set itself
// must go through this before committing.
func recomputeInvoiceTotals(ctx context.Context, tx *sql.Tx, invoiceID int64) (*models.Invoice, error) {
	inv, err := getInvoice(ctx, tx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, sql.ErrNoRows
	}

	var gross []float64
	rows, err := tx.QueryContext(ctx, `SELECT job_gross_amount FROM jobs WHERE invoice_id = ?`, invoiceID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var g float64
		if err := rows.Scan(&g); err != nil {
			rows.Close()
			return nil, err
		}
		gross = append(gross, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totals := billing.ComputeInvoiceTotals(gross, inv.Commission.Float64())
	inv.SubTotal = totals.SubTotal
	inv.HST = totals.HST
	inv.Total = totals.Total
	if _, err := tx.ExecContext(ctx, `UPDATE invoices SET sub_total = ?, hst = ?, total = ? WHERE id = ?`,
		inv.SubTotal, inv.HST, inv.Total, invoiceID); err != nil {
		return nil, err
	}
	return inv, nil
}

const invoiceColumns = `id, reference, invoice_date, dispatcher_id, billed_to, billed_email, commission, status, sub_total, hst, total`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getInvoice(ctx context.Context, q queryRower, id int64) (*models.Invoice, error) {
	var inv models.Invoice
	var status string
	err := q.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id).
		Scan(&inv.ID, &inv.Reference, &inv.InvoiceDate, &inv.DispatcherID, &inv.BilledTo, &inv.BilledEmail,
			&inv.Commission, &status, &inv.SubTotal, &inv.HST, &inv.Total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	inv.Status = models.InvoiceStatus(status)
	return &inv, nil
}

// jobsForUpdate re-reads the given jobs inside the transaction.
func jobsForUpdate(ctx context.Context, tx *sql.Tx, ids []int64) ([]*models.Job, error) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	rows, err := tx.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id IN (`+strings.Join(placeholders, ",")+`) ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobRows(rows)
}
