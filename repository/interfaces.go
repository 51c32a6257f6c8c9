package repository

import (
	"context"

	"haulageBackoffice/models"
)

// DispatcherRepositoryI defines operations on Dispatcher entities.
type DispatcherRepositoryI interface {
	Create(ctx context.Context, username string) (*models.Dispatcher, error)
	GetByUsername(ctx context.Context, username string) (*models.Dispatcher, error)
	GetByID(ctx context.Context, id int64) (*models.Dispatcher, error)
}

// JobTypeRepositoryI defines operations on JobType entities.
type JobTypeRepositoryI interface {
	Create(ctx context.Context, jt *models.JobType) (*models.JobType, error)
	GetByID(ctx context.Context, id int64) (*models.JobType, error)
	List(ctx context.Context, companyID int64) ([]*models.JobType, error)
	Update(ctx context.Context, jt *models.JobType) error
}

// DriverRepositoryI defines operations on Driver entities.
type DriverRepositoryI interface {
	Create(ctx context.Context, d *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	List(ctx context.Context, companyID int64) ([]*models.Driver, error)
	Update(ctx context.Context, d *models.Driver) error
}

// JobRepositoryI defines operations on Job entities.
type JobRepositoryI interface {
	Create(ctx context.Context, j *models.Job) (*models.Job, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	UpdateInvoiceStatus(ctx context.Context, id int64, status models.InvoiceStatus) error
	List(ctx context.Context, p ListJobsParams) ([]*models.Job, error)
}

// InvoiceRepositoryI defines operations on Invoice entities.
type InvoiceRepositoryI interface {
	GetByID(ctx context.Context, id int64) (*models.Invoice, error)
	GetByReference(ctx context.Context, reference string) (*models.Invoice, error)
	JobsForInvoice(ctx context.Context, invoiceID int64) ([]*models.Job, error)
	Raise(ctx context.Context, inv *models.Invoice, jobIDs []int64) (*models.Invoice, error)
	RemoveJob(ctx context.Context, invoiceID, jobID int64) (*models.Invoice, error)
}
