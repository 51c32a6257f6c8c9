package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"haulageBackoffice/internal/testutil"
	"haulageBackoffice/models"
)

// fixture bundles the repositories and seed records most tests need.
type fixture struct {
	db          *sql.DB
	dispatchers *DispatcherRepository
	jobTypes    *JobTypeRepository
	drivers     *DriverRepository
	jobs        *JobRepository
	invoices    *InvoiceRepository

	dispatcher *models.Dispatcher
	jobType    *models.JobType
	driver     *models.Driver
}

func newFixture(t *testing.T, name string) (*fixture, context.Context) {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	f := &fixture{
		db:          d,
		dispatchers: NewDispatcherRepository(d),
		jobTypes:    NewJobTypeRepository(d),
		drivers:     NewDriverRepository(d),
		jobs:        NewJobRepository(d),
		invoices:    NewInvoiceRepository(d),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	var err error
	f.dispatcher, err = f.dispatchers.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create dispatcher: %v", err)
	}
	f.jobType, err = f.jobTypes.Create(ctx, &models.JobType{
		Title: "Gravel run", DispatchType: models.DispatchHourly, RateOfJob: 100,
	})
	if err != nil {
		t.Fatalf("create job type: %v", err)
	}
	f.driver, err = f.drivers.Create(ctx, &models.Driver{Name: "Bob", HourlyRate: 25})
	if err != nil {
		t.Fatalf("create driver: %v", err)
	}
	return f, ctx
}

// seedJob inserts a job with a precomputed gross amount for the fixture
// dispatcher.
func (f *fixture) seedJob(t *testing.T, ctx context.Context, gross float64) *models.Job {
	t.Helper()
	j, err := f.jobs.Create(ctx, &models.Job{
		DispatcherID:   f.dispatcher.ID,
		JobTypeID:      f.jobType.ID,
		DriverID:       f.driver.ID,
		JobDate:        "2024-03-18",
		Weight:         models.Weight{},
		JobGrossAmount: gross,
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return j
}

func TestJobRepository_CreateDefaultsAndRoundTrip(t *testing.T) {
	f, ctx := newFixture(t, "job_create")

	j, err := f.jobs.Create(ctx, &models.Job{
		DispatcherID:       f.dispatcher.ID,
		JobTypeID:          f.jobType.ID,
		DriverID:           f.driver.ID,
		JobDate:            "2024-03-18",
		StartTimeForJob:    "08:00",
		EndTimeForJob:      "08:50",
		StartTimeForDriver: "07:30",
		EndTimeForDriver:   "09:00",
		Weight:             models.Weight{10, 12.5},
		Loads:              2,
		HoursOfJob:         50.0 / 60,
		JobGrossAmount:     100,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if j.InvoiceStatus != models.InvoiceStatusPending {
		t.Fatalf("default invoice status = %q, want Pending", j.InvoiceStatus)
	}

	got, err := f.jobs.GetByID(ctx, j.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got == nil {
		t.Fatal("job not found after create")
	}
	if got.Weight.Sum() != 22.5 {
		t.Errorf("weight round-trip = %v, want sum 22.5", got.Weight)
	}
	if got.JobGrossAmount != 100 || got.InvoiceID != nil {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestJobRepository_CreateRejectsUnknownStatus(t *testing.T) {
	f, ctx := newFixture(t, "job_badstatus")
	_, err := f.jobs.Create(ctx, &models.Job{
		DispatcherID:  f.dispatcher.ID,
		JobTypeID:     f.jobType.ID,
		DriverID:      f.driver.ID,
		JobDate:       "2024-03-18",
		InvoiceStatus: models.InvoiceStatus("Cancelled"),
	})
	if err == nil {
		t.Fatal("expected error for unrecognized invoice status")
	}
}

func TestJobRepository_UpdatePersistsRecomputedFigures(t *testing.T) {
	f, ctx := newFixture(t, "job_update")
	j := f.seedJob(t, ctx, 100)

	// Simulate a recompute after the inputs changed: inputs and cached
	// figures are written together.
	j.EndTimeForJob = "12:00"
	j.HoursOfJob = 4
	j.JobGrossAmount = 400
	j.DriverPay = 100
	j.EstimatedRevenue = 300
	if err := f.jobs.Update(ctx, j); err != nil {
		t.Fatalf("update job: %v", err)
	}

	got, err := f.jobs.GetByID(ctx, j.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.JobGrossAmount != 400 || got.HoursOfJob != 4 || got.EstimatedRevenue != 300 {
		t.Fatalf("update did not persist figures: %+v", got)
	}
}

func TestJobRepository_UpdateRecomputesLinkedInvoice(t *testing.T) {
	f, ctx := newFixture(t, "job_update_invoiced")
	j1 := f.seedJob(t, ctx, 300)
	j2 := f.seedJob(t, ctx, 200)

	inv, err := f.invoices.Raise(ctx, &models.Invoice{
		InvoiceDate: "2024-03-20", DispatcherID: f.dispatcher.ID, Commission: 10,
	}, []int64{j1.ID, j2.ID})
	if err != nil {
		t.Fatalf("raise invoice: %v", err)
	}
	if inv.SubTotal != 500 {
		t.Fatalf("subtotal = %v, want 500", inv.SubTotal)
	}

	// Changing a billed job's gross amount must flow through to the
	// invoice so its subtotal stays the sum over the linked jobs.
	j1.JobGrossAmount = 500
	if err := f.jobs.Update(ctx, j1); err != nil {
		t.Fatalf("update job: %v", err)
	}

	got, err := f.invoices.GetByID(ctx, inv.ID)
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if got.SubTotal != 700 || got.HST != 91 || got.Total != 700+91-70 {
		t.Fatalf("totals = %v/%v/%v, want 700/91/721", got.SubTotal, got.HST, got.Total)
	}

	linked, err := f.invoices.JobsForInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("jobs for invoice: %v", err)
	}
	var sum float64
	for _, j := range linked {
		sum += j.JobGrossAmount
	}
	if sum != got.SubTotal {
		t.Fatalf("subtotal %v != sum of linked jobs %v", got.SubTotal, sum)
	}
}

func TestJobRepository_UpdateInvoiceStatusTransitions(t *testing.T) {
	f, ctx := newFixture(t, "job_status")
	j := f.seedJob(t, ctx, 100)

	// Pending -> Received skips Raised and must be rejected untouched.
	if err := f.jobs.UpdateInvoiceStatus(ctx, j.ID, models.InvoiceStatusReceived); err == nil {
		t.Fatal("Pending -> Received should be rejected")
	}
	got, _ := f.jobs.GetByID(ctx, j.ID)
	if got.InvoiceStatus != models.InvoiceStatusPending {
		t.Fatalf("status changed on rejected transition: %q", got.InvoiceStatus)
	}

	if err := f.jobs.UpdateInvoiceStatus(ctx, j.ID, models.InvoiceStatusRaised); err != nil {
		t.Fatalf("Pending -> Raised: %v", err)
	}
	if err := f.jobs.UpdateInvoiceStatus(ctx, j.ID, models.InvoiceStatusReceived); err != nil {
		t.Fatalf("Raised -> Received: %v", err)
	}
	got, _ = f.jobs.GetByID(ctx, j.ID)
	if got.InvoiceStatus != models.InvoiceStatusReceived {
		t.Fatalf("status = %q, want Received", got.InvoiceStatus)
	}
}

func TestJobRepository_ListFilters(t *testing.T) {
	f, ctx := newFixture(t, "job_list")
	j1 := f.seedJob(t, ctx, 300)
	f.seedJob(t, ctx, 200)

	inv, err := f.invoices.Raise(ctx, &models.Invoice{
		InvoiceDate: "2024-03-20", DispatcherID: f.dispatcher.ID, Commission: 10,
	}, []int64{j1.ID})
	if err != nil {
		t.Fatalf("raise invoice: %v", err)
	}

	uninvoiced, err := f.jobs.List(ctx, ListJobsParams{DispatcherID: &f.dispatcher.ID, Uninvoiced: true})
	if err != nil {
		t.Fatalf("list uninvoiced: %v", err)
	}
	if len(uninvoiced) != 1 || uninvoiced[0].ID == j1.ID {
		t.Fatalf("uninvoiced list wrong: %+v", uninvoiced)
	}

	onInvoice, err := f.jobs.List(ctx, ListJobsParams{InvoiceID: &inv.ID})
	if err != nil {
		t.Fatalf("list by invoice: %v", err)
	}
	if len(onInvoice) != 1 || onInvoice[0].ID != j1.ID {
		t.Fatalf("invoice list wrong: %+v", onInvoice)
	}
}
