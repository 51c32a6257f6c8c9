package repository

import (
	"errors"
	"testing"

	"haulageBackoffice/internal/billing"
	"haulageBackoffice/models"
)

func TestInvoiceRepository_RaiseComputesTotalsAndLinksJobs(t *testing.T) {
	f, ctx := newFixture(t, "inv_raise")
	j1 := f.seedJob(t, ctx, 300)
	j2 := f.seedJob(t, ctx, 200)

	inv, err := f.invoices.Raise(ctx, &models.Invoice{
		InvoiceDate:  "2024-03-20",
		DispatcherID: f.dispatcher.ID,
		BilledTo:     "Acme Aggregates",
		Commission:   10,
	}, []int64{j1.ID, j2.ID})
	if err != nil {
		t.Fatalf("raise invoice: %v", err)
	}

	if inv.SubTotal != 500 || inv.HST != 65 || inv.Total != 515 {
		t.Fatalf("totals = sub %v hst %v total %v, want 500/65/515", inv.SubTotal, inv.HST, inv.Total)
	}
	if inv.Reference == "" {
		t.Fatal("invoice reference not assigned")
	}

	for _, id := range []int64{j1.ID, j2.ID} {
		j, err := f.jobs.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get job: %v", err)
		}
		if j.InvoiceID == nil || *j.InvoiceID != inv.ID {
			t.Errorf("job %d not linked to invoice", id)
		}
		if j.InvoiceStatus != models.InvoiceStatusRaised {
			t.Errorf("job %d status = %q, want Raised", id, j.InvoiceStatus)
		}
	}

	// Subtotal equals the sum over exactly the linked jobs.
	linked, err := f.invoices.JobsForInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("jobs for invoice: %v", err)
	}
	var sum float64
	for _, j := range linked {
		sum += j.JobGrossAmount
	}
	if sum != inv.SubTotal {
		t.Fatalf("subtotal %v != sum of linked jobs %v", inv.SubTotal, sum)
	}
}

func TestInvoiceRepository_RaiseRejectsDoubleBilling(t *testing.T) {
	f, ctx := newFixture(t, "inv_double")
	j1 := f.seedJob(t, ctx, 300)
	j2 := f.seedJob(t, ctx, 200)

	if _, err := f.invoices.Raise(ctx, &models.Invoice{
		InvoiceDate: "2024-03-20", DispatcherID: f.dispatcher.ID,
	}, []int64{j1.ID}); err != nil {
		t.Fatalf("first raise: %v", err)
	}

	// The whole set is rejected, not just the conflicting job.
	_, err := f.invoices.Raise(ctx, &models.Invoice{
		InvoiceDate: "2024-03-21", DispatcherID: f.dispatcher.ID,
	}, []int64{j1.ID, j2.ID})
	if !errors.Is(err, billing.ErrJobAlreadyInvoiced) {
		t.Fatalf("want ErrJobAlreadyInvoiced, got %v", err)
	}

	// The clean job must remain untouched by the failed raise.
	j, _ := f.jobs.GetByID(ctx, j2.ID)
	if j.InvoiceID != nil || j.InvoiceStatus != models.InvoiceStatusPending {
		t.Fatalf("failed raise mutated job %d: %+v", j2.ID, j)
	}
}

func TestInvoiceRepository_RaiseRejectsDuplicateReference(t *testing.T) {
	f, ctx := newFixture(t, "inv_dupref")
	j1 := f.seedJob(t, ctx, 300)
	j2 := f.seedJob(t, ctx, 200)

	if _, err := f.invoices.Raise(ctx, &models.Invoice{
		Reference: "INV-001", InvoiceDate: "2024-03-20", DispatcherID: f.dispatcher.ID,
	}, []int64{j1.ID}); err != nil {
		t.Fatalf("first raise: %v", err)
	}

	_, err := f.invoices.Raise(ctx, &models.Invoice{
		Reference: "INV-001", InvoiceDate: "2024-03-21", DispatcherID: f.dispatcher.ID,
	}, []int64{j2.ID})
	if !errors.Is(err, ErrDuplicateReference) {
		t.Fatalf("want ErrDuplicateReference, got %v", err)
	}
}

func TestInvoiceRepository_RaiseRejectsForeignDispatcher(t *testing.T) {
	f, ctx := newFixture(t, "inv_foreign")
	j1 := f.seedJob(t, ctx, 300)

	other, err := f.dispatchers.Create(ctx, "mallory")
	if err != nil {
		t.Fatalf("create dispatcher: %v", err)
	}
	_, err = f.invoices.Raise(ctx, &models.Invoice{
		InvoiceDate: "2024-03-20", DispatcherID: other.ID,
	}, []int64{j1.ID})
	if !errors.Is(err, billing.ErrWrongDispatcher) {
		t.Fatalf("want ErrWrongDispatcher, got %v", err)
	}
}

func TestInvoiceRepository_RaiseRejectsEmptyAndMissing(t *testing.T) {
	f, ctx := newFixture(t, "inv_missing")

	if _, err := f.invoices.Raise(ctx, &models.Invoice{DispatcherID: f.dispatcher.ID}, nil); !errors.Is(err, billing.ErrNoJobs) {
		t.Fatalf("want ErrNoJobs, got %v", err)
	}
	if _, err := f.invoices.Raise(ctx, &models.Invoice{DispatcherID: f.dispatcher.ID}, []int64{9999}); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("want ErrJobNotFound, got %v", err)
	}
}

func TestInvoiceRepository_RemoveJobRevertsAndRecomputes(t *testing.T) {
	f, ctx := newFixture(t, "inv_remove")
	j1 := f.seedJob(t, ctx, 300)
	j2 := f.seedJob(t, ctx, 200)

	inv, err := f.invoices.Raise(ctx, &models.Invoice{
		InvoiceDate: "2024-03-20", DispatcherID: f.dispatcher.ID, Commission: 10,
	}, []int64{j1.ID, j2.ID})
	if err != nil {
		t.Fatalf("raise invoice: %v", err)
	}

	updated, err := f.invoices.RemoveJob(ctx, inv.ID, j2.ID)
	if err != nil {
		t.Fatalf("remove job: %v", err)
	}

	// Removed job reverts to Pending with no linkage.
	j, _ := f.jobs.GetByID(ctx, j2.ID)
	if j.InvoiceID != nil || j.InvoiceStatus != models.InvoiceStatusPending {
		t.Fatalf("removed job not reverted: %+v", j)
	}

	// Totals re-derive from the remaining job: 300 + 13% - 10%.
	if updated.SubTotal != 300 {
		t.Errorf("SubTotal = %v, want 300", updated.SubTotal)
	}
	if updated.HST != 39 {
		t.Errorf("HST = %v, want 39", updated.HST)
	}
	if updated.Total != 300+39-30 {
		t.Errorf("Total = %v, want 309", updated.Total)
	}

	// Removing a job that is not on the invoice fails without changes.
	if _, err := f.invoices.RemoveJob(ctx, inv.ID, j2.ID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("want ErrJobNotFound, got %v", err)
	}
}
