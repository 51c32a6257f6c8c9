package billing

import (
	"errors"
	"testing"

	"haulageBackoffice/models"
)

func TestComputeInvoiceTotals(t *testing.T) {
	// Scenario E: gross 300 + 200 at 10% commission.
	got := ComputeInvoiceTotals([]float64{300, 200}, 10)
	if got.SubTotal != 500 {
		t.Errorf("SubTotal = %v, want 500", got.SubTotal)
	}
	if got.HST != 65 {
		t.Errorf("HST = %v, want 65", got.HST)
	}
	if got.Commission != 50 {
		t.Errorf("Commission = %v, want 50", got.Commission)
	}
	if got.Total != 515 {
		t.Errorf("Total = %v, want 515", got.Total)
	}
}

func TestComputeInvoiceTotals_TaxOnPreCommissionSubtotal(t *testing.T) {
	// HST applies to the subtotal before commission is subtracted.
	got := ComputeInvoiceTotals([]float64{1000}, 50)
	if got.HST != 130 {
		t.Fatalf("HST = %v, want 130 (13%% of 1000, not of 500)", got.HST)
	}
	if got.Total != 1000+130-500 {
		t.Fatalf("Total = %v, want 630", got.Total)
	}
}

func TestComputeInvoiceTotals_Empty(t *testing.T) {
	got := ComputeInvoiceTotals(nil, 10)
	if got.SubTotal != 0 || got.HST != 0 || got.Commission != 0 || got.Total != 0 {
		t.Fatalf("empty totals = %+v, want all zero", got)
	}
}

func TestValidateInvoiceJobs(t *testing.T) {
	other := int64(9)
	mine := int64(4)
	jobs := []*models.Job{
		{ID: 1, DispatcherID: 7},
		{ID: 2, DispatcherID: 7, InvoiceID: &mine},
	}

	// New invoice: job 2 is already on invoice 4.
	err := ValidateInvoiceJobs(7, jobs, nil)
	if !errors.Is(err, ErrJobAlreadyInvoiced) {
		t.Fatalf("want ErrJobAlreadyInvoiced for new invoice, got %v", err)
	}

	// Updating invoice 4: job 2's existing link is fine.
	if err := ValidateInvoiceJobs(7, jobs, &mine); err != nil {
		t.Fatalf("update of own invoice should pass, got %v", err)
	}

	// Job linked to a different invoice still conflicts.
	if err := ValidateInvoiceJobs(7, jobs, &other); !errors.Is(err, ErrJobAlreadyInvoiced) {
		t.Fatalf("want ErrJobAlreadyInvoiced for foreign invoice, got %v", err)
	}
}

func TestValidateInvoiceJobs_WrongDispatcher(t *testing.T) {
	jobs := []*models.Job{
		{ID: 1, DispatcherID: 7},
		{ID: 2, DispatcherID: 8},
	}
	err := ValidateInvoiceJobs(7, jobs, nil)
	if !errors.Is(err, ErrWrongDispatcher) {
		t.Fatalf("want ErrWrongDispatcher, got %v", err)
	}
}

func TestValidateInvoiceJobs_EmptySet(t *testing.T) {
	if err := ValidateInvoiceJobs(7, nil, nil); !errors.Is(err, ErrNoJobs) {
		t.Fatalf("want ErrNoJobs, got %v", err)
	}
}
