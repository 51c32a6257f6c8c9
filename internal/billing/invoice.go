package billing

import (
	"errors"
	"fmt"

	"haulageBackoffice/models"
)

// HSTRate is the flat tax applied to an invoice's pre-commission subtotal.
const HSTRate = 0.13

// Invoice aggregation conflicts. These fail the whole job set: a
// partially-billed invoice is a correctness hazard, so no conflicting job
// is ever silently dropped.
var (
	ErrNoJobs             = errors.New("invoice requires at least one job")
	ErrJobAlreadyInvoiced = errors.New("job is already linked to another invoice")
	ErrWrongDispatcher    = errors.New("job belongs to a different dispatcher")
)

// InvoiceTotals is the derived money block of an invoice.
type InvoiceTotals struct {
	SubTotal   float64 `json:"sub_total"`
	Commission float64 `json:"commission"`
	HST        float64 `json:"hst"`
	Total      float64 `json:"total"`
}

// ComputeInvoiceTotals derives an invoice's money block from its jobs'
// gross amounts and the dispatcher's commission percentage. HST is computed
// on the pre-commission subtotal; swapping that order changes the total.
func ComputeInvoiceTotals(grossAmounts []float64, commissionPercent float64) InvoiceTotals {
	var subTotal float64
	for _, g := range grossAmounts {
		subTotal += g
	}
	commission := subTotal * (commissionPercent / 100)
	hst := subTotal * HSTRate
	return InvoiceTotals{
		SubTotal:   subTotal,
		Commission: commission,
		HST:        hst,
		Total:      subTotal + hst - commission,
	}
}

// ValidateInvoiceJobs checks that every job may be billed on an invoice for
// the given dispatcher. A job already linked to a different invoice, or
// owned by a different dispatcher, rejects the whole set. invoiceID is the
// invoice being built; nil means a new invoice, so any existing link is a
// conflict.
func ValidateInvoiceJobs(dispatcherID int64, jobs []*models.Job, invoiceID *int64) error {
	if len(jobs) == 0 {
		return ErrNoJobs
	}
	for _, j := range jobs {
		if j.DispatcherID != dispatcherID {
			return fmt.Errorf("job %d: %w", j.ID, ErrWrongDispatcher)
		}
		if j.InvoiceID != nil && (invoiceID == nil || *j.InvoiceID != *invoiceID) {
			return fmt.Errorf("job %d: %w", j.ID, ErrJobAlreadyInvoiced)
		}
	}
	return nil
}
