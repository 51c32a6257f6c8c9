package models

import "fmt"

// InvoiceStatus tracks where a job (or invoice) sits in the billing cycle.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "Pending"
	InvoiceStatusRaised   InvoiceStatus = "Raised"
	InvoiceStatusReceived InvoiceStatus = "Received"
)

// Known reports whether the status is one of the recognized values.
func (s InvoiceStatus) Known() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusRaised, InvoiceStatusReceived:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a valid step in
// the billing cycle: Pending → Raised → Received, plus Raised → Pending
// (job removed from its invoice) and Received → Pending/Raised (manual
// correction). Everything else, including a self-transition, is rejected.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceStatusPending:
		return next == InvoiceStatusRaised
	case InvoiceStatusRaised:
		return next == InvoiceStatusReceived || next == InvoiceStatusPending
	case InvoiceStatusReceived:
		return next == InvoiceStatusPending || next == InvoiceStatusRaised
	}
	return false
}

// ValidateTransition returns a descriptive error for invalid steps.
func (s InvoiceStatus) ValidateTransition(next InvoiceStatus) error {
	if !next.Known() {
		return fmt.Errorf("unrecognized invoice status %q", string(next))
	}
	if !s.CanTransitionTo(next) {
		return fmt.Errorf("invalid invoice status transition %s -> %s", string(s), string(next))
	}
	return nil
}

// Invoice aggregates a dispatcher's jobs into a billable statement.
// SubTotal, HST and Total are derived from the linked jobs and are
// recomputed whenever the job set changes.
type Invoice struct {
	ID           int64         `db:"id" json:"id"`
	Reference    string        `db:"reference" json:"reference"`
	InvoiceDate  string        `db:"invoice_date" json:"invoice_date"`
	DispatcherID int64         `db:"dispatcher_id" json:"dispatcher_id"`
	BilledTo     string        `db:"billed_to" json:"billed_to"`
	BilledEmail  string        `db:"billed_email" json:"billed_email"`
	Commission   FlexFloat     `db:"commission" json:"commission"`
	Status       InvoiceStatus `db:"status" json:"status"`
	SubTotal     float64       `db:"sub_total" json:"sub_total"`
	HST          float64       `db:"hst" json:"hst"`
	Total        float64       `db:"total" json:"total"`
}
