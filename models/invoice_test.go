package models

import "testing"

func TestInvoiceStatus_CanTransitionTo(t *testing.T) {
	valid := [][2]InvoiceStatus{
		{InvoiceStatusPending, InvoiceStatusRaised},
		{InvoiceStatusRaised, InvoiceStatusReceived},
		{InvoiceStatusRaised, InvoiceStatusPending},
		{InvoiceStatusReceived, InvoiceStatusPending},
		{InvoiceStatusReceived, InvoiceStatusRaised},
	}
	for _, v := range valid {
		if !v[0].CanTransitionTo(v[1]) {
			t.Errorf("%s -> %s should be valid", v[0], v[1])
		}
	}

	invalid := [][2]InvoiceStatus{
		{InvoiceStatusPending, InvoiceStatusReceived},
		{InvoiceStatusPending, InvoiceStatusPending},
		{InvoiceStatusRaised, InvoiceStatusRaised},
		{InvoiceStatusReceived, InvoiceStatusReceived},
	}
	for _, v := range invalid {
		if v[0].CanTransitionTo(v[1]) {
			t.Errorf("%s -> %s should be invalid", v[0], v[1])
		}
	}
}

func TestInvoiceStatus_ValidateTransition(t *testing.T) {
	if err := InvoiceStatusPending.ValidateTransition(InvoiceStatus("Cancelled")); err == nil {
		t.Fatal("unrecognized status should be rejected")
	}
	if err := InvoiceStatusPending.ValidateTransition(InvoiceStatusReceived); err == nil {
		t.Fatal("Pending -> Received should be rejected")
	}
	if err := InvoiceStatusPending.ValidateTransition(InvoiceStatusRaised); err != nil {
		t.Fatalf("Pending -> Raised should pass, got %v", err)
	}
}
