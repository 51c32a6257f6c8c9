package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"haulageBackoffice/internal/auth"
	"haulageBackoffice/internal/export"
	"haulageBackoffice/models"
)

// handleRaiseInvoice creates an invoice over the requested jobs. The whole
// set is validated and billed in one transaction; any conflicting job
// rejects the entire request.
func (s *Server) handleRaiseInvoice(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireDispatcherOrAdmin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req RaiseInvoiceRequest
	if err := render.Bind(r, &req); err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}

	dispatcherID, err := s.resolveDispatcherID(r, p, req.DispatcherID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	inv, err := s.Invoices.Raise(r.Context(), &models.Invoice{
		Reference:    req.Reference,
		InvoiceDate:  req.InvoiceDate,
		DispatcherID: dispatcherID,
		BilledTo:     req.BilledTo,
		BilledEmail:  req.BilledEmail,
		Commission:   req.Commission,
	}, req.JobIDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, inv)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireDispatcherOrAdmin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	inv, err := s.ownedInvoice(r, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jobs, err := s.Invoices.JobsForInvoice(r.Context(), inv.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, InvoiceResponse{Invoice: inv, Jobs: jobs})
}

// handleRemoveInvoiceJob takes a job off an invoice, reverting the job to
// Pending and re-deriving the invoice totals from the remaining jobs.
func (s *Server) handleRemoveInvoiceJob(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireDispatcherOrAdmin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	inv, err := s.ownedInvoice(r, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jobID, err := strconv.ParseInt(chi.URLParam(r, "jobID"), 10, 64)
	if err != nil {
		s.writeError(w, r, badRequest(errors.New("job id must be an integer")))
		return
	}
	updated, err := s.Invoices.RemoveJob(r.Context(), inv.ID, jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, updated)
}

// handleInvoiceStatement streams the invoice as an XLSX workbook.
func (s *Server) handleInvoiceStatement(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireDispatcherOrAdmin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	inv, err := s.ownedInvoice(r, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	jobs, err := s.Invoices.JobsForInvoice(r.Context(), inv.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	f, err := export.InvoiceStatement(inv, jobs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="invoice-%s.xlsx"`, inv.Reference))
	if err := f.Write(w); err != nil {
		s.log.Error("write statement", "invoice_id", inv.ID, "err", err)
	}
}

// ownedInvoice loads the invoice from the id URL param and enforces that a
// dispatcher principal only touches its own invoices.
func (s *Server) ownedInvoice(r *http.Request, p *auth.Principal) (*models.Invoice, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, badRequest(errors.New("invoice id must be an integer"))
	}
	inv, err := s.Invoices.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, errNotFound
	}
	if p.Kind == "admin" {
		if _, err := auth.RequireAdmin(r.Context(), s.Dispatchers); err != nil {
			return nil, err
		}
		return inv, nil
	}
	d, err := s.callerDispatcher(r, p)
	if err != nil {
		return nil, err
	}
	if inv.DispatcherID != d.ID {
		return nil, auth.ErrForbidden
	}
	return inv, nil
}
