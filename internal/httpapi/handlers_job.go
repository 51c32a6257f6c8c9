package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"haulageBackoffice/internal/auth"
	"haulageBackoffice/models"
	"haulageBackoffice/repository"
)

// handleCreateJob creates a job and computes its billing figures before
// persisting. A dispatcher principal always owns the jobs it creates; an
// admin may create a job for any dispatcher via dispatcher_id.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireDispatcherOrAdmin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req JobRequest
	if err := render.Bind(r, &req); err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}

	dispatcherID, err := s.resolveDispatcherID(r, p, req.DispatcherID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	job := &models.Job{DispatcherID: dispatcherID}
	req.apply(job)
	if err := s.computeFigures(r, job); err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.Jobs.Create(r.Context(), job)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// handleUpdateJob replaces a job's inputs and recomputes every cached
// figure from the new snapshot. Invoice linkage is not touched here; when
// the job is already billed, the repository re-derives the linked
// invoice's totals in the same transaction as the job write.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireDispatcherOrAdmin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	job, err := s.ownedJob(r, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req JobRequest
	if err := render.Bind(r, &req); err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}

	req.apply(job)
	if err := s.computeFigures(r, job); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.Jobs.Update(r.Context(), job); err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireDispatcherOrAdmin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	job, err := s.ownedJob(r, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, job)
}

// handleListJobs lists jobs. Dispatchers only see their own jobs; admins
// may filter by dispatcher_id or see everything. uninvoiced=1 narrows to
// jobs not yet linked to an invoice.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireDispatcherOrAdmin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var params repository.ListJobsParams
	q := r.URL.Query()
	if p.Kind == "admin" {
		if _, err := auth.RequireAdmin(r.Context(), s.Dispatchers); err != nil {
			s.writeError(w, r, err)
			return
		}
		if v := q.Get("dispatcher_id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				s.writeError(w, r, badRequest(errors.New("dispatcher_id must be an integer")))
				return
			}
			params.DispatcherID = &id
		}
	} else {
		d, err := s.callerDispatcher(r, p)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		params.DispatcherID = &d.ID
	}
	params.Uninvoiced = q.Get("uninvoiced") == "1" || q.Get("uninvoiced") == "true"
	if v := q.Get("from"); v != "" {
		params.JobDateFrom = &v
	}
	if v := q.Get("to"); v != "" {
		params.JobDateTo = &v
	}

	jobs, err := s.Jobs.List(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	render.JSON(w, r, jobs)
}

// handleUpdateJobStatus moves a job through the invoice-status lifecycle.
func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	p, err := auth.RequireDispatcherOrAdmin(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	job, err := s.ownedJob(r, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req JobStatusRequest
	if err := render.Bind(r, &req); err != nil {
		s.writeError(w, r, badRequest(err))
		return
	}
	if err := job.InvoiceStatus.ValidateTransition(req.Status); err != nil {
		s.writeError(w, r, conflict(err))
		return
	}
	if err := s.Jobs.UpdateInvoiceStatus(r.Context(), job.ID, req.Status); err != nil {
		s.writeError(w, r, err)
		return
	}
	job.InvoiceStatus = req.Status
	render.JSON(w, r, job)
}

// computeFigures loads the job's type and driver and refreshes the cached
// billing figures from the current inputs.
func (s *Server) computeFigures(r *http.Request, job *models.Job) error {
	jt, err := s.JobTypes.GetByID(r.Context(), job.JobTypeID)
	if err != nil {
		return err
	}
	if jt == nil {
		return badRequest(errors.New("job type not found"))
	}
	d, err := s.Drivers.GetByID(r.Context(), job.DriverID)
	if err != nil {
		return err
	}
	if d == nil {
		return badRequest(errors.New("driver not found"))
	}
	s.calc.ComputeJob(job, jt, d).Apply(job)
	return nil
}

// ownedJob loads the job from the id URL param and enforces that a
// dispatcher principal only touches its own jobs.
func (s *Server) ownedJob(r *http.Request, p *auth.Principal) (*models.Job, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, badRequest(errors.New("job id must be an integer"))
	}
	job, err := s.Jobs.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errNotFound
	}
	if p.Kind == "admin" {
		// The role check guards against a token claiming admin without
		// the backing dispatcher record.
		if _, err := auth.RequireAdmin(r.Context(), s.Dispatchers); err != nil {
			return nil, err
		}
		return job, nil
	}
	d, err := s.callerDispatcher(r, p)
	if err != nil {
		return nil, err
	}
	if job.DispatcherID != d.ID {
		return nil, auth.ErrForbidden
	}
	return job, nil
}

// callerDispatcher resolves the principal to its dispatcher record.
func (s *Server) callerDispatcher(r *http.Request, p *auth.Principal) (*models.Dispatcher, error) {
	d, err := s.Dispatchers.GetByUsername(r.Context(), p.Name)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, auth.ErrForbidden
	}
	return d, nil
}

// resolveDispatcherID decides which dispatcher owns the record being
// created. Only a verified admin may act for another dispatcher.
func (s *Server) resolveDispatcherID(r *http.Request, p *auth.Principal, requested int64) (int64, error) {
	if requested == 0 {
		d, err := s.callerDispatcher(r, p)
		if err != nil {
			return 0, err
		}
		return d.ID, nil
	}
	if p.Kind == "admin" {
		if _, err := auth.RequireAdmin(r.Context(), s.Dispatchers); err != nil {
			return 0, err
		}
		d, err := s.Dispatchers.GetByID(r.Context(), requested)
		if err != nil {
			return 0, err
		}
		if d == nil {
			return 0, badRequest(errors.New("dispatcher not found"))
		}
		return d.ID, nil
	}
	d, err := s.callerDispatcher(r, p)
	if err != nil {
		return 0, err
	}
	if d.ID != requested {
		return 0, auth.ErrForbidden
	}
	return d.ID, nil
}
