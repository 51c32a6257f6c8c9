package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"haulageBackoffice/internal/auth"
	"haulageBackoffice/internal/billing"
	"haulageBackoffice/repository"
)

var errNotFound = errors.New("not found")

// statusError carries an HTTP status alongside the underlying error.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func badRequest(err error) error { return &statusError{code: http.StatusBadRequest, err: err} }
func conflict(err error) error   { return &statusError{code: http.StatusConflict, err: err} }

// writeError maps an error to an HTTP status and renders a JSON body.
// Invoice conflicts (double billing, wrong dispatcher) map to 409 so the
// client can distinguish them from malformed input.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError

	var sErr *statusError
	switch {
	case errors.As(err, &sErr):
		code = sErr.code
	case errors.Is(err, errNotFound), errors.Is(err, repository.ErrJobNotFound):
		code = http.StatusNotFound
	case errors.Is(err, auth.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, billing.ErrNoJobs):
		code = http.StatusBadRequest
	case errors.Is(err, billing.ErrJobAlreadyInvoiced), errors.Is(err, billing.ErrWrongDispatcher),
		errors.Is(err, repository.ErrDuplicateReference):
		code = http.StatusConflict
	}

	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	render.Status(r, code)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
