package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"haulageBackoffice/models"
)

// JobRequest is the payload for creating or updating a job. The clock
// times are optional; absent times simply contribute zero hours.
type JobRequest struct {
	DispatcherID int64  `json:"dispatcher_id"`
	JobTypeID    int64  `json:"job_type_id"`
	DriverID     int64  `json:"driver_id"`
	JobDate      string `json:"job_date"`

	StartTimeForJob    string `json:"start_time_for_job"`
	EndTimeForJob      string `json:"end_time_for_job"`
	StartTimeForDriver string `json:"start_time_for_driver"`
	EndTimeForDriver   string `json:"end_time_for_driver"`

	Weight models.Weight `json:"weight"`
	Loads  int           `json:"loads"`

	PaymentReceived bool `json:"payment_received"`
	DriverPaid      bool `json:"driver_paid"`
}

func (req *JobRequest) Bind(r *http.Request) error {
	if req.JobTypeID == 0 {
		return errors.New("job_type_id is required")
	}
	if req.DriverID == 0 {
		return errors.New("driver_id is required")
	}
	if strings.TrimSpace(req.JobDate) == "" {
		return errors.New("job_date is required")
	}
	return nil
}

// apply copies the request inputs onto the job. Cached figures are left
// alone; the handler recomputes them afterwards.
func (req *JobRequest) apply(j *models.Job) {
	j.JobTypeID = req.JobTypeID
	j.DriverID = req.DriverID
	j.JobDate = req.JobDate
	j.StartTimeForJob = req.StartTimeForJob
	j.EndTimeForJob = req.EndTimeForJob
	j.StartTimeForDriver = req.StartTimeForDriver
	j.EndTimeForDriver = req.EndTimeForDriver
	j.Weight = req.Weight
	j.Loads = req.Loads
	j.PaymentReceived = req.PaymentReceived
	j.DriverPaid = req.DriverPaid
}

// JobStatusRequest changes a job's invoice status.
type JobStatusRequest struct {
	Status models.InvoiceStatus `json:"status"`
}

func (req *JobStatusRequest) Bind(r *http.Request) error {
	if !req.Status.Known() {
		return errors.New("status must be Pending, Raised or Received")
	}
	return nil
}

// RaiseInvoiceRequest creates an invoice over a set of jobs. DispatcherID
// lets a verified admin raise the invoice for another dispatcher; everyone
// else bills as themselves.
type RaiseInvoiceRequest struct {
	DispatcherID int64            `json:"dispatcher_id"`
	Reference    string           `json:"reference"`
	InvoiceDate  string           `json:"invoice_date"`
	BilledTo     string           `json:"billed_to"`
	BilledEmail  string           `json:"billed_email"`
	Commission   models.FlexFloat `json:"commission"`
	JobIDs       []int64          `json:"job_ids"`
}

func (req *RaiseInvoiceRequest) Bind(r *http.Request) error {
	if len(req.JobIDs) == 0 {
		return errors.New("job_ids is required")
	}
	if strings.TrimSpace(req.InvoiceDate) == "" {
		return errors.New("invoice_date is required")
	}
	if req.Commission < 0 || req.Commission > 100 {
		return errors.New("commission must be a percentage between 0 and 100")
	}
	return nil
}

// InvoiceResponse returns an invoice together with the jobs billed on it.
type InvoiceResponse struct {
	Invoice *models.Invoice `json:"invoice"`
	Jobs    []*models.Job   `json:"jobs"`
}
