package models

// Job is the unit of work being billed.
// It maps to the `jobs` table in SQLite.
//
// The HoursOfJob..DayOfJob fields are a cache of the billing engine's
// output. They are recomputed together from the same snapshot whenever any
// input field changes and are never patched individually.
type Job struct {
	ID           int64  `db:"id" json:"id"`
	DispatcherID int64  `db:"dispatcher_id" json:"dispatcher_id"`
	JobTypeID    int64  `db:"job_type_id" json:"job_type_id"`
	DriverID     int64  `db:"driver_id" json:"driver_id"`
	JobDate      string `db:"job_date" json:"job_date"` // "2006-01-02"

	// Clock times in "HH:MM". The driver's on-duty window need not equal
	// the billable job window.
	StartTimeForJob    string `db:"start_time_for_job" json:"start_time_for_job"`
	EndTimeForJob      string `db:"end_time_for_job" json:"end_time_for_job"`
	StartTimeForDriver string `db:"start_time_for_driver" json:"start_time_for_driver"`
	EndTimeForDriver   string `db:"end_time_for_driver" json:"end_time_for_driver"`

	Weight Weight `db:"weight" json:"weight"`
	Loads  int    `db:"loads" json:"loads"`

	InvoiceID       *int64        `db:"invoice_id" json:"invoice_id,omitempty"`
	InvoiceStatus   InvoiceStatus `db:"invoice_status" json:"invoice_status"`
	PaymentReceived bool          `db:"payment_received" json:"payment_received"`
	DriverPaid      bool          `db:"driver_paid" json:"driver_paid"`

	// Cached engine output.
	HoursOfJob       float64 `db:"hours_of_job" json:"hours_of_job"`
	HoursOfDriver    float64 `db:"hours_of_driver" json:"hours_of_driver"`
	JobGrossAmount   float64 `db:"job_gross_amount" json:"job_gross_amount"`
	DriverPay        float64 `db:"driver_pay" json:"driver_pay"`
	EstimatedFuel    float64 `db:"estimated_fuel" json:"estimated_fuel"`
	EstimatedRevenue float64 `db:"estimated_revenue" json:"estimated_revenue"`
	DayOfJob         string  `db:"day_of_job" json:"day_of_job"`
}
