package billing

import (
	"log/slog"

	"haulageBackoffice/models"
)

const (
	// FuelCostPerHour is the flat per-hour fuel-cost proxy used for the
	// estimated fuel figure. It is informational only and never feeds
	// back into billing.
	FuelCostPerHour = 30.0
)

// Snapshot is the subset of a job's fields the dispatch formulas read.
// Both the gross amount and the driver pay are always computed from the
// same snapshot.
type Snapshot struct {
	HoursOfJob    float64
	HoursOfDriver float64
	Weight        models.Weight
	Loads         int
}

// Figures is the full engine output for one job, to be persisted by the
// caller as the job's cached computed fields.
type Figures struct {
	HoursOfJob       float64 `json:"hours_of_job"`
	HoursOfDriver    float64 `json:"hours_of_driver"`
	DayOfJob         string  `json:"day_of_job"`
	JobGrossAmount   float64 `json:"job_gross_amount"`
	DriverPay        float64 `json:"driver_pay"`
	EstimatedFuel    float64 `json:"estimated_fuel"`
	EstimatedRevenue float64 `json:"estimated_revenue"`
}

// Calculator computes billable amounts and driver pay. It holds no mutable
// state and is safe to share across concurrent requests; the logger is only
// used for data-integrity diagnostics (unknown dispatch types).
type Calculator struct {
	log *slog.Logger
}

// NewCalculator returns a Calculator. A nil logger falls back to
// slog.Default().
func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{log: logger}
}

// GrossAmount computes the billable amount for a job under its job type's
// dispatch rule:
//
//	Hourly:  hours rounded up to the next quarter hour × rate
//	Tonnage: sum of weight entries × rate
//	Load:    load count × rate
//	Fixed:   the rate itself, regardless of hours/weight/loads
//
// An unknown dispatch type logs a diagnostic and bills 0 so one
// misconfigured job type cannot block the rest of the pipeline.
func (c *Calculator) GrossAmount(s Snapshot, jt *models.JobType) float64 {
	rate := jt.RateOfJob.Float64()
	switch jt.DispatchType {
	case models.DispatchHourly:
		return RoundUpToQuarterHour(s.HoursOfJob) * rate
	case models.DispatchTonnage:
		return s.Weight.Sum() * rate
	case models.DispatchLoad:
		return float64(s.Loads) * rate
	case models.DispatchFixed:
		return rate
	}
	c.log.Warn("unknown dispatch type, billing zero",
		"dispatch_type", string(jt.DispatchType), "job_type_id", jt.ID)
	return 0
}

// DriverPay computes what the driver is owed for a job. Hourly and Tonnage
// dispatch pay the driver's wage for the on-duty hours with no quarter-hour
// rounding (rounding is specific to job billing). Load and Fixed dispatch
// pay the driver a percentage share of the job's own rate.
func (c *Calculator) DriverPay(s Snapshot, jt *models.JobType, d *models.Driver) float64 {
	rate := ResolveDriverRate(jt.DispatchType, d.HourlyRate.Float64())
	switch jt.DispatchType {
	case models.DispatchHourly, models.DispatchTonnage:
		return s.HoursOfDriver * rate.Amount
	case models.DispatchLoad:
		return float64(s.Loads) * jt.RateOfJob.Float64() * (rate.Amount / 100)
	case models.DispatchFixed:
		return jt.RateOfJob.Float64() * (rate.Amount / 100)
	}
	c.log.Warn("unknown dispatch type, zero driver pay",
		"dispatch_type", string(jt.DispatchType), "job_type_id", jt.ID, "driver_id", d.ID)
	return 0
}

// ComputeJob derives every cached figure for a job from its raw inputs, its
// job type and its driver. Gross amount and driver pay come from one
// snapshot, and estimated revenue is their difference by construction.
func (c *Calculator) ComputeJob(job *models.Job, jt *models.JobType, d *models.Driver) Figures {
	s := Snapshot{
		HoursOfJob:    HoursBetween(job.StartTimeForJob, job.EndTimeForJob),
		HoursOfDriver: HoursBetween(job.StartTimeForDriver, job.EndTimeForDriver),
		Weight:        job.Weight,
		Loads:         job.Loads,
	}
	gross := c.GrossAmount(s, jt)
	pay := c.DriverPay(s, jt, d)
	return Figures{
		HoursOfJob:       s.HoursOfJob,
		HoursOfDriver:    s.HoursOfDriver,
		DayOfJob:         DayOfJob(job.JobDate),
		JobGrossAmount:   gross,
		DriverPay:        pay,
		EstimatedFuel:    s.HoursOfDriver * FuelCostPerHour,
		EstimatedRevenue: gross - pay,
	}
}

// Apply writes the figures back onto the job's cached fields.
func (f Figures) Apply(job *models.Job) {
	job.HoursOfJob = f.HoursOfJob
	job.HoursOfDriver = f.HoursOfDriver
	job.DayOfJob = f.DayOfJob
	job.JobGrossAmount = f.JobGrossAmount
	job.DriverPay = f.DriverPay
	job.EstimatedFuel = f.EstimatedFuel
	job.EstimatedRevenue = f.EstimatedRevenue
}
