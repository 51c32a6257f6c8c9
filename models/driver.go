package models

// Driver represents a driver who can be assigned to jobs.
// It maps to the `drivers` table in SQLite.
//
// HourlyRate is dual-purpose: an hourly wage for Hourly/Tonnage dispatch,
// and a percentage share of the job rate for Load/Fixed dispatch. The
// billing package resolves it into an explicit tagged rate per dispatch
// type so the two meanings never mix.
type Driver struct {
	ID         int64     `db:"id" json:"id"`
	CompanyID  int64     `db:"company_id" json:"company_id"`
	Name       string    `db:"name" json:"name"`
	HourlyRate FlexFloat `db:"hourly_rate" json:"hourly_rate"`
}
