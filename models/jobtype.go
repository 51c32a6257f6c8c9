package models

// DispatchType selects the billing formula for jobs referencing a job type.
type DispatchType string

const (
	DispatchHourly  DispatchType = "Hourly"
	DispatchTonnage DispatchType = "Tonnage"
	DispatchLoad    DispatchType = "Load"
	DispatchFixed   DispatchType = "Fixed"
)

// Known reports whether the dispatch type is one of the four billable kinds.
// Jobs with an unknown dispatch type bill at zero rather than failing the batch.
func (d DispatchType) Known() bool {
	switch d {
	case DispatchHourly, DispatchTonnage, DispatchLoad, DispatchFixed:
		return true
	}
	return false
}

// JobType is a billing template shared by many jobs.
// It maps to the `job_types` table in SQLite.
type JobType struct {
	ID            int64        `db:"id" json:"id"`
	CompanyID     int64        `db:"company_id" json:"company_id"`
	Title         string       `db:"title" json:"title"`
	DispatchType  DispatchType `db:"dispatch_type" json:"dispatch_type"`
	RateOfJob     FlexFloat    `db:"rate_of_job" json:"rate_of_job"`
	StartLocation *string      `db:"start_location" json:"start_location,omitempty"`
	EndLocation   *string      `db:"end_location" json:"end_location,omitempty"`
}
