package billing

import "haulageBackoffice/models"

// RateKind tags how a driver's stored rate is to be read.
type RateKind string

const (
	// RateWage reads the driver rate as an hourly wage.
	RateWage RateKind = "wage"
	// RatePercentage reads the driver rate as a percentage share of the
	// job's own rate.
	RatePercentage RateKind = "percentage"
)

// DriverRate is a driver's rate resolved against a dispatch type. The same
// stored number is a wage for Hourly/Tonnage dispatch and a percentage for
// Load/Fixed dispatch; tagging it here keeps the two units from mixing.
type DriverRate struct {
	Kind   RateKind
	Amount float64
}

// ResolveDriverRate maps a driver's stored hourly-rate figure to its
// meaning under the given dispatch type. Unknown dispatch types resolve to
// a zero wage, matching the fail-soft pay rule.
func ResolveDriverRate(dispatch models.DispatchType, hourlyRate float64) DriverRate {
	switch dispatch {
	case models.DispatchLoad, models.DispatchFixed:
		return DriverRate{Kind: RatePercentage, Amount: hourlyRate}
	case models.DispatchHourly, models.DispatchTonnage:
		return DriverRate{Kind: RateWage, Amount: hourlyRate}
	}
	return DriverRate{Kind: RateWage}
}
