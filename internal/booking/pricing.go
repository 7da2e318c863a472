package booking

import (
	"fmt"
	"math"
)

// DefaultFeeRate is the fraction of the total charged as a service
// fee when no rate is configured.
const DefaultFeeRate = 0.05

// Quote computes the total price and service fee for booking a court
// with the given hourly rate for durationHours.  Both amounts are in
// integer currency units, rounded half-up.  The fee is derived from
// the already-rounded total, not from the raw product, so it is
// always reproducible from the displayed total.
func Quote(hourlyRate int64, durationHours, feeRate float64) (total, fee int64, err error) {
	if hourlyRate <= 0 {
		return 0, 0, fmt.Errorf("%w: hourly rate must be positive", ErrInvalidPricingInput)
	}
	if durationHours <= 0 {
		return 0, 0, fmt.Errorf("%w: duration must be positive", ErrInvalidPricingInput)
	}
	total = roundHalfUp(float64(hourlyRate) * durationHours)
	fee = roundHalfUp(float64(total) * feeRate)
	return total, fee, nil
}

// roundHalfUp rounds to the nearest integer with ties going up.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
