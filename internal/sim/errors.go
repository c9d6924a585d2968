package sim

import "errors"

// Sentinel errors returned by the solvers. Callers classify failures with
// errors.Is; the HTTP layer maps grid and interval errors to client faults
// and ErrNonFinite to an unprocessable run.
var (
	// ErrGridTooSmall reports an axis with fewer than two points. Grid
	// spacing is 1/(n-1), so a one-point axis has no defined spacing.
	ErrGridTooSmall = errors.New("grid axis needs at least 2 points")

	// ErrOutputInterval reports a sampling stride below 1.
	ErrOutputInterval = errors.New("output interval must be at least 1")

	// ErrNumSteps reports a negative step count.
	ErrNumSteps = errors.New("number of steps must be non-negative")

	// ErrNonFinite reports a NaN or Inf appearing in the field mid-run.
	ErrNonFinite = errors.New("field contains non-finite values")
)
