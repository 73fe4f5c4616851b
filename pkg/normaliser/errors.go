package normaliser

import "fmt"

type Kind string

const (
	KindUnexpectedRouteID      Kind = "UnexpectedRouteID"
	KindUnexpectedTripHeadsign Kind = "UnexpectedTripHeadsign"
	KindUnexpectedTripsToMerge Kind = "UnexpectedTripsToMerge"
)

// FatalError aborts the whole run. Record names the raw feed record the
// failure came from.
type FatalError struct {
	Kind   Kind
	Record string
	Err    error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Record, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
