package datasource

import "errors"

// ErrDataUnavailable is wrapped by every Store failure. Callers treat it as
// fatal for the report being built.
var ErrDataUnavailable = errors.New("data unavailable")

var (
	errClosed         = errors.New("store is closed")
	errNotSelect      = errors.New("query must be a single SELECT statement")
	errWrongColumnSet = errors.New("query must return exactly two columns (x, y)")
)
