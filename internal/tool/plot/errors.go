package plot

import (
	"errors"
	"fmt"
)

// Render error kinds. Both are recoverable: callers may fall back to an
// error report instead of aborting.
var (
	ErrMalformedInput  = errors.New("malformed input")
	ErrEncodingFailure = errors.New("encoding failure")
)

// RenderError reports why a chart could not be produced.
// Kind is one of ErrMalformedInput or ErrEncodingFailure.
type RenderError struct {
	Kind error
	Err  error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("render: %v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("render: %v", e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *RenderError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func malformed(format string, args ...any) error {
	return &RenderError{Kind: ErrMalformedInput, Err: fmt.Errorf(format, args...)}
}

func encodingFailure(err error) error {
	return &RenderError{Kind: ErrEncodingFailure, Err: err}
}
