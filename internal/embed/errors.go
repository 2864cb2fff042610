package embed

import (
	"errors"
	"fmt"
)

// Sentinel errors for the embed dialog fields. All of them are recoverable
// by correcting the input.
var (
	ErrParse          = errors.New("no src attribute found in embed code")
	ErrMissingSnippet = errors.New("embed code is required")
	ErrMissingWidth   = errors.New("width is required")
	ErrInvalidWidth   = errors.New("width must be a positive integer")
	ErrMissingHeight  = errors.New("height is required")
	ErrInvalidHeight  = errors.New("height must be a positive integer")
)

// FieldError ties a validation failure to the form field that caused it.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v (got %q)", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Fields flattens err into the field errors it carries, in order.
// Errors that are not field errors are returned under the "snippet" field.
func Fields(err error) []*FieldError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*FieldError
		for _, e := range joined.Unwrap() {
			out = append(out, Fields(e)...)
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return []*FieldError{fe}
	}
	return []*FieldError{{Field: "snippet", Err: err}}
}
