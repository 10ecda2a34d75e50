package models

import "fmt"

// ValidationError reports caller input or an upstream record that failed
// schema or constraint checks. Path identifies the offending field or
// parameter, Expected the shape it had to satisfy.
type ValidationError struct {
	Path     string
	Expected string
	Err      error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed at %s: expected %s: %v", e.Path, e.Expected, e.Err)
	}
	return fmt.Sprintf("validation failed at %s: expected %s", e.Path, e.Expected)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
