package ops

import "fmt"

// UnknownOperationError reports a request referencing an operation name that
// was never registered.
type UnknownOperationError struct {
	Operation string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Operation)
}
