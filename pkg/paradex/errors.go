package paradex

import "fmt"

// AuthenticationError reports an authenticated capability used without a
// valid credential, or a credential rejected upstream. It never degrades to
// public mode silently.
type AuthenticationError struct {
	Reason string
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a network failure or non-2xx response from the
// exchange. Status is zero when the request never reached the exchange.
type UpstreamError struct {
	Path   string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s returned status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("upstream %s unavailable: %v", e.Path, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
