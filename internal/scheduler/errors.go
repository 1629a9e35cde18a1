package scheduler

import "fmt"

// panicError wraps a recovered adapter panic so it reports like any other
// per-URL failure.
type panicError struct {
	domain string
	value  any
}

func newPanicError(domain string, value any) error {
	return &panicError{domain: domain, value: value}
}

func (e *panicError) Error() string {
	return fmt.Sprintf("adapter %s panicked: %v", e.domain, e.value)
}
