// Package selection decides which repository files are sampled for a credibility review.
package selection

import "fmt"

// Error is a failed selection, such as an unreachable or incoherent file-picking oracle.
type Error struct {
	Strategy string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s selection: %s: %v", e.Strategy, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s selection: %s", e.Strategy, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
