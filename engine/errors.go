/*
errors.go - Error taxonomy for the points engine

PURPOSE:
  All engine error types in one place. The engine has exactly one fatal
  condition: a non-positive completion target, which would divide by zero
  and always indicates corrupt caller data. Everything else (negative
  bonus, over-completion, zero streak history, zero day target) is clamped
  or defaulted rather than rejected.

USAGE:
  result, err := engine.ComputePoints(task)
  if errors.Is(err, engine.ErrInvalidTarget) {
      // treat the task as unscoreable, surface a data-integrity warning
  }

SEE ALSO:
  - points.go: The one place ErrInvalidTarget originates
  - aggregate.go: Wraps it with the failing task's position
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTarget is returned when a task's completion target is not
	// positive. The target is caller-supplied; a zero target is a
	// data-integrity defect upstream and is rejected rather than silently
	// substituted with a default.
	ErrInvalidTarget = errors.New("invalid completion target")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidTargetError identifies the task whose target was rejected.
type InvalidTargetError struct {
	Title  string
	Target int
}

func (e *InvalidTargetError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("invalid completion target %d (must be >= 1)", e.Target)
	}
	return fmt.Sprintf("task %q: invalid completion target %d (must be >= 1)", e.Title, e.Target)
}

func (e *InvalidTargetError) Unwrap() error {
	return ErrInvalidTarget
}

// UnscoreableTaskError wraps a per-task failure with the task's position
// within the day, so aggregate callers can point at the offending row.
type UnscoreableTaskError struct {
	Index int
	Err   error
}

func (e *UnscoreableTaskError) Error() string {
	return fmt.Sprintf("task %d is unscoreable: %v", e.Index, e.Err)
}

func (e *UnscoreableTaskError) Unwrap() error {
	return e.Err
}

// IsDataIntegrityError returns true if the error indicates corrupt
// caller-supplied attributes rather than an engine defect.
func IsDataIntegrityError(err error) bool {
	return errors.Is(err, ErrInvalidTarget)
}
