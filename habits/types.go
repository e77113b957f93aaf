/*
Package habits provides the domain layer over the points engine.

PURPOSE:
  The engine scores caller-constructed snapshots; this package is that
  caller. It defines the stored shapes (tasks, days, completions, day
  results), derives streak history, and assembles engine snapshots from
  them. Persistence lives in store/sqlite; everything here is still pure
  over its inputs.

KEY CONCEPTS IN THIS FILE (types.go):
  - Task: A stored task or routine definition (identity + attributes)
  - Day: A calendar day with its aggregate point target
  - Completion: How many times a task was completed on a given day
  - DayResult: Whether a past day met its target (streak raw material)

TWO TASK KINDS:
  routine: Recurring, earns partial credit and streak bonuses.
  oneoff:  Scored all-or-nothing, no streak participation.

SEE ALSO:
  - scoring.go: Snapshot assembly and day scoring
  - history.go: Consecutive-day streak derivation
  - presets.go: Ready-made task configurations
  - store/sqlite: Persistence for these shapes
*/
package habits

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/habit-engine/engine"
)

// =============================================================================
// DATES - Calendar days as YYYY-MM-DD keys
// =============================================================================

// Date identifies a calendar day as "2006-01-02". Days are keys, not
// instants: the app has no sub-day scheduling, so a plain date string keys
// storage rows and API paths without timezone ambiguity.
type Date string

const dateLayout = "2006-01-02"

// ParseDate validates and normalizes a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(t.Format(dateLayout)), nil
}

// Today returns the current date in the given location.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return Date(time.Now().In(loc).Format(dateLayout))
}

func (d Date) String() string { return string(d) }

func (d Date) time() time.Time {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Prev returns the preceding calendar day.
func (d Date) Prev() Date {
	return Date(d.time().AddDate(0, 0, -1).Format(dateLayout))
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return Date(d.time().AddDate(0, 0, 1).Format(dateLayout))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return string(d) < string(other) // lexicographic == chronological for this layout
}

// =============================================================================
// TASK KINDS
// =============================================================================

type TaskKind string

const (
	KindRoutine TaskKind = "routine"
	KindOneOff  TaskKind = "oneoff"
)

func (k TaskKind) IsValid() bool {
	switch k {
	case KindRoutine, KindOneOff:
		return true
	default:
		return false
	}
}

// =============================================================================
// STORED SHAPES
// =============================================================================

// Task is a stored task or routine definition.
type Task struct {
	ID         uuid.UUID
	Title      string
	Kind       TaskKind
	BasePoints decimal.Decimal
	Target     int
	Max        int
	Reward     decimal.Decimal
	Scalar     decimal.Decimal
	Optional   bool
	Position   int
	CreatedAt  time.Time
}

// IsRoutine reports whether the task uses the partial-credit model.
func (t Task) IsRoutine() bool { return t.Kind == KindRoutine }

// Validate checks the attributes a stored task must satisfy. The engine
// re-checks the target on every computation; validating here keeps corrupt
// rows out of storage in the first place.
func (t Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("invalid task kind %q", t.Kind)
	}
	if t.Target < 1 {
		return fmt.Errorf("task %q: target must be >= 1, got %d", t.Title, t.Target)
	}
	if t.Max < t.Target {
		return fmt.Errorf("task %q: max %d below target %d", t.Title, t.Max, t.Target)
	}
	if t.BasePoints.IsNegative() {
		return fmt.Errorf("task %q: base points must not be negative", t.Title)
	}
	if t.Reward.IsNegative() {
		return fmt.Errorf("task %q: reward must not be negative", t.Title)
	}
	if !t.Scalar.IsPositive() {
		return fmt.Errorf("task %q: scalar must be positive", t.Title)
	}
	return nil
}

// Snapshot builds the engine view of this task for one day.
// The streak bonus applies to routines only; callers pass the day's
// resolved bonus and the gate happens here.
func (t Task) Snapshot(completed int, bonus decimal.Decimal) engine.TaskSnapshot {
	snap := engine.TaskSnapshot{
		Title:      t.Title,
		BasePoints: t.BasePoints,
		Target:     t.Target,
		Completed:  completed,
		Max:        t.Max,
		IsRoutine:  t.IsRoutine(),
		IsOptional: t.Optional,
		Reward:     t.Reward,
		Scalar:     t.Scalar,
	}
	if snap.IsRoutine {
		snap.Bonus = bonus
	}
	return snap
}

// Day is a stored calendar day with its aggregate point target.
type Day struct {
	Date         Date
	TargetPoints decimal.Decimal
}

// Completion records how many times a task was completed on a day.
type Completion struct {
	TaskID uuid.UUID
	Date   Date
	Count  int
}

// DayResult records whether a past day met its point target. A window of
// these, ending the day before the one being scored, is the raw material
// for streak derivation.
type DayResult struct {
	Date Date
	Met  bool
}
