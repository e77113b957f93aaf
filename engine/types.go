/*
Package engine provides the points and progress computation core.

PURPOSE:
  This package contains the pure calculation logic that turns a task's raw
  attributes (target, completions, bonus, reward, scalar, routine flag) plus
  a day's aggregate history into point totals, streak bonuses, and progress
  ratios. It is the one part of the system where the numbers have to be
  exactly right: per-task scores and per-day aggregates are computed
  independently but must never visibly disagree.

KEY CONCEPTS IN THIS FILE (types.go):
  - TaskSnapshot: A read-only view of one task's scoring attributes
  - DaySnapshot: A read-only view of one day's target, tasks, and history
  - ComputedTaskPoints / ComputedDayProgress: Pure computation outputs

DESIGN PRINCIPLES:
  1. Purity: Every call is a function of its explicit inputs. No ambient
     state, no storage access, no object-graph traversal.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors in
     point math (5 points is 5 points, not 4.999999...).
  3. Snapshots In, Values Out: The caller constructs snapshots from its
     storage layer; the engine never mutates or persists anything.
  4. Clamp, Don't Crash: Garbage numeric inputs are clamped to sane
     values. The single rejected input is a non-positive target, which is
     a data-integrity defect upstream and must not be papered over.

USAGE:
  task := engine.TaskSnapshot{
      BasePoints: decimal.NewFromInt(5),
      Target:     1,
      Max:        3,
      Completed:  1,
      IsRoutine:  true,
      Scalar:     decimal.NewFromInt(1),
  }
  result, err := engine.ComputePoints(task)
  // result.EarnedPoints == 5

SEE ALSO:
  - points.go: Per-task scoring formula
  - streak.go: Streak bonus resolution
  - aggregate.go: Per-day totals and progress ratio
  - errors.go: Error taxonomy
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT SNAPSHOTS - Caller-constructed, read-only views
// =============================================================================

// TaskSnapshot is a read-only view of one task's scoring attributes.
//
// The caller constructs it from storage before each computation. For routine
// tasks, Bonus carries the streak bonus fraction already resolved via
// ResolveBonus; the engine treats it as a plain input rather than deriving
// it itself, which keeps streak resolution decoupled from per-task scoring.
type TaskSnapshot struct {
	// Title is display-only and never used in computation.
	Title string

	// BasePoints is the point value of fully completing the task once.
	BasePoints decimal.Decimal

	// Target is the completion count required to be considered done.
	// Must be >= 1; a non-positive target is rejected with ErrInvalidTarget.
	Target int

	// Completed is the current completion count. It may exceed Max;
	// callers are allowed to store over-completion.
	Completed int

	// Max is the completion count ceiling beyond which no additional
	// credit accrues. Values below Target are treated as Target.
	Max int

	// IsRoutine selects the partial-credit scoring model and enables the
	// streak bonus. Non-routine tasks score all-or-nothing.
	IsRoutine bool

	// IsOptional marks the task as skippable for display purposes.
	// It does not affect the point formula.
	IsOptional bool

	// Reward is a fixed point amount added unconditionally on top of
	// ratio-based credit. See ComputePoints for why "unconditionally".
	Reward decimal.Decimal

	// Scalar is a multiplicative point-value adjustment. Non-positive
	// values are treated as 1.
	Scalar decimal.Decimal

	// Bonus is the streak bonus fraction in [0, 1]. Only meaningful when
	// IsRoutine is true; negative values are treated as 0.
	Bonus decimal.Decimal
}

// DaySnapshot is a read-only view of one calendar day's scoring inputs.
type DaySnapshot struct {
	// TargetPoints is the day's aggregate point goal. A non-positive
	// target degrades the progress ratio to zero rather than erroring:
	// a freshly created day may legitimately have no target yet.
	TargetPoints decimal.Decimal

	// Tasks are the tasks attached to this day. Order never affects
	// the computed total.
	Tasks []TaskSnapshot

	// PriorConsecutiveDays counts the immediately preceding days, ending
	// at this one, that met or exceeded their own target. Used only for
	// streak bonus derivation.
	PriorConsecutiveDays int
}

// =============================================================================
// COMPUTATION OUTPUTS - Pure return values, never persisted by the engine
// =============================================================================

// ComputedTaskPoints is the scoring result for a single task.
type ComputedTaskPoints struct {
	// EarnedPoints is the point value currently earned by the task.
	EarnedPoints decimal.Decimal

	// EffectiveBase is basePoints x scalar x (1 + bonus for routines).
	// Exposed for callers that render score breakdowns.
	EffectiveBase decimal.Decimal

	// CompletionRatio is the credit ratio applied to EffectiveBase.
	// For routine tasks it is capped at max/target; for non-routine
	// tasks it is exactly 0 or 1.
	CompletionRatio decimal.Decimal
}

// ComputedDayProgress is the aggregate result for a day.
type ComputedDayProgress struct {
	// TotalPoints is the sum of EarnedPoints across the day's tasks.
	TotalPoints decimal.Decimal

	// ProgressRatio is totalPoints/targetPoints capped to [0, 1].
	ProgressRatio decimal.Decimal
}

// =============================================================================
// DECIMAL HELPERS
// =============================================================================

var (
	one = decimal.NewFromInt(1)

	// bonusStep is the per-day streak bonus increment (10%).
	bonusStep = decimal.RequireFromString("0.1")
)

func ratioOf(numerator, denominator int) decimal.Decimal {
	return decimal.NewFromInt(int64(numerator)).Div(decimal.NewFromInt(int64(denominator)))
}

func clampUnit(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(one) {
		return one
	}
	return d
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
