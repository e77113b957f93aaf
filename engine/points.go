/*
points.go - Per-task point calculation

PURPOSE:
  Computes the point value currently earned by a single task. This is the
  central formula of the whole system: the app's promise is "points that
  mean something", and that holds only if this function is deterministic,
  monotonic in completions (up to the cap), and bounded.

TWO SCORING MODELS:
  Routine (partial credit):
    ratio = completed/target, linearly, below target
    ratio = min(completed, max)/target once target is reached,
            hard-capped at max/target (completions beyond max add nothing)

  Non-routine (all-or-nothing):
    ratio = 1 if completed >= target, else 0
    No partial credit, and no streak bonus: the bonus term is gated on
    the routine flag, so only routines ever benefit from streaks.

THE REWARD TERM:
  reward is added UNCONDITIONALLY, regardless of completion ratio. This
  is intended behavior, not a bug: fixed incentive payments are meant to
  be independent of partial progress. It is easy to mis-read as "reward
  only once completed" - don't.

EXAMPLE:
  base=5 target=1 max=3 completed=1 routine        -> 5.0
  base=8 target=1 max=3 completed=0 routine        -> 0.0
  base=6 target=2       completed=1 non-routine    -> 0.0
  base=6 target=2       completed=2 reward=2       -> 8.0
  base=5 target=1 max=1 completed=1 bonus=0.3      -> 6.5

SEE ALSO:
  - streak.go: Where the routine bonus fraction comes from
  - aggregate.go: Sums these results into day progress
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// ComputePoints computes the points currently earned by the task.
//
// The only rejected input is a non-positive Target (ErrInvalidTarget);
// every other out-of-range attribute is clamped:
//   - negative BasePoints, Reward, Bonus, Completed -> 0
//   - non-positive Scalar -> 1
//   - Max below Target -> Target
//
// Completed above Max is the normal over-achievement case, not an error:
// the ratio is ceiling-clamped and extra completions simply add nothing.
func ComputePoints(task TaskSnapshot) (ComputedTaskPoints, error) {
	if task.Target <= 0 {
		return ComputedTaskPoints{}, &InvalidTargetError{Title: task.Title, Target: task.Target}
	}

	base := clampNonNegative(task.BasePoints)
	reward := clampNonNegative(task.Reward)

	scalar := task.Scalar
	if !scalar.IsPositive() {
		scalar = one
	}

	// Streak bonus applies to routines only.
	multiplier := one
	if task.IsRoutine {
		multiplier = one.Add(clampUnit(task.Bonus))
	}
	effectiveBase := base.Mul(scalar).Mul(multiplier)

	completed := task.Completed
	if completed < 0 {
		completed = 0
	}
	max := task.Max
	if max < task.Target {
		max = task.Target
	}

	var ratio decimal.Decimal
	if task.IsRoutine {
		ratio = routineRatio(completed, task.Target, max)
	} else if completed >= task.Target {
		ratio = one
	} else {
		ratio = decimal.Zero
	}

	return ComputedTaskPoints{
		EarnedPoints:    effectiveBase.Mul(ratio).Add(reward),
		EffectiveBase:   effectiveBase,
		CompletionRatio: ratio,
	}, nil
}

// routineRatio implements the partial-credit model.
//
// Below target, credit is linear in completions (no all-or-nothing cliff).
// At or above target, credit keeps growing until max, with max/target as
// the hard ceiling so over-completion beyond max never adds ratio.
func routineRatio(completed, target, max int) decimal.Decimal {
	if completed < target {
		return ratioOf(completed, target)
	}
	capped := completed
	if capped > max {
		capped = max
	}
	ratio := ratioOf(capped, target)
	ceiling := ratioOf(max, target)
	if ratio.GreaterThan(ceiling) {
		return ceiling
	}
	return ratio
}
