/*
aggregate.go - Per-day totals and progress ratio

PURPOSE:
  Sums per-task points into a day total and normalizes it against the
  day's point target. The per-task and per-day views are computed
  independently by callers (a task row and a day header may each invoke
  the engine) but share these functions, so they can never disagree.

KEY PROPERTIES:
  - Summation is order-independent: shuffling day.Tasks never changes
    the total.
  - ProgressRatio is always in [0, 1]: a day that overshoots its target
    caps at exactly 1.
  - A day with a non-positive target yields ratio 0 WITHOUT an error: a
    freshly created day may legitimately have no target configured yet.

SEE ALSO:
  - points.go: The per-task scoring these aggregates are built from
  - errors.go: UnscoreableTaskError wrapping per-task failures
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// ScoreTasks scores each task in order and returns the per-task results.
// The first unscoreable task aborts the computation with its position
// wrapped in the error.
func ScoreTasks(tasks []TaskSnapshot) ([]ComputedTaskPoints, error) {
	results := make([]ComputedTaskPoints, 0, len(tasks))
	for i, task := range tasks {
		result, err := ComputePoints(task)
		if err != nil {
			return nil, &UnscoreableTaskError{Index: i, Err: err}
		}
		results = append(results, result)
	}
	return results, nil
}

// AggregateDay computes the day's total points and capped progress ratio.
//
// Each task is scored via ComputePoints using whatever Bonus the caller
// already injected (see ResolveBonus). A single unscoreable task fails
// the whole day computation; the caller decides whether to surface that
// as a data-integrity warning or drop the task and retry.
func AggregateDay(day DaySnapshot) (ComputedDayProgress, error) {
	total := decimal.Zero
	for i, task := range day.Tasks {
		result, err := ComputePoints(task)
		if err != nil {
			return ComputedDayProgress{}, &UnscoreableTaskError{Index: i, Err: err}
		}
		total = total.Add(result.EarnedPoints)
	}

	ratio := decimal.Zero
	if day.TargetPoints.IsPositive() {
		ratio = clampUnit(total.Div(day.TargetPoints))
	}

	return ComputedDayProgress{
		TotalPoints:   total,
		ProgressRatio: ratio,
	}, nil
}
