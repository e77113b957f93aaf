/*
scoring.go - Day scoring over stored shapes

PURPOSE:
  Assembles engine snapshots from stored tasks, completions, and history,
  runs the computation, and packages the results for display. This is the
  seam the engine's input boundary describes: storage hands this file raw
  attributes, this file hands the engine value snapshots, and nothing
  below this file ever touches a store.

FLOW:
  history  -> ConsecutiveQualifyingDays -> ResolveBonus (routines only)
  tasks    -> TaskSnapshot per task, bonus injected
  snapshots-> ComputePoints per task, AggregateDay for the total

SEE ALSO:
  - engine/: The pure computation this file feeds
  - api/handlers.go, cmd/tally: The two callers of ScoreDay
*/
package habits

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/habit-engine/engine"
)

// DayInput bundles everything needed to score one day. The caller (store,
// test, or seed data) constructs it from a consistent view of storage;
// scoring never re-fetches.
type DayInput struct {
	Day         Day
	Tasks       []Task
	Completions map[uuid.UUID]int

	// History holds day results strictly before Day.Date. Days at or
	// after it are ignored so a stale cache row for today cannot count
	// itself twice.
	History []DayResult
}

// TaskScore pairs a task with its computed points for one day.
type TaskScore struct {
	Task      Task
	Completed int
	Result    engine.ComputedTaskPoints
}

// DayScore is the full evaluation of one day.
type DayScore struct {
	Date        Date
	StreakDays  int
	StreakBonus decimal.Decimal
	Tasks       []TaskScore
	Progress    engine.ComputedDayProgress

	// Met reports whether the day reached its target. Only meaningful
	// when the day has a positive target.
	Met bool
}

// StreakBonusFor derives the streak bonus for the day from its history.
// The run is measured ending the day before: today's own outcome is what
// is being computed and cannot feed its own bonus.
func StreakBonusFor(in DayInput) (days int, bonus decimal.Decimal) {
	prior := make([]DayResult, 0, len(in.History))
	for _, r := range in.History {
		if r.Date.Before(in.Day.Date) {
			prior = append(prior, r)
		}
	}
	days = ConsecutiveQualifyingDays(prior, in.Day.Date.Prev())
	return days, engine.ResolveBonus(days)
}

// BuildDaySnapshot assembles the engine view of the day, streak bonus
// already injected into each routine task.
func BuildDaySnapshot(in DayInput) engine.DaySnapshot {
	days, bonus := StreakBonusFor(in)

	snap := engine.DaySnapshot{
		TargetPoints:         in.Day.TargetPoints,
		Tasks:                make([]engine.TaskSnapshot, 0, len(in.Tasks)),
		PriorConsecutiveDays: days,
	}
	for _, task := range in.Tasks {
		snap.Tasks = append(snap.Tasks, task.Snapshot(in.Completions[task.ID], bonus))
	}
	return snap
}

// ScoreDay runs the full evaluation: per-task points, day total, capped
// progress ratio, and the streak context that produced the bonus.
//
// A task with corrupt attributes fails the whole evaluation with the
// engine's data-integrity error; callers surface it rather than show a
// silently wrong total.
func ScoreDay(in DayInput) (DayScore, error) {
	days, bonus := StreakBonusFor(in)

	score := DayScore{
		Date:        in.Day.Date,
		StreakDays:  days,
		StreakBonus: bonus,
		Tasks:       make([]TaskScore, 0, len(in.Tasks)),
	}

	snapshots := make([]engine.TaskSnapshot, 0, len(in.Tasks))
	for _, task := range in.Tasks {
		snapshots = append(snapshots, task.Snapshot(in.Completions[task.ID], bonus))
	}

	results, err := engine.ScoreTasks(snapshots)
	if err != nil {
		return DayScore{}, err
	}

	total := decimal.Zero
	for i, task := range in.Tasks {
		score.Tasks = append(score.Tasks, TaskScore{
			Task:      task,
			Completed: in.Completions[task.ID],
			Result:    results[i],
		})
		total = total.Add(results[i].EarnedPoints)
	}

	progress, err := engine.AggregateDay(engine.DaySnapshot{
		TargetPoints:         in.Day.TargetPoints,
		Tasks:                snapshots,
		PriorConsecutiveDays: days,
	})
	if err != nil {
		return DayScore{}, err
	}

	score.Progress = progress
	score.Met = in.Day.TargetPoints.IsPositive() && !progress.TotalPoints.LessThan(in.Day.TargetPoints)
	return score, nil
}

// Result reduces a scored day to the stored DayResult shape.
func (s DayScore) Result() DayResult {
	return DayResult{Date: s.Date, Met: s.Met}
}
