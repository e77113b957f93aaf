package habits_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/habit-engine/engine"
	"github.com/tallyhq/habit-engine/habits"
)

func dayInput(target string, tasks ...habits.Task) habits.DayInput {
	return habits.DayInput{
		Day: habits.Day{
			Date:         d("2026-03-09"),
			TargetPoints: decimal.RequireFromString(target),
		},
		Tasks:       tasks,
		Completions: map[uuid.UUID]int{},
	}
}

func metDays(dates ...string) []habits.DayResult {
	results := make([]habits.DayResult, 0, len(dates))
	for _, s := range dates {
		results = append(results, habits.DayResult{Date: d(s), Met: true})
	}
	return results
}

func TestScoreDay_RoutineWithStreakBonus(t *testing.T) {
	// GIVEN: a 5-point routine completed once, after a 4-day streak
	// WHEN: scoring the day
	// THEN: bonus 0.3 is injected and the routine earns 6.5

	routine := habits.NewRoutine("morning run", 5)
	routine.Max = 1

	in := dayInput("10", routine)
	in.Completions[routine.ID] = 1
	in.History = metDays("2026-03-05", "2026-03-06", "2026-03-07", "2026-03-08")

	score, err := habits.ScoreDay(in)
	require.NoError(t, err)

	assert.Equal(t, 4, score.StreakDays)
	assert.True(t, score.StreakBonus.Equal(decimal.RequireFromString("0.3")))
	require.Len(t, score.Tasks, 1)
	assert.True(t, score.Tasks[0].Result.EarnedPoints.Equal(decimal.RequireFromString("6.5")),
		"earned %v", score.Tasks[0].Result.EarnedPoints)
}

func TestScoreDay_BonusSkipsOneOffTasks(t *testing.T) {
	// GIVEN: a completed one-off on a day with a long streak behind it
	// WHEN: scoring
	// THEN: the one-off earns its plain base; only routines see the bonus

	task := habits.NewOneOff("file taxes", 6)
	in := dayInput("10", task)
	in.Completions[task.ID] = 1
	in.History = metDays("2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07", "2026-03-08")

	score, err := habits.ScoreDay(in)
	require.NoError(t, err)
	assert.True(t, score.Tasks[0].Result.EarnedPoints.Equal(decimal.NewFromInt(6)))
}

func TestScoreDay_HistoryAtOrAfterTheDayIsIgnored(t *testing.T) {
	// GIVEN: history containing a stale result for the scored day itself
	// WHEN: deriving the streak
	// THEN: only strictly prior days count - today cannot feed its own bonus

	routine := habits.NewRoutine("meditate", 5)
	in := dayInput("10", routine)
	in.History = metDays("2026-03-08", "2026-03-09", "2026-03-10")

	days, bonus := habits.StreakBonusFor(in)
	assert.Equal(t, 1, days)
	assert.True(t, bonus.IsZero())
}

func TestScoreDay_MetAndProgress(t *testing.T) {
	// GIVEN: a day whose completions overshoot the 10-point target
	// WHEN: scoring
	// THEN: total reported, ratio capped at 1, day marked met

	routine := habits.NewRoutine("morning run", 5) // max 3
	in := dayInput("10", routine)
	in.Completions[routine.ID] = 3 // 15 points

	score, err := habits.ScoreDay(in)
	require.NoError(t, err)

	assert.True(t, score.Progress.TotalPoints.Equal(decimal.NewFromInt(15)))
	assert.True(t, score.Progress.ProgressRatio.Equal(decimal.NewFromInt(1)))
	assert.True(t, score.Met)
	assert.Equal(t, habits.DayResult{Date: d("2026-03-09"), Met: true}, score.Result())
}

func TestScoreDay_UnconfiguredTargetIsNeverMet(t *testing.T) {
	routine := habits.NewRoutine("morning run", 5)
	in := dayInput("0", routine)
	in.Completions[routine.ID] = 1

	score, err := habits.ScoreDay(in)
	require.NoError(t, err)
	assert.False(t, score.Met)
	assert.True(t, score.Progress.ProgressRatio.IsZero())
	assert.True(t, score.Progress.TotalPoints.Equal(decimal.NewFromInt(5)))
}

func TestScoreDay_CorruptTaskSurfacesDataIntegrityError(t *testing.T) {
	bad := habits.NewRoutine("broken", 5)
	bad.Target = 0

	_, err := habits.ScoreDay(dayInput("10", bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidTarget)
}

func TestBuildDaySnapshot(t *testing.T) {
	routine := habits.NewRoutine("morning run", 5)
	oneoff := habits.NewOneOff("file taxes", 6)

	in := dayInput("10", routine, oneoff)
	in.Completions[routine.ID] = 2
	in.History = metDays("2026-03-07", "2026-03-08")

	snap := habits.BuildDaySnapshot(in)
	require.Len(t, snap.Tasks, 2)
	assert.Equal(t, 2, snap.PriorConsecutiveDays)
	assert.Equal(t, 2, snap.Tasks[0].Completed)
	assert.True(t, snap.Tasks[0].Bonus.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, snap.Tasks[1].Bonus.IsZero(), "one-off must not carry a bonus")
}

func TestTaskValidate(t *testing.T) {
	valid := habits.NewCountedRoutine("drink water", 1, 8)
	require.NoError(t, valid.Validate())
	assert.Equal(t, 8, valid.Max)

	cases := []struct {
		name   string
		mutate func(*habits.Task)
	}{
		{"empty title", func(t *habits.Task) { t.Title = "" }},
		{"bad kind", func(t *habits.Task) { t.Kind = "weekly" }},
		{"zero target", func(t *habits.Task) { t.Target = 0 }},
		{"max below target", func(t *habits.Task) { t.Max = t.Target - 1 }},
		{"negative base", func(t *habits.Task) { t.BasePoints = decimal.NewFromInt(-1) }},
		{"negative reward", func(t *habits.Task) { t.Reward = decimal.NewFromInt(-1) }},
		{"zero scalar", func(t *habits.Task) { t.Scalar = decimal.Zero }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := habits.NewRoutine("morning run", 5)
			tc.mutate(&task)
			assert.Error(t, task.Validate())
		})
	}
}

func TestChorePreset(t *testing.T) {
	chore := habits.NewChore("take out trash", 1, 2)
	require.NoError(t, chore.Validate())
	assert.True(t, chore.Optional)
	assert.Equal(t, habits.KindOneOff, chore.Kind)

	in := dayInput("10", chore)
	score, err := habits.ScoreDay(in)
	require.NoError(t, err)
	// Reward is paid regardless of completion.
	assert.True(t, score.Tasks[0].Result.EarnedPoints.Equal(decimal.NewFromInt(2)))
}
