package factory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/habit-engine/factory"
	"github.com/tallyhq/habit-engine/habits"
)

func TestParseTasks_StarterSet(t *testing.T) {
	tasks, err := factory.ParseTasks([]byte(factory.StarterTasksJSON))
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	run := tasks[0]
	assert.Equal(t, "Morning run", run.Title)
	assert.Equal(t, habits.KindRoutine, run.Kind)
	assert.Equal(t, 1, run.Target)
	assert.Equal(t, 3, run.Max)

	water := tasks[1]
	assert.Equal(t, 8, water.Target)
	assert.Equal(t, 8, water.Max) // max defaults to target
	assert.True(t, water.BasePoints.Equal(decimal.RequireFromString("0.5")))

	chore := tasks[3]
	assert.True(t, chore.Optional)
	assert.True(t, chore.Reward.Equal(decimal.NewFromInt(2)))

	// File order becomes display order; every task gets a fresh id.
	for i, task := range tasks {
		assert.Equal(t, i, task.Position)
		assert.NoError(t, task.Validate())
	}
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
}

func TestParseTasks_BadEntryFailsBatchWithPosition(t *testing.T) {
	_, err := factory.ParseTasks([]byte(`[
		{"title": "fine", "kind": "routine", "base_points": 5},
		{"title": "broken", "kind": "routine", "base_points": 5, "target": 0}
	]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task 1")
}

func TestParseTasks_MalformedJSON(t *testing.T) {
	_, err := factory.ParseTasks([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}
