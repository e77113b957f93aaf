/*
Package factory provides JSON to Go task conversion.

PURPOSE:
  Converts JSON task definitions into habits.Task values. This lets a
  starter set of routines and chores live in a plain JSON file - editable
  without code changes - and feed the seeding command and tests.

JSON SCHEMA:
  [
    {
      "title": "Morning run",
      "kind": "routine",
      "base_points": 5,
      "target": 1,
      "max": 3
    },
    {
      "title": "Take out trash",
      "kind": "oneoff",
      "base_points": 1,
      "reward": 2,
      "optional": true
    }
  ]

DEFAULTS:
  Omitted fields follow the presets: target 1, max = target, scalar 1,
  reward 0. Every produced task passes habits.Task.Validate before it is
  returned; one bad entry fails the whole batch with its position.

USAGE:
  tasks, err := factory.ParseTasks(jsonBytes)
  for _, task := range tasks {
      store.SaveTask(ctx, task)
  }

SEE ALSO:
  - habits/presets.go: Go-based task construction
  - cmd/tally: The seed command built on this
*/
package factory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/habit-engine/habits"
)

// TaskJSON is the JSON representation of a task definition.
type TaskJSON struct {
	Title      string           `json:"title"`
	Kind       string           `json:"kind"`
	BasePoints decimal.Decimal  `json:"base_points"`
	Target     *int             `json:"target,omitempty"`
	Max        *int             `json:"max,omitempty"`
	Reward     *decimal.Decimal `json:"reward,omitempty"`
	Scalar     *decimal.Decimal `json:"scalar,omitempty"`
	Optional   bool             `json:"optional,omitempty"`
}

// ParseTasks converts a JSON array of task definitions into validated
// tasks with fresh IDs, positioned in file order.
func ParseTasks(data []byte) ([]habits.Task, error) {
	var defs []TaskJSON
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse task definitions: %w", err)
	}

	tasks := make([]habits.Task, 0, len(defs))
	for i, def := range defs {
		task, err := fromJSON(def, i)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func fromJSON(def TaskJSON, position int) (habits.Task, error) {
	task := habits.Task{
		ID:         uuid.New(),
		Title:      def.Title,
		Kind:       habits.TaskKind(def.Kind),
		BasePoints: def.BasePoints,
		Target:     1,
		Reward:     decimal.Zero,
		Scalar:     decimal.NewFromInt(1),
		Optional:   def.Optional,
		Position:   position,
		CreatedAt:  time.Now().UTC(),
	}
	if def.Target != nil {
		task.Target = *def.Target
	}
	task.Max = task.Target
	if def.Max != nil {
		task.Max = *def.Max
	}
	if def.Reward != nil {
		task.Reward = *def.Reward
	}
	if def.Scalar != nil {
		task.Scalar = *def.Scalar
	}

	if err := task.Validate(); err != nil {
		return habits.Task{}, err
	}
	return task, nil
}

// StarterTasksJSON is a ready-to-seed starter set: a few daily routines
// and one sweetened chore.
const StarterTasksJSON = `[
  {"title": "Morning run", "kind": "routine", "base_points": 5, "max": 3},
  {"title": "Drink water", "kind": "routine", "base_points": 0.5, "target": 8},
  {"title": "Read 20 pages", "kind": "routine", "base_points": 3, "max": 2},
  {"title": "Take out trash", "kind": "oneoff", "base_points": 1, "reward": 2, "optional": true}
]`
