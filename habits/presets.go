/*
presets.go - Ready-made task configurations

PURPOSE:
  Common task shapes with sensible defaults, so callers (CLI, seeding,
  tests) don't assemble every attribute by hand. Each constructor returns
  a valid Task with a fresh ID; callers may tweak fields before saving.

SEE ALSO:
  - types.go: The Task shape and its validation rules
  - factory/: JSON-driven task construction for seed files
*/
package habits

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewRoutine creates a daily routine: partial credit, streak-eligible,
// done after a single completion with headroom for over-achievement.
func NewRoutine(title string, basePoints float64) Task {
	return Task{
		ID:         uuid.New(),
		Title:      title,
		Kind:       KindRoutine,
		BasePoints: decimal.NewFromFloat(basePoints),
		Target:     1,
		Max:        3,
		Scalar:     decimal.NewFromInt(1),
		Reward:     decimal.Zero,
		CreatedAt:  time.Now().UTC(),
	}
}

// NewCountedRoutine creates a routine requiring several completions
// (e.g. "drink water x8"). Max equals target: no over-achievement credit.
func NewCountedRoutine(title string, basePoints float64, target int) Task {
	task := NewRoutine(title, basePoints)
	task.Target = target
	task.Max = target
	return task
}

// NewOneOff creates a one-off task: all-or-nothing, no streak bonus.
func NewOneOff(title string, basePoints float64) Task {
	return Task{
		ID:         uuid.New(),
		Title:      title,
		Kind:       KindOneOff,
		BasePoints: decimal.NewFromFloat(basePoints),
		Target:     1,
		Max:        1,
		Scalar:     decimal.NewFromInt(1),
		Reward:     decimal.Zero,
		CreatedAt:  time.Now().UTC(),
	}
}

// NewChore creates an optional one-off with a fixed reward sweetener.
func NewChore(title string, basePoints, reward float64) Task {
	task := NewOneOff(title, basePoints)
	task.Optional = true
	task.Reward = decimal.NewFromFloat(reward)
	return task
}
