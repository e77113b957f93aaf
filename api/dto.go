/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the stored domain
  shapes from the external contract. Point amounts cross the wire as
  decimal strings ("6.5"), never floats: clients render them, they don't
  do math on them, and string decimals survive the trip intact.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - habits/: The domain shapes these mirror
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/tallyhq/habit-engine/habits"
)

// =============================================================================
// TASKS
// =============================================================================

// TaskDTO represents a stored task in API responses.
type TaskDTO struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Kind       string `json:"kind"`
	BasePoints string `json:"base_points"`
	Target     int    `json:"target"`
	Max        int    `json:"max"`
	Reward     string `json:"reward"`
	Scalar     string `json:"scalar"`
	Optional   bool   `json:"optional"`
	Position   int    `json:"position"`
}

func toTaskDTO(task habits.Task) TaskDTO {
	return TaskDTO{
		ID:         task.ID.String(),
		Title:      task.Title,
		Kind:       string(task.Kind),
		BasePoints: task.BasePoints.String(),
		Target:     task.Target,
		Max:        task.Max,
		Reward:     task.Reward.String(),
		Scalar:     task.Scalar.String(),
		Optional:   task.Optional,
		Position:   task.Position,
	}
}

// CreateTaskRequest creates a task. Omitted numeric fields get the same
// defaults the presets use: target 1, max = target, scalar 1, reward 0.
// decimal.Decimal accepts both JSON numbers and strings.
type CreateTaskRequest struct {
	Title      string           `json:"title"`
	Kind       string           `json:"kind"`
	BasePoints decimal.Decimal  `json:"base_points"`
	Target     *int             `json:"target,omitempty"`
	Max        *int             `json:"max,omitempty"`
	Reward     *decimal.Decimal `json:"reward,omitempty"`
	Scalar     *decimal.Decimal `json:"scalar,omitempty"`
	Optional   bool             `json:"optional"`
	Position   int              `json:"position"`
}

// UpdateTaskRequest patches a task. Only present fields change.
type UpdateTaskRequest struct {
	Title      *string          `json:"title,omitempty"`
	BasePoints *decimal.Decimal `json:"base_points,omitempty"`
	Target     *int             `json:"target,omitempty"`
	Max        *int             `json:"max,omitempty"`
	Reward     *decimal.Decimal `json:"reward,omitempty"`
	Scalar     *decimal.Decimal `json:"scalar,omitempty"`
	Optional   *bool            `json:"optional,omitempty"`
	Position   *int             `json:"position,omitempty"`
}

// =============================================================================
// DAYS AND PROGRESS
// =============================================================================

// SetDayTargetRequest configures a day's point goal.
type SetDayTargetRequest struct {
	TargetPoints decimal.Decimal `json:"target_points"`
}

// DayDTO is the raw state of a day: target, tasks, completion counts.
type DayDTO struct {
	Date         string         `json:"date"`
	TargetPoints string         `json:"target_points"`
	Tasks        []TaskDTO      `json:"tasks"`
	Completions  map[string]int `json:"completions"`
}

// CompletionDTO acknowledges a recorded completion.
type CompletionDTO struct {
	TaskID string `json:"task_id"`
	Date   string `json:"date"`
	Count  int    `json:"count"`
}

// TaskScoreDTO is one task's computed points for a day.
type TaskScoreDTO struct {
	Task            TaskDTO `json:"task"`
	Completed       int     `json:"completed"`
	EarnedPoints    string  `json:"earned_points"`
	EffectiveBase   string  `json:"effective_base"`
	CompletionRatio string  `json:"completion_ratio"`
}

// DayProgressDTO is the full evaluation of a day.
type DayProgressDTO struct {
	Date          string         `json:"date"`
	TargetPoints  string         `json:"target_points"`
	TotalPoints   string         `json:"total_points"`
	ProgressRatio string         `json:"progress_ratio"`
	Met           bool           `json:"met"`
	StreakDays    int            `json:"streak_days"`
	StreakBonus   string         `json:"streak_bonus"`
	Tasks         []TaskScoreDTO `json:"tasks"`
}

func toDayProgressDTO(score habits.DayScore, target decimal.Decimal) DayProgressDTO {
	dto := DayProgressDTO{
		Date:          score.Date.String(),
		TargetPoints:  target.String(),
		TotalPoints:   score.Progress.TotalPoints.String(),
		ProgressRatio: score.Progress.ProgressRatio.String(),
		Met:           score.Met,
		StreakDays:    score.StreakDays,
		StreakBonus:   score.StreakBonus.String(),
		Tasks:         make([]TaskScoreDTO, 0, len(score.Tasks)),
	}
	for _, ts := range score.Tasks {
		dto.Tasks = append(dto.Tasks, TaskScoreDTO{
			Task:            toTaskDTO(ts.Task),
			Completed:       ts.Completed,
			EarnedPoints:    ts.Result.EarnedPoints.String(),
			EffectiveBase:   ts.Result.EffectiveBase.String(),
			CompletionRatio: ts.Result.CompletionRatio.String(),
		})
	}
	return dto
}

// StreakDTO describes the streak feeding a day's bonus.
type StreakDTO struct {
	Date        string `json:"date"`
	StreakDays  int    `json:"streak_days"`
	StreakBonus string `json:"streak_bonus"`
}

// ErrorResponse is the JSON error body for all failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
