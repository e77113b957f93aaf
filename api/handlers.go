/*
handlers.go - HTTP API handlers for the habit tracking service

PURPOSE:
  Exposes tasks, days, completions, and the points engine over REST.
  Handlers parse and validate input, delegate to the store and the
  scoring layer, and serialize results. No point math happens here.

ENDPOINTS:
  Tasks:
    GET    /api/tasks                  List tasks in display order
    POST   /api/tasks                  Create task
    PATCH  /api/tasks/{id}             Update task attributes
    DELETE /api/tasks/{id}             Delete task

  Days:
    GET    /api/days/{date}            Raw day state (target, completions)
    PUT    /api/days/{date}/target     Set the day's point goal
    POST   /api/days/{date}/tasks/{taskID}/completions  Record a completion
    GET    /api/days/{date}/progress   Full engine evaluation
    GET    /api/days/{date}/streak     Streak feeding the day's bonus

ERROR HANDLING:
  - 400: Malformed input (bad date, bad JSON, invalid attributes)
  - 404: Unknown task
  - 422: Stored task data fails engine validation (corrupt target)
  - 500: Storage failures

PROGRESS PERSISTENCE:
  Serving /progress also records the day's met/missed outcome, keeping
  the streak history current without a separate write path. Computed
  totals themselves are never stored - they are recomputed on demand.

SEE ALSO:
  - dto.go: Request/response shapes
  - server.go: Router setup and middleware
  - habits/scoring.go: The evaluation these handlers delegate to
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/habit-engine/engine"
	"github.com/tallyhq/habit-engine/habits"
	"github.com/tallyhq/habit-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Metrics *Metrics
}

// NewHandler creates a handler over the given store.
func NewHandler(store *sqlite.Store, metrics *Metrics) *Handler {
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Handler{Store: store, Metrics: metrics}
}

// =============================================================================
// TASK ENDPOINTS
// =============================================================================

// ListTasks returns all tasks in display order.
// GET /api/tasks
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Store.ListTasks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list tasks", err)
		return
	}

	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, toTaskDTO(task))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTask creates a task from the request body.
// POST /api/tasks
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	task := habits.Task{
		ID:         uuid.New(),
		Title:      req.Title,
		Kind:       habits.TaskKind(req.Kind),
		BasePoints: req.BasePoints,
		Target:     1,
		Reward:     decimal.Zero,
		Scalar:     decimal.NewFromInt(1),
		Optional:   req.Optional,
		Position:   req.Position,
		CreatedAt:  time.Now().UTC(),
	}
	if req.Target != nil {
		task.Target = *req.Target
	}
	task.Max = task.Target
	if req.Max != nil {
		task.Max = *req.Max
	}
	if req.Reward != nil {
		task.Reward = *req.Reward
	}
	if req.Scalar != nil {
		task.Scalar = *req.Scalar
	}

	if err := task.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid task", err)
		return
	}
	if err := h.Store.SaveTask(r.Context(), task); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskDTO(task))
}

// UpdateTask patches task attributes.
// PATCH /api/tasks/{id}
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id", err)
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	task, err := h.Store.GetTask(r.Context(), id)
	if errors.Is(err, sqlite.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "task not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load task", err)
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.BasePoints != nil {
		task.BasePoints = *req.BasePoints
	}
	if req.Target != nil {
		task.Target = *req.Target
	}
	if req.Max != nil {
		task.Max = *req.Max
	}
	if req.Reward != nil {
		task.Reward = *req.Reward
	}
	if req.Scalar != nil {
		task.Scalar = *req.Scalar
	}
	if req.Optional != nil {
		task.Optional = *req.Optional
	}
	if req.Position != nil {
		task.Position = *req.Position
	}

	if err := task.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid task", err)
		return
	}
	if err := h.Store.SaveTask(r.Context(), task); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save task", err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// DeleteTask removes a task and its completions.
// DELETE /api/tasks/{id}
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id", err)
		return
	}

	err = h.Store.DeleteTask(r.Context(), id)
	if errors.Is(err, sqlite.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "task not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DAY ENDPOINTS
// =============================================================================

func dateParam(r *http.Request) (habits.Date, error) {
	return habits.ParseDate(chi.URLParam(r, "date"))
}

// GetDay returns the raw state of a day.
// GET /api/days/{date}
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}

	in, err := h.Store.DayInput(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load day", err)
		return
	}

	dto := DayDTO{
		Date:         date.String(),
		TargetPoints: in.Day.TargetPoints.String(),
		Tasks:        make([]TaskDTO, 0, len(in.Tasks)),
		Completions:  make(map[string]int, len(in.Completions)),
	}
	for _, task := range in.Tasks {
		dto.Tasks = append(dto.Tasks, toTaskDTO(task))
	}
	for id, count := range in.Completions {
		dto.Completions[id.String()] = count
	}
	writeJSON(w, http.StatusOK, dto)
}

// SetDayTarget configures a day's point goal.
// PUT /api/days/{date}/target
func (h *Handler) SetDayTarget(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}

	var req SetDayTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.TargetPoints.IsNegative() {
		writeError(w, http.StatusBadRequest, "target points must not be negative", nil)
		return
	}

	day := habits.Day{Date: date, TargetPoints: req.TargetPoints}
	if err := h.Store.SaveDay(r.Context(), day); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save day", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"date":          date.String(),
		"target_points": req.TargetPoints.String(),
	})
}

// CompleteTask records one completion for a task on a day.
// POST /api/days/{date}/tasks/{taskID}/completions
func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}
	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id", err)
		return
	}

	count, err := h.Store.IncrementCompletion(r.Context(), date, taskID)
	if errors.Is(err, sqlite.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, "task not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record completion", err)
		return
	}

	h.Metrics.completions.Inc()
	writeJSON(w, http.StatusCreated, CompletionDTO{
		TaskID: taskID.String(),
		Date:   date.String(),
		Count:  count,
	})
}

// GetProgress runs the full engine evaluation for a day and records the
// day's met/missed outcome so later days see a current streak history.
// GET /api/days/{date}/progress
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}

	in, err := h.Store.DayInput(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load day", err)
		return
	}

	score, err := habits.ScoreDay(in)
	if engine.IsDataIntegrityError(err) {
		h.Metrics.scoreFailures.Inc()
		writeError(w, http.StatusUnprocessableEntity, "stored task data is unscoreable", err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to score day", err)
		return
	}

	// Only days with a configured target leave a mark in streak history;
	// recording "missed" for an unconfigured day would break streaks
	// retroactively once the user sets targets.
	if in.Day.TargetPoints.IsPositive() {
		if err := h.Store.SaveDayResult(r.Context(), score.Result()); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to record day result", err)
			return
		}
	}

	h.Metrics.daysScored.Inc()
	writeJSON(w, http.StatusOK, toDayProgressDTO(score, in.Day.TargetPoints))
}

// GetStreak reports the streak feeding a day's bonus.
// GET /api/days/{date}/streak
func (h *Handler) GetStreak(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err)
		return
	}

	in, err := h.Store.DayInput(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load day", err)
		return
	}

	days, bonus := habits.StreakBonusFor(in)
	writeJSON(w, http.StatusOK, StreakDTO{
		Date:        date.String(),
		StreakDays:  days,
		StreakBonus: bonus.String(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
