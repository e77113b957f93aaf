/*
Package sqlite provides SQLite-backed persistence for tasks, days,
completions, and day results.

PURPOSE:
  The computation core is deliberately storage-free: it scores snapshots
  the caller hands it. This package is where those snapshots come from.
  It stores raw attributes only - no point totals, no ratios - so a score
  can always be recomputed from first principles.

KEY TABLES:
  tasks:        Task and routine definitions (attributes, ordering)
  days:         Per-day point targets
  completions:  Completion counts per task per day
  day_results:  Met/missed outcomes per day (streak raw material)

WAL MODE:
  Opened with WAL (Write-Ahead Logging) so readers don't block the single
  writer and crash recovery is cheap.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With a server-grade database the
  database's own concurrency control would take over; only SQL dialect
  details would change.

USAGE:
  store, err := sqlite.New("./data/tally.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  in, err := store.DayInput(ctx, date)
  score, err := habits.ScoreDay(in)

SEE ALSO:
  - habits/: The shapes stored here and the scoring they feed
  - api/, cmd/tally: The two consumers of this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/tallyhq/habit-engine/habits"
)

// ErrTaskNotFound is returned when a task id has no stored row.
var ErrTaskNotFound = errors.New("task not found")

// historyWindowDays bounds how far back DayInput loads day results.
// The streak bonus caps after 11 consecutive days; 90 leaves plenty of
// headroom for history displays.
const historyWindowDays = 90

// Store implements persistence over SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store backed by the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: the mutex serializes access anyway, and a pooled
	// second connection to ":memory:" would see its own empty database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Task and routine definitions. Attributes only: computed points are
	-- never stored, they are recomputed from these rows on demand.
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		kind TEXT NOT NULL,
		base_points TEXT NOT NULL,
		target INTEGER NOT NULL,
		max_count INTEGER NOT NULL,
		reward TEXT NOT NULL,
		scalar TEXT NOT NULL,
		optional BOOLEAN NOT NULL DEFAULT FALSE,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position, created_at);

	-- Per-day aggregate point targets.
	CREATE TABLE IF NOT EXISTS days (
		date TEXT PRIMARY KEY,
		target_points TEXT NOT NULL
	);

	-- Completion counts per task per day.
	CREATE TABLE IF NOT EXISTS completions (
		date TEXT NOT NULL,
		task_id TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (date, task_id),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_completions_task ON completions(task_id);

	-- Met/missed outcome per day, the streak raw material.
	CREATE TABLE IF NOT EXISTS day_results (
		date TEXT PRIMARY KEY,
		met BOOLEAN NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TASKS
// =============================================================================

// SaveTask inserts or replaces a task definition.
func (s *Store) SaveTask(ctx context.Context, task habits.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO tasks (id, title, kind, base_points, target, max_count, reward, scalar, optional, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			kind = excluded.kind,
			base_points = excluded.base_points,
			target = excluded.target,
			max_count = excluded.max_count,
			reward = excluded.reward,
			scalar = excluded.scalar,
			optional = excluded.optional,
			position = excluded.position
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID.String(),
		task.Title,
		string(task.Kind),
		task.BasePoints.String(),
		task.Target,
		task.Max,
		task.Reward.String(),
		task.Scalar.String(),
		task.Optional,
		task.Position,
		task.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// GetTask loads a single task by id.
func (s *Store) GetTask(ctx context.Context, id uuid.UUID) (habits.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, kind, base_points, target, max_count, reward, scalar, optional, position, created_at
		FROM tasks WHERE id = ?
	`, id.String())

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return habits.Task{}, ErrTaskNotFound
	}
	return task, err
}

// ListTasks returns all tasks in display order.
func (s *Store) ListTasks(ctx context.Context) ([]habits.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, kind, base_points, target, max_count, reward, scalar, optional, position, created_at
		FROM tasks ORDER BY position ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []habits.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// DeleteTask removes a task and, via cascade, its completions.
func (s *Store) DeleteTask(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (habits.Task, error) {
	var (
		task                         habits.Task
		id, kind                     string
		base, reward, scalar, created string
	)
	err := row.Scan(&id, &task.Title, &kind, &base, &task.Target, &task.Max, &reward, &scalar, &task.Optional, &task.Position, &created)
	if err != nil {
		return habits.Task{}, err
	}

	task.ID, err = uuid.Parse(id)
	if err != nil {
		return habits.Task{}, fmt.Errorf("corrupt task id %q: %w", id, err)
	}
	task.Kind = habits.TaskKind(kind)
	if task.BasePoints, err = decimal.NewFromString(base); err != nil {
		return habits.Task{}, fmt.Errorf("corrupt base points %q: %w", base, err)
	}
	if task.Reward, err = decimal.NewFromString(reward); err != nil {
		return habits.Task{}, fmt.Errorf("corrupt reward %q: %w", reward, err)
	}
	if task.Scalar, err = decimal.NewFromString(scalar); err != nil {
		return habits.Task{}, fmt.Errorf("corrupt scalar %q: %w", scalar, err)
	}
	task.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return task, nil
}

// =============================================================================
// DAYS
// =============================================================================

// SaveDay inserts or updates a day's point target.
func (s *Store) SaveDay(ctx context.Context, day habits.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO days (date, target_points) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET target_points = excluded.target_points
	`, day.Date.String(), day.TargetPoints.String())
	if err != nil {
		return fmt.Errorf("failed to save day: %w", err)
	}
	return nil
}

// GetDay loads a day. An unconfigured day is a legitimate state, not an
// error: it comes back with a zero target.
func (s *Store) GetDay(ctx context.Context, date habits.Date) (habits.Day, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var target string
	err := s.db.QueryRowContext(ctx,
		`SELECT target_points FROM days WHERE date = ?`, date.String(),
	).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return habits.Day{Date: date, TargetPoints: decimal.Zero}, nil
	}
	if err != nil {
		return habits.Day{}, fmt.Errorf("failed to load day: %w", err)
	}

	points, err := decimal.NewFromString(target)
	if err != nil {
		return habits.Day{}, fmt.Errorf("corrupt day target %q: %w", target, err)
	}
	return habits.Day{Date: date, TargetPoints: points}, nil
}

// =============================================================================
// COMPLETIONS
// =============================================================================

// IncrementCompletion adds one completion for a task on a day and returns
// the new count. The task must exist; the day row need not.
func (s *Store) IncrementCompletion(ctx context.Context, date habits.Date, taskID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ?)`, taskID.String(),
	).Scan(&exists); err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrTaskNotFound
	}

	var count int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO completions (date, task_id, count) VALUES (?, ?, 1)
		ON CONFLICT(date, task_id) DO UPDATE SET count = count + 1
		RETURNING count
	`, date.String(), taskID.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to record completion: %w", err)
	}
	return count, nil
}

// SetCompletion overwrites the completion count for a task on a day.
// Negative counts are clamped to zero.
func (s *Store) SetCompletion(ctx context.Context, date habits.Date, taskID uuid.UUID, count int) error {
	if count < 0 {
		count = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO completions (date, task_id, count) VALUES (?, ?, ?)
		ON CONFLICT(date, task_id) DO UPDATE SET count = excluded.count
	`, date.String(), taskID.String(), count)
	if err != nil {
		return fmt.Errorf("failed to set completion: %w", err)
	}
	return nil
}

// Completions returns the completion counts for all tasks on a day.
func (s *Store) Completions(ctx context.Context, date habits.Date) (map[uuid.UUID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT task_id, count FROM completions WHERE date = ?`, date.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		taskID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("corrupt completion task id %q: %w", id, err)
		}
		counts[taskID] = count
	}
	return counts, rows.Err()
}

// =============================================================================
// DAY RESULTS (streak history)
// =============================================================================

// SaveDayResult records whether a day met its target, replacing any
// earlier outcome for the same day.
func (s *Store) SaveDayResult(ctx context.Context, result habits.DayResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO day_results (date, met) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET met = excluded.met
	`, result.Date.String(), result.Met)
	if err != nil {
		return fmt.Errorf("failed to save day result: %w", err)
	}
	return nil
}

// DayResults returns day outcomes in [from, to], oldest first.
func (s *Store) DayResults(ctx context.Context, from, to habits.Date) ([]habits.DayResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, met FROM day_results
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load day results: %w", err)
	}
	defer rows.Close()

	var results []habits.DayResult
	for rows.Next() {
		var (
			date string
			met  bool
		)
		if err := rows.Scan(&date, &met); err != nil {
			return nil, err
		}
		results = append(results, habits.DayResult{Date: habits.Date(date), Met: met})
	}
	return results, rows.Err()
}

// =============================================================================
// DAY INPUT ASSEMBLY
// =============================================================================

// DayInput assembles everything needed to score a day from a single
// consistent read: the day's target, all tasks, the day's completions,
// and the trailing history window.
func (s *Store) DayInput(ctx context.Context, date habits.Date) (habits.DayInput, error) {
	day, err := s.GetDay(ctx, date)
	if err != nil {
		return habits.DayInput{}, err
	}
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return habits.DayInput{}, err
	}
	completions, err := s.Completions(ctx, date)
	if err != nil {
		return habits.DayInput{}, err
	}

	from := date
	for i := 0; i < historyWindowDays; i++ {
		from = from.Prev()
	}
	history, err := s.DayResults(ctx, from, date.Prev())
	if err != nil {
		return habits.DayInput{}, err
	}

	return habits.DayInput{
		Day:         day,
		Tasks:       tasks,
		Completions: completions,
		History:     history,
	}, nil
}

// Reset drops all stored data. Used by tests and the demo seeder.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"completions", "day_results", "days", "tasks"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}
