package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tallyhq/habit-engine/habits"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <title>",
		Short: "Record a completion for a task (matched by title prefix)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task title (or a prefix of it) is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			date, err := resolveDate()
			if err != nil {
				return err
			}

			task, err := findTask(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}

			count, err := store.IncrementCompletion(cmd.Context(), date, task.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s %d/%d\n", date, task.Title, count, task.Target)
			return nil
		},
	}

	return cmd
}

type taskLister interface {
	ListTasks(ctx context.Context) ([]habits.Task, error)
}

// findTask matches a stored task by case-insensitive title prefix. An
// exact title match wins outright; otherwise the prefix must be
// unambiguous.
func findTask(ctx context.Context, store taskLister, query string) (habits.Task, error) {
	tasks, err := store.ListTasks(ctx)
	if err != nil {
		return habits.Task{}, err
	}

	q := strings.ToLower(query)
	var matches []habits.Task
	for _, task := range tasks {
		title := strings.ToLower(task.Title)
		if title == q {
			return task, nil
		}
		if strings.HasPrefix(title, q) {
			matches = append(matches, task)
		}
	}

	switch len(matches) {
	case 0:
		return habits.Task{}, fmt.Errorf("no task matches %q", query)
	case 1:
		return matches[0], nil
	default:
		titles := make([]string, 0, len(matches))
		for _, m := range matches {
			titles = append(titles, m.Title)
		}
		return habits.Task{}, fmt.Errorf("%q is ambiguous: %s", query, strings.Join(titles, ", "))
	}
}
