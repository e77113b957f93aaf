package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallyhq/habit-engine/factory"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [file.json]",
		Short: "Load tasks from a JSON file (or the built-in starter set)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := []byte(factory.StarterTasksJSON)
			if len(args) == 1 {
				var err error
				data, err = os.ReadFile(args[0])
				if err != nil {
					return err
				}
			}

			tasks, err := factory.ParseTasks(data)
			if err != nil {
				return err
			}

			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			for _, task := range tasks {
				if err := store.SaveTask(cmd.Context(), task); err != nil {
					return fmt.Errorf("save %q: %w", task.Title, err)
				}
			}
			fmt.Printf("seeded %d task(s)\n", len(tasks))
			return nil
		},
	}

	return cmd
}
