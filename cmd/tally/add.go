package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallyhq/habit-engine/habits"
)

func newAddCmd() *cobra.Command {
	var (
		points   float64
		target   int
		max      int
		reward   float64
		scalar   float64
		oneoff   bool
		optional bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a routine or one-off task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			var task habits.Task
			if oneoff {
				task = habits.NewOneOff(args[0], points)
			} else {
				task = habits.NewCountedRoutine(args[0], points, target)
			}
			if cmd.Flags().Changed("max") {
				task.Max = max
			}
			if reward != 0 {
				task.Reward = decimal.NewFromFloat(reward)
			}
			if scalar != 1 {
				task.Scalar = decimal.NewFromFloat(scalar)
			}
			task.Optional = optional

			existing, err := store.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			task.Position = len(existing)

			if err := store.SaveTask(cmd.Context(), task); err != nil {
				return err
			}
			fmt.Printf("added %q (%s, %s points)\n", task.Title, task.Kind, task.BasePoints)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&points, "points", "p", 1, "base points for full completion")
	cmd.Flags().IntVarP(&target, "target", "t", 1, "completions needed for full credit (routines)")
	cmd.Flags().IntVarP(&max, "max", "m", 0, "completion ceiling (default: target)")
	cmd.Flags().Float64VarP(&reward, "reward", "r", 0, "flat reward granted on completion")
	cmd.Flags().Float64Var(&scalar, "scalar", 1, "difficulty multiplier on base points")
	cmd.Flags().BoolVar(&oneoff, "oneoff", false, "all-or-nothing task instead of a routine")
	cmd.Flags().BoolVar(&optional, "optional", false, "mark the task optional")

	return cmd
}
