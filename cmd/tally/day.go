package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallyhq/habit-engine/habits"
)

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day <target-points>",
		Short: "Set the point target for a day",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("target points value is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parse target points: %w", err)
			}
			if target.IsNegative() {
				return errors.New("target points must not be negative")
			}

			store, cleanup, err := openStore()
			if err != nil {
				return err
			}
			defer cleanup()

			date, err := resolveDate()
			if err != nil {
				return err
			}

			if err := store.SaveDay(cmd.Context(), habits.Day{Date: date, TargetPoints: target}); err != nil {
				return err
			}
			fmt.Printf("%s: target set to %s points\n", date, target)
			return nil
		},
	}

	return cmd
}
