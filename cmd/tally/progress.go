package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tallyhq/habit-engine/habits"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Score a day and show per-task points, the total, and the streak",
		Args:  cobra.NoArgs,
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

			in, err := store.DayInput(cmd.Context(), date)
			if err != nil {
				return err
			}

			score, err := habits.ScoreDay(in)
			if err != nil {
				return err
			}

			printDayScore(score, in.Day.TargetPoints)

			// Persist the outcome so tomorrow's streak sees this day.
			// Days without a target never qualify, so there is nothing
			// worth recording for them.
			if in.Day.TargetPoints.IsPositive() {
				if err := store.SaveDayResult(cmd.Context(), score.Result()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	return cmd
}

func printDayScore(score habits.DayScore, target decimal.Decimal) {
	fmt.Printf("%s\n", score.Date)
	for _, ts := range score.Tasks {
		marker := " "
		if ts.Completed >= ts.Task.Target {
			marker = "x"
		}
		fmt.Printf("  [%s] %-28s %d/%d  %s pts\n",
			marker, ts.Task.Title, ts.Completed, ts.Task.Target,
			ts.Result.EarnedPoints.StringFixed(1))
	}

	percent := score.Progress.ProgressRatio.Mul(decimal.NewFromInt(100))
	fmt.Printf("total: %s / %s (%s%%)\n",
		score.Progress.TotalPoints.StringFixed(1), target.StringFixed(1), percent.StringFixed(0))

	if score.StreakDays > 0 {
		fmt.Printf("streak: %d day(s), routine bonus +%s%%\n",
			score.StreakDays, score.StreakBonus.Mul(decimal.NewFromInt(100)).StringFixed(0))
	}
	if score.Met {
		fmt.Println("target met")
	}
}
