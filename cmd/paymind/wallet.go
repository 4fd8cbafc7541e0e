package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"paymind/internal/bootstrap"
)

func newWalletCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "wallet",
		Short: "Show the time wallet and achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.WalletCLI.Wallet(ctx, app.Config.UserID)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "saved %.1fh\tpoints %d\tmoney %s\tstreak %d days\n",
					out.TotalSavedTime, out.TotalPoints, app.ValuationCLI.Money(out.MoneySaved), out.StreakDays)
				for _, a := range out.Achievements {
					mark := " "
					if a.Unlocked {
						mark = "x"
					}
					_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", mark, a.Title, a.Description)
				}
				return nil
			})
		},
	}
}

func newGoalCmd(g *globals) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Manage savings goals"}

	var title string
	var target float64
	add := &cobra.Command{
		Use:   "add --title <title> --target <amount>",
		Short: "Add a savings goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				item, err := app.WalletCLI.AddGoal(ctx, app.Config.UserID, title, target)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added goal %s (%s) target %s\n", item.Title, item.ID, app.ValuationCLI.Money(item.TargetAmount))
				return nil
			})
		},
	}
	add.Flags().StringVar(&title, "title", "", "goal title")
	add.Flags().Float64Var(&target, "target", 0, "target amount")

	list := &cobra.Command{
		Use:   "list",
		Short: "List goals with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.WalletCLI.ListGoals(ctx, app.Config.UserID)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(out.Goals) == 0 {
					_, _ = fmt.Fprintln(w, "no goals")
					return nil
				}
				for _, item := range out.Goals {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s / %s\t%.0f%%\tdelayed %d days\tcompleted=%t\n", item.ID, item.Title,
						app.ValuationCLI.Money(item.CurrentSaved), app.ValuationCLI.Money(item.TargetAmount),
						item.Progress, item.EstimatedDaysDelayed, item.Completed)
				}
				_, _ = fmt.Fprintf(w, "total %s / %s\n", app.ValuationCLI.Money(out.TotalSaved), app.ValuationCLI.Money(out.TotalTarget))
				return nil
			})
		},
	}

	var amount float64
	allocate := &cobra.Command{
		Use:   "allocate <id> --amount <amount>",
		Short: "Move wallet money into a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.WalletCLI.Allocate(ctx, app.Config.UserID, args[0], amount)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "allocated %s to %s: %s / %s, wallet %s\n",
					app.ValuationCLI.Money(amount), out.Goal.Title, app.ValuationCLI.Money(out.Goal.CurrentSaved),
					app.ValuationCLI.Money(out.Goal.TargetAmount), app.ValuationCLI.Money(out.Wallet.MoneySaved))
				return nil
			})
		},
	}
	allocate.Flags().Float64Var(&amount, "amount", 0, "amount to allocate")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.WalletCLI.DeleteGoal(ctx, app.Config.UserID, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	goal.AddCommand(add, list, allocate, rm)
	return goal
}
