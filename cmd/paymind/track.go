package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"paymind/internal/bootstrap"
	trackingdto "paymind/internal/modules/tracking/dto"
)

func newTrackCmd(g *globals) *cobra.Command {
	track := &cobra.Command{Use: "track", Short: "Record screen time and distractions"}

	var date string
	screen := &cobra.Command{
		Use:   "screen <app=hours>...",
		Short: "Replace the screen time recorded for a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDay(date)
			if err != nil {
				return err
			}
			apps := make([]trackingdto.AppHours, 0, len(args))
			for _, arg := range args {
				name, raw, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("expected app=hours, got %q", arg)
				}
				hours, err := parseFloatArg("hours for "+name, raw)
				if err != nil {
					return err
				}
				apps = append(apps, trackingdto.AppHours{App: name, Hours: hours})
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TrackingCLI.SaveScreenTime(ctx, app.Config.UserID, d, apps)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, e := range out.Entries {
					_, _ = fmt.Fprintf(w, "%s\t%.1fh\t%s\n", e.App, e.Hours, app.ValuationCLI.Money(e.EstValueLost))
				}
				_, _ = fmt.Fprintf(w, "saved %s: %d apps, value lost %s", day(out.Date), len(out.Entries), app.ValuationCLI.Money(out.TotalLoss))
				if out.Dropped > 0 {
					_, _ = fmt.Fprintf(w, " (%d zero-hour apps dropped)", out.Dropped)
				}
				_, _ = fmt.Fprintln(w)
				return nil
			})
		},
	}
	screen.Flags().StringVar(&date, "date", "", "day YYYY-MM-DD (default today)")

	var distractionDate string
	var pickups, notifications int
	distractions := &cobra.Command{
		Use:   "distractions --pickups <n> --notifications <n>",
		Short: "Log phone pickups and notifications for a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDay(distractionDate)
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				item, err := app.TrackingCLI.LogDistractions(ctx, app.Config.UserID, d, pickups, notifications)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s: %d pickups, %d notifications\n", day(item.Date), item.PickupCount, item.NotificationCount)
				return nil
			})
		},
	}
	distractions.Flags().StringVar(&distractionDate, "date", "", "day YYYY-MM-DD (default today)")
	distractions.Flags().IntVar(&pickups, "pickups", 0, "phone pickups")
	distractions.Flags().IntVar(&notifications, "notifications", 0, "notifications received")

	var from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List screen time and distractions in a range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseDay(from)
			if err != nil {
				return err
			}
			t, err := parseDay(to)
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				usage, err := app.TrackingCLI.ListUsage(ctx, app.Config.UserID, f, t)
				if err != nil {
					return err
				}
				logs, err := app.TrackingCLI.ListDistractions(ctx, app.Config.UserID, f, t)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(usage.Entries) == 0 && len(logs.Logs) == 0 {
					_, _ = fmt.Fprintln(w, "nothing tracked")
					return nil
				}
				for _, e := range usage.Entries {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%.1fh\t%s\n", day(e.Date), e.App, e.Hours, app.ValuationCLI.Money(e.EstValueLost))
				}
				for _, l := range logs.Logs {
					_, _ = fmt.Fprintf(w, "%s\tpickups=%d\tnotifications=%d\n", day(l.Date), l.PickupCount, l.NotificationCount)
				}
				_, _ = fmt.Fprintf(w, "total %.1fh, value lost %s\n", usage.TotalHours, app.ValuationCLI.Money(usage.TotalLoss))
				return nil
			})
		},
	}
	list.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD (default today)")
	list.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD (default today)")

	track.AddCommand(screen, distractions, list)
	return track
}

func newFocusCmd(g *globals) *cobra.Command {
	focus := &cobra.Command{Use: "focus", Short: "Log productive focus time"}

	var date, activity string
	var hours float64
	logCmd := &cobra.Command{
		Use:   "log --type <activity> --hours <h>",
		Short: "Log focus hours; the wallet accrues the increase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDay(date)
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TrackingCLI.LogFocus(ctx, app.Config.UserID, d, activity, hours)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %.1fh %s on %s (+%d pts, +%s); wallet %s, streak %d days\n",
					out.Activity.Hours, out.Activity.Type, day(out.Activity.Date), out.AccruedPoints,
					app.ValuationCLI.Money(out.AccruedMoney), app.ValuationCLI.Money(out.WalletBalance), out.WalletStreak)
				return nil
			})
		},
	}
	logCmd.Flags().StringVar(&date, "date", "", "day YYYY-MM-DD (default today)")
	logCmd.Flags().StringVar(&activity, "type", "", "reading|learning|exercise|meditation|creative|social|work")
	logCmd.Flags().Float64Var(&hours, "hours", 0, "hours spent")

	var from, to string
	list := &cobra.Command{
		Use:   "list",
		Short: "List focus activities in a range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseDay(from)
			if err != nil {
				return err
			}
			t, err := parseDay(to)
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TrackingCLI.ListFocus(ctx, app.Config.UserID, f, t)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(out.Activities) == 0 {
					_, _ = fmt.Fprintln(w, "no focus logged")
					return nil
				}
				for _, a := range out.Activities {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%.1fh\t%d pts\n", day(a.Date), a.Type, a.Hours, a.Points)
				}
				_, _ = fmt.Fprintf(w, "total %.1fh, %d pts\n", out.TotalHours, out.TotalPoints)
				return nil
			})
		},
	}
	list.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD (default today)")
	list.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD (default today)")

	focus.AddCommand(logCmd, list)
	return focus
}

func newSubCmd(g *globals) *cobra.Command {
	sub := &cobra.Command{Use: "sub", Short: "Track subscriptions and their return on time"}

	var name string
	var cost, usage float64
	add := &cobra.Command{
		Use:   "add --name <name> --cost <monthly> --usage <hours>",
		Short: "Add a subscription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				item, err := app.TrackingCLI.AddSubscription(ctx, app.Config.UserID, name, cost, usage)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\t%s per hour\t%s\n", item.Name, item.ID, app.ValuationCLI.Money(item.CostPerHour), item.Advice)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "subscription name")
	add.Flags().Float64Var(&cost, "cost", 0, "monthly cost")
	add.Flags().Float64Var(&usage, "usage", 0, "hours used per month")

	list := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions with cost per hour",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TrackingCLI.ListSubscriptions(ctx, app.Config.UserID)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(out.Subscriptions) == 0 {
					_, _ = fmt.Fprintln(w, "no subscriptions")
					return nil
				}
				for _, s := range out.Subscriptions {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s/mo\t%.0fh\t%s/h\tworthwhile=%t\n", s.ID, s.Name,
						app.ValuationCLI.Money(s.Cost), s.UsageHours, app.ValuationCLI.Money(s.CostPerHour), s.IsWorthwhile)
				}
				_, _ = fmt.Fprintf(w, "total %s per month\n", app.ValuationCLI.Money(out.TotalMonthly))
				return nil
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.TrackingCLI.DeleteSubscription(ctx, app.Config.UserID, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	}

	sub.AddCommand(add, list, rm)
	return sub
}
