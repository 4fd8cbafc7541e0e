package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"paymind/internal/bootstrap"
)

func newCalcCmd(g *globals) *cobra.Command {
	calc := &cobra.Command{Use: "calc", Short: "Quote values without recording anything"}

	calc.AddCommand(&cobra.Command{
		Use:   "loss <app> <hours>",
		Short: "Value lost to an app",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := parseFloatArg("hours", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ValuationCLI.Loss(ctx, args[0], hours)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %.1fh: %s lost, %s to the platform (weight %.2f, known=%t)\n%s\n",
					out.App, out.Hours, app.ValuationCLI.Money(out.Loss), app.ValuationCLI.Money(out.CorporateProfit),
					out.ProfitWeight, out.KnownApp, out.LossText)
				return nil
			})
		},
	})

	calc.AddCommand(&cobra.Command{
		Use:   "roi <cost> <usage-hours>",
		Short: "Cost per hour of a subscription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, err := parseFloatArg("cost", args[0])
			if err != nil {
				return err
			}
			usage, err := parseFloatArg("usage hours", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ValuationCLI.ROI(ctx, cost, usage)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s per hour, %s\n%s\n", app.ValuationCLI.Money(out.CostPerHour), out.Verdict, out.Advice)
				return nil
			})
		},
	})

	calc.AddCommand(&cobra.Command{
		Use:   "points <activity> <hours>",
		Short: "Points earned by a focus activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := parseFloatArg("hours", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ValuationCLI.Points(ctx, args[0], hours)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f points (rate %.0f, known=%t)\n", out.Activity, out.Points, out.Rate, out.Known)
				return nil
			})
		},
	})

	calc.AddCommand(&cobra.Command{
		Use:   "debt <pickups> <notifications>",
		Short: "Attention debt of pickups and notifications",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pickups, err := parseIntArg("pickups", args[0])
			if err != nil {
				return err
			}
			notifications, err := parseIntArg("notifications", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ValuationCLI.Debt(ctx, pickups, notifications)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%.0f minutes lost, worth %s at %s/h\n", out.Minutes, app.ValuationCLI.Money(out.Value), app.ValuationCLI.Money(out.Rate))
				return nil
			})
		},
	})

	calc.AddCommand(&cobra.Command{
		Use:   "rates",
		Short: "Print the valuation tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ValuationCLI.Rates(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "base %s/h\tneutral %s/h\treference %s/h\n", app.ValuationCLI.Money(out.BaseHourlyValue),
					app.ValuationCLI.Money(out.NeutralHourlyValue), app.ValuationCLI.Money(out.ReferenceHourlyRate))
				for _, row := range out.ProfitWeights {
					_, _ = fmt.Fprintf(w, "weight\t%s\t%.2f\n", row.Key, row.Rate)
				}
				for _, row := range out.CorporateRates {
					_, _ = fmt.Fprintf(w, "corporate\t%s\t%.2f\n", row.Key, row.Rate)
				}
				for _, row := range out.FocusRates {
					_, _ = fmt.Fprintf(w, "focus\t%s\t%.0f\n", row.Key, row.Rate)
				}
				return nil
			})
		},
	})

	return calc
}

func newPluginCmd(g *globals) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Advisor plugin operations"}
	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List advisor plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				plugins, err := app.AdvisorCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(plugins) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
					return nil
				}
				for _, p := range plugins {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
				}
				return nil
			})
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate advisor checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				results, err := app.AdvisorCLI.Doctor(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(results) == 0 {
					_, _ = fmt.Fprintln(w, "no plugins configured")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(w, "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
					if r.Error != "" {
						_, _ = fmt.Fprintf(w, " error=%q", r.Error)
					}
					_, _ = fmt.Fprintln(w)
				}
				return nil
			})
		},
	})
	return plugin
}
