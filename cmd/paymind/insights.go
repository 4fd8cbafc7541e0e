package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"paymind/internal/bootstrap"
	insightsdto "paymind/internal/modules/insights/dto"
	reportdto "paymind/internal/modules/report/dto"
)

func newDashboardCmd(g *globals) *cobra.Command {
	var asOf string
	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's and this week's attention cost",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDay(asOf)
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.InsightsCLI.Dashboard(ctx, insightsdto.AsOfInput{UserID: app.Config.UserID, AsOf: d})
				if err != nil {
					return err
				}
				money := app.ValuationCLI.Money
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "as of %s\n", day(out.AsOf))
				_, _ = fmt.Fprintf(w, "today\t%.1fh\t%s lost\n", out.TodayHours, money(out.TodayLoss))
				_, _ = fmt.Fprintf(w, "week\t%.1fh\t%s lost\t%s to platforms\n", out.WeekHours, money(out.WeekLoss), money(out.WeekCorporateProfit))
				if out.TopApp != "" {
					_, _ = fmt.Fprintf(w, "top app\t%s (%.1fh)\n", out.TopApp, out.TopAppHours)
				}
				_, _ = fmt.Fprintf(w, "focus\ttoday %.1fh (%d pts)\tweek %.1fh (%d pts)\n",
					out.FocusTodayHours, out.FocusTodayPoints, out.FocusWeekHours, out.FocusWeekPoints)
				ds := out.Distractions
				_, _ = fmt.Fprintf(w, "distractions\t%d pickups\t%d notifications\tdebt %.0f min (%s)\tlow-pickup streak %d\n",
					ds.Pickups, ds.Notifications, ds.DebtMinutes, money(ds.DebtValue), ds.LowPickupStreak)
				_, _ = fmt.Fprintf(w, "subscriptions\t%d\t%s per month\n", out.SubscriptionCount, money(out.SubscriptionMonthly))
				return nil
			})
		},
	}
	dashboard.Flags().StringVar(&asOf, "as-of", "", "day YYYY-MM-DD (default today)")
	return dashboard
}

func newRecommendCmd(g *globals) *cobra.Command {
	var asOf string
	recommend := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest cheaper habits from this week's usage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDay(asOf)
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.InsightsCLI.Recommendations(ctx, insightsdto.AsOfInput{UserID: app.Config.UserID, AsOf: d})
				if err != nil {
					return err
				}
				money := app.ValuationCLI.Money
				w := cmd.OutOrStdout()
				if len(out.Items) == 0 {
					_, _ = fmt.Fprintln(w, "no recommendations")
				}
				for _, item := range out.Items {
					_, _ = fmt.Fprintf(w, "[%s] %s\tsave %s %s\t%s\n", item.Source, item.Title, money(item.PotentialSaving), item.Timeframe, item.Difficulty)
					if item.Description != "" {
						_, _ = fmt.Fprintf(w, "    %s\n", item.Description)
					}
				}
				for _, plan := range out.Plans {
					_, _ = fmt.Fprintf(w, "plan %s: %.1fh/day, %s/month\n", plan.Title, plan.DailyTimeSaving, money(plan.MonthlySaving))
				}
				_, _ = fmt.Fprintf(w, "total potential saving %s\n", money(out.TotalPotentialSaving))
				for _, name := range out.AdvisorFailures {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "advisor %s skipped\n", name)
				}
				return nil
			})
		},
	}
	recommend.Flags().StringVar(&asOf, "as-of", "", "day YYYY-MM-DD (default today)")
	return recommend
}

func newReportCmd(g *globals) *cobra.Command {
	var format, out, dir, asOf string
	report := &cobra.Command{
		Use:   "report",
		Short: "Export the attention report as json, md or pdf",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDay(asOf)
			if err != nil {
				return err
			}
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				res, err := app.ReportCLI.Export(ctx, reportdto.ExportInput{
					UserID: app.Config.UserID,
					AsOf:   d,
					Format: format,
					Dir:    dir,
					Path:   out,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s report to %s (%d bytes", res.Format, res.Path, res.Bytes)
				if res.Pages > 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), ", %d pages", res.Pages)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), ")")
				return nil
			})
		},
	}
	report.Flags().StringVar(&format, "format", "json", "json|md|pdf")
	report.Flags().StringVar(&out, "out", "", "output file (overrides --dir)")
	report.Flags().StringVar(&dir, "dir", "", "output directory (default from config)")
	report.Flags().StringVar(&asOf, "as-of", "", "day YYYY-MM-DD (default today)")
	return report
}
