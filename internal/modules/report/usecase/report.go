package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	insightsdomain "paymind/internal/modules/insights/domain"
	insightsdto "paymind/internal/modules/insights/dto"
	insightsin "paymind/internal/modules/insights/port/in"
	"paymind/internal/modules/report/domain"
	"paymind/internal/modules/report/dto"
	reportin "paymind/internal/modules/report/port/in"
	reportout "paymind/internal/modules/report/port/out"
	valuation "paymind/internal/modules/valuation/domain"
	walletin "paymind/internal/modules/wallet/port/in"
	"paymind/internal/platform/calendar"
	"paymind/internal/platform/clock"
	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/money"

	"github.com/rs/zerolog"
)

type Interactor struct {
	engine        valuation.Engine
	clock         clock.Clock
	money         money.Formatter
	usage         reportout.UsageReader
	distractions  reportout.DistractionReader
	focus         reportout.FocusReader
	subscriptions reportout.SubscriptionReader
	wallet        walletin.Usecase
	insights      insightsin.Usecase
	renderers     map[domain.Format]reportout.Renderer
	writer        reportout.Writer
	inspector     reportout.Inspector
	reportDir     string
	log           zerolog.Logger
}

// Deps wires the report. Insights may be nil, in which case the report carries no recommendations.
type Deps struct {
	Engine        valuation.Engine
	Clock         clock.Clock
	Money         money.Formatter
	Usage         reportout.UsageReader
	Distractions  reportout.DistractionReader
	Focus         reportout.FocusReader
	Subscriptions reportout.SubscriptionReader
	Wallet        walletin.Usecase
	Insights      insightsin.Usecase
	Renderers     []reportout.Renderer
	Writer        reportout.Writer
	Inspector     reportout.Inspector
	ReportDir     string
	Log           zerolog.Logger
}

func NewInteractor(deps Deps) reportin.Usecase {
	clk := deps.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	renderers := make(map[domain.Format]reportout.Renderer, len(deps.Renderers))
	for _, r := range deps.Renderers {
		renderers[r.Format()] = r
	}
	return &Interactor{
		engine:        deps.Engine,
		clock:         clk,
		money:         deps.Money,
		usage:         deps.Usage,
		distractions:  deps.Distractions,
		focus:         deps.Focus,
		subscriptions: deps.Subscriptions,
		wallet:        deps.Wallet,
		insights:      deps.Insights,
		renderers:     renderers,
		writer:        deps.Writer,
		inspector:     deps.Inspector,
		reportDir:     deps.ReportDir,
		log:           deps.Log.With().Str("component", "report").Logger(),
	}
}

func (i *Interactor) Build(ctx context.Context, input dto.BuildInput) (dto.ReportOutput, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return dto.ReportOutput{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = i.clock.Now()
	}
	asOf = calendar.Day(asOf)
	period := domain.AllTime(asOf)

	report := domain.Report{UserID: input.UserID, AsOf: asOf, GeneratedAt: i.clock.Now().UTC()}
	if err := i.collectUsage(ctx, &report, period); err != nil {
		return dto.ReportOutput{}, err
	}
	if err := i.collectDistractions(ctx, &report, period); err != nil {
		return dto.ReportOutput{}, err
	}
	if err := i.collectFocus(ctx, &report, period); err != nil {
		return dto.ReportOutput{}, err
	}
	if err := i.collectSubscriptions(ctx, &report); err != nil {
		return dto.ReportOutput{}, err
	}
	if err := i.collectWallet(ctx, &report); err != nil {
		return dto.ReportOutput{}, err
	}
	if i.insights != nil {
		recs, err := i.insights.Recommendations(ctx, insightsdto.AsOfInput{UserID: input.UserID, AsOf: asOf})
		if err != nil {
			return dto.ReportOutput{}, fmt.Errorf("recommendations: %w", err)
		}
		for _, r := range recs.Items {
			report.Recommendations = append(report.Recommendations, domain.RecommendationLine{
				Title:           r.Title,
				Description:     r.Description,
				PotentialSaving: r.PotentialSaving,
				Source:          r.Source,
			})
		}
	}

	report.Insights = domain.Insights(report.Summary, report.Wallet.StreakDays, i.money.Format)
	report.Tips = domain.Tips(report.Summary, len(report.Subscriptions), report.Wallet.StreakDays)
	return dto.ReportOutput{Report: report}, nil
}

func (i *Interactor) Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error) {
	format, err := domain.ParseFormat(input.Format)
	if err != nil {
		return dto.RenderOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	renderer, ok := i.renderers[format]
	if !ok {
		return dto.RenderOutput{}, fmt.Errorf("%w: no renderer for %s", apperrors.ErrInvalidInput, format)
	}
	built, err := i.Build(ctx, dto.BuildInput{UserID: input.UserID, AsOf: input.AsOf})
	if err != nil {
		return dto.RenderOutput{}, err
	}
	data, err := renderer.Render(built.Report)
	if err != nil {
		return dto.RenderOutput{}, fmt.Errorf("render %s report: %w", format, err)
	}
	return dto.RenderOutput{
		FileName:    domain.FileName(built.Report.AsOf, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	if i.writer == nil {
		return dto.ExportOutput{}, fmt.Errorf("report writer is not configured")
	}
	rendered, err := i.Render(ctx, dto.RenderInput{UserID: input.UserID, AsOf: input.AsOf, Format: input.Format})
	if err != nil {
		return dto.ExportOutput{}, err
	}
	format, _ := domain.ParseFormat(input.Format)
	path := input.Path
	if path == "" {
		dir := input.Dir
		if dir == "" {
			dir = i.reportDir
		}
		path = filepath.Join(dir, rendered.FileName)
	}
	written, err := i.writer.Write(ctx, path, format, rendered.Data)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	out := dto.ExportOutput{Path: written, Format: string(format), Bytes: len(rendered.Data)}
	if format == domain.FormatPDF && i.inspector != nil {
		pages, err := i.inspector.PageCount(written)
		if err != nil {
			return dto.ExportOutput{}, fmt.Errorf("verify pdf: %w", err)
		}
		out.Pages = pages
	}
	i.log.Info().Str("user", input.UserID).Str("path", written).Str("format", string(format)).Msg("report exported")
	return out, nil
}

func (i *Interactor) collectUsage(ctx context.Context, report *domain.Report, period calendar.Range) error {
	entries, err := i.usage.ListUsage(ctx, report.UserID, period)
	if err != nil {
		return fmt.Errorf("list usage: %w", err)
	}
	for _, e := range entries {
		report.Summary.ScreenHours += e.Hours
		report.Summary.ValueLost += e.EstValueLost
	}
	usage := insightsdomain.AggregateByApp(entries)
	report.Summary.Entries = len(entries)
	report.Summary.Apps = len(usage)
	if len(usage) > domain.TopAppLimit {
		usage = usage[:domain.TopAppLimit]
	}
	apps := make([]domain.AppLine, 0, len(usage))
	for _, u := range usage {
		apps = append(apps, domain.AppLine{App: u.App, Hours: u.Hours})
	}
	report.TopApps = apps
	return nil
}

func (i *Interactor) collectDistractions(ctx context.Context, report *domain.Report, period calendar.Range) error {
	logs, err := i.distractions.ListDistractions(ctx, report.UserID, period)
	if err != nil {
		return fmt.Errorf("list distractions: %w", err)
	}
	line := domain.DistractionLine{DaysLogged: len(logs)}
	for _, l := range logs {
		line.Pickups += l.PickupCount
		line.Notifications += l.NotificationCount
	}
	if len(logs) > 0 {
		line.AvgDailyPickups = float64(line.Pickups) / float64(len(logs))
		line.AvgDailyNotifications = float64(line.Notifications) / float64(len(logs))
	}
	report.Distractions = line
	report.Summary.Pickups = line.Pickups
	report.Summary.Notifications = line.Notifications
	return nil
}

func (i *Interactor) collectFocus(ctx context.Context, report *domain.Report, period calendar.Range) error {
	activities, err := i.focus.ListFocus(ctx, report.UserID, period)
	if err != nil {
		return fmt.Errorf("list focus: %w", err)
	}
	for n, a := range activities {
		report.Summary.FocusHours += a.Hours
		report.Summary.FocusPoints += a.Points
		if n < domain.FocusLimit {
			report.Focus = append(report.Focus, domain.FocusLine{Date: a.Date, Type: string(a.Type), Hours: a.Hours, Points: a.Points})
		}
	}
	if len(activities) > domain.FocusLimit {
		report.MoreFocus = len(activities) - domain.FocusLimit
	}
	return nil
}

func (i *Interactor) collectSubscriptions(ctx context.Context, report *domain.Report) error {
	subs, err := i.subscriptions.ListSubscriptions(ctx, report.UserID)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}
	for _, s := range subs {
		roi, err := i.engine.SubscriptionROI(s.Cost, s.UsageHours)
		if err != nil {
			return err
		}
		report.Summary.SubscriptionMonthly += s.Cost
		report.Subscriptions = append(report.Subscriptions, domain.SubscriptionLine{
			Name:        s.Name,
			Cost:        s.Cost,
			UsageHours:  s.UsageHours,
			CostPerHour: roi.CostPerHour,
			Worthwhile:  roi.IsWorthwhile,
		})
	}
	return nil
}

func (i *Interactor) collectWallet(ctx context.Context, report *domain.Report) error {
	wallet, err := i.wallet.GetWallet(ctx, report.UserID)
	if err != nil {
		return fmt.Errorf("get wallet: %w", err)
	}
	report.Wallet = domain.WalletLine{
		MoneySaved:     wallet.MoneySaved,
		TotalPoints:    wallet.TotalPoints,
		StreakDays:     wallet.StreakDays,
		TotalSavedTime: wallet.TotalSavedTime,
	}
	for _, a := range wallet.Achievements {
		if a.Unlocked {
			report.Wallet.Unlocked = append(report.Wallet.Unlocked, a.Title)
		}
	}
	goals, err := i.wallet.ListGoals(ctx, report.UserID)
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}
	for _, g := range goals.Goals {
		report.Goals = append(report.Goals, domain.GoalLine{
			Title:        g.Title,
			TargetAmount: g.TargetAmount,
			CurrentSaved: g.CurrentSaved,
			Progress:     g.Progress,
			Completed:    g.Completed,
		})
	}
	return nil
}
