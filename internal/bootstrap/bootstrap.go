package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"paymind/internal/api"
	advisorinadapter "paymind/internal/modules/advisor/adapter/in"
	advisoroutadapter "paymind/internal/modules/advisor/adapter/out"
	advisorservice "paymind/internal/modules/advisor/service"
	advisorusecase "paymind/internal/modules/advisor/usecase"
	insightsinadapter "paymind/internal/modules/insights/adapter/in"
	insightsusecase "paymind/internal/modules/insights/usecase"
	reportinadapter "paymind/internal/modules/report/adapter/in"
	reportoutadapter "paymind/internal/modules/report/adapter/out"
	reportout "paymind/internal/modules/report/port/out"
	reportusecase "paymind/internal/modules/report/usecase"
	trackinginadapter "paymind/internal/modules/tracking/adapter/in"
	trackingoutadapter "paymind/internal/modules/tracking/adapter/out"
	trackingservice "paymind/internal/modules/tracking/service"
	trackingusecase "paymind/internal/modules/tracking/usecase"
	valuationinadapter "paymind/internal/modules/valuation/adapter/in"
	valuation "paymind/internal/modules/valuation/domain"
	valuationusecase "paymind/internal/modules/valuation/usecase"
	walletinadapter "paymind/internal/modules/wallet/adapter/in"
	walletoutadapter "paymind/internal/modules/wallet/adapter/out"
	walletdomain "paymind/internal/modules/wallet/domain"
	walletout "paymind/internal/modules/wallet/port/out"
	walletservice "paymind/internal/modules/wallet/service"
	walletusecase "paymind/internal/modules/wallet/usecase"
	"paymind/internal/platform/clock"
	"paymind/internal/platform/config"
	"paymind/internal/platform/id"
	"paymind/internal/platform/money"
	"paymind/internal/platform/sqlstore"
	uiapp "paymind/internal/ui/app"
)

const lockTTL = 10 * time.Second

type App struct {
	Config config.Config
	Log    zerolog.Logger

	TrackingCLI  trackinginadapter.CLIHandler
	WalletCLI    walletinadapter.CLIHandler
	InsightsCLI  insightsinadapter.CLIHandler
	ReportCLI    reportinadapter.CLIHandler
	ValuationCLI valuationinadapter.CLIHandler
	AdvisorCLI   advisorinadapter.CLIHandler
	Router       http.Handler

	closers []func() error
}

// New opens the configured store and wires every module. Callers must Close the App.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	formatter := money.NewFormatter(cfg.Locale, cfg.CurrencySymbol)

	engine, err := newEngine(cfg, formatter)
	if err != nil {
		return nil, err
	}

	db, err := sqlstore.Open(cfg.DBDriver, cfg.DBPath, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.DBDriver, err)
	}
	app.closers = append(app.closers, db.Close)

	trackingStore, err := trackingoutadapter.NewSQLStore(ctx, db)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new tracking store: %w", err)
	}
	walletStore, err := walletoutadapter.NewSQLStore(ctx, db)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("new wallet store: %w", err)
	}
	locker, err := app.newLocker(ctx)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	walletUC := walletusecase.NewInteractor(walletusecase.Deps{
		Service:  walletservice.NewWalletService(clk, ids, walletdomain.NewLedger(engine.ReferenceHourlyRate())),
		Wallets:  walletStore,
		Goals:    walletStore,
		Credits:  walletStore,
		Activity: trackingStore,
		Locker:   locker,
		Tx:       db,
		Log:      log,
	})
	trackingUC := trackingusecase.NewInteractor(trackingusecase.Deps{
		Service:       trackingservice.NewTrackingService(clk, ids, engine),
		Usage:         trackingStore,
		Distractions:  trackingStore,
		Focus:         trackingStore,
		Subscriptions: trackingStore,
		Wallet:        walletUC,
		Tx:            db,
		Log:           log,
	})
	valuationUC := valuationusecase.NewInteractor(engine)

	advisorUC := advisorusecase.NewInteractor(advisorservice.NewAdvisorService(
		advisoroutadapter.NewDirManifestStore(cfg.PluginDir),
		advisoroutadapter.NewGRPCHost(hclog.New(&hclog.LoggerOptions{
			Name:   "advisor",
			Level:  hclog.LevelFromString(cfg.LogLevel),
			Output: os.Stderr,
		})),
	), log)

	insightsUC := insightsusecase.NewInteractor(insightsusecase.Deps{
		Engine:        engine,
		Clock:         clk,
		Usage:         trackingStore,
		Distractions:  trackingStore,
		Focus:         trackingStore,
		Subscriptions: trackingStore,
		Advisor:       advisorUC,
		Log:           log,
	})
	reportUC := reportusecase.NewInteractor(reportusecase.Deps{
		Engine:        engine,
		Clock:         clk,
		Money:         formatter,
		Usage:         trackingStore,
		Distractions:  trackingStore,
		Focus:         trackingStore,
		Subscriptions: trackingStore,
		Wallet:        walletUC,
		Insights:      insightsUC,
		Renderers: []reportout.Renderer{
			reportoutadapter.NewJSONRenderer(),
			reportoutadapter.NewMarkdownRenderer(formatter),
			reportoutadapter.NewPDFRenderer(formatter),
		},
		Writer:    reportoutadapter.NewFileWriter(),
		Inspector: reportoutadapter.NewPDFInspector(),
		ReportDir: cfg.ReportDir,
		Log:       log,
	})

	app.TrackingCLI = trackinginadapter.NewCLIHandler(trackingUC)
	app.WalletCLI = walletinadapter.NewCLIHandler(walletUC)
	app.InsightsCLI = insightsinadapter.NewCLIHandler(insightsUC)
	app.ReportCLI = reportinadapter.NewCLIHandler(reportUC)
	app.ValuationCLI = valuationinadapter.NewCLIHandler(valuationUC)
	app.AdvisorCLI = advisorinadapter.NewCLIHandler(advisorUC)
	app.Router = api.NewRouter(api.Deps{
		Tracking:  trackingUC,
		Wallet:    walletUC,
		Insights:  insightsUC,
		Report:    reportUC,
		Valuation: valuationUC,
		Advisor:   advisorUC,
		Log:       log,
	})
	return app, nil
}

func newEngine(cfg config.Config, formatter money.Formatter) (valuation.Engine, error) {
	vc := valuation.DefaultConfig()
	vc.MonthlySalary = cfg.Valuation.MonthlySalary
	vc.ProductiveHoursPerMonth = cfg.Valuation.ProductiveHoursPerMonth
	vc.PersonalFocusRatio = cfg.Valuation.PersonalFocusRatio
	vc.Currency = formatter
	engine, err := valuation.NewEngine(vc)
	if err != nil {
		return valuation.Engine{}, fmt.Errorf("new valuation engine: %w", err)
	}
	return engine, nil
}

// newLocker uses redis when an address is configured so several processes can share one database.
func (a *App) newLocker(ctx context.Context) (walletout.Locker, error) {
	if a.Config.RedisAddr == "" {
		return walletoutadapter.NewMemoryLocker(), nil
	}
	client := redis.NewClient(&redis.Options{Addr: a.Config.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", a.Config.RedisAddr, err)
	}
	a.closers = append(a.closers, client.Close)
	a.Log.Debug().Str("addr", a.Config.RedisAddr).Msg("using redis wallet locks")
	return walletoutadapter.NewRedisLocker(client, lockTTL), nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Serve runs the HTTP API on addr until ctx is cancelled.
func Serve(ctx context.Context, app *App, addr string) error {
	if addr == "" {
		addr = app.Config.HTTPAddr
	}
	return api.Serve(ctx, api.NewServer(ctx, addr, app.Router), app.Log)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config.UserID, app.InsightsCLI, app.WalletCLI, app.TrackingCLI, app.ReportCLI, app.ValuationCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
