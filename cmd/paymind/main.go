package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"paymind/internal/bootstrap"
	"paymind/internal/platform/calendar"
	"paymind/internal/platform/config"
	"paymind/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globals are the persistent flags shared by every command.
type globals struct {
	dataDir    string
	configFile string
	userID     string
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "paymind",
		Short:         "Put a price on your attention",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", defaultDataDir(), "directory holding the database, plugins and reports")
	root.PersistentFlags().StringVar(&g.configFile, "config", "", "config file (default <data-dir>/paymind.yaml)")
	root.PersistentFlags().StringVar(&g.userID, "user", "", "user id (overrides config)")

	root.AddCommand(newTUICmd(g))
	root.AddCommand(newServeCmd(g))
	root.AddCommand(newTrackCmd(g))
	root.AddCommand(newFocusCmd(g))
	root.AddCommand(newSubCmd(g))
	root.AddCommand(newGoalCmd(g))
	root.AddCommand(newWalletCmd(g))
	root.AddCommand(newDashboardCmd(g))
	root.AddCommand(newRecommendCmd(g))
	root.AddCommand(newReportCmd(g))
	root.AddCommand(newCalcCmd(g))
	root.AddCommand(newPluginCmd(g))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".paymind"
	}
	return filepath.Join(home, ".paymind")
}

func loadApp(ctx context.Context, g *globals) (*bootstrap.App, error) {
	cfg, err := config.Load(config.LoadOptions{DataDir: g.dataDir, ConfigFile: g.configFile, UserID: g.userID})
	if err != nil {
		return nil, err
	}
	log := logger.New("paymind", cfg.LogLevel, cfg.LogPretty)
	zlog.Logger = log
	return bootstrap.New(ctx, cfg, log)
}

// withApp loads the application for one command and closes it afterwards.
func withApp(cmd *cobra.Command, g *globals, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	app, err := loadApp(ctx, g)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(ctx, app)
}

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the paymind terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newServeCmd(g *globals) *cobra.Command {
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, app *bootstrap.App) error {
				return bootstrap.Serve(ctx, app, addr)
			})
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return serve
}

// parseDay reads an optional YYYY-MM-DD flag; empty means today.
func parseDay(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return calendar.Parse(value)
}

func parseFloatArg(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, value)
	}
	return v, nil
}

func parseIntArg(name, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number, got %q", name, value)
	}
	return v, nil
}

func day(t time.Time) string {
	return calendar.Format(t)
}
