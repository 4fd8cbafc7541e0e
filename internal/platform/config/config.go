package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix       = "PAYMIND"
	DefaultFileName = "paymind.yaml"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Valuation overrides the base wage parameters of the valuation engine.
type Valuation struct {
	MonthlySalary           float64 `yaml:"monthly_salary" envconfig:"MONTHLY_SALARY"`
	ProductiveHoursPerMonth float64 `yaml:"productive_hours_per_month" envconfig:"PRODUCTIVE_HOURS_PER_MONTH"`
	PersonalFocusRatio      float64 `yaml:"personal_focus_ratio" envconfig:"PERSONAL_FOCUS_RATIO"`
}

type Config struct {
	DataDir        string    `yaml:"data_dir" envconfig:"DATA_DIR"`
	DBDriver       string    `yaml:"db_driver" envconfig:"DB_DRIVER"`
	DBPath         string    `yaml:"db_path" envconfig:"DB_PATH"`
	PostgresDSN    string    `yaml:"postgres_dsn" envconfig:"POSTGRES_DSN"`
	UserID         string    `yaml:"user_id" envconfig:"USER_ID"`
	HTTPAddr       string    `yaml:"http_addr" envconfig:"HTTP_ADDR"`
	LogLevel       string    `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogPretty      bool      `yaml:"log_pretty" envconfig:"LOG_PRETTY"`
	RedisAddr      string    `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	PluginDir      string    `yaml:"plugin_dir" envconfig:"PLUGIN_DIR"`
	ReportDir      string    `yaml:"report_dir" envconfig:"REPORT_DIR"`
	Locale         string    `yaml:"locale" envconfig:"LOCALE"`
	CurrencySymbol string    `yaml:"currency_symbol" envconfig:"CURRENCY_SYMBOL"`
	Valuation      Valuation `yaml:"valuation" envconfig:"VALUATION"`
}

// LoadOptions carries the command-line inputs that take part in resolution.
type LoadOptions struct {
	DataDir    string
	ConfigFile string
	UserID     string
}

// New returns the defaults for dataDir, already validated.
func New(dataDir string) (Config, error) {
	cfg := Defaults(dataDir)
	cfg.derivePaths()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Defaults(dataDir string) Config {
	return Config{
		DataDir:        dataDir,
		DBDriver:       DriverSQLite,
		UserID:         "local",
		HTTPAddr:       "127.0.0.1:8080",
		LogLevel:       "info",
		Locale:         "en-IN",
		CurrencySymbol: "₹",
		Valuation: Valuation{
			MonthlySalary:           30000,
			ProductiveHoursPerMonth: 160,
			PersonalFocusRatio:      0.6,
		},
	}
}

// Load resolves defaults, then the YAML file, then PAYMIND_* environment variables, then flags.
func Load(opts LoadOptions) (Config, error) {
	cfg := Defaults(opts.DataDir)

	path := opts.ConfigFile
	explicit := path != ""
	if !explicit && opts.DataDir != "" {
		path = filepath.Join(opts.DataDir, DefaultFileName)
	}
	if path != "" {
		if err := cfg.mergeFile(path, explicit); err != nil {
			return Config{}, err
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	if opts.DataDir != "" && os.Getenv(EnvPrefix+"_DATA_DIR") == "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.UserID != "" {
		cfg.UserID = opts.UserID
	}
	cfg.derivePaths()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) derivePaths() {
	if c.DBPath == "" && c.DataDir != "" {
		c.DBPath = filepath.Join(c.DataDir, "paymind.db")
	}
	if c.PluginDir == "" && c.DataDir != "" {
		c.PluginDir = filepath.Join(c.DataDir, "plugins")
	}
	if c.ReportDir == "" && c.DataDir != "" {
		c.ReportDir = filepath.Join(c.DataDir, "reports")
	}
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres driver requires %s_POSTGRES_DSN", EnvPrefix)
		}
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	if c.Valuation.ProductiveHoursPerMonth <= 0 {
		return fmt.Errorf("productive hours per month must be positive")
	}
	if c.Valuation.MonthlySalary < 0 || c.Valuation.PersonalFocusRatio < 0 {
		return fmt.Errorf("valuation parameters must be non-negative")
	}
	return nil
}
