package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every cabplanner environment variable.
const EnvPrefix = "cabplanner"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Reports ReportsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CABPLANNER_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"CABPLANNER_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"CABPLANNER_LOG_FORMAT" default:"console"`
	LogWarnStack bool   `envconfig:"CABPLANNER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Path is the SQLite database file. ":memory:" keeps everything
	// in-process, which the tests rely on.
	Path        string `envconfig:"CABPLANNER_DB_PATH" default:"cabplanner.db"`
	AutoMigrate bool   `envconfig:"CABPLANNER_DB_AUTO_MIGRATE" default:"true"`
}

type ReportsConfig struct {
	OutputDir string `envconfig:"CABPLANNER_REPORTS_DIR" default:"."`

	// Stock-sheet defaults for the purchase estimate.
	SheetWidthMM  float64 `envconfig:"CABPLANNER_SHEET_WIDTH_MM" default:"2800"`
	SheetHeightMM float64 `envconfig:"CABPLANNER_SHEET_HEIGHT_MM" default:"2070"`
	WastePercent  float64 `envconfig:"CABPLANNER_WASTE_PERCENT" default:"15"`
}
