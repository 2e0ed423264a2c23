package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Dataset     Dataset     `mapstructure:",squash"`
	Dashboard   Dashboard   `mapstructure:",squash"`
	SourceWatch SourceWatch `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Dataset describes where the transactions come from and how their required
// columns are named.
type Dataset struct {
	Source            string   `mapstructure:"dataset_source"`
	Path              string   `mapstructure:"dataset_path"`
	Table             string   `mapstructure:"dataset_table"`
	DateLayouts       []string `mapstructure:"dataset_date_layouts"`
	CityColumn        string   `mapstructure:"dataset_city_column"`
	ServiceDateColumn string   `mapstructure:"dataset_service_date_column"`
	ServiceColumn     string   `mapstructure:"dataset_service_column"`
	AmountColumn      string   `mapstructure:"dataset_amount_column"`
}

type Dashboard struct {
	Title     string `mapstructure:"dashboard_title"`
	NotesPath string `mapstructure:"dashboard_notes_path"`
	PageSize  int    `mapstructure:"dashboard_page_size"`
}

type SourceWatch struct {
	CronSchedule string `mapstructure:"source_watch_cron"`
	Enabled      bool   `mapstructure:"source_watch_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8050)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8050")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/detailing?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("DATASET_SOURCE", SourceCSV)
	viper.SetDefault("DATASET_PATH", "data/detailing_data.csv")
	viper.SetDefault("DATASET_TABLE", "detailing_transactions")
	viper.SetDefault("DATASET_DATE_LAYOUTS", "2006-01-02,2006-01-02 15:04:05,2006-01-02T15:04:05Z07:00,01/02/2006")
	viper.SetDefault("DATASET_CITY_COLUMN", "City")
	viper.SetDefault("DATASET_SERVICE_DATE_COLUMN", "Date of Service")
	viper.SetDefault("DATASET_SERVICE_COLUMN", "Service")
	viper.SetDefault("DATASET_AMOUNT_COLUMN", "Amount")

	viper.SetDefault("DASHBOARD_TITLE", "Detailing Bulls - Nationwide Performance Dashboard")
	viper.SetDefault("DASHBOARD_NOTES_PATH", "")
	viper.SetDefault("DASHBOARD_PAGE_SIZE", 10)

	viper.SetDefault("SOURCE_WATCH_CRON", "*/15 * * * *") // every 15 minutes
	viper.SetDefault("SOURCE_WATCH_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("using environment only, .env not read by viper: ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required when DATASET_SOURCE=%s", SourceCSV)
		}
	case SourcePostgres:
		if c.Dataset.Table == "" {
			return fmt.Errorf("DATASET_TABLE is required when DATASET_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q (expected %s or %s)", c.Dataset.Source, SourceCSV, SourcePostgres)
	}

	if len(c.Dataset.DateLayouts) == 0 {
		return fmt.Errorf("DATASET_DATE_LAYOUTS must list at least one layout")
	}

	if c.Dashboard.PageSize <= 0 {
		return fmt.Errorf("DASHBOARD_PAGE_SIZE must be positive, got %d", c.Dashboard.PageSize)
	}

	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("loaded .env from ", location)
			return
		}
	}

	logrus.Debug("no .env file found, relying on process environment")
}
