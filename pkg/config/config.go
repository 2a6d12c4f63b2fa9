package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"hotelbooker/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir     string
	BackupDir   string
	ReceiptsDir string
	ExportsDir  string

	SeedSampleData bool
	Currency       string
	BcryptCost     int

	LogLevel  string
	LogFormat string

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	// Optional .env next to the binary; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:     getEnvStr(EnvDataDir, DefaultDataDir),
		BackupDir:   getEnvStr(EnvBackupDir, DefaultBackupDir),
		ReceiptsDir: getEnvStr(EnvReceiptsDir, DefaultReceiptsDir),
		ExportsDir:  getEnvStr(EnvExportsDir, DefaultExportsDir),

		SeedSampleData: getEnvBool(EnvSeedSampleData, DefaultSeedSampleData),
		Currency:       getEnvStr(EnvCurrency, DefaultCurrency),
		BcryptCost:     getEnvNum(EnvBcryptCost, DefaultBcryptCost),

		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),
	}
	cfg.Log = logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// File locations inside the data directory. Rooms live under master/, the
// rest at the top level, matching the on-disk layout existing installs have.
func (cfg *Config) RoomsFile() string     { return filepath.Join(cfg.DataDir, "master", "rooms.txt") }
func (cfg *Config) BookingsFile() string  { return filepath.Join(cfg.DataDir, "bookings.txt") }
func (cfg *Config) PaymentsFile() string  { return filepath.Join(cfg.DataDir, "payments.txt") }
func (cfg *Config) PromosFile() string    { return filepath.Join(cfg.DataDir, "promocodes.txt") }
func (cfg *Config) UsersFile() string     { return filepath.Join(cfg.DataDir, "users.txt") }
func (cfg *Config) ReviewsFile() string   { return filepath.Join(cfg.DataDir, "reviews.txt") }
func (cfg *Config) FavoritesFile() string { return filepath.Join(cfg.DataDir, "favorites.txt") }
func (cfg *Config) SettingsFile() string  { return filepath.Join(cfg.DataDir, "settings.properties") }

func (cfg *Config) Validate() error {
	var errs []string

	if cfg.DataDir == "" {
		errs = append(errs, "DataDir cannot be empty")
	}
	if cfg.BackupDir == "" {
		errs = append(errs, "BackupDir cannot be empty")
	}
	if cfg.ReceiptsDir == "" {
		errs = append(errs, "ReceiptsDir cannot be empty")
	}
	if cfg.ExportsDir == "" {
		errs = append(errs, "ExportsDir cannot be empty")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		errs = append(errs, fmt.Sprintf("BcryptCost must be between 4 and 31, got: %d", cfg.BcryptCost))
	}
	switch cfg.LogLevel {
	case logger.DEBUG, logger.INFO, logger.WARN, logger.ERROR:
	default:
		errs = append(errs, fmt.Sprintf("LogLevel must be one of debug/info/warn/error, got: %s", cfg.LogLevel))
	}
	switch cfg.LogFormat {
	case logger.JSON, logger.TEXT:
	default:
		errs = append(errs, fmt.Sprintf("LogFormat must be json or text, got: %s", cfg.LogFormat))
	}

	if len(errs) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, e := range errs {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", errMsg)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"data_dir", cfg.DataDir,
		"backup_dir", cfg.BackupDir,
		"receipts_dir", cfg.ReceiptsDir,
		"exports_dir", cfg.ExportsDir,
		"seed_sample_data", cfg.SeedSampleData,
		"currency", cfg.Currency,
		"bcrypt_cost", cfg.BcryptCost,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
