package main

import (
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ndinv/sql-inventory/internal/config"
)

const envPrefix = "NDINV"

// flagKeys maps flags onto settings keys. Flags a command does not define are ignored.
var flagKeys = map[string]string{
	"driver":      "database.driver",
	"dsn":         "database.dsn",
	"db-host":     "database.host",
	"db-port":     "database.port",
	"db-name":     "database.name",
	"db-user":     "database.user",
	"db-password": "database.password",
	"db-sslmode":  "database.sslmode",
	"inputs":      "inventory.inputs_file",
	"format":      "inventory.format",
	"pretty":      "inventory.pretty",
	"server-mode": "server.mode",
	"http-port":   "server.http_port",
	"log-format":  "log_format",
	"log-level":   "log_level",
}

// syncEnvExcept runs sync, then reverts any of the named flags that sync set
// from the environment. The mode flags only come from the command line.
func syncEnvExcept(sync cobrautil.CobraRunFunc, names ...string) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, args []string) error {
		changed := make(map[string]bool, len(names))
		for _, name := range names {
			if f := cmd.Flags().Lookup(name); f != nil {
				changed[name] = f.Changed
			}
		}

		if err := sync(cmd, args); err != nil {
			return err
		}

		for name, was := range changed {
			f := cmd.Flags().Lookup(name)
			if was || !f.Changed {
				continue
			}
			if err := f.Value.Set(f.DefValue); err != nil {
				return err
			}
			f.Changed = false
		}
		return nil
	}
}

func registerPersistentFlags(flags *pflag.FlagSet, d *config.Configuration) {
	flags.String("config", "", "Path to a settings file (yaml, json or toml)")
	flags.String("inputs", d.Inventory.InputsFile, "Path to the inputs document")
	flags.String("driver", d.Database.Driver, "Database driver: postgres, duckdb or sqlite")
	flags.String("dsn", d.Database.DSN, "Database connection string, overrides the db-* flags")
	flags.String("db-host", d.Database.Host, "Postgres host")
	flags.Int("db-port", d.Database.Port, "Postgres port")
	flags.String("db-name", d.Database.Name, "Database name, or file path for duckdb and sqlite")
	flags.String("db-user", d.Database.User, "Postgres user")
	flags.String("db-password", d.Database.Password, "Postgres password")
	flags.String("db-sslmode", d.Database.SSLMode, "Postgres sslmode")
	flags.String("log-format", d.LogFormat, "Log format: console or json")
	flags.String("log-level", d.LogLevel, "Log level: debug, info, warn or error")
}

// loadSettings merges defaults, the optional settings file and flags into cfg.
// Environment variables reach viper through their flags (see cobrautil.SyncViperPreRunE).
func loadSettings(v *viper.Viper, cfg *config.Configuration) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for f, k := range flagKeys {
			if flag := cmd.Flags().Lookup(f); flag != nil {
				if err := v.BindPFlag(k, flag); err != nil {
					return err
				}
			}
		}

		if path, _ := cmd.Flags().GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read settings file %q: %w", path, err)
			}
		}

		if err := v.Unmarshal(cfg); err != nil {
			return fmt.Errorf("failed to decode settings: %w", err)
		}
		return nil
	}
}

func setupLogging(cfg *config.Configuration) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		zap.S().Named("settings").Debugw("configuration loaded", "config", cfg.DebugMap())
		return nil
	}
}

// newLogger builds a logger writing to stderr only; stdout carries the inventory document.
func newLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zc zap.Config
	switch format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}
