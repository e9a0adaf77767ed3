// Package config reads the stockbook configuration from an optional config
// file and the environment. Environment variables win over file values;
// everything has a workable default so a bare `sbk` run needs no setup.
package config

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	DocumentPath   string        // path of the JSON document
	WorkbookPath   string        // path of the xlsx peer workbook
	Actor          string        // name stamped on recorded movements
	BackupKeep     int           // backups retained per label
	BackupCooldown time.Duration // throttle for automatic backups
	LogLevel       string        // trace, debug, info, warn, error
	LogConsole     bool          // human-readable console output instead of JSON
}

// Load reads stockbook.{yaml,json,toml} from the working directory and
// ~/.config/stockbook, then overlays SBK_* environment variables
// (SBK_DOCUMENT_PATH, SBK_ACTOR, ...). A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("stockbook")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home + "/.config/stockbook")
	}

	v.SetEnvPrefix("SBK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("document_path", "inventory.json")
	v.SetDefault("workbook_path", "stockbook.xlsx")
	v.SetDefault("actor", "")
	v.SetDefault("backup_keep", 10)
	v.SetDefault("backup_cooldown_seconds", 120)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_console", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		DocumentPath:   v.GetString("document_path"),
		WorkbookPath:   v.GetString("workbook_path"),
		Actor:          v.GetString("actor"),
		BackupKeep:     v.GetInt("backup_keep"),
		BackupCooldown: time.Duration(v.GetInt("backup_cooldown_seconds")) * time.Second,
		LogLevel:       v.GetString("log_level"),
		LogConsole:     v.GetBool("log_console"),
	}, nil
}

// SetupLogging configures the global zerolog logger from the config: console
// writer for interactive use, JSON otherwise, level defaulting to info.
func (c *Config) SetupLogging() {
	var w io.Writer = os.Stderr
	if c.LogConsole {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	log.Logger = zerolog.New(w).Level(parseLevel(c.LogLevel)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
