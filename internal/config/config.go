package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/insightdelivered/trial-balance-converter/internal/parser"
)

// Config holds all application configuration.
type Config struct {
	Log    LogConfig
	Date   DateConfig
	Server ServerConfig
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type DateConfig struct {
	// MaxPages is how many leading pages are searched for the statement date.
	MaxPages int
}

type ServerConfig struct {
	Addr        string
	BodyLimitMB int
	StaticDir   string
}

// Keys shared by environment variables (TBC_ prefix) and CLI flags.
const (
	KeyLogLevel     = "log.level"
	KeyLogPretty    = "log.pretty"
	KeyDateMaxPages = "date.max_pages"
	KeyServerAddr   = "server.addr"
	KeyBodyLimitMB  = "server.body_limit_mb"
	KeyStaticDir    = "server.static_dir"
)

// New returns a viper instance with defaults and environment binding.
// Variables are read as TBC_LOG_LEVEL, TBC_SERVER_ADDR, and so on. A .env
// file in the working directory is loaded first when present.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TBC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogPretty, true)
	v.SetDefault(KeyDateMaxPages, parser.DefaultDatePages)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyBodyLimitMB, 32)
	v.SetDefault(KeyStaticDir, "")
	return v
}

// Load reads configuration from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Pretty: v.GetBool(KeyLogPretty),
		},
		Date: DateConfig{
			MaxPages: v.GetInt(KeyDateMaxPages),
		},
		Server: ServerConfig{
			Addr:        v.GetString(KeyServerAddr),
			BodyLimitMB: v.GetInt(KeyBodyLimitMB),
			StaticDir:   v.GetString(KeyStaticDir),
		},
	}

	if cfg.Date.MaxPages < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", KeyDateMaxPages, cfg.Date.MaxPages)
	}
	if cfg.Server.BodyLimitMB < 1 {
		return nil, fmt.Errorf("%s must be at least 1, got %d", KeyBodyLimitMB, cfg.Server.BodyLimitMB)
	}
	if cfg.Server.Addr == "" {
		return nil, errors.New(KeyServerAddr + " is required")
	}

	return cfg, nil
}
